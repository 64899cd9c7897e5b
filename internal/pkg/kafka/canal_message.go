package kafka

import (
	"fmt"
	"strconv"
	"time"
)

// Canal 事件类型
const (
	INSERT = "INSERT"
	UPDATE = "UPDATE"
	DELETE = "DELETE"
)

const canalTimeLayout = "2006-01-02 15:04:05"

// CanalMessage 定义了 Canal 推送到 Kafka 的 JSON 数据结构
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`
	SQL      string   `json:"sql"`

	// Data 存储变更后的数据
	Data []map[string]interface{} `json:"data"`

	// Old 存储变更前的数据，只包含被修改的列
	Old []map[string]interface{} `json:"old"`

	SqlType   map[string]int    `json:"sqlType"`
	MysqlType map[string]string `json:"mysqlType"`
}

// Changed 判断 UPDATE 事件第 i 行是否修改了任一列，Old 与 Data 按下标一一对应
func (m *CanalMessage) Changed(i int, columns ...string) bool {
	if m.Type != UPDATE || i < 0 || i >= len(m.Old) {
		return false
	}
	for _, c := range columns {
		if _, ok := m.Old[i][c]; ok {
			return true
		}
	}
	return false
}

// StrToString Canal 的 flat message 中所有列都以字符串（或 null）传递
func StrToString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func StrToInt64(v interface{}) int64 {
	n, _ := strconv.ParseInt(StrToString(v), 10, 64)
	return n
}

func StrToFloat(v interface{}) float64 {
	f, _ := strconv.ParseFloat(StrToString(v), 64)
	return f
}

func StrToDateTime(v interface{}) time.Time {
	s := StrToString(v)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.ParseInLocation(canalTimeLayout, s, time.Local); err == nil {
		return t
	}
	// datetime(3) 带毫秒
	if t, err := time.ParseInLocation("2006-01-02 15:04:05.999999", s, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
