package util

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	minRating = 1.0
	maxRating = 5.0
)

// NormalizeRating 校验评分范围并四舍五入到 0.5
func NormalizeRating(raw float64) (float64, bool) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, false
	}
	if raw < minRating || raw > maxRating {
		return 0, false
	}
	return math.Round(raw*2) / 2, true
}

// NormalizeTags 去除空白、空值与重复项，保持原有顺序
func NormalizeTags(raw []string) []string {
	tagSet := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, exists := tagSet[t]; exists {
			continue
		}
		tagSet[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}

// NormalizeHighlights 支持字符串数组或逗号分隔的字符串，最多保留 limit 个
func NormalizeHighlights(raw any, limit int) []string {
	var parts []string
	switch v := raw.(type) {
	case []string:
		parts = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	case string:
		parts = strings.Split(v, ",")
	}

	highlights := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		highlights = append(highlights, p)
		if len(highlights) == limit {
			break
		}
	}
	return highlights
}

// TrimOptional nil 或全空白返回空串
func TrimOptional(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// RuneLen 按字符计算长度
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// EmailPrefix 取邮箱 @ 之前的部分
func EmailPrefix(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
