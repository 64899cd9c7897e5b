package dto

// Response 统一返回体
type Response struct {
	Success    bool        `json:"success"`
	Code       int         `json:"code"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination totalPages 向上取整
func NewPagination(page, limit int, total int64) *Pagination {
	p := &Pagination{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		p.TotalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return p
}

// PageQuery 分页查询参数，缺省值由服务层补齐
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}
