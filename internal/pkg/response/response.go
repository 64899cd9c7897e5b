package response

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/service"
	stdjson "encoding/json"
	"errors"
	"io"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = http.StatusOK
	BadRequest          = http.StatusBadRequest
	Unauthorized        = http.StatusUnauthorized
	NotFound            = http.StatusNotFound
	InternalServerError = http.StatusInternalServerError
)

// Success 成功返回封装
func Success(c *gin.Context, data interface{}) {
	SuccessWithMessage(c, data, "")
}

// SuccessWithMessage 附带提示文案
func SuccessWithMessage(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Code:    Ok,
		Data:    data,
		Message: message,
	})
}

// SuccessWithPage 分页列表
func SuccessWithPage(c *gin.Context, data interface{}, pagination *dto.Pagination) {
	c.JSON(http.StatusOK, dto.Response{
		Success:    true,
		Code:       Ok,
		Data:       data,
		Pagination: pagination,
	})
}

// Fail 失败返回封装，HTTP 状态码与业务码一致
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, dto.Response{
		Success: false,
		Code:    code,
		Error:   message,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, service.ErrParamInvalid.Error())
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	var stdUnmarshalTypeError *stdjson.UnmarshalTypeError
	var syntaxError *stdjson.SyntaxError
	if errors.As(err, &unmarshalTypeError) || errors.As(err, &stdUnmarshalTypeError) ||
		errors.As(err, &syntaxError) || errors.Is(err, io.EOF) {
		Fail(c, BadRequest, "Json错误")
		return
	}

	known, code, ok := service.StatusOf(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		known = service.UnExpectedError
	} else if code >= InternalServerError {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
	}
	Fail(c, code, known.Error())
}
