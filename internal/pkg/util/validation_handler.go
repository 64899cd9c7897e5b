package util

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// 错误信息里使用 json 字段名，与请求体保持一致
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateDTO 按 validate 标签校验，返回的错误仍可解包为 validator.ValidationErrors
func ValidateDTO(dto any) error {
	err := validate.Struct(dto)
	var vErrs validator.ValidationErrors
	if err == nil || !errors.As(err, &vErrs) {
		return err
	}
	fe := vErrs[0]
	return fmt.Errorf("字段 [%s] 校验失败，规则 [%s]: %w", fe.Field(), fe.Tag(), vErrs)
}
