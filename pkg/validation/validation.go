// Package validation 在 gin 的 validator 引擎上注册自定义规则，
// 并把 validator.ValidationErrors 转换为客户端可读的字段错误列表。
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/PrinceKarma/swe-642-hw3/pkg/response"
)

// Enum 由闭合枚举类型实现，配合 `enum` 标签使用
type Enum interface {
	IsValid() bool
}

var (
	zipCodeRegex = regexp.MustCompile(`^[0-9]{5}$`)
	registerOnce sync.Once
	registerErr  error
)

// Register 向 gin 默认校验引擎注册自定义标签（幂等）
//   - notblank: 去除首尾空白后非空
//   - zipcode:  恰好 5 位 ASCII 数字
//   - enum:     值实现 Enum 且 IsValid() 为真
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin 校验引擎不是 validator.Validate")
			return
		}
		registerErr = RegisterOn(v)
	})
	return registerErr
}

// RegisterOn 在给定的 validator 实例上注册自定义标签与 JSON 字段名
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonTagName)

	rules := map[string]validator.Func{
		"notblank": notBlank,
		"zipcode":  zipCode,
		"enum":     enumValue,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("注册校验规则 %s 失败: %w", tag, err)
		}
	}
	return nil
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func notBlank(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(f.String()) != ""
}

func zipCode(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return false
	}
	return zipCodeRegex.MatchString(f.String())
}

func enumValue(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.CanInterface() {
		if e, ok := f.Interface().(Enum); ok {
			return e.IsValid()
		}
	}
	return false
}

// FieldErrors 将 validator.ValidationErrors 转换为字段错误列表
// 非校验错误返回 nil, false
func FieldErrors(err error) ([]response.FieldError, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	fields := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, response.FieldError{
			Field: fieldPath(fe),
			Error: message(fe),
		})
	}
	return fields, true
}

// fieldPath 去掉顶层结构体名，保留 campusLiked[1] 这类下标
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "zipcode":
		return "must be exactly 5 digits"
	case "enum":
		return fmt.Sprintf("has unsupported value %v", fe.Value())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s:%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
