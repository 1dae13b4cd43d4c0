package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors 字段名 -> 错误信息
type Errors map[string]string

// Validator 表单校验器，字段名取 json tag
type Validator struct {
	v *validator.Validate
}

// New 创建校验器并注册自定义规则
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// postalcode=NL
	_ = v.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
		return ValidPostalCode(fl.Param(), fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct 校验结构体，通过时返回 nil
func (x *Validator) Struct(s interface{}) (Errors, error) {
	return x.translate(x.v.Struct(s))
}

// Var 校验单个字段
func (x *Validator) Var(field string, value interface{}, tag string) (Errors, error) {
	err := x.v.Var(value, tag)
	if err == nil {
		return nil, nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil, err
	}
	return Errors{field: message(ves[0])}, nil
}

func (x *Validator) translate(err error) (Errors, error) {
	if err == nil {
		return nil, nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil, err
	}
	out := make(Errors, len(ves))
	for _, fe := range ves {
		if _, exists := out[fe.Field()]; !exists {
			out[fe.Field()] = message(fe)
		}
	}
	return out, nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "postalcode":
		return "Enter a valid postal code."
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}
