package service

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/validation"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrSlugTaken       = errors.New("slug already used on this publish date")
	ErrMailUnavailable = errors.New("mail service unavailable")
)

// ValidationError 表单校验失败，Fields 为字段级错误
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: validation.Errors{field: msg}}
}

// notFound 把 gorm 的 not found 转成领域错误，其它错误原样返回
func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
