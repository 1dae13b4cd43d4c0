package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/pkg/logger"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// 业务码
const (
	CodeOK              = 0
	CodeBadRequest      = 40000
	CodeValidation      = 40001
	CodeNotFound        = 40400
	CodeTooManyRequests = 42900
	CodeUnavailable     = 50300
	CodeInternal        = 50000
)

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: "success", Data: data})
}

// Created 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: CodeOK, Message: "created", Data: data})
}

// BadRequest 参数错误
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: CodeBadRequest, Message: msg})
}

// ValidationFailed 表单校验失败，返回字段级错误以及可选的附带数据
func ValidationFailed(c *gin.Context, errs map[string]string, data interface{}) {
	c.JSON(http.StatusBadRequest, Response{Code: CodeValidation, Message: "validation failed", Data: data, Errors: errs})
}

// NotFound 资源不存在
func NotFound(c *gin.Context, msg string) {
	if msg == "" {
		msg = "not found"
	}
	c.JSON(http.StatusNotFound, Response{Code: CodeNotFound, Message: msg})
}

// TooManyRequests 触发限流
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Response{Code: CodeTooManyRequests, Message: "too many requests"})
}

// Unavailable 依赖暂不可用（如邮件队列已满）
func Unavailable(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusServiceUnavailable, Response{Code: CodeUnavailable, Message: msg, Data: data})
}

// InternalError 服务内部错误，错误细节只写日志
func InternalError(c *gin.Context, err error) {
	logger.Error("internal error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, Response{Code: CodeInternal, Message: "internal server error"})
}
