package handler

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

var errDisallowedHost = errors.New("invalid host header")

// Handler 聚合 HTTP 处理函数
type Handler struct {
	blog         *service.BlogService
	orders       *service.OrderService
	baseURL      string
	allowedHosts []string
}

// New baseURL 为空时绝对链接取自请求，此时 Host 必须在 allowedHosts 内
func New(blog *service.BlogService, orders *service.OrderService, baseURL string, allowedHosts []string) *Handler {
	hosts := make([]string, 0, len(allowedHosts))
	for _, host := range allowedHosts {
		if host = strings.ToLower(strings.TrimSpace(host)); host != "" {
			hosts = append(hosts, host)
		}
	}
	return &Handler{blog: blog, orders: orders, baseURL: strings.TrimRight(baseURL, "/"), allowedHosts: hosts}
}

// hostAllowed 与 Django ALLOWED_HOSTS 相同的匹配规则："*" 全部放行，
// ".example.com" 匹配 example.com 及其子域，其余精确匹配
func (h *Handler) hostAllowed(host string) bool {
	host = strings.ToLower(host)
	for _, pattern := range h.allowedHosts {
		switch {
		case pattern == "*":
			return true
		case strings.HasPrefix(pattern, "."):
			if host == pattern[1:] || strings.HasSuffix(host, pattern) {
				return true
			}
		case host == pattern:
			return true
		}
	}
	return false
}

// absoluteBase 站点根地址，用于拼接绝对链接
func (h *Handler) absoluteBase(c *gin.Context) (string, error) {
	if h.baseURL != "" {
		return h.baseURL, nil
	}
	host := c.Request.Host
	name := host
	if hn, _, err := net.SplitHostPort(host); err == nil {
		name = hn
	}
	if name == "" || strings.ContainsAny(host, "/\\@ ") || !h.hostAllowed(name) {
		return "", errDisallowedHost
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	switch p := strings.ToLower(c.GetHeader("X-Forwarded-Proto")); p {
	case "http", "https":
		scheme = p
	case "":
	default:
		return "", errDisallowedHost
	}
	return scheme + "://" + host, nil
}

// idParam 解析路径中的正整数 ID
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// fail 把服务层错误映射成响应；data 在校验失败或邮件不可用时随响应返回
func fail(c *gin.Context, err error, data interface{}) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationFailed(c, verr.Fields, data)
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrTagNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrMailUnavailable):
		response.Unavailable(c, "mail service unavailable, try again later", data)
	default:
		response.InternalError(c, err)
	}
}
