// Package docs registers the swagger document served at /swagger/*any.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/blog/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["博客"],
                "summary": "文章列表",
                "parameters": [
                    {"type": "string", "default": "1", "description": "页码，可为 last", "name": "page", "in": "query"},
                    {"type": "string", "description": "标签 slug", "name": "tag", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/blog/tag/{tag_slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["博客"],
                "summary": "标签下的文章列表",
                "parameters": [
                    {"type": "string", "description": "标签 slug", "name": "tag_slug", "in": "path", "required": true},
                    {"type": "string", "default": "1", "description": "页码，可为 last", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/blog/posts/{year}/{month}/{day}/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["博客"],
                "summary": "文章详情（有效评论与相似文章）",
                "parameters": [
                    {"type": "integer", "description": "年", "name": "year", "in": "path", "required": true},
                    {"type": "integer", "description": "月", "name": "month", "in": "path", "required": true},
                    {"type": "integer", "description": "日", "name": "day", "in": "path", "required": true},
                    {"type": "string", "description": "文章 slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/blog/posts/{id}/share": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["博客"],
                "summary": "分享文章",
                "parameters": [
                    {"type": "integer", "description": "文章ID", "name": "id", "in": "path", "required": true},
                    {"description": "分享表单", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.ShareForm"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/blog/posts/{id}/comment": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["博客"],
                "summary": "发表评论",
                "parameters": [
                    {"type": "integer", "description": "文章ID", "name": "id", "in": "path", "required": true},
                    {"description": "评论表单", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CommentForm"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/blog/search": {
            "get": {
                "description": "不带 query 参数时返回空结果；query 为空白时校验失败",
                "produces": ["application/json"],
                "tags": ["博客"],
                "summary": "检索文章",
                "parameters": [
                    {"type": "string", "description": "检索词", "name": "query", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/blog/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["博客"],
                "summary": "博客统计",
                "parameters": [
                    {"type": "integer", "default": 5, "description": "最新/最多评论文章数量", "name": "count", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/blog/feed": {
            "get": {
                "produces": ["application/rss+xml"],
                "tags": ["博客"],
                "summary": "最新文章 RSS",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/shop/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["商店"],
                "summary": "订单列表",
                "parameters": [
                    {"type": "integer", "default": 20, "description": "数量，1-100", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["商店"],
                "summary": "创建订单",
                "parameters": [
                    {"description": "订单表单", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.OrderForm"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/shop/orders/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["商店"],
                "summary": "查询订单",
                "parameters": [
                    {"type": "integer", "description": "订单ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/shop/orders/{id}/paid": {
            "post": {
                "produces": ["application/json"],
                "tags": ["商店"],
                "summary": "标记订单已支付",
                "parameters": [
                    {"type": "integer", "description": "订单ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "errors": {}
            }
        },
        "service.ShareForm": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "to": {"type": "string"},
                "comments": {"type": "string"}
            }
        },
        "service.CommentForm": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "body": {"type": "string"}
            }
        },
        "service.OrderForm": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "address": {"type": "string"},
                "postal_code": {"type": "string"},
                "city": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "gin-blog API",
	Description:      "Blog posts, comments, sharing, search and shop orders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
