// Package docs chứa mô tả Swagger của API, phục vụ tại /swagger/index.html
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Đăng nhập bằng email và mật khẩu", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginInput"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/auth/refresh": {"post": {"tags": ["auth"], "summary": "Đổi refresh token lấy cặp token mới", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/auth/google": {"post": {"tags": ["auth"], "summary": "Đăng nhập bằng Google ID token", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/auth/logout": {"delete": {"tags": ["auth"], "summary": "Thu hồi refresh token", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/buildings": {
            "get": {"tags": ["buildings"], "summary": "Danh sách tòa nhà", "parameters": [{"type": "string", "name": "search", "in": "query"}, {"type": "string", "name": "sort", "in": "query"}, {"type": "integer", "name": "page", "in": "query"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}},
            "post": {"tags": ["buildings"], "summary": "Tạo tòa nhà", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}}}}
        },
        "/buildings/stats": {"get": {"tags": ["buildings"], "summary": "Tỉ lệ lấp đầy theo tòa nhà", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/buildings/{id}": {
            "patch": {"tags": ["buildings"], "summary": "Cập nhật tòa nhà", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}},
            "delete": {"tags": ["buildings"], "summary": "Xóa tòa nhà", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}
        },
        "/customers": {
            "get": {"tags": ["customers"], "summary": "Danh sách khách hàng", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}},
            "post": {"tags": ["customers"], "summary": "Tạo khách hàng", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}}}}
        },
        "/customers/{id}": {
            "patch": {"tags": ["customers"], "summary": "Cập nhật khách hàng", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}},
            "delete": {"tags": ["customers"], "summary": "Xóa khách hàng", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}
        },
        "/contracts": {
            "get": {"tags": ["contracts"], "summary": "Danh sách hợp đồng", "parameters": [{"type": "string", "name": "status", "in": "query"}, {"type": "string", "name": "customer", "in": "query"}, {"type": "string", "name": "building", "in": "query"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}},
            "post": {"tags": ["contracts"], "summary": "Tạo hợp đồng", "consumes": ["application/json", "multipart/form-data"], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}}}}
        },
        "/contracts/{id}": {
            "get": {"tags": ["contracts"], "summary": "Chi tiết hợp đồng", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}},
            "patch": {"tags": ["contracts"], "summary": "Cập nhật hợp đồng", "consumes": ["application/json", "multipart/form-data"], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}},
            "delete": {"tags": ["contracts"], "summary": "Xóa hợp đồng", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}
        },
        "/audit": {"get": {"tags": ["audit"], "summary": "Nhật ký thao tác", "parameters": [{"type": "string", "name": "action", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/alerts": {"get": {"tags": ["alerts"], "summary": "Cảnh báo hợp đồng sắp hết hạn", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/stats/dashboard": {"get": {"tags": ["stats"], "summary": "Số liệu tổng quan", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/stats/revenue": {"get": {"tags": ["stats"], "summary": "Doanh thu trong khoảng thời gian", "parameters": [{"type": "string", "name": "from", "in": "query"}, {"type": "string", "name": "to", "in": "query"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/uploads": {"post": {"tags": ["uploads"], "summary": "Upload file", "consumes": ["multipart/form-data"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/seed": {"post": {"tags": ["seed"], "summary": "Sinh dữ liệu mẫu", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/seed/reset": {"post": {"tags": ["seed"], "summary": "Xóa toàn bộ dữ liệu nghiệp vụ", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}}
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "mess": {"type": "string"},
                "data": {},
                "pagination": {"$ref": "#/definitions/response.Pagination"}
            }
        },
        "response.Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "suggestion": {"type": "string"}
            }
        },
        "dto.LoginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "leasedesk API",
	Description:      "Quản lý tòa nhà, khách hàng và hợp đồng thuê văn phòng",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
