package response

import (
	"net/http"

	"leasedesk/errors"

	"github.com/gin-gonic/gin"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination định nghĩa cấu trúc phân trang
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	// Suggestion là từ khóa gợi ý khi tìm kiếm không có kết quả
	Suggestion string `json:"suggestion,omitempty"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Thành công",
		Data: data,
	})
}

// Created trả về response tạo mới thành công
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Tạo thành công",
		Data: data,
	})
}

// SuccessWithPagination trả về response thành công có phân trang
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Thành công",
		Data: data,
		Pagination: &Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// SuccessWithPage trả về response thành công với phân trang đã tính sẵn
func SuccessWithPage(c *gin.Context, data interface{}, p Pagination) {
	c.JSON(http.StatusOK, Response{
		Code:       1,
		Mess:       "Thành công",
		Data:       data,
		Pagination: &p,
	})
}

// Error trả về response lỗi
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Code: 0,
		Mess: message,
	})
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Lỗi server")
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Chưa xác thực")
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Không có quyền truy cập")
}

// NotFound trả về response không tìm thấy
func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Không tìm thấy")
}

// BadRequest trả về response lỗi bad request
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Conflict trả về response conflict (409)
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Xung đột dữ liệu"
	}
	Error(c, http.StatusConflict, message)
}

// StatusFor ánh xạ mã lỗi sang HTTP status
func StatusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeDBNotFound, errors.ErrCodeUserNotFound:
		return http.StatusNotFound
	case errors.ErrCodeDBDuplicate, errors.ErrCodeInUse:
		return http.StatusConflict
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken, errors.ErrCodeMissingToken, errors.ErrCodeInvalidPassword:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden, errors.ErrCodeDisabled:
		return http.StatusForbidden
	case errors.ErrCodeDBError, errors.ErrCodeUploadFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// FromError trả về response tương ứng với err
func FromError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		ServerError(c)
		return
	}
	status := StatusFor(appErr.Code)
	if status == http.StatusInternalServerError {
		ServerError(c)
		return
	}
	Error(c, status, appErr.Message)
}
