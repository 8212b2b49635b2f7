package client

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExpired: refresh thất bại hoặc request vẫn 401 sau khi refresh, session đã bị xóa
	ErrSessionExpired = errors.New("session expired")
	// ErrMalformedPayload: response không đúng định dạng DTO
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrNotLoggedIn: chưa có access token
	ErrNotLoggedIn = errors.New("not logged in")
)

// APIError là lỗi nghiệp vụ/validation backend trả về (status != 2xx)
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// TransportError là lỗi mạng, không nhận được response
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsStatus kiểm tra err có phải APIError với status cho trước
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedPayload, fmt.Sprintf(format, args...))
}
