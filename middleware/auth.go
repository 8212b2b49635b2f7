package middleware

import (
	"strings"

	"leasedesk/response"
	"leasedesk/services"

	"github.com/gin-gonic/gin"
)

// Authenticator kiểm tra access token
type Authenticator interface {
	Authenticate(accessToken string) (services.UserInfo, error)
}

// AuthMiddleware xử lý authentication
func AuthMiddleware(auth Authenticator, roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		info, err := auth.Authenticate(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 && !hasRole(info.Role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		// Lưu thông tin user vào context
		c.Set("userID", info.UserId)
		c.Set("userRole", info.Role)
		c.Request = c.Request.WithContext(services.WithActor(c.Request.Context(), info.UserId))
		c.Next()
	}
}

// WebSocketAuth giống AuthMiddleware nhưng nhận thêm token qua query ?token=
// khi request nâng cấp websocket không có header Authorization
func WebSocketAuth(auth Authenticator, roles ...int) gin.HandlerFunc {
	check := AuthMiddleware(auth, roles...)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			if token := c.Query("token"); token != "" {
				c.Request.Header.Set("Authorization", "Bearer "+token)
			}
		}
		check(c)
	}
}

// RoleMiddleware kiểm tra role của user
func RoleMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("userRole")
		if !exists {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		role, _ := userRole.(int)
		if !hasRole(role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

func hasRole(role int, roles []int) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// ErrorHandler xử lý lỗi gắn vào context bằng c.Error
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			response.FromError(c, c.Errors.Last().Err)
		}
	}
}
