package middleware

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"leasedesk/constants"
	"leasedesk/errors"
	"leasedesk/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuth map[string]services.UserInfo

func (f fakeAuth) Authenticate(token string) (services.UserInfo, error) {
	if info, ok := f[token]; ok {
		return info, nil
	}
	return services.UserInfo{}, stderrors.New("invalid")
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := fakeAuth{
		"admin": {UserId: 1, Role: constants.RoleAdmin},
		"staff": {UserId: 2, Role: constants.RoleStaff},
	}
	r := gin.New()
	r.Use(SessionMiddleware(), ErrorHandler())
	r.GET("/me", AuthMiddleware(auth), func(c *gin.Context) {
		actor := services.ActorFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"actor": *actor, "session": c.GetString("sessionId")})
	})
	r.POST("/seed", AuthMiddleware(auth, constants.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/staff-only", AuthMiddleware(auth), RoleMiddleware(constants.RoleStaff), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/fail/:kind", func(c *gin.Context) {
		switch c.Param("kind") {
		case "missing":
			_ = c.Error(errors.NotFound("Không tìm thấy"))
		case "conflict":
			_ = c.Error(errors.NewAppError(errors.ErrCodeInUse, "Đang được sử dụng", nil))
		default:
			_ = c.Error(stderrors.New("boom"))
		}
	})
	return r
}

func serve(r *gin.Engine, method, path, token, session string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if session != "" {
		req.Header.Set("X-Session-ID", session)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "nope", "").Code)

	w := serve(r, http.MethodGet, "/me", "staff", "sess-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"actor":2,"session":"sess-1"}`, w.Body.String())
	assert.Equal(t, "sess-1", w.Header().Get("X-Session-ID"))

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodPost, "/seed", "staff", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodPost, "/seed", "admin", "").Code)

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/staff-only", "admin", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/staff-only", "staff", "").Code)
}

func TestSessionMiddlewareGeneratesID(t *testing.T) {
	w := serve(newRouter(), http.MethodGet, "/me", "admin", "")
	assert.Len(t, w.Header().Get("X-Session-ID"), 36)
}

func TestErrorHandler(t *testing.T) {
	r := newRouter()
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/fail/missing", "", "").Code)
	w := serve(r, http.MethodGet, "/fail/conflict", "", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Đang được sử dụng")
	assert.Equal(t, http.StatusInternalServerError, serve(r, http.MethodGet, "/fail/other", "", "").Code)
}
