package controllers

import (
	"leasedesk/dto"
	"leasedesk/response"
	"leasedesk/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) AuthController {
	return AuthController{auth: auth}
}

// Login godoc
// @Summary Đăng nhập bằng email và mật khẩu
// @Tags auth
// @Param body body dto.LoginInput true "Thông tin đăng nhập"
// @Success 200 {object} response.Response
// @Router /auth/login [post]
func (ac AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	tokens, err := ac.auth.Login(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, tokens)
}

// Refresh godoc
// @Summary Đổi refresh token lấy cặp token mới
// @Tags auth
// @Param body body dto.RefreshInput true "Refresh token"
// @Success 200 {object} response.Response
// @Router /auth/refresh [post]
func (ac AuthController) Refresh(c *gin.Context) {
	var input dto.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	tokens, err := ac.auth.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, tokens)
}

// AuthGoogle godoc
// @Summary Đăng nhập bằng Google ID token
// @Tags auth
// @Param body body dto.GoogleLoginInput true "ID token"
// @Success 200 {object} response.Response
// @Router /auth/google [post]
func (ac AuthController) AuthGoogle(c *gin.Context) {
	var input dto.GoogleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	tokens, err := ac.auth.GoogleLogin(c.Request.Context(), input.IDToken)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, tokens)
}

// Logout thu hồi refresh token, luôn trả về thành công
func (ac AuthController) Logout(c *gin.Context) {
	var input dto.RefreshInput
	_ = c.ShouldBindJSON(&input)
	if input.RefreshToken != "" {
		if err := ac.auth.Logout(c.Request.Context(), input.RefreshToken); err != nil {
			response.FromError(c, err)
			return
		}
	}
	response.Success(c, nil)
}
