package controllers

import (
	"leasedesk/response"
	"leasedesk/services"

	"github.com/gin-gonic/gin"
)

type SeedController struct {
	seed *services.SeedService
}

func NewSeedController(seed *services.SeedService) SeedController {
	return SeedController{seed: seed}
}

// Seed godoc
// @Summary Sinh dữ liệu mẫu (tắt khi ENV=prod)
// @Tags seed
// @Success 200 {object} response.Response
// @Router /seed [post]
func (sc SeedController) Seed(c *gin.Context) {
	result, err := sc.seed.Seed(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}

// ResetSeed godoc
// @Summary Xóa toàn bộ dữ liệu nghiệp vụ (tắt khi ENV=prod)
// @Tags seed
// @Success 200 {object} response.Response
// @Router /seed/reset [post]
func (sc SeedController) ResetSeed(c *gin.Context) {
	if err := sc.seed.Reset(c.Request.Context()); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}
