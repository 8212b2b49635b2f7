package controllers

import (
	"leasedesk/dto"
	"leasedesk/response"
	"leasedesk/services"

	"github.com/gin-gonic/gin"
)

type AuditController struct {
	audit *services.AuditService
}

func NewAuditController(audit *services.AuditService) AuditController {
	return AuditController{audit: audit}
}

// GetAuditLogs godoc
// @Summary Nhật ký thao tác, mới nhất trước
// @Tags audit
// @Param action query string false "create|update|delete|login|seed|reset|status"
// @Param limit query int false "Mặc định 50, tối đa 500"
// @Success 200 {object} response.Response
// @Router /audit [get]
func (ac AuditController) GetAuditLogs(c *gin.Context) {
	var q dto.AuditQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	logs, err := ac.audit.List(c.Request.Context(), q.Action, q.Limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, logs)
}
