package controllers

import (
	"context"

	"leasedesk/response"

	"github.com/gin-gonic/gin"
)

// AlertBroadcaster gửi cảnh báo hợp đồng sắp hết hạn tới các client websocket
type AlertBroadcaster interface {
	BroadcastAlerts(ctx context.Context) int
}

type NotificationController struct {
	broadcaster AlertBroadcaster
}

func NewNotificationController(broadcaster AlertBroadcaster) NotificationController {
	return NotificationController{broadcaster: broadcaster}
}

// NotifyExpiring godoc
// @Summary Gửi ngay cảnh báo hợp đồng còn <= 30 ngày qua websocket
// @Tags alerts
// @Success 200 {object} response.Response
// @Router /alerts/broadcast [post]
func (nc NotificationController) NotifyExpiring(c *gin.Context) {
	sent := nc.broadcaster.BroadcastAlerts(c.Request.Context())
	response.Success(c, gin.H{"sent": sent})
}
