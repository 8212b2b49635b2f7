package controllers

import (
	"leasedesk/response"
	"leasedesk/services"
	"leasedesk/types"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) StatsController {
	return StatsController{stats: stats}
}

// GetDashboard godoc
// @Summary Số liệu tổng quan
// @Tags stats
// @Success 200 {object} response.Response
// @Router /stats/dashboard [get]
func (sc StatsController) GetDashboard(c *gin.Context) {
	stats, err := sc.stats.Dashboard(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, stats)
}

// GetRevenue godoc
// @Summary Doanh thu trong khoảng thời gian, mặc định tháng hiện tại
// @Tags stats
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {object} response.Response
// @Router /stats/revenue [get]
func (sc StatsController) GetRevenue(c *gin.Context) {
	var from, to types.Date
	var err error
	if v := c.Query("from"); v != "" {
		if from, err = types.ParseDate(v); err != nil {
			response.BadRequest(c, "Ngày bắt đầu không hợp lệ")
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = types.ParseDate(v); err != nil {
			response.BadRequest(c, "Ngày kết thúc không hợp lệ")
			return
		}
	}
	if from.IsZero() != to.IsZero() {
		response.BadRequest(c, "Cần cả from và to")
		return
	}
	stats, err := sc.stats.Revenue(c.Request.Context(), from, to)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, stats)
}

// GetAlerts godoc
// @Summary Cảnh báo hợp đồng sắp hết hạn (<= 90 ngày)
// @Tags alerts
// @Success 200 {object} response.Response
// @Router /alerts [get]
func (sc StatsController) GetAlerts(c *gin.Context) {
	alerts, err := sc.stats.Alerts(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, alerts)
}
