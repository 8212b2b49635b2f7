package routes

import (
	"net/http"

	"leasedesk/config"
	"leasedesk/constants"
	"leasedesk/controllers"
	_ "leasedesk/docs"
	middlewares "leasedesk/middleware"
	"leasedesk/services"
	"leasedesk/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	"github.com/olahol/melody"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options cấu hình thêm cho router
type Options struct {
	// UploadDir là thư mục phục vụ tại /files khi dùng LocalUploader
	UploadDir string
	// Broadcaster cho POST /alerts/broadcast, bỏ qua route nếu nil
	Broadcaster controllers.AlertBroadcaster
	// WebSocket nhận cảnh báo hết hạn tại /ws, bỏ qua route nếu nil
	WebSocket *melody.Melody
}

func SetupRoutes(router *gin.Engine, reg *services.Registry, opts Options) {
	validator.RegisterGin()

	router.Use(middlewares.RequestID(), middlewares.RequestLogger(reg.Logger), middlewares.SessionMiddleware(), middlewares.ErrorHandler())

	buildingController := controllers.NewBuildingController(reg.Buildings, reg.Stats, reg.Filters)
	customerController := controllers.NewCustomerController(reg.Customers, reg.Filters)
	contractController := controllers.NewContractController(reg.Contracts, reg.Stats, reg.Filters)
	statsController := controllers.NewStatsController(reg.Stats)
	auditController := controllers.NewAuditController(reg.Audit)
	authController := controllers.NewAuthController(reg.Auth)
	seedController := controllers.NewSeedController(reg.Seed)
	uploadController := controllers.NewUploadController(reg.Uploader)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if opts.UploadDir != "" {
		router.Static("/files", opts.UploadDir)
	}
	if opts.WebSocket != nil {
		config.InitWebSocket(router, opts.WebSocket, middlewares.WebSocketAuth(reg.Auth))
	}

	v1 := router.Group("/api/v1")
	v1.POST("/auth/login", authController.Login)
	v1.POST("/auth/refresh", authController.Refresh)
	v1.POST("/auth/google", authController.AuthGoogle)
	v1.DELETE("/auth/logout", authController.Logout)

	auth := middlewares.AuthMiddleware(reg.Auth)
	admin := middlewares.AuthMiddleware(reg.Auth, constants.RoleAdmin)

	api := v1.Group("", auth)
	api.GET("/buildings", buildingController.GetBuildings)
	api.GET("/buildings/stats", buildingController.GetBuildingStats)
	api.GET("/buildings/:id", buildingController.GetBuildingDetail)
	api.POST("/buildings", buildingController.CreateBuilding)
	api.PATCH("/buildings/:id", buildingController.UpdateBuilding)
	api.DELETE("/buildings/:id", buildingController.DeleteBuilding)

	api.GET("/customers", customerController.GetCustomers)
	api.GET("/customers/:id", customerController.GetCustomerDetail)
	api.POST("/customers", customerController.CreateCustomer)
	api.PATCH("/customers/:id", customerController.UpdateCustomer)
	api.DELETE("/customers/:id", customerController.DeleteCustomer)

	api.GET("/contracts", contractController.GetContracts)
	api.GET("/contracts/:id", contractController.GetContractDetail)
	api.POST("/contracts", contractController.CreateContract)
	api.PATCH("/contracts/:id", contractController.UpdateContract)
	api.DELETE("/contracts/:id", contractController.DeleteContract)

	api.GET("/audit", auditController.GetAuditLogs)
	api.GET("/alerts", statsController.GetAlerts)
	api.GET("/stats/dashboard", statsController.GetDashboard)
	api.GET("/stats/revenue", statsController.GetRevenue)
	api.POST("/uploads", uploadController.UploadFiles)

	if opts.Broadcaster != nil {
		notificationController := controllers.NewNotificationController(opts.Broadcaster)
		v1.POST("/alerts/broadcast", admin, notificationController.NotifyExpiring)
	}

	v1.POST("/seed", admin, seedController.Seed)
	v1.POST("/seed/reset", admin, seedController.ResetSeed)
}
