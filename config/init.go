package config

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// InitApp tạo router gin (kèm CORS), melody cho websocket và cron
func InitApp(cfg Config) (*gin.Engine, *melody.Melody, *cron.Cron) {
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Session-ID", "X-Request-ID")
	configCors.AddExposeHeaders("X-Session-ID", "X-Request-ID")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)

	m := melody.New()

	c := cron.New(cron.WithLocation(location(cfg.Timezone)))

	return router, m, c
}

// InitWebSocket đăng ký /ws, các handler trong auth chạy trước khi nâng cấp kết nối
func InitWebSocket(router gin.IRoutes, m *melody.Melody, auth ...gin.HandlerFunc) {
	handlers := append(auth, func(c *gin.Context) {
		m.HandleRequest(c.Writer, c.Request)
	})
	router.GET("/ws", handlers...)
}
