package commands

import (
	"context"
	"fmt"

	"leasedesk/config"
	"leasedesk/services"
	"leasedesk/services/logger"
	"leasedesk/utils"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// app là các thành phần dùng chung giữa các command
type app struct {
	cfg      config.Config
	log      logger.Logger
	db       *gorm.DB
	rdb      *redis.Client
	registry *services.Registry
	// localUploads là thư mục phục vụ tại /files, rỗng khi dùng Cloudinary
	localUploads string
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg := config.Load()
	log := logger.NewLogrusLogger(logger.ParseLevel(cfg.LogLevel))

	db, err := config.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := config.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	rdb, err := config.ConnectRedis(ctx, cfg)
	if err != nil {
		log.Error("Không kết nối được Redis, chạy không có cache: %v", err)
		rdb = nil
	}

	a := &app{cfg: cfg, log: log, db: db, rdb: rdb}

	var uploader services.Uploader
	cld, err := config.ConnectCloudinary(cfg)
	if err != nil {
		return nil, fmt.Errorf("lỗi khi khởi tạo Cloudinary: %w", err)
	}
	if cld != nil {
		uploader = services.NewCloudinaryUploader(cld)
	} else {
		a.localUploads = cfg.UploadDir
		uploader = services.NewLocalUploader(cfg.UploadDir, cfg.PublicURL+"/files")
	}

	if cfg.IsProd() && (cfg.AccessSecret == "" || cfg.RefreshSecret == "") {
		return nil, fmt.Errorf("SECRET_KEY_ACCESS_TOKEN và SECRET_KEY_REFRESH_TOKEN là bắt buộc khi ENV=prod")
	}
	tokens := services.NewTokenManager(services.TokenManagerOptions{
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	})
	var google services.GoogleVerifier
	if cfg.GoogleClientID != "" {
		google = services.NewGoogleVerifier(cfg.GoogleClientID)
	}

	a.registry = services.NewRegistry(services.RegistryOptions{
		DB:          db,
		Redis:       rdb,
		Uploader:    uploader,
		Clock:       utils.NewClock(cfg.Timezone),
		Logger:      log,
		Tokens:      tokens,
		Google:      google,
		SeedEnabled: !cfg.IsProd(),
	})
	if err := a.registry.Auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) close() {
	if a.rdb != nil {
		a.rdb.Close()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}
