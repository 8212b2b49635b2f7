package config

import (
	"fmt"
	"os"
	"strings"

	"leasedesk/models"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func getDBConfigByEnv(env string) (string, error) {
	var prefix string
	switch env {
	case "dev":
		prefix = "DEV"
	case "qc":
		prefix = "QC"
	case "prod":
		prefix = "PROD"
	default:
		return "", fmt.Errorf("unknown environment: %s", env)
	}
	user := os.Getenv(prefix + "_DB_USER")
	password := os.Getenv(prefix + "_DB_PASSWORD")
	host := os.Getenv(prefix + "_DB_HOST")
	port := os.Getenv(prefix + "_DB_PORT")
	name := os.Getenv(prefix + "_DB_NAME")
	sslmode := getEnvDefault(prefix+"_DB_SSLMODE", "require")

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Ho_Chi_Minh",
		host, user, password, name, port, sslmode), nil
}

// PostgresDSN ưu tiên DATABASE_URL (dạng postgres://), sau đó đến *_DB_* theo ENV
func PostgresDSN(cfg Config) (string, error) {
	if cfg.DatabaseURL != "" {
		if strings.HasPrefix(cfg.DatabaseURL, "postgres://") || strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
			return pq.ParseURL(cfg.DatabaseURL)
		}
		return cfg.DatabaseURL, nil
	}
	return getDBConfigByEnv(cfg.Env)
}

// ConnectDB mở kết nối theo DB_DRIVER (postgres hoặc sqlite)
func ConnectDB(cfg Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	switch cfg.DBDriver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("fail to open sqlite: %w", err)
		}
		return db, nil
	case "postgres", "":
		dsn, err := PostgresDSN(cfg)
		if err != nil {
			return nil, err
		}
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("fail to connect to db: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}

// Migrate tạo/cập nhật bảng cho mọi model
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}
