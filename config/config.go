package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
)

// Config là cấu hình đọc từ .env và biến môi trường
type Config struct {
	Env      string
	Port     string
	LogLevel string
	Timezone string

	DBDriver    string
	DatabaseURL string
	SQLitePath  string

	RedisAddr     string
	RedisUser     string
	RedisPassword string

	CloudinaryURL string
	UploadDir     string
	PublicURL     string

	AccessSecret   string
	RefreshSecret  string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	GoogleClientID string

	AdminEmail    string
	AdminPassword string
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getMinutes(key string, def int) time.Duration {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Minute
}

// Load nạp .env rồi đọc cấu hình
func Load() Config {
	LoadEnv()
	return FromEnv()
}

// FromEnv đọc cấu hình từ biến môi trường hiện tại
func FromEnv() Config {
	port := getEnvDefault("PORT", "8083")
	return Config{
		Env:            getEnvDefault("ENV", "dev"),
		Port:           port,
		LogLevel:       getEnvDefault("LOG_LEVEL", "info"),
		Timezone:       getEnvDefault("TIMEZONE", "Asia/Ho_Chi_Minh"),
		DBDriver:       getEnvDefault("DB_DRIVER", "postgres"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SQLitePath:     getEnvDefault("SQLITE_PATH", "leasedesk.db"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisUser:      os.Getenv("REDIS_USER"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
		UploadDir:      getEnvDefault("UPLOAD_DIR", "uploads"),
		PublicURL:      getEnvDefault("PUBLIC_URL", "http://localhost:"+port),
		AccessSecret:   os.Getenv("SECRET_KEY_ACCESS_TOKEN"),
		RefreshSecret:  os.Getenv("SECRET_KEY_REFRESH_TOKEN"),
		AccessTTL:      getMinutes("ACCESS_TOKEN_MINUTES", 15),
		RefreshTTL:     getMinutes("REFRESH_TOKEN_MINUTES", 60*24*7),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
	}
}

// IsProd cho biết đang chạy môi trường production
func (c Config) IsProd() bool {
	return c.Env == "prod"
}

// ConnectCloudinary trả về nil khi chưa cấu hình CLOUDINARY_URL
func ConnectCloudinary(cfg Config) (*cloudinary.Cloudinary, error) {
	if cfg.CloudinaryURL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		return nil, err
	}
	return cld, nil
}

func location(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}
