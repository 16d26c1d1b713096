package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"dng-api/internal/utils"

	"github.com/joho/godotenv"
)

type DBEnv struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PoolSize int
}

type Env struct {
	AppAddr     string
	GinMode     string
	DB          DBEnv
	AutoMigrate bool
	CORSOrigins []string

	AdminUser         string
	AdminPasswordHash string
	JWTSecret         string
	JWTTTL            time.Duration
}

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := getenv("APP_ADDR", "")
	if appAddr == "" {
		if port := getenv("PORT", ""); port != "" {
			appAddr = ":" + port
		} else {
			appAddr = ":4000"
		}
	}

	return Env{
		AppAddr: appAddr,
		GinMode: getenv("GIN_MODE", ""),
		DB: DBEnv{
			Host:     getenv("DB_HOST", "127.0.0.1"),
			Port:     getint("DB_PORT", 3306),
			User:     getenv("DB_USER", "root"),
			Password: os.Getenv("DB_PASS"),
			Name:     getenv("DB_NAME", "dng_transport"),
			PoolSize: getint("DB_POOL_SIZE", 10),
		},
		AutoMigrate:       getbool("DB_AUTO_MIGRATE", false),
		CORSOrigins:       utils.SplitList(os.Getenv("CORS_ORIGINS")),
		AdminUser:         getenv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getenv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getenv("JWT_SECRET", ""),
		JWTTTL:            getduration("JWT_TTL", 12*time.Hour),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	n, err := strconv.Atoi(getenv(key, ""))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getbool(key string, def bool) bool {
	b, err := strconv.ParseBool(getenv(key, ""))
	if err != nil {
		return def
	}
	return b
}

func getduration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(getenv(key, ""))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
