package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// 目录数据来源
const (
	SourceBuiltin  = "builtin"
	SourceJSON     = "json"
	SourcePostgres = "postgres"
)

// Config 运行配置
type Config struct {
	Addr          string
	StaticDir     string
	CatalogSource string
	CatalogFile   string
	InitialFloor  string

	Database struct {
		Host       string
		Port       string
		User       string
		Password   string
		Name       string
		MaxRetries int
	}

	Auth struct {
		JWTSecret    string
		TokenTTL     time.Duration
		Operator     string
		PasswordHash string // bcrypt 哈希, 为空时不允许配对
	}
}

// Load 读取 .env (可选) 和环境变量
func Load(files ...string) *Config {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("未加载 .env 文件, 使用环境变量: %v", err)
	}

	cfg := &Config{
		Addr:          getEnvOrDefault("KIOSK_ADDR", ":8080"),
		StaticDir:     getEnvOrDefault("STATIC_DIR", "./static"),
		CatalogSource: getEnvOrDefault("CATALOG_SOURCE", SourceBuiltin),
		CatalogFile:   getEnvOrDefault("CATALOG_FILE", "catalog.json"),
		InitialFloor:  os.Getenv("INITIAL_FLOOR"),
	}

	cfg.Database.Host = getEnvOrDefault("DB_HOST", "localhost")
	cfg.Database.Port = getEnvOrDefault("DB_PORT", "5432")
	cfg.Database.User = getEnvOrDefault("DB_USER", "kiosk")
	cfg.Database.Password = getEnvOrDefault("DB_PASSWORD", "kiosk")
	cfg.Database.Name = getEnvOrDefault("DB_NAME", "avm")
	cfg.Database.MaxRetries = getIntOrDefault("DB_MAX_RETRIES", 30)

	// JWT 密钥 (生产环境必须通过环境变量设置)
	cfg.Auth.JWTSecret = getEnvOrDefault("JWT_SECRET", "change-me-in-production")
	cfg.Auth.TokenTTL = time.Duration(getIntOrDefault("TOKEN_TTL_HOURS", 24)) * time.Hour
	cfg.Auth.Operator = getEnvOrDefault("OPERATOR_USER", "operator")
	cfg.Auth.PasswordHash = os.Getenv("OPERATOR_PASSWORD_HASH")

	return cfg
}

// getEnvOrDefault 获取环境变量，如果不存在则返回默认值
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("%s 不是整数 (%q), 使用默认值 %d", key, val, defaultVal)
		return defaultVal
	}
	return i
}
