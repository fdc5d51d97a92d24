package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int

	// Бизнес-лимиты
	RequestDailyLimit    int // заявок в сутки на участника
	RequestStaleDays     int // Pending старше этого срока отменяется свипом
	ConsultationIdleDays int // неактивная консультация закрывается свипом
	DefaultMaxChildren   int // детей без платного тарифа
	SweepIntervalMinutes int

	JWTSecret string

	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int

	MinIOHost       string
	MinIOPort       string
	MinIOAccessKey  string
	MinIOSecretKey  string
	MinIOBucket     string
	MinIOUseSSL     bool
	MinIOPublicBase string
}

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.WatchConfig()

	viper.SetDefault("ServiceHost", "0.0.0.0")
	viper.SetDefault("ServicePort", 8080)
	viper.SetDefault("RequestDailyLimit", 3)
	viper.SetDefault("RequestStaleDays", 14)
	viper.SetDefault("ConsultationIdleDays", 30)
	viper.SetDefault("DefaultMaxChildren", 1)
	viper.SetDefault("SweepIntervalMinutes", 60)

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	// Секреты и адреса внешних сервисов только из окружения
	cfg.JWTSecret = envOr("JWT_SECRET", "dev-secret")

	cfg.RedisHost = envOr("REDIS_HOST", "127.0.0.1")
	cfg.RedisPort = envIntOr("REDIS_PORT", 6379)
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = envIntOr("REDIS_DB", 0)

	cfg.MinIOHost = envOr("MINIO_HOST", "127.0.0.1")
	cfg.MinIOPort = envOr("MINIO_PORT", "9000")
	cfg.MinIOAccessKey = envOr("MINIO_ACCESS_KEY", "minioadmin")
	cfg.MinIOSecretKey = envOr("MINIO_SECRET_KEY", "minioadmin")
	cfg.MinIOBucket = envOr("MINIO_BUCKET", "child-photos")
	cfg.MinIOUseSSL = os.Getenv("MINIO_USE_SSL") == "true"
	cfg.MinIOPublicBase = envOr("MINIO_PUBLIC_BASE", "http://"+cfg.MinIOHost+":"+cfg.MinIOPort)

	log.Info("config parsed")

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
