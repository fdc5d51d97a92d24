package main

import (
	"fmt"
	"os"

	"growthtrack/internal/app/config"
	"growthtrack/internal/app/cron"
	"growthtrack/internal/app/dsn"
	"growthtrack/internal/app/handler"
	"growthtrack/internal/app/pkg/auth"
	"growthtrack/internal/app/pkg/storage"
	"growthtrack/internal/app/repository"
	"growthtrack/internal/app/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	repo := repository.New(db)
	svc := service.New(repo, cfg)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	sessionService, err := auth.NewSessionService(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis error: %v", err)
	}
	defer sessionService.Close()

	store, err := storage.NewMinIO(
		cfg.MinIOHost+":"+cfg.MinIOPort,
		cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket,
		cfg.MinIOUseSSL, cfg.MinIOPublicBase,
	)
	if err != nil {
		log.Fatalf("minio error: %v", err)
	}

	router := gin.Default()
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	h := handler.NewHandler(repo, svc, cfg, jwtService, sessionService, store)
	h.RegisterHandler(router)

	sweeper := cron.NewSweeper(repo, cfg)
	scheduler := sweeper.Start()
	defer scheduler.Stop()

	addr := fmt.Sprintf("%s:%d", cfg.ServiceHost, cfg.ServicePort)
	log.Infof("listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func corsOrigins() []string {
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		return []string{v}
	}
	return []string{"http://localhost:3000"}
}
