package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"pairchat/backend/internal/api/handler"
	"pairchat/backend/internal/auth"
	"pairchat/backend/internal/chathub"
	"pairchat/backend/internal/localization"
	"pairchat/backend/internal/models"
	"pairchat/backend/internal/presence"
	"pairchat/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupDependencies() (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	dsn := envOr("DATABASE_DSN",
		"host=localhost user=user password=password dbname=pairchatdb port=5432 sslmode=disable")

	// TranslateError робить порушення унікальності видимим як gorm.ErrDuplicatedKey.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: "",
		DB:       0,
	})

	// Перевірка з'єднання Redis
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Міграції (ідемпотентне створення таблиць при старті)
	err = db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.ActivityRecord{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting PairChat Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET не встановлено!")
	}

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	// 2. Ініціалізація сервісів та Chat Hub
	registry := chathub.NewRegistry()
	dispatcher := chathub.NewDispatcher(s, registry)
	tracker := presence.NewTracker(s)
	hub := chathub.NewManagerService(s, registry, dispatcher, tracker)
	authSvc := auth.NewService(s, []byte(jwtSecret))

	loc := localization.NewLocalizer()
	if dir := os.Getenv("LOCALES_DIR"); dir != "" {
		if err := loc.LoadDir(dir); err != nil {
			log.Printf("Warning: failed to load extra locales from %s: %v", dir, err)
		}
	}

	// 3. Запуск основних Goroutines
	go hub.Run() // Головний диспетчер

	// 4. Налаштування Gin та роутингу
	r := gin.Default()
	h := handler.NewHandler(hub, authSvc, tracker, loc)

	// Роути
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/peers", h.RequireAuth, h.ListPeers)
	r.GET("/ws", h.RequireAuth, h.ServeWebSocket) // WebSocket Upgrade

	// Запуск HTTP-сервера
	server := &http.Server{
		Addr:              ":" + envOr("PORT", "8080"),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
