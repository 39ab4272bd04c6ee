package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"discussion-service/internal/api"
	"discussion-service/internal/config"
	"discussion-service/internal/middleware"
	"discussion-service/internal/repository"
	"discussion-service/internal/service"
	"discussion-service/internal/storage"
	"discussion-service/migrations"
)

func connectDB(dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to DB")
				return db, nil
			}
		}
		log.Printf("Retry %d: Failed to connect to DB: %v", i+1, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB after retries: %v", err)
}

func main() {
	cfg := config.Load()

	db, err := connectDB(cfg.DSN())
	if err != nil {
		panic(err)
	}

	if err := migrations.AutoMigrate(3, db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaTopic)

	imageStore, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	discussionRepo := repository.NewDiscussionRepository(db)
	hashtagRepo := repository.NewHashtagRepository(db)

	userService := service.NewUserService(*userRepo)
	authService := service.NewAuthService(*userRepo, rdb, cfg.JWTSecret)
	discussionService := service.NewDiscussionService(*discussionRepo, *hashtagRepo, *userRepo, kafkaWriter, rdb)

	userHandler := api.NewUserHandler(*userService)
	authHandler := api.NewAuthHandler(*authService)
	discussionHandler := api.NewDiscussionHandler(*discussionService, imageStore)

	e := echo.New()

	limiterConfig := echomw.RateLimiterConfig{
		Skipper: echomw.DefaultSkipper,
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(
			echomw.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     50,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.RateLimiterWithConfig(limiterConfig))

	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)

	e.POST("/users", userHandler.CreateUser)
	e.PUT("/users/:id", userHandler.UpdateUser)
	e.DELETE("/users/:id", userHandler.DeleteUser)
	e.GET("/users", userHandler.GetUsers)
	e.GET("/users/search", userHandler.SearchUsers)

	e.GET("/discussions", discussionHandler.GetDiscussions)

	protected := e.Group("/discussions", middleware.JWT(cfg.JWTSecret))
	protected.POST("", discussionHandler.CreateDiscussion)
	protected.PUT("/:id", discussionHandler.UpdateDiscussion)
	protected.DELETE("/:id", discussionHandler.DeleteDiscussion)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "discussion-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}

	if err := kafkaWriter.Close(); err != nil {
		log.Printf("Kafka writer close error: %v", err)
	}
	if err := rdb.Close(); err != nil {
		log.Printf("Redis close error: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("DB close error: %v", err)
	}
}
