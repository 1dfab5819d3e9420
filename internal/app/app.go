package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appHTTP "minigram/internal/controller/http"
	"minigram/internal/model"
	"minigram/internal/repo/persistent"
	"minigram/internal/usecase"
	"minigram/pkg/cache"
	"minigram/pkg/config"
	"minigram/pkg/database"
	"minigram/pkg/jwt"
	"minigram/pkg/logger"
	"minigram/pkg/middleware"
	"minigram/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "minigram/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	store       storage.Storage
	redisClient *redis.Client
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.PostModel{},
		&model.PostLikeModel{},
	); err != nil {
		log.Error("Failed to migrate database: %v", err)
		return nil, err
	}

	var store storage.Storage
	if cfg.StorageBackend == "s3" {
		store, err = storage.NewS3(cfg)
	} else {
		store, err = storage.NewLocal(cfg.UploadDir)
	}
	if err != nil {
		log.Error("Failed to set up media storage: %v", err)
		return nil, err
	}

	// Redis is optional; without it the rate limiter is simply not installed.
	var redisClient *redis.Client
	if cfg.RedisHost != "" {
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Warn("Failed to connect to redis, continuing without rate limiting: %v", err)
			redisClient = nil
		}
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		store:       store,
		redisClient: redisClient,
		jwtService:  jwtService,
	}, nil
}

// Router wires repositories, use cases and handlers onto a gin engine.
func (a *App) Router() *gin.Engine {
	userRepo := persistent.NewUserRepository(a.db)
	postRepo := persistent.NewPostRepository(a.db)
	likeRepo := persistent.NewLikeRepository(a.db)

	authUseCase := usecase.NewAuthUseCase(userRepo, a.jwtService, a.log)
	postUseCase := usecase.NewPostUseCase(postRepo, userRepo, a.store, a.log)
	interactionUseCase := usecase.NewInteractionUseCase(likeRepo, postRepo, a.log)

	authHandler := appHTTP.NewAuthHandler(authUseCase, a.log)
	feedHandler := appHTTP.NewFeedHandler(postUseCase, authUseCase, interactionUseCase, a.log)
	postHandler := appHTTP.NewPostHandler(postUseCase, a.log)
	interactionHandler := appHTTP.NewInteractionHandler(interactionUseCase, a.log)

	r := gin.Default()
	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public pages and auth forms
	r.GET("/", feedHandler.Home)
	r.GET("/login", authHandler.LoginPage)
	r.GET("/register", authHandler.RegisterPage)

	login := []gin.HandlerFunc{authHandler.Login}
	register := []gin.HandlerFunc{authHandler.Register}
	if a.redisClient != nil {
		limiter := middleware.RateLimitMiddleware(a.redisClient, 10, time.Minute)
		login = append([]gin.HandlerFunc{limiter}, login...)
		register = append([]gin.HandlerFunc{limiter}, register...)
	}
	r.POST("/", login...)
	r.POST("/register", register...)

	r.GET("/logout", authHandler.Logout)
	r.POST("/logout", authHandler.Logout)

	// Authenticated actions
	authRequired := middleware.AuthMiddleware(a.jwtService)
	r.POST("/post", authRequired, postHandler.CreatePost)
	r.GET("/delete/:postId", authRequired, postHandler.DeletePost)
	r.GET("/like/post/:userId/:postId", authRequired, interactionHandler.ToggleLike)

	// Registered last: matches any single remaining path segment
	r.GET("/:username", feedHandler.Profile)

	return r
}

func (a *App) Run() error {
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: a.Router(),
	}

	go func() {
		a.log.Info("minigram starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing redis: %v", err)
		}
	}

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			return err
		}
	}

	a.log.Info("Server exited")
	return nil
}
