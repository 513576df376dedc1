package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"recipehub/database"
	"recipehub/internal/config"
	"recipehub/internal/http-api/cache"
	"recipehub/internal/http-api/handler"
	"recipehub/internal/http-api/middleware"
	"recipehub/internal/http-api/notify"
	"recipehub/internal/http-api/repository"
	"recipehub/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.OpenGorm(cfg, logger)
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}

	// Separate pgx pool for the health endpoint; the API itself goes through
	// GORM. Failure here is not fatal, /check-conn just reports it.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := database.Connect(ctx, cfg)
	cancel()
	if err != nil {
		logger.Warn("health-check pool unavailable", "error", err)
		pool = nil
	} else {
		defer pool.Close()
	}

	// Redis view counters are optional too; recipes still serve without them.
	views, err := cache.NewViewCounter(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Warn("redis unavailable, view counts disabled", "error", err)
		views = nil
	} else {
		defer views.Close()
	}

	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepo(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	followRepo := repository.NewFollowRepository(db)
	bookRepo := repository.NewRecipeBookRepository(db)
	listRepo := repository.NewShoppingListRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	registry, err := notify.NewDefaultRegistry(notify.TargetFinders{
		Reviews: reviewRepo,
		Recipes: recipeRepo,
		Users:   userRepo,
	})
	if err != nil {
		log.Fatalf("could not build notification registry: %v", err)
	}

	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	notificationService := service.NewNotificationService(notificationRepo, registry, logger)
	recipeService := service.NewRecipeService(recipeRepo, notificationService, views, logger)
	reviewService := service.NewReviewService(reviewRepo, recipeRepo, notificationService, logger)
	profileService := service.NewProfileService(userRepo, followRepo, recipeRepo, notificationService, logger)
	bookService := service.NewRecipeBookService(bookRepo, userRepo)
	listService := service.NewShoppingListService(listRepo)

	authHandler := handler.NewAuthHandler(authService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	profileHandler := handler.NewProfileHandler(profileService)
	bookHandler := handler.NewRecipeBookHandler(bookService)
	listHandler := handler.NewShoppingListHandler(listService)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(gin.Recovery())

	r.GET("/check-conn", checkConn(pool))

	authGroup := r.Group("/auth")
	authGroup.Use(limiter.Middleware())
	authHandler.RegisterRoutes(authGroup)

	requireAuth := middleware.RequireAuth(authService)

	recipes := r.Group("/recipes")
	{
		recipes.GET("", recipeHandler.List)
		recipes.GET("/search", recipeHandler.Search)
		recipes.GET("/:recipe_id", recipeHandler.Get)
		recipes.GET("/:recipe_id/reviews", reviewHandler.ListForRecipe)

		authed := recipes.Group("")
		authed.Use(requireAuth)
		authed.POST("", recipeHandler.Create)
		authed.PUT("/:recipe_id", recipeHandler.Update)
		authed.DELETE("/:recipe_id", recipeHandler.Delete)
		authed.POST("/:recipe_id/reviews", reviewHandler.CreateForRecipe)
	}

	reviews := r.Group("/reviews")
	reviews.Use(requireAuth)
	reviews.DELETE("/:review_id", reviewHandler.Delete)

	// The notification page is browser-facing: anonymous visitors get sent to
	// the login page. The count endpoint is polled by the frontend badge, so
	// it answers 403 instead and sits behind the rate limiter.
	notifications := r.Group("/notifications")
	{
		notifications.GET("", middleware.RequireAuthOrRedirect(authService), notificationHandler.List)
		notifications.GET("/count", limiter.Middleware(), requireAuth, notificationHandler.Count)
	}

	profiles := r.Group("/profiles")
	profilesAuthed := profiles.Group("")
	profilesAuthed.Use(requireAuth)
	profileHandler.RegisterRoutes(profiles, profilesAuthed)

	books := r.Group("/recipe-books")
	booksAuthed := books.Group("")
	booksAuthed.Use(requireAuth)
	bookHandler.RegisterRoutes(books, booksAuthed)

	lists := r.Group("/shopping-lists")
	lists.Use(requireAuth)
	listHandler.RegisterRoutes(lists)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("api server listening", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func checkConn(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pool == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
