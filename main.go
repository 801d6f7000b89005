package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/morsechimwai/blog-api/config"
	"github.com/morsechimwai/blog-api/controllers"
	"github.com/morsechimwai/blog-api/db"
	"github.com/morsechimwai/blog-api/forms"
	"github.com/morsechimwai/blog-api/kv"
	"github.com/morsechimwai/blog-api/middleware"
	"github.com/morsechimwai/blog-api/models"
	"github.com/morsechimwai/blog-api/response"
	"github.com/morsechimwai/blog-api/service"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/requestid"
	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// CORS (Cross-Origin Resource Sharing)
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Origin, Authorization, Accept, Accept-Encoding")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
		} else {
			c.Next()
		}
	}
}

func SlogMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rlog := logger.With(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
			"request_id", requestid.Get(c),
		)

		start := time.Now()
		rlog.Debug("request started")
		c.Next()
		duration := time.Since(start)
		rlog.Info("request completed", "status", c.Writer.Status(), "duration", duration)
	}
}

func main() {
	// Load the .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			slog.Error("failed to load the env file")
			os.Exit(1)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var logger *slog.Logger
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	counter, err := kv.NewRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		logger.Error("failed to connect to key-value store", "error", err)
		os.Exit(1)
	}

	// Start the default gin server
	r := gin.New()
	r.Use(gin.Recovery())

	// Custom form validator
	binding.Validator = new(forms.DefaultValidator)

	r.Use(CORSMiddleware())
	r.Use(requestid.New(requestid.WithCustomHeaderStrKey("X-Request-Id")))
	r.Use(SlogMiddleware(logger))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RateLimit(counter, cfg.RateLimit, cfg.RateWindow, logger))

	codec := service.NewTokenCodec(cfg)
	authService := service.NewAuthService(store, store, codec, cfg, logger)

	authed := middleware.Authenticate(codec)
	anyRole := middleware.Authorize(store, logger, models.RoleAdmin, models.RoleUser)
	adminOnly := middleware.Authorize(store, logger, models.RoleAdmin)

	health := controllers.NewHealthController(cfg.DocsURL)
	r.GET("/health", health.Health)

	v1 := r.Group("/api/v1")
	v1.GET("/", health.Root)

	auth := controllers.NewAuthController(authService, cfg, logger)
	v1.POST("/auth/register", auth.Register)
	v1.POST("/auth/login", auth.Login)
	v1.POST("/auth/refresh-token", auth.Refresh)
	v1.POST("/auth/logout", authed, auth.Logout)

	user := controllers.NewUserController(store, store, cfg, logger)
	v1.GET("/users/current", authed, anyRole, user.Current)
	v1.PUT("/users/current", authed, anyRole, user.UpdateCurrent)
	v1.DELETE("/users/current", authed, anyRole, user.DeleteCurrent)
	v1.GET("/users", authed, adminOnly, user.List)
	v1.GET("/users/:userId", authed, adminOnly, user.Get)
	v1.DELETE("/users/:userId", authed, adminOnly, user.Delete)

	blog := controllers.NewBlogController(store, store, cfg, logger)
	v1.POST("/blogs", authed, adminOnly, blog.Create)
	v1.GET("/blogs", authed, anyRole, blog.List)
	v1.GET("/blogs/user/:userId", authed, anyRole, blog.ByUser)
	v1.GET("/blogs/:slug", authed, anyRole, blog.BySlug)
	v1.PUT("/blogs/:blogId", authed, anyRole, blog.Update)
	v1.DELETE("/blogs/:blogId", authed, anyRole, blog.Delete)

	comment := controllers.NewCommentController(store, store, store, logger)
	v1.POST("/comments/blog/:blogId", authed, anyRole, comment.Create)
	v1.GET("/comments/blog/:blogId", authed, anyRole, comment.ListByBlog)
	v1.DELETE("/comments/:commentId", authed, anyRole, comment.Delete)

	like := controllers.NewLikeController(store, store, logger)
	v1.POST("/likes/blog/:blogId", authed, anyRole, like.Like)
	v1.DELETE("/likes/blog/:blogId", authed, anyRole, like.Unlike)

	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, response.NotFound, response.CodeNotFound, "Route not found.")
	})

	logger.Info("server starting", "port", cfg.Port, "env", cfg.Env, "ssl", cfg.SSL)

	if cfg.SSL {
		err = r.RunTLS(":"+cfg.Port, cfg.CertFile, cfg.KeyFile)
	} else {
		err = r.Run(":" + cfg.Port)
	}
	if err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
