package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"twentytwo/internal/config"
	"twentytwo/internal/database"
	"twentytwo/internal/handlers"
	"twentytwo/internal/logger"
	"twentytwo/internal/middleware"
)

func main() {
	config.Load()
	logger.Initialize(config.AppEnv.Environment)
	defer logger.Log.Sync()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		logger.Log.Fatal("mongodb connection failed", zap.Error(err))
	}

	db := client.Database(config.AppEnv.DBName)
	logger.Log.Info("mongodb connected", zap.String("database", db.Name()))

	// Index creation is retried: a replica set electing a primary at
	// startup makes the first attempts fail transiently.
	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.WithRetry(indexCtx, func() error {
		if err := database.EnsureProductIndexes(db); err != nil {
			return err
		}
		if err := database.EnsureOrderIndexes(db); err != nil {
			return err
		}
		return database.EnsureUserIndexes(db)
	}); err != nil {
		logger.Log.Warn("index bootstrap failed", zap.Error(err))
	}

	if config.AppEnv.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	limiter := middleware.NewRateLimiter(config.AppEnv.RateLimitWindow, config.AppEnv.RateLimitRequests)
	r.Use(limiter.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	})

	jwtSecret := config.AppEnv.JWTSecret
	adminAuth := middleware.AdminAuth(jwtSecret, config.AppEnv.AdminUsername)

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/categories/list", handlers.GetCategoryList(db))
	r.GET("/products/:id", handlers.GetProduct(db))
	r.POST("/products", adminAuth, handlers.CreateProduct(db))
	r.PUT("/products/:id", adminAuth, handlers.UpdateProduct(db))
	r.DELETE("/products/:id", adminAuth, handlers.DeleteProduct(db))

	r.POST("/orders", middleware.OptionalAuth(db, jwtSecret), handlers.CreateOrder(db))
	r.GET("/orders/:id", handlers.GetOrder(db))
	r.GET("/orders/lookup/:orderId", handlers.LookupOrder(db))
	r.GET("/orders", adminAuth, handlers.GetOrders(db))
	r.GET("/orders/stats/overview", adminAuth, handlers.GetOrderStats(db))
	r.PATCH("/orders/:id/status", adminAuth, handlers.UpdateOrderStatus(db))

	r.POST("/users/register", handlers.Register(db, jwtSecret, config.AppEnv.UserTokenTTL))
	r.POST("/users/login", handlers.Login(db, jwtSecret, config.AppEnv.UserTokenTTL))
	r.POST("/users/logout", handlers.Logout())

	user := r.Group("/users")
	user.Use(middleware.UserAuth(db, jwtSecret))
	{
		user.GET("/profile", handlers.GetProfile(db))
		user.PUT("/profile", handlers.UpdateProfile(db))
		user.GET("/orders", handlers.GetUserOrders(db))
		user.POST("/change-password", handlers.ChangePassword(db))
	}

	r.POST("/admin/login", handlers.AdminLogin(&config.AppEnv))

	admin := r.Group("/admin")
	admin.Use(adminAuth)
	{
		admin.GET("/dashboard/stats", handlers.DashboardStats(db))
		admin.GET("/users", handlers.GetUsers(db))
		admin.PATCH("/users/:id/status", handlers.UpdateUserStatus(db))
		admin.GET("/activities", handlers.GetActivities(db))
		admin.GET("/export/:type", handlers.ExportData(db))
		admin.GET("/system/health", handlers.SystemHealth(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Log.Info("server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Log.Fatal("server exited", zap.Error(err))
	}
}
