package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"twentytwo/internal/config"
	"twentytwo/internal/logger"
	"twentytwo/internal/models"
)

var processStart = time.Now()

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

var userSortFields = map[string]string{
	"createdAt": "createdAt",
	"updatedAt": "updatedAt",
	"name":      "name",
	"email":     "email",
}

func issueAdminToken(username, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	return signed, now, err
}

// AdminLogin checks the static credentials from the environment and
// issues a short-lived admin token.
func AdminLogin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/login"
		defer handlePanic(c, route)

		var req adminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Username and password are required")
			return
		}

		if req.Username != cfg.AdminUsername || req.Password != cfg.AdminPassword {
			logger.Warn(c, "admin login rejected", zap.String("username", req.Username))
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, issuedAt, err := issueAdminToken(cfg.AdminUsername, cfg.JWTSecret, cfg.AdminTokenTTL)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Token generation failed")
			return
		}

		logger.Info(c, "admin login succeeded", zap.String("username", cfg.AdminUsername))

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful",
			"token":   token,
			"data": gin.H{
				"username":  cfg.AdminUsername,
				"role":      "admin",
				"loginTime": issuedAt.UTC().Format(time.RFC3339),
			},
		})
	}
}

/* =========================
   DASHBOARD
========================= */

// DashboardStats aggregates catalog, order and customer counters for
// the admin dashboard in one response.
func DashboardStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/dashboard/stats"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		products := db.Collection("products")
		orders := db.Collection("orders")
		users := db.Collection("users")

		totalProducts, err := products.CountDocuments(ctx, bson.M{})
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		activeProducts, err := products.CountDocuments(ctx, bson.M{"isActive": true})
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		soldOutProducts, err := products.CountDocuments(ctx, bson.M{"soldOut": true})
		if err != nil {
			respondProviderError(c, route, err)
			return
		}

		categories, err := products.Distinct(ctx, "category", bson.M{})
		if err != nil {
			respondProviderError(c, route, err)
			return
		}

		cursor, err := orders.Find(ctx, bson.M{})
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		statusCounts := make(map[string]int64)
		var totalOrders int64
		var totalRevenue float64
		var deliveredCount int64
		for cursor.Next(ctx) {
			var order models.Order
			if err := cursor.Decode(&order); err != nil {
				continue
			}
			totalOrders++
			statusCounts[order.Status]++
			if order.Status == "delivered" {
				totalRevenue += order.Pricing.Total
				deliveredCount++
			}
		}
		if err := cursor.Err(); err != nil {
			respondProviderError(c, route, err)
			return
		}

		averageOrderValue := 0.0
		if deliveredCount > 0 {
			averageOrderValue = totalRevenue / float64(deliveredCount)
		}

		totalUsers, err := users.CountDocuments(ctx, bson.M{})
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		activeUsers, err := users.CountDocuments(ctx, bson.M{"isActive": true})
		if err != nil {
			respondProviderError(c, route, err)
			return
		}

		monthStart := time.Now().AddDate(0, -1, 0)
		newThisMonth, err := users.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": monthStart}})
		if err != nil {
			respondProviderError(c, route, err)
			return
		}

		conversionRate := 0.0
		if totalUsers > 0 {
			conversionRate = float64(totalOrders) / float64(totalUsers) * 100
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"products": gin.H{
					"total":      totalProducts,
					"active":     activeProducts,
					"soldOut":    soldOutProducts,
					"categories": categories,
				},
				"orders": gin.H{
					"total":             totalOrders,
					"byStatus":          statusCounts,
					"totalRevenue":      totalRevenue,
					"averageOrderValue": averageOrderValue,
				},
				"users": gin.H{
					"total":        totalUsers,
					"active":       activeUsers,
					"newThisMonth": newThisMonth,
				},
				"conversionRate": conversionRate,
			},
		})
	}
}

/* =========================
   USER MANAGEMENT
========================= */

// GetUsers lists customer accounts with pagination and an
// active/inactive filter. Password hashes never serialize.
func GetUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/users"
		defer handlePanic(c, route)

		page, pageSize := parseListParams(c.Query("page"), c.Query("pageSize"))
		sortField, sortDir := resolveSort(c.Query("sortBy"), userSortFields, "createdAt", c.Query("order"))

		filter := bson.M{}
		switch c.Query("status") {
		case "", "all":
		case "active":
			filter["isActive"] = true
		case "inactive":
			filter["isActive"] = false
		default:
			respondError(c, http.StatusBadRequest, "Status must be one of: all, active, inactive")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().
			SetSkip((page - 1) * pageSize).
			SetLimit(pageSize).
			SetSort(bson.D{{Key: sortField, Value: sortDir}})

		cursor, err := db.Collection("users").Find(ctx, filter, opts)
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		users := make([]models.User, 0)
		if err := cursor.All(ctx, &users); err != nil {
			respondProviderError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"data":       users,
			"pagination": paginationMeta(page, pageSize, len(users)),
		})
	}
}

// UpdateUserStatus activates or deactivates an account. The pointer
// binding rejects bodies that omit isActive instead of defaulting it
// to false.
func UpdateUserStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/users/:id/status"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid user ID")
			return
		}

		var req userStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "isActive is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var user models.User
		err = db.Collection("users").FindOneAndUpdate(ctx,
			bson.M{"_id": userID},
			bson.M{"$set": bson.M{
				"isActive":  *req.IsActive,
				"updatedAt": time.Now(),
				"updatedBy": "admin",
			}},
			opts,
		).Decode(&user)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			respondProviderError(c, route, err)
			return
		}

		action := "deactivated"
		if *req.IsActive {
			action = "activated"
		}
		logger.Info(c, "user status changed",
			zap.String("userId", userID.Hex()),
			zap.Bool("isActive", *req.IsActive))

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": fmt.Sprintf("User %s successfully", action),
			"data":    user,
		})
	}
}

/* =========================
   ACTIVITY FEED / EXPORT / HEALTH
========================= */

type activityEntry struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// GetActivities merges the most recent orders and registrations into a
// single feed sorted newest first.
func GetActivities(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/activities"
		defer handlePanic(c, route)

		limit := int64(20)
		if raw := c.Query("limit"); raw != "" {
			if parsed, err := parsePositiveInt(raw); err == nil {
				limit = parsed
			}
		}
		if limit > 100 {
			limit = 100
		}
		perSource := limit / 2
		if perSource < 1 {
			perSource = 1
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		activities := make([]activityEntry, 0, limit)

		orderOpts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(perSource)
		orderCursor, err := db.Collection("orders").Find(ctx, bson.M{}, orderOpts)
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		var recentOrders []models.Order
		if err := orderCursor.All(ctx, &recentOrders); err != nil {
			respondProviderError(c, route, err)
			return
		}
		for _, order := range recentOrders {
			activities = append(activities, activityEntry{
				Type:        "order",
				Description: fmt.Sprintf("New order %s from %s ($%.2f)", order.OrderID, order.CustomerInfo.Name, order.Pricing.Total),
				Timestamp:   order.CreatedAt,
			})
		}

		userOpts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(perSource)
		userCursor, err := db.Collection("users").Find(ctx, bson.M{}, userOpts)
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		var recentUsers []models.User
		if err := userCursor.All(ctx, &recentUsers); err != nil {
			respondProviderError(c, route, err)
			return
		}
		for _, user := range recentUsers {
			activities = append(activities, activityEntry{
				Type:        "registration",
				Description: fmt.Sprintf("New user registered: %s", user.Email),
				Timestamp:   user.CreatedAt,
			})
		}

		sort.Slice(activities, func(i, j int) bool {
			return activities[i].Timestamp.After(activities[j].Timestamp)
		})
		if int64(len(activities)) > limit {
			activities = activities[:limit]
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": activities})
	}
}

var exportCollections = map[string]string{
	"products": "products",
	"orders":   "orders",
	"users":    "users",
}

// ExportData dumps a whole collection as a downloadable JSON document.
func ExportData(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/export/:type"
		defer handlePanic(c, route)

		exportType := c.Param("type")
		collection, ok := exportCollections[exportType]
		if !ok {
			respondError(c, http.StatusBadRequest, "Export type must be one of: products, orders, users")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		cursor, err := db.Collection(collection).Find(ctx, bson.M{})
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		var records []interface{}
		switch exportType {
		case "products":
			var docs []models.Product
			if err := cursor.All(ctx, &docs); err != nil {
				respondProviderError(c, route, err)
				return
			}
			for _, d := range docs {
				records = append(records, d)
			}
		case "orders":
			var docs []models.Order
			if err := cursor.All(ctx, &docs); err != nil {
				respondProviderError(c, route, err)
				return
			}
			for _, d := range docs {
				records = append(records, d)
			}
		case "users":
			var docs []models.User
			if err := cursor.All(ctx, &docs); err != nil {
				respondProviderError(c, route, err)
				return
			}
			for _, d := range docs {
				records = append(records, d)
			}
		}
		if records == nil {
			records = make([]interface{}, 0)
		}

		now := time.Now().UTC()
		filename := fmt.Sprintf("%s_export_%s.json", exportType, now.Format("2006-01-02"))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		logger.Info(c, "data export",
			zap.String("type", exportType),
			zap.Int("records", len(records)))

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"exportType":   exportType,
			"exportDate":   now.Format(time.RFC3339),
			"totalRecords": len(records),
			"data":         records,
		})
	}
}

// SystemHealth reports process uptime and probes the database with a
// single cheap read.
func SystemHealth(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/system/health"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "healthy"
		dbStatus := "connected"

		var probe models.Product
		err := db.Collection("products").FindOne(ctx, bson.M{}).Decode(&probe)
		if err != nil && err != mongo.ErrNoDocuments {
			status = "degraded"
			dbStatus = "unavailable"
			logger.Error(c, "health probe failed", err)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status":    status,
				"database":  dbStatus,
				"uptime":    time.Since(processStart).Round(time.Second).String(),
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			},
		})
	}
}
