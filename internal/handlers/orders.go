package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"twentytwo/internal/logger"
	"twentytwo/internal/middleware"
	"twentytwo/internal/models"
	"twentytwo/internal/validation"
)

/* =========================
   CREATE ORDER (checkout pipeline)
========================= */

// CreateOrder runs the checkout pipeline: validate, re-price each line
// item against the live product record, compute totals, persist. Each
// step is a hard gate; nothing is written on failure. There is no
// transaction around the read-price-then-write sequence: a product
// edit racing a checkout can price the order against the version read
// first, which is accepted behavior.
func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable")
			return
		}

		var req validation.OrderPayload
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body")
			return
		}

		if result := validation.ValidateOrder(req); !result.IsValid {
			respondValidationFailure(c, result.Errors)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(item.ProductID))
			if err != nil {
				respondError(c, http.StatusBadRequest, fmt.Sprintf("Product not found: %s", item.ProductID))
				return
			}

			var product models.Product
			err = db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
			if err == mongo.ErrNoDocuments {
				respondError(c, http.StatusBadRequest, fmt.Sprintf("Product not found: %s", item.ProductID))
				return
			}
			if err != nil {
				respondProviderError(c, route, err)
				return
			}

			items = append(items, buildOrderItem(item, product))
		}

		now := time.Now()
		order := models.Order{
			OrderID: generateOrderID(),
			CustomerInfo: models.CustomerInfo{
				Name:    strings.TrimSpace(req.CustomerInfo.Name),
				Phone:   normalizePhone(req.CustomerInfo.Phone),
				Address: strings.TrimSpace(req.CustomerInfo.Address),
				City:    strings.TrimSpace(req.CustomerInfo.City),
				Email:   strings.ToLower(strings.TrimSpace(req.CustomerInfo.Email)),
				Notes:   strings.TrimSpace(req.CustomerInfo.Notes),
			},
			Items:             items,
			Pricing:           buildPricing(items),
			Status:            "pending",
			StatusHistory:     []models.StatusChange{},
			PaymentMethod:     models.PaymentCashOnDelivery,
			EstimatedDelivery: calculateDeliveryDate(now),
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		// A logged-in customer owns the order through the email match
		// used by GET /users/orders.
		if principal, ok := middleware.CurrentPrincipal(c); ok && order.CustomerInfo.Email == "" {
			order.CustomerInfo.Email = principal.Email
		}

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}

		logger.Info(c, "order created",
			zap.String("orderId", order.OrderID),
			zap.Float64("total", order.Pricing.Total),
		)

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Order created successfully",
			"data":    order,
		})
	}
}

/* =========================
   LIST / FETCH
========================= */

var orderSortFields = map[string]string{
	"createdAt": "createdAt",
	"updatedAt": "updatedAt",
	"total":     "pricing.total",
	"status":    "status",
}

// GetOrders is the admin listing with status filter, whitelisted sort
// and clamped pagination.
func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		page, pageSize := parseListParams(c.Query("page"), c.Query("pageSize"))

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" && status != "all" {
			filter["status"] = status
		}

		sortField, direction := resolveSort(c.Query("sortBy"), orderSortFields, "createdAt", c.Query("order"))

		opts := options.Find().
			SetSort(bson.D{{Key: sortField, Value: direction}}).
			SetSkip((page - 1) * pageSize).
			SetLimit(pageSize)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, filter, opts)
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondProviderError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"data":       orders,
			"pagination": paginationMeta(page, pageSize, len(orders)),
		})
	}
}

// GetOrder fetches a single order by document ID.
func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Order ID is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		if err != nil {
			respondProviderError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}

// LookupOrder fetches an order by its human-facing reference, the
// customer-side tracking flow.
func LookupOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/lookup/:orderId"
		defer handlePanic(c, route)

		orderRef := strings.TrimSpace(c.Param("orderId"))
		if orderRef == "" {
			respondError(c, http.StatusBadRequest, "Order ID is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, bson.M{"orderId": orderRef}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		if err != nil {
			respondProviderError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}

/* =========================
   STATUS UPDATE
========================= */

type orderStatusRequest struct {
	Status string `json:"status" binding:"required,orderstatus"`
	Notes  string `json:"notes"`
}

// UpdateOrderStatus sets the order status and appends to the
// append-only history. Any status may follow any other.
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /orders/:id/status"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Order ID is required")
			return
		}

		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || !models.IsValidOrderStatus(req.Status) {
			respondError(c, http.StatusBadRequest,
				"Invalid status. Valid statuses: "+strings.Join(models.OrderStatuses, ", "))
			return
		}

		updatedBy := "admin"
		if principal, ok := middleware.CurrentPrincipal(c); ok {
			updatedBy = principal.ID
		}

		now := time.Now()
		change := models.StatusChange{
			Status:    req.Status,
			Timestamp: now,
			UpdatedBy: updatedBy,
			Notes:     strings.TrimSpace(req.Notes),
		}

		set := bson.M{
			"status":    req.Status,
			"updatedAt": now,
			"updatedBy": updatedBy,
		}
		if change.Notes != "" {
			set["adminNotes"] = change.Notes
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var order models.Order
		err = db.Collection("orders").FindOneAndUpdate(ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": set, "$push": bson.M{"statusHistory": change}},
			opts,
		).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		if err != nil {
			respondProviderError(c, route, err)
			return
		}

		logger.Info(c, "order status updated",
			zap.String("orderId", order.OrderID),
			zap.String("status", req.Status),
		)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order status updated successfully",
			"data":    order,
		})
	}
}

/* =========================
   STATS
========================= */

// GetOrderStats aggregates per-status counts and revenue over
// delivered orders.
func GetOrderStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/stats/overview"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, bson.M{})
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		counts := map[string]int{}
		for _, status := range models.OrderStatuses {
			counts[status] = 0
		}

		total := 0
		totalRevenue := 0.0
		delivered := 0

		for cursor.Next(ctx) {
			var order models.Order
			if err := cursor.Decode(&order); err != nil {
				respondProviderError(c, route, err)
				return
			}

			total++
			counts[order.Status]++
			if order.Status == "delivered" {
				totalRevenue += order.Pricing.Total
				delivered++
			}
		}
		if err := cursor.Err(); err != nil {
			respondProviderError(c, route, err)
			return
		}

		averageOrderValue := 0.0
		if delivered > 0 {
			averageOrderValue = totalRevenue / float64(delivered)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"total":             total,
				"pending":           counts["pending"],
				"confirmed":         counts["confirmed"],
				"processing":        counts["processing"],
				"shipped":           counts["shipped"],
				"delivered":         counts["delivered"],
				"cancelled":         counts["cancelled"],
				"totalRevenue":      totalRevenue,
				"averageOrderValue": averageOrderValue,
			},
		})
	}
}
