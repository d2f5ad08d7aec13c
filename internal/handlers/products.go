package handlers

import (
	"context"
	"net/http"
	"sort"
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

var productSortFields = map[string]string{
	"name":      "name",
	"price":     "price",
	"createdAt": "createdAt",
}

/* =========================
   PUBLIC CATALOG
========================= */

// GetProducts lists the catalog with category filter, prefix search,
// whitelisted sort and clamped pagination.
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable")
			return
		}

		page, pageSize := parseListParams(c.Query("page"), c.Query("pageSize"))

		filter := bson.M{}
		if category := strings.TrimSpace(c.Query("category")); category != "" && category != "all" {
			filter["category"] = category
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["name"] = searchPrefixFilter(search)
		}

		order := c.DefaultQuery("order", "asc")
		sortField, direction := resolveSort(c.Query("sortBy"), productSortFields, "name", order)

		opts := options.Find().
			SetSort(bson.D{{Key: sortField, Value: direction}}).
			SetSkip((page - 1) * pageSize).
			SetLimit(pageSize)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondProviderError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"data":       products,
			"pagination": paginationMeta(page, pageSize, len(products)),
		})
	}
}

// GetProduct fetches a single product by ID.
func GetProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:id"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Product ID is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		if err != nil {
			respondProviderError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	}
}

// GetCategoryList returns the distinct category values currently in
// use, sorted.
func GetCategoryList(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/categories/list"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		values, err := db.Collection("products").Distinct(ctx, "category", bson.M{})
		if err != nil {
			respondProviderError(c, route, err)
			return
		}

		categories := make([]string, 0, len(values))
		for _, value := range values {
			if category, ok := value.(string); ok && category != "" {
				categories = append(categories, category)
			}
		}
		sort.Strings(categories)

		c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
	}
}

/* =========================
   ADMIN CRUD
========================= */

// CreateProduct validates the full payload and inserts the product
// with audit fields and a generated SKU.
func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /products"
		defer handlePanic(c, route)

		var req validation.ProductPayload
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body")
			return
		}

		if result := validation.ValidateProduct(req, false); !result.IsValid {
			respondValidationFailure(c, result.Errors)
			return
		}

		createdBy := "admin"
		if principal, ok := middleware.CurrentPrincipal(c); ok {
			createdBy = principal.ID
		}

		now := time.Now()
		product := models.Product{
			Name:      strings.TrimSpace(*req.Name),
			Price:     *req.Price,
			Category:  *req.Category,
			Image:     strings.TrimSpace(*req.Image),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: createdBy,
		}
		if req.Images != nil {
			product.Images = *req.Images
		}
		if req.Colors != nil {
			product.Colors = *req.Colors
		}
		if req.Sizes != nil {
			product.Sizes = *req.Sizes
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.IsActive != nil {
			product.IsActive = *req.IsActive
		}
		if req.SoldOut != nil {
			product.SoldOut = *req.SoldOut
		}
		product.SKU = generateSKU(product.Category, product.Name)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			product.ID = id
		}

		logger.Info(c, "product created", zap.String("name", product.Name), zap.String("sku", product.SKU))

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Product created successfully",
			"data":    product,
		})
	}
}

// UpdateProduct applies a partial update; every present field is
// re-validated independently.
func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /products/:id"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Product ID is required")
			return
		}

		var req validation.ProductPayload
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body")
			return
		}

		if result := validation.ValidateProduct(req, true); !result.IsValid {
			respondValidationFailure(c, result.Errors)
			return
		}

		updatedBy := "admin"
		if principal, ok := middleware.CurrentPrincipal(c); ok {
			updatedBy = principal.ID
		}

		set := bson.M{
			"updatedAt": time.Now(),
			"updatedBy": updatedBy,
		}
		if req.Name != nil {
			set["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Price != nil {
			set["price"] = *req.Price
		}
		if req.Category != nil {
			set["category"] = *req.Category
		}
		if req.Image != nil {
			set["image"] = strings.TrimSpace(*req.Image)
		}
		if req.Images != nil {
			set["images"] = *req.Images
		}
		if req.Colors != nil {
			set["colors"] = *req.Colors
		}
		if req.Sizes != nil {
			set["sizes"] = *req.Sizes
		}
		if req.Description != nil {
			set["description"] = *req.Description
		}
		if req.IsActive != nil {
			set["isActive"] = *req.IsActive
		}
		if req.SoldOut != nil {
			set["soldOut"] = *req.SoldOut
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var product models.Product
		err = db.Collection("products").FindOneAndUpdate(ctx,
			bson.M{"_id": productID},
			bson.M{"$set": set},
			opts,
		).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		if err != nil {
			respondProviderError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product updated successfully",
			"data":    product,
		})
	}
}

// DeleteProduct removes the document permanently; the catalog keeps
// no tombstones.
func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /products/:id"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Product ID is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": productID})
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		if result.DeletedCount == 0 {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}

		logger.Info(c, "product deleted", zap.String("productId", productID.Hex()))

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product deleted successfully",
		})
	}
}
