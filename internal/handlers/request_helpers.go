package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"twentytwo/internal/database"
	"twentytwo/internal/logger"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		logger.Error(c, "panic recovered", nil, zap.String("route", route), zap.Any("panic", r))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
	}
}

func ensureDBConnection(ctx context.Context, db *mongo.Database) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(checkCtx, readpref.Primary())
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

func respondValidationFailure(c *gin.Context, errs []string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// respondProviderError funnels a storage failure through the error
// mapping table; nothing handler-specific leaks to the caller.
func respondProviderError(c *gin.Context, route string, err error) {
	mapped := database.MapError(err)
	logger.Error(c, "provider error", err, zap.String("route", route), zap.String("code", mapped.Code))
	c.AbortWithStatusJSON(mapped.Status, gin.H{
		"success": false,
		"message": mapped.Message,
		"code":    mapped.Code,
	})
}
