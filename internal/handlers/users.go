package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"twentytwo/internal/logger"
	"twentytwo/internal/middleware"
	"twentytwo/internal/models"
	"twentytwo/internal/validation"
)

const bcryptCost = 12

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type profileUpdateRequest struct {
	Name        *string             `json:"name"`
	Phone       *string             `json:"phone"`
	Address     *string             `json:"address"`
	City        *string             `json:"city"`
	Preferences *models.Preferences `json:"preferences"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func issueUserToken(userID, email, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

/* =========================
   REGISTER / LOGIN / LOGOUT
========================= */

// Register creates a customer account. The pre-insert existence check
// gives a friendly 409; the unique index on email is the actual guard
// against concurrent duplicates.
func Register(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /users/register"
		defer handlePanic(c, route)

		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body")
			return
		}

		result := validation.ValidateUser(validation.UserPayload{
			Name:     &req.Name,
			Email:    &req.Email,
			Password: &req.Password,
		}, false)
		if !result.IsValid {
			respondValidationFailure(c, result.Errors)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		if count > 0 {
			respondError(c, http.StatusConflict, "User with this email already exists")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		now := time.Now()
		user := models.User{
			Name:           strings.TrimSpace(req.Name),
			Email:          email,
			HashedPassword: string(hash),
			Role:           "customer",
			IsActive:       true,
			Profile: models.Profile{
				Preferences: models.Preferences{Notifications: true},
			},
			CreatedAt: now,
			UpdatedAt: now,
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			// Two near-simultaneous registrations can both pass the
			// pre-check; the unique index turns the loser into a 409.
			respondProviderError(c, route, err)
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			user.ID = id
		}

		token, err := issueUserToken(user.ID.Hex(), email, jwtSecret, tokenTTL)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Token generation failed")
			return
		}

		logger.Info(c, "user registered", zap.String("email", email))

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User registered successfully",
			"data":    user,
			"token":   token,
		})
	}
}

// Login verifies credentials against the stored bcrypt hash, stamps
// lastLogin and issues a user token.
func Login(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /users/login"
		defer handlePanic(c, route)

		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Email and password are required")
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if err != nil {
			respondProviderError(c, route, err)
			return
		}

		if !user.IsActive {
			respondError(c, http.StatusForbidden, "Account is deactivated. Please contact support.")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
			logger.Warn(c, "login rejected", zap.String("email", email))
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		now := time.Now()
		_, err = db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set": bson.M{"lastLogin": now, "updatedAt": now},
		})
		if err != nil {
			respondProviderError(c, route, err)
			return
		}
		user.LastLogin = &now

		token, err := issueUserToken(user.ID.Hex(), user.Email, jwtSecret, tokenTTL)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Token generation failed")
			return
		}

		logger.Info(c, "user login succeeded", zap.String("email", email))

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful",
			"data":    user,
			"token":   token,
		})
	}
}

// Logout exists for client symmetry; tokens are stateless and simply
// expire.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Logout successful",
		})
	}
}

/* =========================
   PROFILE
========================= */

func GetProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/profile"
		defer handlePanic(c, route)

		principal, ok := middleware.CurrentPrincipal(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, "Access denied. User token required.")
			return
		}

		userID, err := primitive.ObjectIDFromHex(principal.ID)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid user token.")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err = db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			respondProviderError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
	}
}

// UpdateProfile applies a partial self-service update to name and the
// nested profile fields.
func UpdateProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /users/profile"
		defer handlePanic(c, route)

		principal, ok := middleware.CurrentPrincipal(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, "Access denied. User token required.")
			return
		}

		userID, err := primitive.ObjectIDFromHex(principal.ID)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid user token.")
			return
		}

		var req profileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body")
			return
		}

		result := validation.ValidateUser(validation.UserPayload{
			Name:  req.Name,
			Phone: req.Phone,
		}, true)
		if !result.IsValid {
			respondValidationFailure(c, result.Errors)
			return
		}

		set := bson.M{"updatedAt": time.Now()}
		if req.Name != nil {
			set["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Phone != nil {
			set["profile.phone"] = normalizePhone(strings.TrimSpace(*req.Phone))
		}
		if req.Address != nil {
			set["profile.address"] = strings.TrimSpace(*req.Address)
		}
		if req.City != nil {
			set["profile.city"] = strings.TrimSpace(*req.City)
		}
		if req.Preferences != nil {
			set["profile.preferences"] = *req.Preferences
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var user models.User
		err = db.Collection("users").FindOneAndUpdate(ctx,
			bson.M{"_id": userID},
			bson.M{"$set": set},
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

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Profile updated successfully",
			"data":    user,
		})
	}
}

// GetUserOrders lists the caller's orders by the email captured at
// checkout.
func GetUserOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/orders"
		defer handlePanic(c, route)

		principal, ok := middleware.CurrentPrincipal(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, "Access denied. User token required.")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, bson.M{"customerInfo.email": principal.Email}, opts)
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

		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
	}
}

// ChangePassword verifies the current password and stores a new hash.
func ChangePassword(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /users/change-password"
		defer handlePanic(c, route)

		principal, ok := middleware.CurrentPrincipal(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, "Access denied. User token required.")
			return
		}

		userID, err := primitive.ObjectIDFromHex(principal.ID)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid user token.")
			return
		}

		var req changePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Current password and new password are required")
			return
		}

		if len(req.NewPassword) < 6 {
			respondError(c, http.StatusBadRequest, "New password must be at least 6 characters long")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err = db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			respondProviderError(c, route, err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.CurrentPassword)); err != nil {
			respondError(c, http.StatusUnauthorized, "Current password is incorrect")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		_, err = db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{"hashedPassword": string(hash), "updatedAt": time.Now()},
		})
		if err != nil {
			respondProviderError(c, route, err)
			return
		}

		logger.Info(c, "password changed", zap.String("userId", principal.ID))

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Password changed successfully",
		})
	}
}
