package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"twentytwo/internal/logger"
	"twentytwo/internal/models"
)

// PrincipalKey is the gin context key the auth middleware stores the
// authenticated identity under.
const PrincipalKey = "principal"

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	LoginTime time.Time `json:"loginTime"`
}

var errInvalidToken = errors.New("invalid token")

func bearerToken(header string) (string, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return "", errors.New("missing token")
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid token format")
	}
	return parts[1], nil
}

func parseClaims(raw, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidToken
	}
	return claims, nil
}

func issuedAt(claims jwt.MapClaims) time.Time {
	if iat, ok := claims["iat"].(float64); ok {
		return time.Unix(int64(iat), 0)
	}
	return time.Time{}
}

// AdminAuth verifies the admin token: signature, expiry, role and a
// username match against the configured admin identity.
func AdminAuth(secret, adminUsername string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied. Admin token required."})
			return
		}

		claims, err := parseClaims(raw, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired admin token."})
			return
		}

		role, _ := claims["role"].(string)
		username, _ := claims["sub"].(string)
		if role != "admin" || username != adminUsername {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid admin token."})
			return
		}

		c.Set(PrincipalKey, Principal{
			ID:        username,
			Name:      username,
			Role:      "admin",
			LoginTime: issuedAt(claims),
		})
		c.Next()
	}
}

// UserAuth verifies the user token and confirms the account still
// exists, is active and matches the embedded email before attaching
// the principal.
func UserAuth(db *mongo.Database, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, status, message := resolveUserPrincipal(c, db, secret)
		if principal == nil {
			c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
			return
		}

		c.Set(PrincipalKey, *principal)
		c.Next()
	}
}

// OptionalAuth runs the user-token flow but never rejects: on any
// failure the request proceeds without a principal.
func OptionalAuth(db *mongo.Database, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal, _, _ := resolveUserPrincipal(c, db, secret); principal != nil {
			c.Set(PrincipalKey, *principal)
		}
		c.Next()
	}
}

func resolveUserPrincipal(c *gin.Context, db *mongo.Database, secret string) (*Principal, int, string) {
	raw, err := bearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return nil, http.StatusUnauthorized, "Access denied. User token required."
	}

	claims, err := parseClaims(raw, secret)
	if err != nil {
		return nil, http.StatusUnauthorized, "Invalid or expired user token."
	}

	userIDValue, _ := claims["userId"].(string)
	email, _ := claims["email"].(string)
	if strings.TrimSpace(userIDValue) == "" || strings.TrimSpace(email) == "" {
		return nil, http.StatusUnauthorized, "Invalid user token."
	}

	userID, err := primitive.ObjectIDFromHex(userIDValue)
	if err != nil {
		return nil, http.StatusUnauthorized, "Invalid user token."
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		logger.Warn(c, "user token lookup failed")
		return nil, http.StatusUnauthorized, "User not found."
	}

	if !user.IsActive {
		return nil, http.StatusForbidden, "Account is deactivated."
	}

	if user.Email != email {
		return nil, http.StatusUnauthorized, "Invalid user token."
	}

	return &Principal{
		ID:        userIDValue,
		Email:     email,
		Name:      user.Name,
		Role:      user.Role,
		LoginTime: issuedAt(claims),
	}, 0, ""
}

// CurrentPrincipal returns the principal attached by the auth
// middleware, if any.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return Principal{}, false
	}
	principal, ok := value.(Principal)
	return principal, ok
}
