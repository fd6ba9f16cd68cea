package middleware

import (
	"net/http"
	"strings"

	"hotel-reservation/models"
	"hotel-reservation/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const actorKey = "actor"

func resolveActor(c *gin.Context, db *gorm.DB, jwt *utils.JWTService) (*models.User, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}

	tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if tokenStr == "" {
		return nil, false
	}

	claims, err := jwt.ValidateToken(tokenStr)
	if err != nil {
		return nil, false
	}

	var user models.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// RequireAuth rejects requests without a valid bearer token and stores the
// resolved account for the handler. Handlers pass the actor into services
// explicitly; nothing below the middleware reads it from ambient state.
func RequireAuth(db *gorm.DB, jwt *utils.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveActor(c, db, jwt)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Missing or invalid authorization token.",
			})
			return
		}
		c.Set(actorKey, user)
		c.Next()
	}
}

// OptionalAuth resolves the actor when a valid token is present but lets
// anonymous requests through. Used by the public dashboard.
func OptionalAuth(db *gorm.DB, jwt *utils.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := resolveActor(c, db, jwt); ok {
			c.Set(actorKey, user)
		}
		c.Next()
	}
}

// Actor returns the authenticated account stored by RequireAuth/OptionalAuth.
func Actor(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(actorKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
