package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKeyRoomSlug is the key for the unlocked room slug in gin context
const ContextKeyRoomSlug = "room_slug"

// OptionalRoomToken validates a bearer unlock token when one is
// present and records the unlocked slug in the request context.
// Requests without an Authorization header pass through untouched;
// handlers fall back to password checks for those.
func OptionalRoomToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// Expect "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := ValidateRoomToken(parts[1])
		if err != nil {
			if err == ErrExpiredToken {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyRoomSlug, claims.RoomSlug)
		c.Next()
	}
}

// UnlockedRoom returns the room slug proven by an unlock token, if any
func UnlockedRoom(c *gin.Context) (string, bool) {
	slug, exists := c.Get(ContextKeyRoomSlug)
	if !exists {
		return "", false
	}
	s, ok := slug.(string)
	return s, ok
}
