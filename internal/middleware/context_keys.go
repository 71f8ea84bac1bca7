package middleware

import "github.com/gin-gonic/gin"

// actingUserHeader names the header carrying the acting user's opaque ID.
// It is set by the authentication layer in front of this service; the
// ledger core only attributes records to it.
const actingUserHeader = "X-Acting-User"

// userIDKey is the key used to store the acting user's ID in the Gin context.
const userIDKey = contextKey("userID")

// ActingUserMiddleware copies the acting-user header into the Gin context.
func ActingUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader(actingUserHeader); userID != "" {
			c.Set(string(userIDKey), userID)
		}
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
