package middleware

import (
	"strings"

	"beresin/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and stores the caller's id in
// the context. Token issuing and session management live outside this
// service; only identity extraction happens here.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			err := utils.NewAppError(utils.CodeUnauthenticated, "missing bearer token")
			c.AbortWithStatusJSON(err.HTTPStatus(), gin.H{"error": err})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		callerID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || callerID == "" {
			appErr := utils.NewAppError(utils.CodeUnauthenticated, "invalid token")
			c.AbortWithStatusJSON(appErr.HTTPStatus(), gin.H{"error": appErr})
			return
		}

		c.Set("userID", callerID)
		c.Next()
	}
}

// CallerID returns the authenticated caller's id, if any.
func CallerID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
