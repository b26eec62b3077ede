package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	clientIDKey = contextKey("clientID")
	adminIDKey  = contextKey("adminID")
)

// GetClientIDFromContext retrieves the authenticated client id set by AuthMiddleware.
func GetClientIDFromContext(c *gin.Context) (int64, bool) {
	id, ok := c.Request.Context().Value(clientIDKey).(int64)
	return id, ok
}

// GetAdminIDFromContext retrieves the administrator id set by AdminKeyAuth.
func GetAdminIDFromContext(c *gin.Context) (string, bool) {
	id, ok := c.Request.Context().Value(adminIDKey).(string)
	return id, ok && id != ""
}

func withValue(c *gin.Context, key contextKey, value any) {
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), key, value))
}
