package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// EventSink receives product analytics events. *utils.PosthogClientWrapper implements it.
type EventSink interface {
	IsInitialized() bool
	Enqueue(distinctID string, event string, properties map[string]any)
}

// pathsToSkip contains paths that should not be tracked
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware reports every successful authenticated request as an event named after its route,
// e.g. POST /api/v1/accounts/:id/deposit becomes "post_api_v1_accounts_:id_deposit".
// Clients are identified as "client:<id>" and administrators as "admin:<id>".
func PosthogMiddleware(sink EventSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sink == nil || !sink.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		distinctID, ok := actorID(c)
		if !ok {
			return
		}
		route := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if route == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}
		sink.Enqueue(distinctID, strings.ToLower(c.Request.Method)+"_"+route, props)
	}
}

func actorID(c *gin.Context) (string, bool) {
	if adminID, ok := GetAdminIDFromContext(c); ok {
		return "admin:" + adminID, true
	}
	if clientID, ok := GetClientIDFromContext(c); ok {
		return "client:" + strconv.FormatInt(clientID, 10), true
	}
	return "", false
}
