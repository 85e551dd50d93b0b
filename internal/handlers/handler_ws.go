package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pontocerto/ponto_backend/internal/middleware"
	"github.com/pontocerto/ponto_backend/internal/platform/ws"
)

// registerWSRoutes registers the alert stream endpoint. The route sits inside
// the authenticated group, so the hub always knows which user is subscribing.
func registerWSRoutes(rg *gin.RouterGroup, hub *ws.Hub) {
	rg.GET("/ws/alerts", func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		hub.Serve(c.Writer, c.Request, userID)
	})
}
