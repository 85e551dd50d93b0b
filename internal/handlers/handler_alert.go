package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
	"github.com/pontocerto/ponto_backend/internal/dto"
	"github.com/pontocerto/ponto_backend/internal/middleware"
)

// alertHandler handles HTTP requests for in-app alerts.
type alertHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newAlertHandler(ns portssvc.NotificationSvcFacade) *alertHandler {
	return &alertHandler{notificationService: ns}
}

// registerAlertRoutes registers routes related to alerts.
func registerAlertRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newAlertHandler(notificationService)

	alerts := rg.Group("/alerts")
	{
		alerts.GET("", h.listAlerts)
		alerts.POST("/:id/read", h.markRead)
	}
}

// listAlerts godoc
// @Summary List alerts
// @Description Lists the authenticated user's alerts, newest first
// @Tags alerts
// @Produce  json
// @Param   limit query int false "Maximum rows (default 50)"
// @Success 200 {array} dto.AlertResponse
// @Security BearerAuth
// @Router /alerts [get]
func (h *alertHandler) listAlerts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	alerts, err := h.notificationService.ListAlerts(c.Request.Context(), userID, limit)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list alerts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAlertResponses(alerts))
}

// markRead godoc
// @Summary Mark an alert read
// @Description Records that the authenticated user has seen the alert
// @Tags alerts
// @Produce  json
// @Param   id path string true "Alert ID"
// @Success 204 "Marked read"
// @Failure 404 {object} map[string]string "Alert not found or not yours"
// @Security BearerAuth
// @Router /alerts/{id}/read [post]
func (h *alertHandler) markRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to mark alert read")
		return
	}
	c.Status(http.StatusNoContent)
}
