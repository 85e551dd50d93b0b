package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
	"github.com/pontocerto/ponto_backend/internal/dto"
	"github.com/pontocerto/ponto_backend/internal/middleware"
)

// closingHandler handles HTTP requests for closing periods.
type closingHandler struct {
	closingService portssvc.ClosingSvcFacade
}

func newClosingHandler(cs portssvc.ClosingSvcFacade) *closingHandler {
	return &closingHandler{closingService: cs}
}

// registerClosingRoutes registers routes related to closing periods.
func registerClosingRoutes(rg *gin.RouterGroup, closingService portssvc.ClosingSvcFacade) {
	h := newClosingHandler(closingService)

	closings := rg.Group("/closings")
	{
		closings.GET("", h.listClosings)
		closings.POST("", h.closeMonth)
		closings.DELETE("/:year/:month", h.reopenMonth)
	}
}

// listClosings godoc
// @Summary List closing periods
// @Description Lists all closed months, most recent first
// @Tags closings
// @Produce  json
// @Success 200 {array} dto.ClosingPeriodResponse
// @Security BearerAuth
// @Router /closings [get]
func (h *closingHandler) listClosings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periods, err := h.closingService.ListClosings(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list closing periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToClosingPeriodResponses(periods))
}

// closeMonth godoc
// @Summary Close a month
// @Description Locks a calendar month against punch and adjustment mutations (admin only)
// @Tags closings
// @Accept  json
// @Produce  json
// @Param   closing body dto.CloseMonthRequest true "Month to close"
// @Success 201 {object} dto.ClosingPeriodResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Requires admin role"
// @Failure 409 {object} map[string]string "Already closed or pending adjustments remain"
// @Security BearerAuth
// @Router /closings [post]
func (h *closingHandler) closeMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CloseMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CloseMonth", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.closingService.CloseMonth(c.Request.Context(), req.Year, req.Month, req.Notes, adminID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to close month")
		return
	}
	c.JSON(http.StatusCreated, dto.ToClosingPeriodResponse(period))
}

// reopenMonth godoc
// @Summary Reopen a month
// @Description Deletes the closing marker, restoring mutability (admin only)
// @Tags closings
// @Produce  json
// @Param   year path int true "Year"
// @Param   month path int true "Month (1-12)"
// @Success 204 "Reopened"
// @Failure 400 {object} map[string]string "Invalid year or month"
// @Failure 403 {object} map[string]string "Requires admin role"
// @Failure 404 {object} map[string]string "Month is not closed"
// @Security BearerAuth
// @Router /closings/{year}/{month} [delete]
func (h *closingHandler) reopenMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be an integer"})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.closingService.ReopenMonth(c.Request.Context(), year, month, adminID); err != nil {
		respondServiceError(c, logger, err, "Failed to reopen month")
		return
	}
	c.Status(http.StatusNoContent)
}
