package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
	"github.com/pontocerto/ponto_backend/internal/dto"
	"github.com/pontocerto/ponto_backend/internal/middleware"
)

// holidayHandler handles HTTP requests for the holiday calendar.
type holidayHandler struct {
	holidayService portssvc.HolidaySvcFacade
}

func newHolidayHandler(hs portssvc.HolidaySvcFacade) *holidayHandler {
	return &holidayHandler{holidayService: hs}
}

// registerHolidayRoutes registers routes related to holidays.
func registerHolidayRoutes(rg *gin.RouterGroup, holidayService portssvc.HolidaySvcFacade) {
	h := newHolidayHandler(holidayService)

	holidays := rg.Group("/holidays")
	{
		holidays.GET("", h.listHolidays)
		holidays.POST("", h.createHoliday)
		holidays.DELETE("/:id", h.deleteHoliday)
	}
}

// listHolidays godoc
// @Summary List holidays
// @Description Lists holidays with date in [from, to)
// @Tags holidays
// @Produce  json
// @Param   from query string true "Start date (2006-01-02)"
// @Param   to query string true "End date, exclusive (2006-01-02)"
// @Success 200 {array} dto.HolidayResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Security BearerAuth
// @Router /holidays [get]
func (h *holidayHandler) listHolidays(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, to, ok := parseRangeParams(c)
	if !ok {
		return
	}

	holidays, err := h.holidayService.ListHolidays(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list holidays")
		return
	}
	c.JSON(http.StatusOK, dto.ToHolidayResponses(holidays))
}

// createHoliday godoc
// @Summary Create a holiday
// @Description Declares a non-working date for the whole organization (admin only)
// @Tags holidays
// @Accept  json
// @Produce  json
// @Param   holiday body dto.CreateHolidayRequest true "Holiday details"
// @Success 201 {object} dto.HolidayResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Requires admin role"
// @Failure 409 {object} map[string]string "Date already has a holiday"
// @Security BearerAuth
// @Router /holidays [post]
func (h *holidayHandler) createHoliday(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateHoliday", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as 2006-01-02"})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	holiday, err := h.holidayService.CreateHoliday(c.Request.Context(), date, req.Name, adminID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create holiday")
		return
	}
	c.JSON(http.StatusCreated, dto.ToHolidayResponse(holiday))
}

// deleteHoliday godoc
// @Summary Delete a holiday
// @Description Removes a holiday from the calendar (admin only)
// @Tags holidays
// @Produce  json
// @Param   id path string true "Holiday ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Requires admin role"
// @Failure 404 {object} map[string]string "Holiday not found"
// @Security BearerAuth
// @Router /holidays/{id} [delete]
func (h *holidayHandler) deleteHoliday(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.holidayService.DeleteHoliday(c.Request.Context(), c.Param("id"), adminID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete holiday")
		return
	}
	c.Status(http.StatusNoContent)
}
