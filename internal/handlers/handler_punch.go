package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
	"github.com/pontocerto/ponto_backend/internal/dto"
	"github.com/pontocerto/ponto_backend/internal/middleware"
	"github.com/pontocerto/ponto_backend/internal/platform/config"
)

// punchHandler handles HTTP requests for the punch registry.
type punchHandler struct {
	punchService portssvc.PunchSvcFacade
}

func newPunchHandler(ps portssvc.PunchSvcFacade) *punchHandler {
	return &punchHandler{punchService: ps}
}

// registerPunchRoutes registers routes related to punches and journeys.
func registerPunchRoutes(rg *gin.RouterGroup, cfg *config.Config, punchService portssvc.PunchSvcFacade) {
	h := newPunchHandler(punchService)

	rate, err := limiter.NewRateFromFormatted(cfg.PunchRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("30-M")
	}
	punchLimiter := limiter.New(memory.NewStore(), rate)

	punches := rg.Group("/punches")
	{
		punches.POST("", middleware.RateLimit(punchLimiter), h.registerPunch)
		punches.POST("/manual", h.insertManualPunch)
		punches.GET("", h.listPunches)
		punches.GET("/journey", h.getJourney)
	}
}

// registerPunch godoc
// @Summary Register a kiosk punch
// @Description Records a punch for the authenticated user at server time
// @Tags punches
// @Accept  json
// @Produce  json
// @Param   punch body dto.RegisterPunchRequest true "Punch details"
// @Success 201 {object} dto.PunchResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Duplicate type, short break or closed period"
// @Failure 422 {object} map[string]string "Sequence violation"
// @Failure 429 {object} map[string]string "Rate limited"
// @Security BearerAuth
// @Router /punches [post]
func (h *punchHandler) registerPunch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterPunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterPunch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	punch, err := h.punchService.RegisterPunch(c.Request.Context(), userID,
		domain.PunchType(req.Type), domain.SourceKiosk, req.Geolocation, req.PhotoRef)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to register punch")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPunchResponse(punch))
}

// insertManualPunch godoc
// @Summary Insert a manual punch
// @Description Directly inserts a punch with a given timestamp (manager/admin only)
// @Tags punches
// @Accept  json
// @Produce  json
// @Param   punch body dto.ManualPunchRequest true "Manual punch details"
// @Success 201 {object} dto.PunchResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Requires manager or admin role"
// @Failure 409 {object} map[string]string "Duplicate type or closed period"
// @Failure 422 {object} map[string]string "Sequence violation"
// @Security BearerAuth
// @Router /punches/manual [post]
func (h *punchHandler) insertManualPunch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ManualPunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for InsertManualPunch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	punch, err := h.punchService.InsertManualPunch(c.Request.Context(), req.UserID,
		domain.PunchType(req.Type), req.Timestamp, req.Reason, creatorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to insert manual punch")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPunchResponse(punch))
}

// listPunches godoc
// @Summary List punches
// @Description Lists the authenticated user's punches in [from, to)
// @Tags punches
// @Produce  json
// @Param   from query string true "Start date (2006-01-02)"
// @Param   to query string true "End date, exclusive (2006-01-02)"
// @Success 200 {array} dto.PunchResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Security BearerAuth
// @Router /punches [get]
func (h *punchHandler) listPunches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	from, to, ok := parseRangeParams(c)
	if !ok {
		return
	}

	punches, err := h.punchService.ListPunches(c.Request.Context(), userID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list punches")
		return
	}
	c.JSON(http.StatusOK, dto.ToPunchResponses(punches))
}

// getJourney godoc
// @Summary Get a daily journey
// @Description Derives the journey (punch slots, status, worked hours) for one day
// @Tags punches
// @Produce  json
// @Param   date query string true "Date (2006-01-02)"
// @Param   userID query string false "User ID (defaults to the authenticated user)"
// @Success 200 {object} dto.JourneyResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /punches/journey [get]
func (h *punchHandler) getJourney(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	authUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID := c.DefaultQuery("userID", authUserID)

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as 2006-01-02"})
		return
	}

	journey, err := h.punchService.GetJourney(c.Request.Context(), userID, date)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to derive journey")
		return
	}
	c.JSON(http.StatusOK, dto.ToJourneyResponse(journey))
}

// parseRangeParams reads the from/to query params as [from, to) dates. It
// writes the error response itself when the range is malformed.
func parseRangeParams(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be formatted as 2006-01-02"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be formatted as 2006-01-02"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
