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

// ledgerHandler handles HTTP requests for the hours bank.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to the hours ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/entries", h.listEntries)
		ledger.GET("/balance", h.getBalance)
		ledger.POST("/recompute", h.recompute)
		ledger.POST("/daily-closing", h.dailyClosing)
	}
}

// listEntries godoc
// @Summary List ledger entries
// @Description Lists a user's hours bank rows in [from, to)
// @Tags ledger
// @Produce  json
// @Param   from query string true "Start date (2006-01-02)"
// @Param   to query string true "End date, exclusive (2006-01-02)"
// @Param   userID query string false "User ID (defaults to the authenticated user)"
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Security BearerAuth
// @Router /ledger/entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	authUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID := c.DefaultQuery("userID", authUserID)

	from, to, ok := parseRangeParams(c)
	if !ok {
		return
	}

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), userID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponses(entries))
}

// getBalance godoc
// @Summary Get an hours bank balance
// @Description Aggregates worked/expected/balance over [from, to)
// @Tags ledger
// @Produce  json
// @Param   from query string true "Start date (2006-01-02)"
// @Param   to query string true "End date, exclusive (2006-01-02)"
// @Param   userID query string false "User ID (defaults to the authenticated user)"
// @Success 200 {object} dto.BalanceSummary
// @Failure 400 {object} map[string]string "Invalid range"
// @Security BearerAuth
// @Router /ledger/balance [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	authUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID := c.DefaultQuery("userID", authUserID)

	from, to, ok := parseRangeParams(c)
	if !ok {
		return
	}

	summary, err := h.ledgerService.GetBalance(c.Request.Context(), userID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute balance")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// recompute godoc
// @Summary Recompute a ledger entry
// @Description Re-derives the hours bank row for one user/day from its punches
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   request body dto.RecomputeRequest true "User and date"
// @Success 200 {object} dto.LedgerEntryResponse
// @Success 204 "User is duty-shift, no entry produced"
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /ledger/recompute [post]
func (h *ledgerHandler) recompute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecomputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Recompute", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as 2006-01-02"})
		return
	}

	entry, err := h.ledgerService.Recompute(c.Request.Context(), req.UserID, date)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to recompute ledger entry")
		return
	}
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// dailyClosing godoc
// @Summary Run the daily closing batch
// @Description Recomputes every active non-duty-shift user for the date
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   request body dto.DailyClosingRequest true "Target date"
// @Success 200 {object} dto.DailyClosingResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /ledger/daily-closing [post]
func (h *ledgerHandler) dailyClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DailyClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DailyClosing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as 2006-01-02"})
		return
	}

	result, err := h.ledgerService.DailyClosing(c.Request.Context(), date)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to run daily closing")
		return
	}
	c.JSON(http.StatusOK, result)
}
