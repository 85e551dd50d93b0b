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

// adjustmentHandler handles HTTP requests for the adjustment workflow.
type adjustmentHandler struct {
	adjustmentService portssvc.AdjustmentSvcFacade
}

func newAdjustmentHandler(as portssvc.AdjustmentSvcFacade) *adjustmentHandler {
	return &adjustmentHandler{adjustmentService: as}
}

// registerAdjustmentRoutes registers routes related to adjustments.
func registerAdjustmentRoutes(rg *gin.RouterGroup, adjustmentService portssvc.AdjustmentSvcFacade) {
	h := newAdjustmentHandler(adjustmentService)

	adjustments := rg.Group("/adjustments")
	{
		adjustments.POST("", h.requestAdjustment)
		adjustments.GET("/pending", h.listPending)
		adjustments.POST("/:id/approve", h.approve)
		adjustments.POST("/:id/reject", h.reject)
	}
}

// requestAdjustment godoc
// @Summary Request a punch adjustment
// @Description Opens a pending correction or addition request
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   adjustment body dto.CreateAdjustmentRequest true "Adjustment details"
// @Success 201 {object} dto.AdjustmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Pending conflict or closed period"
// @Security BearerAuth
// @Router /adjustments [post]
func (h *adjustmentHandler) requestAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RequestAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	adjustment, err := h.adjustmentService.RequestAdjustment(c.Request.Context(), req, requesterID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to request adjustment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(adjustment))
}

// listPending godoc
// @Summary List pending adjustments
// @Description Lists pending adjustments, newest first
// @Tags adjustments
// @Produce  json
// @Param   limit query int false "Maximum rows (default 50)"
// @Success 200 {array} dto.AdjustmentResponse
// @Security BearerAuth
// @Router /adjustments/pending [get]
func (h *adjustmentHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	adjustments, err := h.adjustmentService.ListPending(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list pending adjustments")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdjustmentResponses(adjustments))
}

// approve godoc
// @Summary Approve an adjustment
// @Description Applies the adjustment to the canonical punches and recomputes the ledger
// @Tags adjustments
// @Produce  json
// @Param   id path string true "Adjustment ID"
// @Success 200 {object} dto.AdjustmentResponse
// @Failure 403 {object} map[string]string "Requires manager or admin role"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Failure 409 {object} map[string]string "Already resolved or closed period"
// @Failure 422 {object} map[string]string "Sequence violation at approval time"
// @Security BearerAuth
// @Router /adjustments/{id}/approve [post]
func (h *adjustmentHandler) approve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	adjustment, err := h.adjustmentService.Approve(c.Request.Context(), c.Param("id"), approverID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to approve adjustment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdjustmentResponse(adjustment))
}

// reject godoc
// @Summary Reject an adjustment
// @Description Closes the adjustment without touching punches or the ledger
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   id path string true "Adjustment ID"
// @Param   rejection body dto.RejectAdjustmentRequest true "Rejection reason"
// @Success 200 {object} dto.AdjustmentResponse
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 403 {object} map[string]string "Requires manager or admin role"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Failure 409 {object} map[string]string "Already resolved"
// @Security BearerAuth
// @Router /adjustments/{id}/reject [post]
func (h *adjustmentHandler) reject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RejectAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RejectAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	adjustment, err := h.adjustmentService.Reject(c.Request.Context(), c.Param("id"), approverID, req.Reason)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reject adjustment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdjustmentResponse(adjustment))
}
