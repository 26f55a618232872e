package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/gymtrack/gymtrack-api/internal/apperrors"
	portssvc "github.com/gymtrack/gymtrack-api/internal/core/ports/services"
	"github.com/gymtrack/gymtrack-api/internal/dto"
	"github.com/gymtrack/gymtrack-api/internal/middleware"
)

// checkInHandler handles HTTP requests from the entrance terminal.
type checkInHandler struct {
	checkInService portssvc.CheckInSvcFacade
}

func newCheckInHandler(cs portssvc.CheckInSvcFacade) *checkInHandler {
	return &checkInHandler{checkInService: cs}
}

// RegisterCheckInRoutes registers the check-in route. Rate limited per client
// IP so a misbehaving terminal cannot flood the system.
func RegisterCheckInRoutes(rg *gin.RouterGroup, checkInService portssvc.CheckInSvcFacade, checkinLimiter *limiter.Limiter) {
	h := newCheckInHandler(checkInService)

	rg.POST("/checkin", middleware.RateLimit(checkinLimiter), h.checkIn)
}

// checkIn evaluates an admission attempt. A denied member still gets a 200:
// the denial is the answer, not a failure. Only an unknown external ID (404)
// and evaluation failures (500) are errors.
func (h *checkInHandler) checkIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CheckIn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.checkInService.CheckIn(c.Request.Context(), req.ExternalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			logger.Error("Failed to evaluate check-in", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate check-in"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
