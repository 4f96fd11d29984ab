package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentor-collab/internal/domain"
	"mentor-collab/internal/service"
)

// RequestHandler maneja el flujo de solicitudes de colaboracion.
type RequestHandler struct {
	logger   *zap.Logger
	requests *service.RequestService
}

func NewRequestHandler(logger *zap.Logger, requests *service.RequestService) *RequestHandler {
	return &RequestHandler{logger: logger, requests: requests}
}

// SubmitRequest maneja POST /collaboration-requests.
func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	var req struct {
		InitiatingMentorshipID string `json:"initiating_mentorship_id" binding:"required"`
		TargetMentorshipID     string `json:"target_mentorship_id" binding:"required"`
		Tier                   int    `json:"tier" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	created, err := h.requests.SubmitRequest(c.Request.Context(), service.SubmitRequestInput{
		InitiatingMentorshipID: req.InitiatingMentorshipID,
		TargetMentorshipID:     req.TargetMentorshipID,
		Tier:                   domain.Tier(req.Tier),
		ActorMentorID:          actorMentorID(c),
	})
	if err != nil {
		writeError(c, h.logger, "submit request", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"request": created})
}

// GetRequest maneja GET /collaboration-requests/:id.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	req, err := h.requests.GetRequest(c.Request.Context(), c.Param("id"), actorMentorID(c))
	if err != nil {
		writeError(c, h.logger, "get request", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": req})
}

// RespondToRequest maneja POST /collaboration-requests/:id/respond.
func (h *RequestHandler) RespondToRequest(c *gin.Context) {
	var req struct {
		Decision string `json:"decision" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid respond body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	decision, err := domain.ParseDecision(req.Decision)
	if err != nil {
		writeError(c, h.logger, "respond to request", err)
		return
	}

	res, err := h.requests.RespondToRequest(c.Request.Context(), service.RespondInput{
		RequestID:     c.Param("id"),
		Decision:      decision,
		ActorMentorID: actorMentorID(c),
	})
	if err != nil {
		writeError(c, h.logger, "respond to request", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
