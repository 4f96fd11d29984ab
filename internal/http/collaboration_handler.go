package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentor-collab/internal/service"
)

type CollaborationHandler struct {
	logger         *zap.Logger
	collaborations *service.CollaborationService
}

func NewCollaborationHandler(logger *zap.Logger, collaborations *service.CollaborationService) *CollaborationHandler {
	return &CollaborationHandler{logger: logger, collaborations: collaborations}
}

// EndCollaboration maneja POST /collaborations/:id/end.
func (h *CollaborationHandler) EndCollaboration(c *gin.Context) {
	ended, err := h.collaborations.EndCollaboration(c.Request.Context(), c.Param("id"), actorMentorID(c))
	if err != nil {
		writeError(c, h.logger, "end collaboration", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collaboration": ended})
}
