package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentor-collab/internal/domain"
	"mentor-collab/internal/service"
)

// MentorshipHandler expone las vistas por mentoria: sugerencias, rasgos,
// solicitudes y colaboraciones.
type MentorshipHandler struct {
	logger         *zap.Logger
	suggestions    *service.SuggestionService
	requests       *service.RequestService
	collaborations *service.CollaborationService
}

func NewMentorshipHandler(logger *zap.Logger, suggestions *service.SuggestionService, requests *service.RequestService, collaborations *service.CollaborationService) *MentorshipHandler {
	return &MentorshipHandler{
		logger:         logger,
		suggestions:    suggestions,
		requests:       requests,
		collaborations: collaborations,
	}
}

// GetSuggestions maneja GET /mentorships/:id/suggestions.
func (h *MentorshipHandler) GetSuggestions(c *gin.Context) {
	id := c.Param("id")
	suggestions, err := h.suggestions.GetSuggestions(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, "get suggestions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentorship_id": id, "suggestions": suggestions})
}

// GetTraits maneja GET /mentorships/:id/traits.
func (h *MentorshipHandler) GetTraits(c *gin.Context) {
	summary, err := h.suggestions.GetTraits(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "get traits", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"traits": summary})
}

// ListRequests maneja GET /mentorships/:id/requests?direction=&status=.
func (h *MentorshipHandler) ListRequests(c *gin.Context) {
	direction, err := domain.ParseRequestDirection(c.Query("direction"))
	if err != nil {
		writeError(c, h.logger, "list requests", err)
		return
	}
	status := domain.RequestStatus(c.Query("status"))

	list, err := h.requests.ListRequests(c.Request.Context(), c.Param("id"), actorMentorID(c), direction, status)
	if err != nil {
		writeError(c, h.logger, "list requests", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": list})
}

// ListCollaborations maneja GET /mentorships/:id/collaborations.
func (h *MentorshipHandler) ListCollaborations(c *gin.Context) {
	list, err := h.collaborations.ListCollaborations(c.Request.Context(), c.Param("id"), actorMentorID(c))
	if err != nil {
		writeError(c, h.logger, "list collaborations", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collaborations": list})
}
