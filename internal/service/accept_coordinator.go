package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mentor-collab/internal/domain"
	"mentor-collab/internal/repository"
)

// AcceptCoordinator es el unico camino que crea colaboraciones. Delega la
// unidad atomica (chequeo + insercion + cambio de estado) al repositorio.
type AcceptCoordinator struct {
	logger         *zap.Logger
	collaborations repository.CollaborationRepository
	suggestions    *SuggestionService
	revalidate     bool
}

type boardChecker interface {
	Qualifies(initiatorID, targetID string, tier domain.Tier) bool
}

// NewAcceptCoordinator crea el coordinador. Con revalidate en true la
// aceptacion falla con ErrStaleSnapshot si el par ya no califica para el tier
// guardado en la solicitud.
func NewAcceptCoordinator(logger *zap.Logger, collaborations repository.CollaborationRepository, suggestions *SuggestionService, revalidate bool) *AcceptCoordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcceptCoordinator{
		logger:         logger,
		collaborations: collaborations,
		suggestions:    suggestions,
		revalidate:     revalidate,
	}
}

func (c *AcceptCoordinator) Accept(ctx context.Context, requestID string) (domain.Collaboration, domain.CollaborationRequest, error) {
	params := repository.AcceptParams{
		RequestID:       requestID,
		CollaborationID: uuid.NewString(),
		AcceptedAt:      time.Now().UTC(),
	}
	if c.revalidate && c.suggestions != nil {
		board, err := c.suggestions.Board(ctx)
		if err != nil {
			acceptOutcomes.WithLabelValues(outcomeLabel(err)).Inc()
			return domain.Collaboration{}, domain.CollaborationRequest{}, err
		}
		params.Check = revalidateCheck(board)
	}

	collab, req, err := c.collaborations.CommitAccept(ctx, params)
	acceptOutcomes.WithLabelValues(outcomeLabel(err)).Inc()
	if err != nil {
		c.logger.Info("accept rejected",
			zap.String("request_id", requestID),
			zap.Bool("retryable", domain.Retryable(err)),
			zap.Error(err),
		)
		return domain.Collaboration{}, domain.CollaborationRequest{}, err
	}

	c.logger.Info("collaboration committed",
		zap.String("collaboration_id", collab.ID),
		zap.String("request_id", req.ID),
		zap.String("mentorship_a_id", collab.MentorshipAID),
		zap.String("mentorship_b_id", collab.MentorshipBID),
		zap.Int("tier", int(collab.Tier)),
	)
	return collab, req, nil
}

func revalidateCheck(board boardChecker) func(domain.CollaborationRequest) error {
	return func(req domain.CollaborationRequest) error {
		if !board.Qualifies(req.InitiatingMentorshipID, req.TargetMentorshipID, req.Tier) {
			return domain.ErrStaleSnapshot
		}
		return nil
	}
}
