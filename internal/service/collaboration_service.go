package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mentor-collab/internal/domain"
	"mentor-collab/internal/repository"
)

// CollaborationService expone lectura y cierre de colaboraciones. La creacion
// pasa exclusivamente por AcceptCoordinator.
type CollaborationService struct {
	logger         *zap.Logger
	mentorships    repository.MentorshipRepository
	collaborations repository.CollaborationRepository
}

func NewCollaborationService(logger *zap.Logger, mentorships repository.MentorshipRepository, collaborations repository.CollaborationRepository) *CollaborationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollaborationService{
		logger:         logger,
		mentorships:    mentorships,
		collaborations: collaborations,
	}
}

// ListCollaborations devuelve el historial de una mentoria. Con actorMentorID
// no vacio solo lo ve el mentor de esa mentoria.
func (s *CollaborationService) ListCollaborations(ctx context.Context, mentorshipID, actorMentorID string) ([]domain.Collaboration, error) {
	m, err := s.mentorships.GetMentorship(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if actorMentorID != "" && m.MentorID != actorMentorID {
		return nil, fmt.Errorf("%w: mentorship %s", domain.ErrNotParticipant, mentorshipID)
	}
	list, err := s.collaborations.ListCollaborations(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Collaboration{}
	}
	return list, nil
}

// EndCollaboration pasa una colaboracion a Ended y libera a ambas mentorias.
// Con actorMentorID no vacio solo puede cerrarla un mentor participante.
func (s *CollaborationService) EndCollaboration(ctx context.Context, id, actorMentorID string) (domain.Collaboration, error) {
	current, err := s.collaborations.GetCollaboration(ctx, id)
	if err != nil {
		return domain.Collaboration{}, err
	}
	if actorMentorID != "" {
		allowed, err := mentorParticipates(ctx, s.mentorships, actorMentorID, current.MentorshipAID, current.MentorshipBID)
		if err != nil {
			return domain.Collaboration{}, err
		}
		if !allowed {
			return domain.Collaboration{}, fmt.Errorf("%w: only participating mentors may end a collaboration", domain.ErrForbidden)
		}
	}

	ended, err := s.collaborations.EndCollaboration(ctx, id, time.Now().UTC())
	if err != nil {
		return domain.Collaboration{}, err
	}
	s.logger.Info("collaboration ended",
		zap.String("collaboration_id", ended.ID),
		zap.String("mentorship_a_id", ended.MentorshipAID),
		zap.String("mentorship_b_id", ended.MentorshipBID),
	)
	return ended, nil
}
