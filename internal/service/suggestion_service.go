package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mentor-collab/internal/domain"
	"mentor-collab/internal/matching"
	"mentor-collab/internal/repository"
)

// ActiveCollaborationLister es la unica lectura de colaboraciones que necesita
// el motor de recomendaciones.
type ActiveCollaborationLister interface {
	ListActiveCollaborations(ctx context.Context) ([]domain.Collaboration, error)
}

// SuggestionService arma el Board a partir de las tres lecturas upstream y
// responde recomendaciones y rasgos. No escribe nada.
type SuggestionService struct {
	logger         *zap.Logger
	mentorships    repository.MentorshipRepository
	ratings        repository.EvaluationRepository
	collaborations ActiveCollaborationLister
	cfg            matching.Config
}

func NewSuggestionService(
	logger *zap.Logger,
	mentorships repository.MentorshipRepository,
	ratings repository.EvaluationRepository,
	collaborations ActiveCollaborationLister,
	cfg matching.Config,
) *SuggestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuggestionService{
		logger:         logger,
		mentorships:    mentorships,
		ratings:        ratings,
		collaborations: collaborations,
		cfg:            cfg,
	}
}

// Board lee directorio, evaluaciones y colaboraciones activas en paralelo.
// Cualquier fallo de lectura se reporta como UpstreamUnavailable.
func (s *SuggestionService) Board(ctx context.Context) (*matching.Board, error) {
	var ds matching.Dataset

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.mentorships.ListMentorships(gctx)
		if err != nil {
			return upstreamError("list mentorships", err)
		}
		ds.Mentorships = list
		return nil
	})
	g.Go(func() error {
		list, err := s.ratings.ListRatings(gctx, repository.RatingFilter{EvaluationType: s.cfg.EvaluationType})
		if err != nil {
			return upstreamError("list ratings", err)
		}
		ds.Ratings = list
		return nil
	})
	g.Go(func() error {
		list, err := s.collaborations.ListActiveCollaborations(gctx)
		if err != nil {
			return upstreamError("list active collaborations", err)
		}
		ds.Collaborations = list
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("load recommendation dataset failed", zap.Error(err))
		return nil, err
	}
	return matching.NewBoard(s.cfg, ds), nil
}

func (s *SuggestionService) GetSuggestions(ctx context.Context, mentorshipID string) ([]domain.Suggestion, error) {
	start := time.Now()
	board, err := s.Board(ctx)
	if err != nil {
		return nil, err
	}
	suggestions, err := board.Suggest(mentorshipID)
	if err != nil {
		return nil, err
	}
	suggestionDuration.Observe(time.Since(start).Seconds())
	for _, sg := range suggestions {
		suggestionsServed.WithLabelValues(strconv.Itoa(int(sg.Tier))).Inc()
	}

	s.logger.Debug("suggestions computed",
		zap.String("mentorship_id", mentorshipID),
		zap.Int("count", len(suggestions)),
		zap.Bool("busy", board.Busy(mentorshipID)),
	)
	return suggestions, nil
}

func (s *SuggestionService) GetTraits(ctx context.Context, mentorshipID string) (domain.TraitSummary, error) {
	board, err := s.Board(ctx)
	if err != nil {
		return domain.TraitSummary{}, err
	}
	return board.Traits(mentorshipID)
}

func upstreamError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrUpstreamUnavailable, op, err)
}
