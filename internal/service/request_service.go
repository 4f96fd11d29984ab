package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mentor-collab/internal/domain"
	"mentor-collab/internal/email"
	"mentor-collab/internal/repository"
)

// RequestService implementa el flujo de solicitudes de colaboracion:
// Pending -> Accepted | Rejected, ambos terminales.
type RequestService struct {
	logger      *zap.Logger
	suggestions *SuggestionService
	mentorships repository.MentorshipRepository
	requests    repository.RequestRepository
	coordinator *AcceptCoordinator
	notifier    email.Sender
	limiter     RequestRateLimiter
}

func NewRequestService(
	logger *zap.Logger,
	suggestions *SuggestionService,
	mentorships repository.MentorshipRepository,
	requests repository.RequestRepository,
	coordinator *AcceptCoordinator,
	notifier email.Sender,
	limiter RequestRateLimiter,
) *RequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = email.NewDisabledSender("email sender not configured")
	}
	return &RequestService{
		logger:      logger,
		suggestions: suggestions,
		mentorships: mentorships,
		requests:    requests,
		coordinator: coordinator,
		notifier:    notifier,
		limiter:     limiter,
	}
}

// SubmitRequestInput describe una solicitud nueva. ActorMentorID vacio
// desactiva el chequeo de autoria.
type SubmitRequestInput struct {
	InitiatingMentorshipID string
	TargetMentorshipID     string
	Tier                   domain.Tier
	ActorMentorID          string
}

// RespondInput describe la respuesta de la mentoria destino.
type RespondInput struct {
	RequestID     string
	Decision      domain.Decision
	ActorMentorID string
}

// RespondResult trae la solicitud ya terminal y, si fue aceptada, la colaboracion.
type RespondResult struct {
	Request       domain.CollaborationRequest `json:"request"`
	Collaboration *domain.Collaboration       `json:"collaboration,omitempty"`
}

func (s *RequestService) SubmitRequest(ctx context.Context, in SubmitRequestInput) (domain.CollaborationRequest, error) {
	req, err := s.submit(ctx, in)
	requestOutcomes.WithLabelValues("submit", outcomeLabel(err)).Inc()
	return req, err
}

func (s *RequestService) submit(ctx context.Context, in SubmitRequestInput) (domain.CollaborationRequest, error) {
	if !in.Tier.Valid() {
		return domain.CollaborationRequest{}, domain.ErrInvalidTier
	}
	if in.InitiatingMentorshipID == in.TargetMentorshipID {
		return domain.CollaborationRequest{}, domain.ErrSelfRequest
	}

	board, err := s.suggestions.Board(ctx)
	if err != nil {
		return domain.CollaborationRequest{}, err
	}
	initiator, ok := board.Mentorship(in.InitiatingMentorshipID)
	if !ok {
		return domain.CollaborationRequest{}, fmt.Errorf("%w: %s", domain.ErrMentorshipNotFound, in.InitiatingMentorshipID)
	}
	target, ok := board.Mentorship(in.TargetMentorshipID)
	if !ok {
		return domain.CollaborationRequest{}, fmt.Errorf("%w: %s", domain.ErrMentorshipNotFound, in.TargetMentorshipID)
	}
	if in.ActorMentorID != "" && in.ActorMentorID != initiator.MentorID {
		return domain.CollaborationRequest{}, fmt.Errorf("%w: only the initiating mentor may submit", domain.ErrForbidden)
	}
	if initiator.SharesMentorWith(target) {
		return domain.CollaborationRequest{}, domain.ErrSameMentor
	}
	if board.Busy(initiator.ID) || board.Busy(target.ID) {
		return domain.CollaborationRequest{}, domain.ErrAlreadyCollaborating
	}
	eval, err := board.Evaluate(initiator.ID, target.ID, in.Tier)
	if err != nil {
		return domain.CollaborationRequest{}, err
	}
	if s.limiter != nil && !s.limiter.Allow(ctx, initiator.ID) {
		return domain.CollaborationRequest{}, fmt.Errorf("%w: too many requests from mentorship %s", domain.ErrRateLimited, initiator.ID)
	}

	req := domain.CollaborationRequest{
		ID:                     uuid.NewString(),
		Tier:                   eval.Tier,
		Subtier:                eval.Subtier,
		InitiatingMentorshipID: initiator.ID,
		TargetMentorshipID:     target.ID,
		MatchedCategories:      eval.MatchedCategories,
		InitiatorStrengths:     eval.InitiatorStrengths,
		InitiatorWeaknesses:    eval.InitiatorWeaknesses,
		TargetStrengths:        eval.TargetStrengths,
		TargetWeaknesses:       eval.TargetWeaknesses,
		Status:                 domain.RequestPending,
		CreatedAt:              time.Now().UTC(),
	}
	if err := s.requests.CreateRequest(ctx, req); err != nil {
		return domain.CollaborationRequest{}, err
	}

	s.logger.Info("collaboration request submitted",
		zap.String("request_id", req.ID),
		zap.String("initiating_mentorship_id", req.InitiatingMentorshipID),
		zap.String("target_mentorship_id", req.TargetMentorshipID),
		zap.Int("tier", int(req.Tier)),
		zap.Int("subtier", req.Subtier),
	)

	if err := s.notifier.SendRequestReceived(ctx, email.RequestNotice{
		RequestID:           req.ID,
		ToEmail:             target.MentorEmail,
		ToName:              target.MentorName,
		InitiatorName:       initiator.MentorName,
		InitiatorEnterprise: initiator.SocialEnterpriseName,
		TierName:            req.Tier.String(),
		MatchedCategories:   req.MatchedCategories,
	}); err != nil {
		s.logger.Warn("request notification not sent", zap.String("request_id", req.ID), zap.Error(err))
	}
	return req, nil
}

func (s *RequestService) RespondToRequest(ctx context.Context, in RespondInput) (RespondResult, error) {
	res, err := s.respond(ctx, in)
	requestOutcomes.WithLabelValues(string(in.Decision), outcomeLabel(err)).Inc()
	return res, err
}

func (s *RequestService) respond(ctx context.Context, in RespondInput) (RespondResult, error) {
	if in.Decision != domain.DecisionAccept && in.Decision != domain.DecisionReject {
		return RespondResult{}, fmt.Errorf("%w: unknown decision %q", domain.ErrValidation, in.Decision)
	}
	current, err := s.requests.GetRequest(ctx, in.RequestID)
	if err != nil {
		return RespondResult{}, err
	}
	if in.ActorMentorID != "" {
		target, err := s.mentorships.GetMentorship(ctx, current.TargetMentorshipID)
		if err != nil {
			return RespondResult{}, err
		}
		if target.MentorID != in.ActorMentorID {
			return RespondResult{}, fmt.Errorf("%w: only the target mentor may respond", domain.ErrForbidden)
		}
	}
	if current.Status.Terminal() {
		return RespondResult{}, domain.ErrRequestNotPending
	}

	var res RespondResult
	switch in.Decision {
	case domain.DecisionAccept:
		collab, req, err := s.coordinator.Accept(ctx, in.RequestID)
		if err != nil {
			return RespondResult{}, err
		}
		res = RespondResult{Request: req, Collaboration: &collab}
	case domain.DecisionReject:
		req, err := s.requests.RejectRequest(ctx, in.RequestID, time.Now().UTC())
		if err != nil {
			return RespondResult{}, err
		}
		s.logger.Info("collaboration request rejected", zap.String("request_id", req.ID))
		res = RespondResult{Request: req}
	}

	s.notifyDecision(ctx, res)
	return res, nil
}

func (s *RequestService) notifyDecision(ctx context.Context, res RespondResult) {
	initiator, err := s.mentorships.GetMentorship(ctx, res.Request.InitiatingMentorshipID)
	if err != nil {
		s.logger.Warn("decision notification skipped", zap.String("request_id", res.Request.ID), zap.Error(err))
		return
	}
	target, err := s.mentorships.GetMentorship(ctx, res.Request.TargetMentorshipID)
	if err != nil {
		s.logger.Warn("decision notification skipped", zap.String("request_id", res.Request.ID), zap.Error(err))
		return
	}
	notice := email.DecisionNotice{
		RequestID:  res.Request.ID,
		ToEmail:    initiator.MentorEmail,
		ToName:     initiator.MentorName,
		TargetName: target.MentorName,
		Decision:   string(res.Request.Status),
	}
	if res.Collaboration != nil {
		notice.CollaborationID = res.Collaboration.ID
	}
	if err := s.notifier.SendRequestDecision(ctx, notice); err != nil {
		s.logger.Warn("decision notification not sent", zap.String("request_id", res.Request.ID), zap.Error(err))
	}
}

// GetRequest devuelve una solicitud. Con actorMentorID no vacio solo la ven
// los mentores de las dos mentorias involucradas.
func (s *RequestService) GetRequest(ctx context.Context, id, actorMentorID string) (domain.CollaborationRequest, error) {
	req, err := s.requests.GetRequest(ctx, id)
	if err != nil {
		return domain.CollaborationRequest{}, err
	}
	if actorMentorID == "" {
		return req, nil
	}
	allowed, err := mentorParticipates(ctx, s.mentorships, actorMentorID, req.InitiatingMentorshipID, req.TargetMentorshipID)
	if err != nil {
		return domain.CollaborationRequest{}, err
	}
	if !allowed {
		return domain.CollaborationRequest{}, fmt.Errorf("%w: request %s", domain.ErrNotParticipant, id)
	}
	return req, nil
}

// ListRequests lista las solicitudes de una mentoria, mas recientes primero.
// Con actorMentorID no vacio solo las ve el mentor de esa mentoria.
func (s *RequestService) ListRequests(ctx context.Context, mentorshipID, actorMentorID string, direction domain.RequestDirection, status domain.RequestStatus) ([]domain.CollaborationRequest, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	m, err := s.mentorships.GetMentorship(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if actorMentorID != "" && m.MentorID != actorMentorID {
		return nil, fmt.Errorf("%w: mentorship %s", domain.ErrNotParticipant, mentorshipID)
	}
	list, err := s.requests.ListRequests(ctx, repository.RequestFilter{
		MentorshipID: mentorshipID,
		Direction:    direction,
		Status:       status,
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.CollaborationRequest{}
	}
	return list, nil
}
