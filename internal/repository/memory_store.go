package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"mentor-collab/internal/domain"
)

// MemoryStore implementa todos los repositorios en memoria. Un unico mutex
// cubre cada operacion, incluida la unidad completa de CommitAccept.
type MemoryStore struct {
	mu             sync.RWMutex
	mentorships    map[string]domain.Mentorship
	ratings        []domain.EvaluationRating
	requests       map[string]domain.CollaborationRequest
	collaborations map[string]domain.Collaboration
	members        map[string]string
	activePairs    map[[2]string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mentorships:    make(map[string]domain.Mentorship),
		requests:       make(map[string]domain.CollaborationRequest),
		collaborations: make(map[string]domain.Collaboration),
		members:        make(map[string]string),
		activePairs:    make(map[[2]string]string),
	}
}

var (
	_ MentorshipRepository    = (*MemoryStore)(nil)
	_ EvaluationRepository    = (*MemoryStore)(nil)
	_ RequestRepository       = (*MemoryStore)(nil)
	_ CollaborationRepository = (*MemoryStore)(nil)
)

func (s *MemoryStore) AddMentorship(m domain.Mentorship) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mentorships[m.ID] = m
}

func (s *MemoryStore) AddRatings(ratings ...domain.EvaluationRating) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings = append(s.ratings, ratings...)
}

func (s *MemoryStore) ListMentorships(ctx context.Context) ([]domain.Mentorship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Mentorship, 0, len(s.mentorships))
	for _, m := range s.mentorships {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetMentorship(ctx context.Context, id string) (domain.Mentorship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.mentorships[id]
	if !ok {
		return domain.Mentorship{}, domain.ErrMentorshipNotFound
	}
	return m, nil
}

func (s *MemoryStore) ListRatings(ctx context.Context, filter RatingFilter) ([]domain.EvaluationRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids map[string]bool
	if len(filter.MentorshipIDs) > 0 {
		ids = make(map[string]bool, len(filter.MentorshipIDs))
		for _, id := range filter.MentorshipIDs {
			ids[id] = true
		}
	}
	var out []domain.EvaluationRating
	for _, r := range s.ratings {
		if filter.EvaluationType != "" && r.EvaluationType != filter.EvaluationType {
			continue
		}
		if ids != nil && !ids[r.MentorshipID] {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *MemoryStore) CreateRequest(ctx context.Context, req domain.CollaborationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.mentorships[req.InitiatingMentorshipID]; !ok {
		return domain.ErrMentorshipNotFound
	}
	if _, ok := s.mentorships[req.TargetMentorshipID]; !ok {
		return domain.ErrMentorshipNotFound
	}
	for _, existing := range s.requests {
		if existing.Status == domain.RequestPending &&
			existing.InitiatingMentorshipID == req.InitiatingMentorshipID &&
			existing.TargetMentorshipID == req.TargetMentorshipID {
			return domain.ErrDuplicateRequest
		}
	}
	s.requests[req.ID] = cloneRequest(req)
	return nil
}

func (s *MemoryStore) GetRequest(ctx context.Context, id string) (domain.CollaborationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return domain.CollaborationRequest{}, domain.ErrRequestNotFound
	}
	return cloneRequest(req), nil
}

func (s *MemoryStore) ListRequests(ctx context.Context, filter RequestFilter) ([]domain.CollaborationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.CollaborationRequest
	for _, req := range s.requests {
		switch filter.Direction {
		case domain.DirectionIncoming:
			if req.TargetMentorshipID != filter.MentorshipID {
				continue
			}
		case domain.DirectionOutgoing:
			if req.InitiatingMentorshipID != filter.MentorshipID {
				continue
			}
		default:
			if !req.Involves(filter.MentorshipID) {
				continue
			}
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		out = append(out, cloneRequest(req))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) RejectRequest(ctx context.Context, id string, respondedAt time.Time) (domain.CollaborationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return domain.CollaborationRequest{}, domain.ErrRequestNotFound
	}
	if !req.Status.CanTransitionTo(domain.RequestRejected) {
		return domain.CollaborationRequest{}, domain.ErrRequestNotPending
	}
	req.Status = domain.RequestRejected
	req.RespondedAt = &respondedAt
	s.requests[id] = req
	return cloneRequest(req), nil
}

func (s *MemoryStore) ListActiveCollaborations(ctx context.Context) ([]domain.Collaboration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Collaboration
	for _, c := range s.collaborations {
		if c.Active() {
			out = append(out, c)
		}
	}
	sortCollaborations(out)
	return out, nil
}

func (s *MemoryStore) ListCollaborations(ctx context.Context, mentorshipID string) ([]domain.Collaboration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Collaboration
	for _, c := range s.collaborations {
		if c.Involves(mentorshipID) {
			out = append(out, c)
		}
	}
	sortCollaborations(out)
	return out, nil
}

func (s *MemoryStore) GetCollaboration(ctx context.Context, id string) (domain.Collaboration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collaborations[id]
	if !ok {
		return domain.Collaboration{}, domain.ErrCollaborationNotFound
	}
	return c, nil
}

func (s *MemoryStore) CommitAccept(ctx context.Context, params AcceptParams) (domain.Collaboration, domain.CollaborationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[params.RequestID]
	if !ok {
		return domain.Collaboration{}, domain.CollaborationRequest{}, domain.ErrRequestNotFound
	}
	if req.Status != domain.RequestPending {
		return domain.Collaboration{}, domain.CollaborationRequest{}, domain.ErrRequestNotPending
	}
	if params.Check != nil {
		if err := params.Check(cloneRequest(req)); err != nil {
			return domain.Collaboration{}, domain.CollaborationRequest{}, err
		}
	}
	if _, busy := s.members[req.InitiatingMentorshipID]; busy {
		return domain.Collaboration{}, domain.CollaborationRequest{}, domain.ErrAlreadyCollaborating
	}
	if _, busy := s.members[req.TargetMentorshipID]; busy {
		return domain.Collaboration{}, domain.CollaborationRequest{}, domain.ErrAlreadyCollaborating
	}
	low, high := domain.PairKey(req.InitiatingMentorshipID, req.TargetMentorshipID)
	pair := [2]string{low, high}
	if _, exists := s.activePairs[pair]; exists {
		return domain.Collaboration{}, domain.CollaborationRequest{}, domain.ErrAlreadyCollaborating
	}

	collab := domain.Collaboration{
		ID:                   params.CollaborationID,
		MentorshipAID:        req.InitiatingMentorshipID,
		MentorshipBID:        req.TargetMentorshipID,
		Tier:                 req.Tier,
		OriginatingRequestID: req.ID,
		Status:               domain.CollaborationActive,
		CreatedAt:            params.AcceptedAt,
	}
	acceptedAt := params.AcceptedAt
	req.Status = domain.RequestAccepted
	req.RespondedAt = &acceptedAt

	s.collaborations[collab.ID] = collab
	s.members[collab.MentorshipAID] = collab.ID
	s.members[collab.MentorshipBID] = collab.ID
	s.activePairs[pair] = collab.ID
	s.requests[req.ID] = req
	return collab, cloneRequest(req), nil
}

func (s *MemoryStore) EndCollaboration(ctx context.Context, id string, endedAt time.Time) (domain.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collaborations[id]
	if !ok {
		return domain.Collaboration{}, domain.ErrCollaborationNotFound
	}
	if !c.Active() {
		return domain.Collaboration{}, domain.ErrCollaborationEnded
	}
	c.Status = domain.CollaborationEnded
	c.EndedAt = &endedAt
	s.collaborations[id] = c

	delete(s.members, c.MentorshipAID)
	delete(s.members, c.MentorshipBID)
	low, high := domain.PairKey(c.MentorshipAID, c.MentorshipBID)
	delete(s.activePairs, [2]string{low, high})
	return c, nil
}

func sortCollaborations(list []domain.Collaboration) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

func cloneRequest(req domain.CollaborationRequest) domain.CollaborationRequest {
	req.MatchedCategories = append([]string(nil), req.MatchedCategories...)
	req.InitiatorStrengths = append([]string(nil), req.InitiatorStrengths...)
	req.InitiatorWeaknesses = append([]string(nil), req.InitiatorWeaknesses...)
	req.TargetStrengths = append([]string(nil), req.TargetStrengths...)
	req.TargetWeaknesses = append([]string(nil), req.TargetWeaknesses...)
	if req.RespondedAt != nil {
		t := *req.RespondedAt
		req.RespondedAt = &t
	}
	return req
}
