package repository

import (
	"context"
	"time"

	"mentor-collab/internal/domain"
)

// MentorshipRepository lee el directorio de mentorias (colaborador externo).
type MentorshipRepository interface {
	ListMentorships(ctx context.Context) ([]domain.Mentorship, error)
	GetMentorship(ctx context.Context, id string) (domain.Mentorship, error)
}

// RatingFilter acota la lectura de evaluaciones.
type RatingFilter struct {
	EvaluationType string
	MentorshipIDs  []string
}

// EvaluationRepository lee evaluaciones crudas (colaborador externo).
type EvaluationRepository interface {
	ListRatings(ctx context.Context, filter RatingFilter) ([]domain.EvaluationRating, error)
}

// RequestFilter acota el listado de solicitudes de una mentoria.
type RequestFilter struct {
	MentorshipID string
	Direction    domain.RequestDirection
	Status       domain.RequestStatus
}

// RequestRepository persiste solicitudes de colaboracion. RejectRequest es un
// compare-and-swap sobre el estado Pending.
type RequestRepository interface {
	CreateRequest(ctx context.Context, req domain.CollaborationRequest) error
	GetRequest(ctx context.Context, id string) (domain.CollaborationRequest, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]domain.CollaborationRequest, error)
	RejectRequest(ctx context.Context, id string, respondedAt time.Time) (domain.CollaborationRequest, error)
}

// AcceptParams describe una aceptacion. Check corre dentro de la unidad
// atomica con la solicitud ya bloqueada; debe ser pura y no tocar el repositorio.
type AcceptParams struct {
	RequestID       string
	CollaborationID string
	AcceptedAt      time.Time
	Check           func(domain.CollaborationRequest) error
}

// CollaborationRepository persiste colaboraciones. CommitAccept es el unico
// camino que las crea.
type CollaborationRepository interface {
	ListActiveCollaborations(ctx context.Context) ([]domain.Collaboration, error)
	ListCollaborations(ctx context.Context, mentorshipID string) ([]domain.Collaboration, error)
	GetCollaboration(ctx context.Context, id string) (domain.Collaboration, error)
	CommitAccept(ctx context.Context, params AcceptParams) (domain.Collaboration, domain.CollaborationRequest, error)
	EndCollaboration(ctx context.Context, id string, endedAt time.Time) (domain.Collaboration, error)
}
