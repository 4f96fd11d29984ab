package domain

import "time"

// CollaborationStatus es el estado de una colaboracion comprometida.
type CollaborationStatus string

const (
	CollaborationActive CollaborationStatus = "active"
	CollaborationEnded  CollaborationStatus = "ended"
)

// Collaboration es un emparejamiento confirmado entre dos mentorias. Solo el
// coordinador de aceptacion la crea.
type Collaboration struct {
	ID                   string              `json:"id"`
	MentorshipAID        string              `json:"mentorship_a_id"`
	MentorshipBID        string              `json:"mentorship_b_id"`
	Tier                 Tier                `json:"tier"`
	OriginatingRequestID string              `json:"originating_request_id"`
	Status               CollaborationStatus `json:"status"`
	CreatedAt            time.Time           `json:"created_at"`
	EndedAt              *time.Time          `json:"ended_at,omitempty"`
}

func (c Collaboration) Active() bool {
	return c.Status == CollaborationActive
}

func (c Collaboration) Involves(mentorshipID string) bool {
	return c.MentorshipAID == mentorshipID || c.MentorshipBID == mentorshipID
}

// Counterpart devuelve la otra mentoria del par, o "" si no participa.
func (c Collaboration) Counterpart(mentorshipID string) string {
	switch mentorshipID {
	case c.MentorshipAID:
		return c.MentorshipBID
	case c.MentorshipBID:
		return c.MentorshipAID
	}
	return ""
}

// PairKey normaliza un par no ordenado de mentorias.
func PairKey(a, b string) (low, high string) {
	if a < b {
		return a, b
	}
	return b, a
}
