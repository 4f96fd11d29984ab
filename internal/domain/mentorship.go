package domain

import "time"

// EvaluationTypeSocialEnterprise es el tipo de evaluacion que alimenta los rasgos del lado mentor.
const EvaluationTypeSocialEnterprise = "Social Enterprise"

// Mentorship vincula un mentor con una empresa social. Este motor solo la lee.
type Mentorship struct {
	ID                   string `json:"id"`
	MentorID             string `json:"mentor_id"`
	MentorName           string `json:"mentor_name"`
	MentorEmail          string `json:"mentor_email,omitempty"`
	SocialEnterpriseID   string `json:"social_enterprise_id"`
	SocialEnterpriseName string `json:"social_enterprise_name"`
}

// SharesMentorWith indica si ambas mentorias pertenecen al mismo mentor.
func (m Mentorship) SharesMentorWith(other Mentorship) bool {
	return m.MentorID != "" && m.MentorID == other.MentorID
}

// EvaluationRating es una observacion (1-5) producida por el subsistema de evaluaciones.
type EvaluationRating struct {
	MentorshipID   string    `json:"mentorship_id"`
	Category       string    `json:"category"`
	Rating         int       `json:"rating"`
	EvaluationType string    `json:"evaluation_type"`
	EvaluatedAt    time.Time `json:"evaluated_at"`
}

const (
	MinRating = 1
	MaxRating = 5
)
