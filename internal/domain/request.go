package domain

import (
	"fmt"
	"strings"
	"time"
)

// RequestStatus es el estado de una solicitud de colaboracion.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected:
		return true
	}
	return false
}

// Terminal indica que la solicitud ya no admite transiciones.
func (s RequestStatus) Terminal() bool {
	return s == RequestAccepted || s == RequestRejected
}

// CanTransitionTo valida la maquina de estados Pending -> {Accepted, Rejected}.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	return s == RequestPending && next.Terminal()
}

// Decision es la respuesta del mentor destino.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

func ParseDecision(raw string) (Decision, error) {
	switch Decision(strings.ToLower(strings.TrimSpace(raw))) {
	case DecisionAccept:
		return DecisionAccept, nil
	case DecisionReject:
		return DecisionReject, nil
	}
	return "", fmt.Errorf("%w: unknown decision %q", ErrValidation, raw)
}

// Status devuelve el estado terminal que produce la decision.
func (d Decision) Status() RequestStatus {
	if d == DecisionAccept {
		return RequestAccepted
	}
	return RequestRejected
}

// CollaborationRequest es una propuesta persistida. Guarda una foto de los
// rasgos al momento del envio.
type CollaborationRequest struct {
	ID                     string        `json:"id"`
	Tier                   Tier          `json:"tier"`
	Subtier                int           `json:"subtier"`
	InitiatingMentorshipID string        `json:"initiating_mentorship_id"`
	TargetMentorshipID     string        `json:"target_mentorship_id"`
	MatchedCategories      []string      `json:"matched_categories"`
	InitiatorStrengths     []string      `json:"initiator_strengths"`
	InitiatorWeaknesses    []string      `json:"initiator_weaknesses"`
	TargetStrengths        []string      `json:"target_strengths"`
	TargetWeaknesses       []string      `json:"target_weaknesses"`
	Status                 RequestStatus `json:"status"`
	CreatedAt              time.Time     `json:"created_at"`
	RespondedAt            *time.Time    `json:"responded_at,omitempty"`
}

// Involves indica si la mentoria participa en la solicitud.
func (r CollaborationRequest) Involves(mentorshipID string) bool {
	return r.InitiatingMentorshipID == mentorshipID || r.TargetMentorshipID == mentorshipID
}

// RequestDirection filtra solicitudes segun el rol de la mentoria.
type RequestDirection string

const (
	DirectionAll      RequestDirection = "all"
	DirectionIncoming RequestDirection = "incoming"
	DirectionOutgoing RequestDirection = "outgoing"
)

func ParseRequestDirection(raw string) (RequestDirection, error) {
	switch d := RequestDirection(strings.ToLower(strings.TrimSpace(raw))); d {
	case "":
		return DirectionAll, nil
	case DirectionAll, DirectionIncoming, DirectionOutgoing:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown direction %q", ErrValidation, raw)
}
