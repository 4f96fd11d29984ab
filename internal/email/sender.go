package email

import (
	"context"
	"errors"
)

// RequestNotice describe una solicitud nueva para avisar a la mentoria destino.
type RequestNotice struct {
	RequestID           string
	ToEmail             string
	ToName              string
	InitiatorName       string
	InitiatorEnterprise string
	TierName            string
	MatchedCategories   []string
}

// DecisionNotice describe la respuesta a una solicitud para avisar al iniciador.
type DecisionNotice struct {
	RequestID       string
	ToEmail         string
	ToName          string
	TargetName      string
	Decision        string
	CollaborationID string
}

// Sender define la interfaz para los avisos de colaboracion.
type Sender interface {
	SendRequestReceived(ctx context.Context, notice RequestNotice) error
	SendRequestDecision(ctx context.Context, notice DecisionNotice) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendRequestReceived(_ context.Context, _ RequestNotice) error {
	return s.err()
}

func (s *disabledSender) SendRequestDecision(_ context.Context, _ DecisionNotice) error {
	return s.err()
}

func (s *disabledSender) err() error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
