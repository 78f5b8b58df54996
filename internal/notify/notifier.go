// Package notify defines the notification interface and implementations
// for escalation delivery.
package notify

import (
	"context"
)

// EscalationPayload contains the data needed to alert a human that a pricing
// request refused to price itself.
type EscalationPayload struct {
	Vehicle  string // e.g. "2020 Chevrolet Silverado 2500"
	Location string
	Reason   string
	NComps   int
	Floor    bool // heavy-duty floor clamp fired
	Notes    []string
}

// Notifier defines the interface for sending escalation notifications.
type Notifier interface {
	SendEscalation(ctx context.Context, esc *EscalationPayload) error
}
