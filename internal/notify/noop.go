package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier logs escalations instead of delivering them. Used when no
// webhook is configured so the engine never has a nil notifier.
type NoOpNotifier struct {
	logger *slog.Logger
}

// NewNoOpNotifier creates a NoOpNotifier.
func NewNoOpNotifier(logger *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{logger: logger}
}

// SendEscalation logs the escalation and discards it.
func (n *NoOpNotifier) SendEscalation(_ context.Context, esc *EscalationPayload) error {
	n.logger.Info("escalation (notifications disabled)",
		"vehicle", esc.Vehicle,
		"reason", esc.Reason,
		"n_comps", esc.NComps,
		"floor", esc.Floor,
	)
	return nil
}
