package service

import (
	"errors"
	"fmt"
	"log/slog"

	"scrapedesk/internal/activity"
	"scrapedesk/internal/core/domain"
	"scrapedesk/internal/core/ports"
)

// reportFailure turns a network-path error into an operator alert plus an
// activity entry. op names the operation, e.g. "category load".
func reportFailure(n ports.Notifier, log *activity.Log, logger *slog.Logger, op string, err error) {
	var rejected *domain.RequestRejected
	if errors.As(err, &rejected) {
		msg := rejected.Message
		if msg == "" {
			msg = "unknown error"
		}
		n.Alert(fmt.Sprintf("%s failed: %s", op, msg))
		log.Record(op+" failed: server rejected", rejected.Payload)
		logger.Warn("server rejected request", "op", op, "status", rejected.Status, "message", rejected.Message)
		return
	}

	n.Alert(fmt.Sprintf("%s failed: %v", op, err))
	log.Record(op+" error: request failed", map[string]any{"error": err.Error()})
	logger.Warn("request failed", "op", op, "err", err)
}
