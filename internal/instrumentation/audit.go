package instrumentation

import (
	"log/slog"
	"strings"

	"github.com/jsievers/mailbridge/internal/logging"
)

// AuditLogger emits structured audit entries for operations that change
// mailbox state or send mail. Entries carry recipients anonymized unless
// PII inclusion is explicitly enabled; audit output shares the stderr
// log stream.
type AuditLogger struct {
	logger     *slog.Logger
	enabled    bool
	includePII bool
}

// NewAuditLogger builds an audit logger from the instrumentation config.
func NewAuditLogger(logger *slog.Logger, config Config) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger.With(slog.String("log_type", "audit")),
		enabled:    config.AuditEnabled,
		includePII: config.AuditIncludePII,
	}
}

func (a *AuditLogger) recipients(addrs []string) string {
	if a.includePII {
		return strings.Join(addrs, ", ")
	}
	hashed := make([]string, len(addrs))
	for i, addr := range addrs {
		hashed[i] = logging.AnonymizeEmail(addr)
	}
	return strings.Join(hashed, ", ")
}

// EmailSent records a successful send.
func (a *AuditLogger) EmailSent(messageID string, to []string) {
	if !a.enabled {
		return
	}
	a.logger.Info("email sent",
		slog.String("event", "email_sent"),
		slog.String("message_id", messageID),
		slog.String("recipients", a.recipients(to)),
	)
}

// DraftCreated records draft creation.
func (a *AuditLogger) DraftCreated(draftID string, to []string) {
	if !a.enabled {
		return
	}
	a.logger.Info("draft created",
		slog.String("event", "draft_created"),
		slog.String("draft_id", draftID),
		slog.String("recipients", a.recipients(to)),
	)
}

// MessageTrashed records a trash operation.
func (a *AuditLogger) MessageTrashed(messageID string) {
	if !a.enabled {
		return
	}
	a.logger.Info("message trashed",
		slog.String("event", "message_trashed"),
		slog.String("message_id", messageID),
	)
}

// LabelApplied records a label being applied to a message.
func (a *AuditLogger) LabelApplied(messageID, labelName string) {
	if !a.enabled {
		return
	}
	a.logger.Info("label applied",
		slog.String("event", "label_applied"),
		slog.String("message_id", messageID),
		slog.String("label", labelName),
	)
}

// ConsentCompleted records a finished interactive consent flow.
func (a *AuditLogger) ConsentCompleted() {
	if !a.enabled {
		return
	}
	a.logger.Info("oauth consent completed",
		slog.String("event", "consent_completed"),
	)
}
