// Package notify is the fire-and-forget notification channel the stores
// report mutation outcomes to. The stores never depend on how, or whether,
// a notification is rendered.
package notify

import "go.uber.org/zap"

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

type Notifier interface {
	Notify(title, message string, severity Severity)
}

// LogNotifier renders notifications into the service log.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(title, message string, severity Severity) {
	if n.log == nil {
		return
	}

	fields := []zap.Field{
		zap.String("title", title),
		zap.String("message", message),
	}

	if severity == SeverityError {
		n.log.Warn("notification", fields...)
		return
	}
	n.log.Info("notification", fields...)
}

// Nop swallows notifications; used in tests.
type Nop struct{}

func (Nop) Notify(string, string, Severity) {}
