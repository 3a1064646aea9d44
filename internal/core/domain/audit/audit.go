package audit

import (
	"context"
	"resetpass/internal/core/domain/reset"
	"time"
)

type EventKind string

const (
	RequestSubmitted EventKind = "request_submitted"
	ConfirmationSent EventKind = "confirmation_sent"
	ResetCompleted   EventKind = "reset_completed"
	ResetFailed      EventKind = "reset_failed"
)

type Event struct {
	SessionID reset.SessionID
	Login     string
	Kind      EventKind
	Detail    string
	At        time.Time
}

// Log is an append-only record of workflow events. Recording is best
// effort: callers log failures and continue, a reset never fails because
// the audit store is down.
type Log interface {
	Record(ctx context.Context, event Event) error
}
