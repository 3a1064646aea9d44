package reset

import (
	"context"
	"crypto/subtle"
	"resetpass/internal/core/domain/common"
	"time"
)

// SessionID is the opaque identifier binding the two phases of a reset.
// It is carried by the requester (cookie) and keys the stored request.
type SessionID string

type ConfirmationToken string

// Password is a freshly generated directory credential. It is held
// transiently, mailed once and never persisted.
type Password string

// Request is a pending reset bound to one session. Email always comes from
// the directory entry resolved in phase 1, never from user input.
type Request struct {
	Login     string
	Email     common.Email
	Token     ConfirmationToken
	CreatedAt time.Time
}

// TokenMatches reports whether the presented token confirms this request.
// Both tokens must be non-empty and byte-equal; comparison is constant
// time so validation does not leak how much of a guess matched.
func (r Request) TokenMatches(presented ConfirmationToken) bool {
	if presented == "" || r.Token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(r.Token)) == 1
}

// Repository stores pending requests server side with an expiry, so a
// stale token cannot be replayed indefinitely. Delete is the scrub step
// after a completed reset.
type Repository interface {
	Put(ctx context.Context, id SessionID, request Request, ttl time.Duration) error
	Get(ctx context.Context, id SessionID) (Request, error)
	Delete(ctx context.Context, id SessionID) error
}

type TokenGenerator interface {
	GenerateConfirmationToken() ConfirmationToken
}

type PasswordGenerator interface {
	GeneratePassword() Password
}

// Notifier formats and sends the two workflow emails. Sending is best
// effort; the workflow never retries and never fails on a send error.
type Notifier interface {
	SendConfirmationLink(ctx context.Context, to common.Email, login string, token ConfirmationToken) error
	SendNewPassword(ctx context.Context, to common.Email, login string, password Password) error
}
