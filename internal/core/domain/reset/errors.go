package reset

import "errors"

var (
	ErrEmptyLogin       = errors.New("login is empty after cleaning")
	ErrNoMailAddress    = errors.New("directory entry has no mail address")
	ErrNoPendingRequest = errors.New("no pending reset request for this session")
	ErrTokenMismatch    = errors.New("confirmation token does not match the pending request")
)
