package directory

import (
	"context"
	"resetpass/internal/core/domain/common"
)

// Entry is a user entry read from the directory. The directory owns it;
// this service only ever reads the listed attributes and replaces the
// password attribute.
type Entry struct {
	DN          string
	CommonName  string
	Surname     string
	AccountName string
	Mail        common.Email
}

type BindMode int

const (
	// BindAnonymous is only ever used for lookups, never for writes.
	BindAnonymous BindMode = iota
	BindPrivileged
)

// Conn is a live directory connection. It is acquired for a single
// operation sequence and must be closed on every path; it is never cached
// across requests.
type Conn interface {
	Bind(ctx context.Context, mode BindMode) error
	FindBySurname(ctx context.Context, surname string) ([]Entry, error)
	FindByMail(ctx context.Context, mail common.Email) ([]Entry, error)
	ReplacePassword(ctx context.Context, dn string, encoded []byte) error
	Close()
}

type Directory interface {
	Connect(ctx context.Context) (Conn, error)
}
