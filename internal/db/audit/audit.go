package audit

import (
	"context"
	"resetpass/internal/core/domain/audit"
	e "resetpass/internal/core/domain/errors"
	"resetpass/internal/core/domain/reset"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// DBTX is satisfied by both pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

type PgxAuditLog struct {
	db DBTX
}

func NewPgxAuditLog(db DBTX) *PgxAuditLog {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxAuditLog{db: db}
}

func (l *PgxAuditLog) Record(ctx context.Context, event audit.Event) error {
	_, err := l.db.Exec(
		ctx,
		`INSERT INTO audit_event (session_id, login, kind, detail, occurred_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		string(event.SessionID),
		event.Login,
		string(event.Kind),
		event.Detail,
		event.At,
	)
	return err
}

// ListBySession returns the recorded events for one session, oldest first.
func (l *PgxAuditLog) ListBySession(ctx context.Context, id reset.SessionID) ([]audit.Event, error) {
	rows, err := l.db.Query(
		ctx,
		`SELECT session_id, login, kind, detail, occurred_at
		 FROM audit_event WHERE session_id = $1 ORDER BY occurred_at, id`,
		string(id),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]audit.Event, 0)
	for rows.Next() {
		var sessionID, login, kind, detail string
		var event audit.Event
		if err := rows.Scan(&sessionID, &login, &kind, &detail, &event.At); err != nil {
			return nil, err
		}
		event.SessionID = reset.SessionID(sessionID)
		event.Login = login
		event.Kind = audit.EventKind(kind)
		event.Detail = detail
		events = append(events, event)
	}
	return events, rows.Err()
}
