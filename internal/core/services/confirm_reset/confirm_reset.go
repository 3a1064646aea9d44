package confirmreset

import (
	"context"
	"errors"
	"resetpass/internal/core/domain/audit"
	"resetpass/internal/core/domain/common"
	"resetpass/internal/core/domain/directory"
	e "resetpass/internal/core/domain/errors"
	"resetpass/internal/core/domain/logging"
	"resetpass/internal/core/domain/reset"
	"resetpass/internal/core/services"
	"time"
)

type Input struct {
	SessionID reset.SessionID
	Token     reset.ConfirmationToken
}

func (i Input) GetRateLimitKey() string {
	return "confirm-reset::" + string(i.SessionID)
}

type Result struct {
	Login string
	Email common.Email
}

type service struct {
	log               logging.Logger
	directory         directory.Directory
	repository        reset.Repository
	passwordGenerator reset.PasswordGenerator
	notifier          reset.Notifier
	auditLog          audit.Log
	now               func() time.Time
}

func New(
	log logging.Logger,
	dir directory.Directory,
	repository reset.Repository,
	passwordGenerator reset.PasswordGenerator,
	notifier reset.Notifier,
	auditLog audit.Log,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if dir == nil {
		panic(e.NewNilArgumentError("dir"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	if passwordGenerator == nil {
		panic(e.NewNilArgumentError("passwordGenerator"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	if auditLog == nil {
		panic(e.NewNilArgumentError("auditLog"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		directory:         dir,
		repository:        repository,
		passwordGenerator: passwordGenerator,
		notifier:          notifier,
		auditLog:          auditLog,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	request, err := s.repository.Get(ctx, input.SessionID)
	if err != nil {
		if !errors.Is(err, reset.ErrNoPendingRequest) && !errors.Is(err, context.Canceled) {
			s.log.Error(
				ctx,
				"Could not load pending reset request.",
				logging.Entry("sessionID", input.SessionID),
				logging.Entry("err", err),
			)
		}
		return result, err
	}
	if !request.TokenMatches(input.Token) {
		s.log.Info(ctx, "Presented token does not match.", logging.Entry("sessionID", input.SessionID))
		s.failed(ctx, input.SessionID, request.Login, reset.ErrTokenMismatch)
		return result, reset.ErrTokenMismatch
	}
	if request.Email.IsEmpty() {
		// A pending request without a bound address cannot be acted on.
		s.failed(ctx, input.SessionID, request.Login, reset.ErrNoPendingRequest)
		return result, reset.ErrNoPendingRequest
	}

	conn, err := s.directory.Connect(ctx)
	if err != nil {
		s.failed(ctx, input.SessionID, request.Login, err)
		return result, err
	}
	defer conn.Close()

	// Writes always run under the privileged account, even when anonymous
	// lookups are configured.
	if err := conn.Bind(ctx, directory.BindPrivileged); err != nil {
		s.failed(ctx, input.SessionID, request.Login, err)
		return result, err
	}

	entries, err := conn.FindByMail(ctx, request.Email)
	if err != nil {
		s.failed(ctx, input.SessionID, request.Login, err)
		return result, err
	}
	switch {
	case len(entries) == 0:
		s.log.Warning(ctx, "Bound address no longer resolves to an entry.", logging.Entry("sessionID", input.SessionID))
		s.failed(ctx, input.SessionID, request.Login, directory.ErrNotFound)
		return result, directory.ErrNotFound
	case len(entries) > 1:
		s.log.Warning(
			ctx,
			"Bound address resolves to more than one entry, refusing to write.",
			logging.Entry("sessionID", input.SessionID),
			logging.Entry("count", len(entries)),
		)
		s.failed(ctx, input.SessionID, request.Login, directory.ErrAmbiguous)
		return result, directory.ErrAmbiguous
	}
	entry := entries[0]

	password := s.passwordGenerator.GeneratePassword()
	if err := conn.ReplacePassword(ctx, entry.DN, directory.EncodePassword(string(password))); err != nil {
		// The pending request is kept so the failure can be diagnosed and
		// the confirmation retried.
		s.log.Error(
			ctx,
			"Directory rejected the password write.",
			logging.Entry("sessionID", input.SessionID),
			logging.Entry("dn", entry.DN),
			logging.Entry("err", err),
		)
		s.failed(ctx, input.SessionID, request.Login, err)
		return result, err
	}

	// Scrub the pending request unconditionally: the token is single use.
	if err := s.repository.Delete(ctx, input.SessionID); err != nil {
		s.log.Error(
			ctx,
			"Could not scrub completed reset request.",
			logging.Entry("sessionID", input.SessionID),
			logging.Entry("err", err),
		)
	}

	if err := s.notifier.SendNewPassword(ctx, request.Email, request.Login, password); err != nil {
		// The directory write has already committed; the send is not
		// retried and does not fail the workflow.
		s.log.Warning(
			ctx,
			"Could not send new password message.",
			logging.Entry("sessionID", input.SessionID),
			logging.Entry("err", err),
		)
	}
	s.audit(ctx, input.SessionID, request.Login, audit.ResetCompleted, entry.DN)

	s.log.Info(
		ctx,
		"Password reset completed.",
		logging.Entry("sessionID", input.SessionID),
		logging.Entry("login", request.Login),
	)
	return Result{Login: request.Login, Email: request.Email}, nil
}

func (s *service) failed(ctx context.Context, id reset.SessionID, login string, cause error) {
	s.audit(ctx, id, login, audit.ResetFailed, cause.Error())
}

func (s *service) audit(ctx context.Context, id reset.SessionID, login string, kind audit.EventKind, detail string) {
	err := s.auditLog.Record(ctx, audit.Event{
		SessionID: id,
		Login:     login,
		Kind:      kind,
		Detail:    detail,
		At:        s.now(),
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.Error(ctx, "Could not record audit event.", logging.Entry("err", err))
	}
}
