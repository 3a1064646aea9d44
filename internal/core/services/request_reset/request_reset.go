package requestreset

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
	Login     string
}

func (i Input) GetRateLimitKey() string {
	return "request-reset::" + common.CleanLower(i.Login)
}

type Result struct {
	Email common.Email
}

type service struct {
	log             logging.Logger
	directory       directory.Directory
	repository      reset.Repository
	tokenGenerator  reset.TokenGenerator
	notifier        reset.Notifier
	auditLog        audit.Log
	anonymousLookup bool
	requestTTL      time.Duration
	now             func() time.Time
}

func New(
	log logging.Logger,
	dir directory.Directory,
	repository reset.Repository,
	tokenGenerator reset.TokenGenerator,
	notifier reset.Notifier,
	auditLog audit.Log,
	anonymousLookup bool,
	requestTTL time.Duration,
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
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
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
		log:             log,
		directory:       dir,
		repository:      repository,
		tokenGenerator:  tokenGenerator,
		notifier:        notifier,
		auditLog:        auditLog,
		anonymousLookup: anonymousLookup,
		requestTTL:      requestTTL,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	login := common.CleanLower(input.Login)
	if login == "" {
		return result, reset.ErrEmptyLogin
	}
	s.audit(ctx, input.SessionID, login, audit.RequestSubmitted, "")

	conn, err := s.directory.Connect(ctx)
	if err != nil {
		s.failed(ctx, input.SessionID, login, err)
		return result, err
	}
	defer conn.Close()

	bindMode := directory.BindPrivileged
	if s.anonymousLookup {
		bindMode = directory.BindAnonymous
	}
	if err := conn.Bind(ctx, bindMode); err != nil {
		s.failed(ctx, input.SessionID, login, err)
		return result, err
	}

	entries, err := conn.FindBySurname(ctx, login)
	if err != nil {
		s.failed(ctx, input.SessionID, login, err)
		return result, err
	}
	switch {
	case len(entries) == 0:
		s.log.Info(ctx, "No directory entry for login.", logging.Entry("login", login))
		s.failed(ctx, input.SessionID, login, directory.ErrNotFound)
		return result, directory.ErrNotFound
	case len(entries) > 1:
		s.log.Warning(
			ctx,
			"Login matched more than one directory entry, refusing to pick one.",
			logging.Entry("login", login),
			logging.Entry("count", len(entries)),
		)
		s.failed(ctx, input.SessionID, login, directory.ErrAmbiguous)
		return result, directory.ErrAmbiguous
	}

	entry := entries[0]
	if entry.Mail.IsEmpty() {
		s.log.Warning(ctx, "Directory entry has no mail attribute.", logging.Entry("dn", entry.DN))
		s.failed(ctx, input.SessionID, login, reset.ErrNoMailAddress)
		return result, reset.ErrNoMailAddress
	}

	token := s.tokenGenerator.GenerateConfirmationToken()
	request := reset.Request{
		Login:     login,
		Email:     entry.Mail,
		Token:     token,
		CreatedAt: s.now(),
	}
	if err := s.repository.Put(ctx, input.SessionID, request, s.requestTTL); err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Error(
				ctx,
				"Could not store pending reset request.",
				logging.Entry("sessionID", input.SessionID),
				logging.Entry("err", err),
			)
		}
		return result, err
	}

	if err := s.notifier.SendConfirmationLink(ctx, entry.Mail, login, token); err != nil {
		// Request submission still reads as successful to the caller, the
		// pending request stays valid until it expires.
		s.log.Warning(
			ctx,
			"Could not send confirmation link.",
			logging.Entry("sessionID", input.SessionID),
			logging.Entry("err", err),
		)
	}
	s.audit(ctx, input.SessionID, login, audit.ConfirmationSent, string(entry.Mail))

	s.log.Info(
		ctx,
		"Reset request accepted, confirmation link sent.",
		logging.Entry("sessionID", input.SessionID),
		logging.Entry("login", login),
	)
	return Result{Email: entry.Mail}, nil
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
