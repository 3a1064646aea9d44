package services

import (
	"resetpass/internal/app/deps"
	drl "resetpass/internal/core/domain/rate_limiter"
	"resetpass/internal/core/services"
	confirmreset "resetpass/internal/core/services/confirm_reset"
	"resetpass/internal/core/services/ratelimiting"
	requestreset "resetpass/internal/core/services/request_reset"
)

type Services struct {
	RequestReset services.Service[requestreset.Input, requestreset.Result]
	ConfirmReset services.Service[confirmreset.Input, confirmreset.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.RequestReset = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		requestreset.New(
			deps.Logger,
			deps.Directory,
			deps.ResetRepository,
			deps.TokenGenerator,
			deps.Notifier,
			deps.AuditLog,
			deps.Config.LdapAnonymousLookup,
			deps.Config.ResetRequestTTL,
			deps.Now,
		),
	)
	s.ConfirmReset = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		confirmreset.New(
			deps.Logger,
			deps.Directory,
			deps.ResetRepository,
			deps.PasswordGenerator,
			deps.Notifier,
			deps.AuditLog,
			deps.Now,
		),
	)

	return s
}
