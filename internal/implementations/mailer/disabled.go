package mailer

import (
	"context"
	"resetpass/internal/core/domain/common"
)

// Disabled swallows every message. Used when notifications are switched
// off in configuration.
type Disabled struct{}

func NewDisabled() *Disabled {
	return &Disabled{}
}

func (d *Disabled) Send(ctx context.Context, to common.Email, subject string, htmlBody string) error {
	return nil
}
