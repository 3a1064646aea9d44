package mail

import (
	"context"
	"resetpass/internal/core/domain/common"
)

// Sender delivers one HTML message to one recipient. The sender address is
// fixed by configuration on the implementation.
type Sender interface {
	Send(ctx context.Context, to common.Email, subject string, htmlBody string) error
}
