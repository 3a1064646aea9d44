package mail

import (
	"context"
	"fmt"
	"resetpass/internal/core/domain/common"
	"sync"
)

type SentMessage struct {
	To      common.Email
	Subject string
	Body    string
}

type FakeSender struct {
	Sent        []SentMessage
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (s *FakeSender) Send(ctx context.Context, to common.Email, subject string, htmlBody string) error {
	if s.ReturnError {
		return fmt.Errorf("could not send message to %s", to)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentMessage{To: to, Subject: subject, Body: htmlBody})
	return nil
}
