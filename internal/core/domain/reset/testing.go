package reset

import (
	"context"
	"fmt"
	"resetpass/internal/core/domain/common"
	"sync"
	"time"
)

type FakeRepository struct {
	Requests map[SessionID]Request
	TTLs     map[SessionID]time.Duration

	PutErr    error
	GetErr    error
	DeleteErr error

	Deleted []SessionID
	lock    sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		Requests: make(map[SessionID]Request),
		TTLs:     make(map[SessionID]time.Duration),
	}
}

func (r *FakeRepository) Put(ctx context.Context, id SessionID, request Request, ttl time.Duration) error {
	if r.PutErr != nil {
		return r.PutErr
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Requests[id] = request
	r.TTLs[id] = ttl
	return nil
}

func (r *FakeRepository) Get(ctx context.Context, id SessionID) (Request, error) {
	if r.GetErr != nil {
		return Request{}, r.GetErr
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	request, ok := r.Requests[id]
	if !ok {
		return Request{}, ErrNoPendingRequest
	}
	return request, nil
}

func (r *FakeRepository) Delete(ctx context.Context, id SessionID) error {
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.Requests, id)
	r.Deleted = append(r.Deleted, id)
	return nil
}

type FakeTokenGenerator struct {
	Token ConfirmationToken
}

func NewFakeTokenGenerator(token string) *FakeTokenGenerator {
	return &FakeTokenGenerator{Token: ConfirmationToken(token)}
}

func (g *FakeTokenGenerator) GenerateConfirmationToken() ConfirmationToken {
	return g.Token
}

type FakePasswordGenerator struct {
	Password Password
}

func NewFakePasswordGenerator(password string) *FakePasswordGenerator {
	return &FakePasswordGenerator{Password: Password(password)}
}

func (g *FakePasswordGenerator) GeneratePassword() Password {
	return g.Password
}

type SentConfirmation struct {
	To    common.Email
	Login string
	Token ConfirmationToken
}

type SentPassword struct {
	To       common.Email
	Login    string
	Password Password
}

type FakeNotifier struct {
	Confirmations []SentConfirmation
	Passwords     []SentPassword
	ReturnError   bool
	lock          sync.Mutex
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (n *FakeNotifier) SendConfirmationLink(
	ctx context.Context,
	to common.Email,
	login string,
	token ConfirmationToken,
) error {
	if n.ReturnError {
		return fmt.Errorf("could not send confirmation link to %s", to)
	}
	n.lock.Lock()
	defer n.lock.Unlock()
	n.Confirmations = append(n.Confirmations, SentConfirmation{To: to, Login: login, Token: token})
	return nil
}

func (n *FakeNotifier) SendNewPassword(
	ctx context.Context,
	to common.Email,
	login string,
	password Password,
) error {
	if n.ReturnError {
		return fmt.Errorf("could not send new password to %s", to)
	}
	n.lock.Lock()
	defer n.lock.Unlock()
	n.Passwords = append(n.Passwords, SentPassword{To: to, Login: login, Password: password})
	return nil
}
