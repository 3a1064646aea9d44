package confirmreset

import (
	"context"
	"resetpass/internal/core/domain/audit"
	"resetpass/internal/core/domain/common"
	"resetpass/internal/core/domain/directory"
	"resetpass/internal/core/domain/logging"
	"resetpass/internal/core/domain/reset"
	"resetpass/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	SESSION_ID = reset.SessionID("test-session-id")
	LOGIN      = "jdupont"
	EMAIL      = common.Email("jdupont@mail.suffix.com")
	TOKEN      = reset.ConfirmationToken("wgxzmrvkafjdnbt")
	PASSWORD   = "abdefgkm"
	ENTRY_DN   = "CN=Jean Dupont,OU=Users,DC=example,DC=com"
)

var NOW = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger     *logging.FakeLogger
	Directory  *directory.FakeDirectory
	Repository *reset.FakeRepository
	Notifier   *reset.FakeNotifier
	AuditLog   *audit.FakeLog
	service    services.Service[Input, Result]
}

func TestConfirmResetService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.Logger = logging.NewFakeLogger()
	s.Directory = directory.NewFakeDirectory()
	s.Repository = reset.NewFakeRepository()
	s.Notifier = reset.NewFakeNotifier()
	s.AuditLog = audit.NewFakeLog()
	s.service = New(
		s.Logger,
		s.Directory,
		s.Repository,
		reset.NewFakePasswordGenerator(PASSWORD),
		s.Notifier,
		s.AuditLog,
		func() time.Time { return NOW },
	)
}

func (s *testSuite) pendingRequest() {
	s.Repository.Requests[SESSION_ID] = reset.Request{
		Login:     LOGIN,
		Email:     EMAIL,
		Token:     TOKEN,
		CreatedAt: NOW,
	}
}

func (s *testSuite) addEntry(mail common.Email, dn string) {
	s.Directory.Conn.ByMail[mail] = append(s.Directory.Conn.ByMail[mail], directory.Entry{
		DN:          dn,
		CommonName:  "Jean Dupont",
		Surname:     "dupont",
		AccountName: LOGIN,
		Mail:        mail,
	})
}

func (s *testSuite) TestSuccess() {
	s.pendingRequest()
	s.addEntry(EMAIL, ENTRY_DN)

	result, err := s.service.Run(context.Background(), Input{SessionID: SESSION_ID, Token: TOKEN})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(LOGIN, result.Login)
	assert.Equal(EMAIL, result.Email)

	// The write targets the resolved DN with the quoted UTF-16LE value.
	assert.Len(s.Directory.Conn.Replaced, 1)
	assert.Equal(ENTRY_DN, s.Directory.Conn.Replaced[0].DN)
	assert.Equal(directory.EncodePassword(PASSWORD), s.Directory.Conn.Replaced[0].Encoded)

	// Phase 2 always binds with the privileged account.
	assert.Equal([]directory.BindMode{directory.BindPrivileged}, s.Directory.Conn.Binds)
	assert.Equal(1, s.Directory.Conn.CloseCount)

	// Session state is scrubbed and the credential is mailed once.
	assert.Empty(s.Repository.Requests)
	assert.Equal([]reset.SessionID{SESSION_ID}, s.Repository.Deleted)
	assert.Len(s.Notifier.Passwords, 1)
	assert.Equal(EMAIL, s.Notifier.Passwords[0].To)
	assert.Equal(reset.Password(PASSWORD), s.Notifier.Passwords[0].Password)

	assert.Equal([]audit.EventKind{audit.ResetCompleted}, s.AuditLog.Kinds())
}

func (s *testSuite) TestNoPendingRequest() {
	_, err := s.service.Run(context.Background(), Input{SessionID: SESSION_ID, Token: TOKEN})

	assert := s.Require()
	assert.ErrorIs(err, reset.ErrNoPendingRequest)
	assert.Equal(0, s.Directory.ConnectCount)
	assert.Empty(s.Directory.Conn.Replaced)
}

func (s *testSuite) TestTokenMismatch() {
	cases := []struct {
		id        string
		presented reset.ConfirmationToken
	}{
		{id: "empty", presented: ""},
		{id: "wrong", presented: "definitelynotit"},
		{id: "prefix", presented: TOKEN[:5]},
	}
	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			s.SetupTest()
			s.pendingRequest()
			s.addEntry(EMAIL, ENTRY_DN)

			_, err := s.service.Run(context.Background(), Input{SessionID: SESSION_ID, Token: testcase.presented})

			assert := s.Require()
			assert.ErrorIs(err, reset.ErrTokenMismatch)
			// No directory connection, no mutation.
			assert.Equal(0, s.Directory.ConnectCount)
			assert.Empty(s.Directory.Conn.Replaced)
			// The pending request is untouched.
			_, ok := s.Repository.Requests[SESSION_ID]
			assert.True(ok)
		})
	}
}

func (s *testSuite) TestRequestWithoutBoundEmail() {
	s.Repository.Requests[SESSION_ID] = reset.Request{Login: LOGIN, Token: TOKEN, CreatedAt: NOW}

	_, err := s.service.Run(context.Background(), Input{SessionID: SESSION_ID, Token: TOKEN})

	assert := s.Require()
	assert.ErrorIs(err, reset.ErrNoPendingRequest)
	assert.Equal(0, s.Directory.ConnectCount)
}

func (s *testSuite) TestMailNoLongerResolves() {
	s.pendingRequest()

	_, err := s.service.Run(context.Background(), Input{SessionID: SESSION_ID, Token: TOKEN})

	assert := s.Require()
	assert.ErrorIs(err, directory.ErrNotFound)
	assert.Empty(s.Directory.Conn.Replaced)
	assert.Empty(s.Notifier.Passwords)
	assert.Equal(1, s.Directory.Conn.CloseCount)
}

func (s *testSuite) TestAmbiguousMailRefusesToWrite() {
	s.pendingRequest()
	s.addEntry(EMAIL, ENTRY_DN)
	s.addEntry(EMAIL, "CN=Jeanne Dupont,OU=Users,DC=example,DC=com")

	_, err := s.service.Run(context.Background(), Input{SessionID: SESSION_ID, Token: TOKEN})

	assert := s.Require()
	assert.ErrorIs(err, directory.ErrAmbiguous)
	assert.Empty(s.Directory.Conn.Replaced)
	assert.Empty(s.Notifier.Passwords)
	// Ambiguity is not a completed reset, the request stays pending.
	_, ok := s.Repository.Requests[SESSION_ID]
	assert.True(ok)
}

func (s *testSuite) TestWriteFailureKeepsRequest() {
	s.pendingRequest()
	s.addEntry(EMAIL, ENTRY_DN)
	s.Directory.Conn.WriteErr = directory.ErrWriteRejected

	_, err := s.service.Run(context.Background(), Input{SessionID: SESSION_ID, Token: TOKEN})

	assert := s.Require()
	assert.ErrorIs(err, directory.ErrWriteRejected)
	// No scrub and no credential email on a rejected write.
	_, ok := s.Repository.Requests[SESSION_ID]
	assert.True(ok)
	assert.Empty(s.Repository.Deleted)
	assert.Empty(s.Notifier.Passwords)
	assert.Equal(1, s.Directory.Conn.CloseCount)
	assert.Equal([]audit.EventKind{audit.ResetFailed}, s.AuditLog.Kinds())
}

func (s *testSuite) TestSecondConfirmAfterCompletion() {
	s.pendingRequest()
	s.addEntry(EMAIL, ENTRY_DN)

	_, err := s.service.Run(context.Background(), Input{SessionID: SESSION_ID, Token: TOKEN})
	s.Require().Nil(err)

	// Resubmitting the same token behaves exactly like a session with no
	// pending request.
	_, err = s.service.Run(context.Background(), Input{SessionID: SESSION_ID, Token: TOKEN})

	assert := s.Require()
	assert.ErrorIs(err, reset.ErrNoPendingRequest)
	assert.Len(s.Directory.Conn.Replaced, 1)
	assert.Len(s.Notifier.Passwords, 1)
}

func (s *testSuite) TestSendFailureStillSucceeds() {
	s.pendingRequest()
	s.addEntry(EMAIL, ENTRY_DN)
	s.Notifier.ReturnError = true

	_, err := s.service.Run(context.Background(), Input{SessionID: SESSION_ID, Token: TOKEN})

	assert := s.Require()
	assert.Nil(err)
	assert.Len(s.Directory.Conn.Replaced, 1)
	assert.Empty(s.Repository.Requests)
}
