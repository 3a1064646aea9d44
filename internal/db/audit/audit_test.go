package audit

import (
	"context"
	"resetpass/internal/core/domain/audit"
	"resetpass/internal/db"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var Now time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

const SESSION_ID = "0d7f4a58-2a2e-4fbc-9a3e-1f9a0c62d7af"
const OTHER_SESSION_ID = "d1a3f7e1-76b1-47d9-b7f0-2c4f0d9f3e21"
const LOGIN = "dupont"

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	log  *PgxAuditLog
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.log = NewPgxAuditLog(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxAuditLog(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestRecordAndList() {
	ctx := context.Background()
	events := []audit.Event{
		{SessionID: SESSION_ID, Login: LOGIN, Kind: audit.RequestSubmitted, At: Now},
		{SessionID: SESSION_ID, Login: LOGIN, Kind: audit.ConfirmationSent, At: Now.Add(time.Second)},
		{SessionID: SESSION_ID, Login: LOGIN, Kind: audit.ResetCompleted, At: Now.Add(time.Minute)},
	}
	for _, event := range events {
		err := s.log.Record(ctx, event)
		s.Nil(err)
	}

	recorded, err := s.log.ListBySession(ctx, SESSION_ID)

	s.Nil(err)
	s.Equal(len(events), len(recorded))
	for ix, event := range events {
		s.Equal(event.SessionID, recorded[ix].SessionID)
		s.Equal(event.Login, recorded[ix].Login)
		s.Equal(event.Kind, recorded[ix].Kind)
		s.True(event.At.Equal(recorded[ix].At))
	}
}

func (s *testSuite) TestRecordKeepsDetail() {
	ctx := context.Background()
	err := s.log.Record(ctx, audit.Event{
		SessionID: SESSION_ID,
		Login:     LOGIN,
		Kind:      audit.ResetFailed,
		Detail:    "directory rejected the password write",
		At:        Now,
	})
	s.Nil(err)

	recorded, err := s.log.ListBySession(ctx, SESSION_ID)

	s.Nil(err)
	s.Equal(1, len(recorded))
	s.Equal("directory rejected the password write", recorded[0].Detail)
}

func (s *testSuite) TestListFiltersBySession() {
	ctx := context.Background()
	err := s.log.Record(ctx, audit.Event{SessionID: SESSION_ID, Login: LOGIN, Kind: audit.RequestSubmitted, At: Now})
	s.Nil(err)
	err = s.log.Record(ctx, audit.Event{SessionID: OTHER_SESSION_ID, Login: "martin", Kind: audit.RequestSubmitted, At: Now})
	s.Nil(err)

	recorded, err := s.log.ListBySession(ctx, OTHER_SESSION_ID)

	s.Nil(err)
	s.Equal(1, len(recorded))
	s.Equal("martin", recorded[0].Login)
}

func (s *testSuite) TestListUnknownSessionIsEmpty() {
	recorded, err := s.log.ListBySession(context.Background(), "unknown-session")

	s.Nil(err)
	s.Equal(0, len(recorded))
}
