package notification

import (
	"context"
	"net/url"
	"testing"

	"resetpass/internal/core/domain/mail"

	"github.com/stretchr/testify/suite"
)

const TO = "jdupont@corp.example"
const LOGIN = "dupont"
const TOKEN = "abcdefabcdefabc"
const PASSWORD = "xk3mdr9a"

type testSuite struct {
	suite.Suite
	Sender   *mail.FakeSender
	Notifier *Notifier
}

func (suite *testSuite) SetupTest() {
	suite.Sender = mail.NewFakeSender()
	base, err := url.Parse("https://reset.corp.example/?step=change")
	suite.Nil(err)
	suite.Notifier = New(suite.Sender, *base)
}

func TestNotifier(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestConfirmationLinkContainsToken() {
	err := suite.Notifier.SendConfirmationLink(context.Background(), TO, LOGIN, TOKEN)

	suite.Nil(err)
	suite.Equal(1, len(suite.Sender.Sent))
	sent := suite.Sender.Sent[0]
	suite.Equal(TO, string(sent.To))
	suite.Equal("Password change request", sent.Subject)
	suite.Contains(sent.Body, LOGIN)
	suite.Contains(sent.Body, "step=change")
	suite.Contains(sent.Body, "token="+TOKEN)
}

func (suite *testSuite) TestNewPasswordMessage() {
	err := suite.Notifier.SendNewPassword(context.Background(), TO, LOGIN, PASSWORD)

	suite.Nil(err)
	suite.Equal(1, len(suite.Sender.Sent))
	sent := suite.Sender.Sent[0]
	suite.Equal(TO, string(sent.To))
	suite.Equal("Password change confirmation", sent.Subject)
	suite.Contains(sent.Body, LOGIN)
	suite.Contains(sent.Body, PASSWORD)
}

func (suite *testSuite) TestSendFailurePropagates() {
	suite.Sender.ReturnError = true

	err := suite.Notifier.SendConfirmationLink(context.Background(), TO, LOGIN, TOKEN)

	suite.NotNil(err)
}
