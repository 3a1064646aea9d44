package notification

import (
	"bytes"
	"context"
	"html/template"
	"net/url"
	"resetpass/internal/core/domain/common"
	e "resetpass/internal/core/domain/errors"
	"resetpass/internal/core/domain/mail"
	"resetpass/internal/core/domain/reset"
)

const confirmationSubject = "Password change request"
const newPasswordSubject = "Password change confirmation"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<html>
<head><title>Password change request</title></head>
<body>
Hello,<br><br>
A password change was requested for the account {{.Login}}. Follow this link to confirm the request:
<br><a href="{{.URL}}">Confirm the password change</a>
<br><br>If you did not make this request, please ignore this message.
<br><br>Regards,
<br><br>The IT service
</body>
</html>`))

var newPasswordTemplate = template.Must(template.New("password").Parse(`<html>
<head><title>Password change confirmation</title></head>
<body>
Hello,<br><br>
The password change for the account {{.Login}} has been carried out. Your new password is:
<br>{{.Password}}
<br><br>Please delete this message once you have memorized the new password.
<br><br>Regards,
<br><br>The IT service
</body>
</html>`))

// Notifier renders the two workflow messages and hands them to the
// configured transport.
type Notifier struct {
	sender         mail.Sender
	confirmBaseURL url.URL
}

func New(sender mail.Sender, confirmBaseURL url.URL) *Notifier {
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &Notifier{sender: sender, confirmBaseURL: confirmBaseURL}
}

func (n *Notifier) SendConfirmationLink(
	ctx context.Context,
	to common.Email,
	login string,
	token reset.ConfirmationToken,
) error {
	link := n.confirmBaseURL
	query := link.Query()
	query.Set("token", string(token))
	link.RawQuery = query.Encode()

	var body bytes.Buffer
	err := confirmationTemplate.Execute(&body, struct {
		Login string
		URL   string
	}{Login: login, URL: link.String()})
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, to, confirmationSubject, body.String())
}

func (n *Notifier) SendNewPassword(
	ctx context.Context,
	to common.Email,
	login string,
	password reset.Password,
) error {
	var body bytes.Buffer
	err := newPasswordTemplate.Execute(&body, struct {
		Login    string
		Password string
	}{Login: login, Password: string(password)})
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, to, newPasswordSubject, body.String())
}
