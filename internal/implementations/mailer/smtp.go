package mailer

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/smtp"
	"resetpass/internal/core/domain/common"
	"time"
)

// SMTP delivers mail through a relay that authorizes by source address,
// so no SASL auth is performed.
type SMTP struct {
	relayAddress string
	sender       string
	timeout      time.Duration
}

func NewSMTP(relayAddress string, sender string, timeout time.Duration) *SMTP {
	return &SMTP{relayAddress: relayAddress, sender: sender, timeout: timeout}
}

func (s *SMTP) Send(ctx context.Context, to common.Email, subject string, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	conn, err := net.DialTimeout("tcp", s.relayAddress, s.timeout)
	if err != nil {
		return fmt.Errorf("could not dial SMTP relay: %w", err)
	}
	if err := conn.SetDeadline(time.Now().Add(s.timeout)); err != nil {
		conn.Close()
		return err
	}

	host, _, err := net.SplitHostPort(s.relayAddress)
	if err != nil {
		host = s.relayAddress
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("could not start SMTP session: %w", err)
	}
	defer client.Close()

	if err := client.Mail(s.sender); err != nil {
		return err
	}
	if err := client.Rcpt(string(to)); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write(buildMessage(s.sender, to, subject, htmlBody)); err != nil {
		writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// buildMessage assembles the wire message. The body is always sent as
// HTML with an explicit UTF-8 charset.
func buildMessage(from string, to common.Email, subject string, htmlBody string) []byte {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")
	return msg.Bytes()
}
