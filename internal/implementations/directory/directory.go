package directory

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"resetpass/internal/core/domain/common"
	"resetpass/internal/core/domain/directory"
	e "resetpass/internal/core/domain/errors"
	"resetpass/internal/core/domain/logging"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/sethvargo/go-retry"
)

// Attributes read from matched entries.
var searchAttributes = []string{"cn", "sn", "sAMAccountName", "mail"}

type Config struct {
	// URL of the directory server, e.g. ldaps://dc01.example.com:636.
	URL          string
	BaseDN       string
	BindDN       string
	BindPassword string
	// Timeout applies to the dial and to every subsequent operation on
	// the connection.
	Timeout time.Duration
	// InsecureSkipTLSVerify disables certificate verification for
	// deployments where the directory presents an internal certificate.
	InsecureSkipTLSVerify bool
}

// LDAP connects to an LDAPv3 directory. Referrals are not followed, so
// search results are deterministic for the configured base DN.
type LDAP struct {
	cfg Config
	log logging.Logger
}

func NewLDAP(cfg Config, log logging.Logger) *LDAP {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &LDAP{cfg: cfg, log: log}
}

// Connect dials the directory. A transient dial failure is retried once
// with a short constant backoff; nothing else is retried.
func (d *LDAP) Connect(ctx context.Context) (directory.Conn, error) {
	dialOpts := []ldap.DialOpt{
		ldap.DialWithDialer(&net.Dialer{Timeout: d.cfg.Timeout}),
	}
	if d.cfg.InsecureSkipTLSVerify {
		dialOpts = append(dialOpts, ldap.DialWithTLSConfig(&tls.Config{InsecureSkipVerify: true}))
	}

	var c *ldap.Conn
	backoff := retry.WithMaxRetries(1, retry.NewConstant(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var dialErr error
		c, dialErr = ldap.DialURL(d.cfg.URL, dialOpts...)
		if dialErr != nil {
			d.log.Warning(ctx, "Could not dial directory.", logging.Entry("url", d.cfg.URL), logging.Entry("err", dialErr))
			return retry.RetryableError(dialErr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", directory.ErrUnavailable, err)
	}

	c.SetTimeout(d.cfg.Timeout)
	return &conn{c: c, cfg: d.cfg, log: d.log}, nil
}

type conn struct {
	c   *ldap.Conn
	cfg Config
	log logging.Logger
}

func (c *conn) Bind(ctx context.Context, mode directory.BindMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	switch mode {
	case directory.BindAnonymous:
		err = c.c.UnauthenticatedBind("")
	default:
		err = c.c.Bind(c.cfg.BindDN, c.cfg.BindPassword)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", directory.ErrBindFailed, err)
	}
	return nil
}

func (c *conn) FindBySurname(ctx context.Context, surname string) ([]directory.Entry, error) {
	filter := fmt.Sprintf(
		"(&(objectClass=user)(objectCategory=person)(sn=%s*))",
		ldap.EscapeFilter(surname),
	)
	return c.search(ctx, filter)
}

func (c *conn) FindByMail(ctx context.Context, mail common.Email) ([]directory.Entry, error) {
	filter := fmt.Sprintf(
		"(&(objectClass=user)(objectCategory=person)(mail=%s*))",
		ldap.EscapeFilter(string(mail)),
	)
	return c.search(ctx, filter)
}

func (c *conn) search(ctx context.Context, filter string) ([]directory.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.log.Debug(ctx, "Directory search.", logging.Entry("filter", filter))

	request := ldap.NewSearchRequest(
		c.cfg.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0,
		0,
		false,
		filter,
		searchAttributes,
		nil,
	)
	result, err := c.c.Search(request)
	if err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultNoSuchObject) {
			return nil, nil
		}
		return nil, fmt.Errorf("directory search failed: %w", err)
	}

	entries := make([]directory.Entry, 0, len(result.Entries))
	for _, found := range result.Entries {
		entries = append(entries, directory.Entry{
			DN:          found.DN,
			CommonName:  found.GetAttributeValue("cn"),
			Surname:     found.GetAttributeValue("sn"),
			AccountName: found.GetAttributeValue("sAMAccountName"),
			Mail:        common.Email(found.GetAttributeValue("mail")),
		})
	}
	return entries, nil
}

func (c *conn) ReplacePassword(ctx context.Context, dn string, encoded []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	request := ldap.NewModifyRequest(dn, nil)
	request.Replace(directory.PasswordAttribute, []string{string(encoded)})
	if err := c.c.Modify(request); err != nil {
		return fmt.Errorf("%w: %v", directory.ErrWriteRejected, err)
	}
	return nil
}

func (c *conn) Close() {
	c.c.Close()
}
