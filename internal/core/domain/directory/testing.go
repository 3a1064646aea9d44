package directory

import (
	"context"
	"resetpass/internal/core/domain/common"
	"sync"
)

type ReplacedPassword struct {
	DN      string
	Encoded []byte
}

type FakeConn struct {
	BySurname map[string][]Entry
	ByMail    map[common.Email][]Entry

	BindErr   error
	SearchErr error
	WriteErr  error

	Binds      []BindMode
	Replaced   []ReplacedPassword
	CloseCount int

	lock sync.Mutex
}

func NewFakeConn() *FakeConn {
	return &FakeConn{
		BySurname: make(map[string][]Entry),
		ByMail:    make(map[common.Email][]Entry),
	}
}

func (c *FakeConn) Bind(ctx context.Context, mode BindMode) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.Binds = append(c.Binds, mode)
	return c.BindErr
}

func (c *FakeConn) FindBySurname(ctx context.Context, surname string) ([]Entry, error) {
	if c.SearchErr != nil {
		return nil, c.SearchErr
	}
	return c.BySurname[surname], nil
}

func (c *FakeConn) FindByMail(ctx context.Context, mail common.Email) ([]Entry, error) {
	if c.SearchErr != nil {
		return nil, c.SearchErr
	}
	return c.ByMail[mail], nil
}

func (c *FakeConn) ReplacePassword(ctx context.Context, dn string, encoded []byte) error {
	if c.WriteErr != nil {
		return c.WriteErr
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.Replaced = append(c.Replaced, ReplacedPassword{DN: dn, Encoded: encoded})
	return nil
}

func (c *FakeConn) Close() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.CloseCount++
}

type FakeDirectory struct {
	Conn         *FakeConn
	ConnectErr   error
	ConnectCount int
}

func NewFakeDirectory() *FakeDirectory {
	return &FakeDirectory{Conn: NewFakeConn()}
}

func (d *FakeDirectory) Connect(ctx context.Context) (Conn, error) {
	d.ConnectCount++
	if d.ConnectErr != nil {
		return nil, d.ConnectErr
	}
	return d.Conn, nil
}
