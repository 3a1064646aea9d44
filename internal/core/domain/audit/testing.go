package audit

import (
	"context"
	"sync"
)

type FakeLog struct {
	Events      []Event
	ReturnError error
	lock        sync.Mutex
}

func NewFakeLog() *FakeLog {
	return &FakeLog{}
}

func (l *FakeLog) Record(ctx context.Context, event Event) error {
	if l.ReturnError != nil {
		return l.ReturnError
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	l.Events = append(l.Events, event)
	return nil
}

func (l *FakeLog) Kinds() []EventKind {
	l.lock.Lock()
	defer l.lock.Unlock()
	kinds := make([]EventKind, 0, len(l.Events))
	for _, event := range l.Events {
		kinds = append(kinds, event.Kind)
	}
	return kinds
}
