package windows

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Kind selects which popup surface a window shows.
type Kind string

const (
	KindApproval Kind = "approval"
	KindUnlock   Kind = "unlock"
)

// Manager opens and closes popup windows and reports removals, whether
// initiated by Close or by the user. Implementations must invoke removal
// listeners exactly once per window.
type Manager interface {
	// Open creates a new popup window for the given request and returns its id.
	Open(ctx context.Context, kind Kind, requestID string) (int, error)

	// Close removes the window. Removal listeners fire for closed windows too.
	Close(ctx context.Context, id int) error

	// OnRemoved registers fn to run whenever any window goes away.
	OnRemoved(fn func(id int))
}

// Memory is an in-memory Manager with deterministic, synchronous removal
// dispatch plus the hooks tests need.
type Memory struct {
	mu        sync.Mutex
	nextID    int
	open      map[int]Kind
	listeners []func(id int)

	failNextOpen error
	openCount    int
}

// NewInMemory returns a Manager that tracks windows in memory and
// dispatches removal events synchronously. It backs tests and headless
// runs where no real windowing surface exists.
func NewInMemory() *Memory {
	return &Memory{
		open: make(map[int]Kind),
	}
}

func (m *Memory) Open(_ context.Context, kind Kind, _ string) (int, error) {
	m.mu.Lock()
	if err := m.failNextOpen; err != nil {
		m.failNextOpen = nil
		m.mu.Unlock()
		return 0, err
	}

	m.nextID++
	id := m.nextID
	m.open[id] = kind
	m.openCount++
	m.mu.Unlock()

	return id, nil
}

func (m *Memory) Close(_ context.Context, id int) error {
	m.mu.Lock()
	_, ok := m.open[id]
	if ok {
		delete(m.open, id)
	}
	listeners := append([]func(id int){}, m.listeners...)
	m.mu.Unlock()

	if !ok {
		return errors.Errorf("window %d not found", id)
	}

	for _, fn := range listeners {
		fn(id)
	}

	return nil
}

func (m *Memory) OnRemoved(fn func(id int)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// SimulateUserClose removes the window as if the user dismissed it.
func (m *Memory) SimulateUserClose(id int) {
	_ = m.Close(context.Background(), id)
}

// FailNextOpen makes the next Open call return err.
func (m *Memory) FailNextOpen(err error) {
	m.mu.Lock()
	m.failNextOpen = err
	m.mu.Unlock()
}

// OpenCount returns how many windows have been opened so far.
func (m *Memory) OpenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.openCount
}

// OpenWindows returns the ids of currently open windows.
func (m *Memory) OpenWindows() map[int]Kind {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[int]Kind, len(m.open))
	for id, kind := range m.open {
		out[id] = kind
	}

	return out
}
