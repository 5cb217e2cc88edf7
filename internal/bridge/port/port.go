package port

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

// End is one side of an in-process message channel connecting two
// contexts (page and relay). Messages are carried as raw JSON so each
// side decodes only the types it understands, the same way window
// messaging delivers untyped payloads.
type End struct {
	out chan<- json.RawMessage
	in  <-chan json.RawMessage

	state *pipeState
}

type pipeState struct {
	once   sync.Once
	closed chan struct{}
}

// Pipe returns two connected Ends, each buffering up to size messages.
func Pipe(size int) (*End, *End) {
	aToB := make(chan json.RawMessage, size)
	bToA := make(chan json.RawMessage, size)
	state := &pipeState{closed: make(chan struct{})}

	a := &End{out: aToB, in: bToA, state: state}
	b := &End{out: bToA, in: aToB, state: state}

	return a, b
}

// Send marshals v and posts it to the peer end.
func (e *End) Send(ctx context.Context, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal port message")
	}

	select {
	case e.out <- raw:
		return nil
	case <-e.state.closed:
		return errors.New("port is closed")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recv returns the channel of inbound messages.
func (e *End) Recv() <-chan json.RawMessage {
	return e.in
}

// Done is closed when either end closes the port.
func (e *End) Done() <-chan struct{} {
	return e.state.closed
}

// Close tears down the port for both ends.
func (e *End) Close() {
	e.state.once.Do(func() {
		close(e.state.closed)
	})
}
