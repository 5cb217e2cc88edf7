package port

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/util"
)

// Response is a correlated reply payload as delivered to a waiting caller.
type Response struct {
	Raw json.RawMessage
}

// Decode unmarshals the reply payload into out.
func (r Response) Decode(out any) error {
	return json.Unmarshal(r.Raw, out)
}

type pendingCall struct {
	result chan Response
}

// Client multiplexes request/response traffic over one port end. Each
// outbound message gets a unique id; the receive loop routes replies to
// the matching waiter and hands everything else to subscribed event
// handlers. A reply for an unknown id is a normal outcome (the waiter
// already gave up) and is dropped.
type Client struct {
	end *End

	mu       sync.Mutex
	waiting  map[string]*pendingCall
	handlers map[string][]func(json.RawMessage)
}

func NewClient(end *End) *Client {
	return &Client{
		end:      end,
		waiting:  make(map[string]*pendingCall),
		handlers: make(map[string][]func(json.RawMessage)),
	}
}

// NewID returns a fresh correlation id.
func NewID() string {
	return uuid.New().String()
}

// Subscribe registers fn for every inbound message of the given type.
// Must be called before Run.
func (c *Client) Subscribe(msgType string, fn func(json.RawMessage)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handlers[msgType] = append(c.handlers[msgType], fn)
}

// Run consumes inbound messages until the port closes or ctx is done.
func (c *Client) Run(ctx context.Context) {
	log := util.LogFromContext(ctx)

	for {
		select {
		case raw, ok := <-c.end.Recv():
			if !ok {
				return
			}
			c.route(raw)
		case <-c.end.Done():
			return
		case <-ctx.Done():
			log.Debug().Msg("Port client stopped")
			return
		}
	}
}

func (c *Client) route(raw json.RawMessage) {
	var head struct {
		Type     string          `json:"type"`
		ID       string          `json:"id"`
		Response json.RawMessage `json:"response"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return
	}

	if head.Type == message.PageResponse {
		c.mu.Lock()
		call, ok := c.waiting[head.ID]
		if ok {
			delete(c.waiting, head.ID)
		}
		c.mu.Unlock()

		if ok {
			call.result <- Response{Raw: head.Response}
		}

		return
	}

	c.mu.Lock()
	handlers := c.handlers[head.Type]
	c.mu.Unlock()

	for _, fn := range handlers {
		fn(raw)
	}
}

// Call sends msg and blocks until its correlated reply arrives or ctx is done.
func (c *Client) Call(ctx context.Context, msg message.PageMessage) (Response, error) {
	if msg.ID == "" {
		msg.ID = NewID()
	}

	call := &pendingCall{result: make(chan Response, 1)}

	c.mu.Lock()
	c.waiting[msg.ID] = call
	c.mu.Unlock()

	if err := c.end.Send(ctx, msg); err != nil {
		c.mu.Lock()
		delete(c.waiting, msg.ID)
		c.mu.Unlock()

		return Response{}, errors.Wrap(err, "failed to send page message")
	}

	select {
	case res := <-call.result:
		return res, nil
	case <-c.end.Done():
		c.abandon(msg.ID)
		return Response{}, errors.New("port closed while waiting for response")
	case <-ctx.Done():
		c.abandon(msg.ID)
		return Response{}, ctx.Err()
	}
}

func (c *Client) abandon(id string) {
	c.mu.Lock()
	delete(c.waiting, id)
	c.mu.Unlock()
}
