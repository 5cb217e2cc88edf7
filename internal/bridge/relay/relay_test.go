package relay_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/bridge/port"
	"github/universalwallet/wallet-bridge/internal/bridge/relay"
)

type stubBackend struct {
	mu       sync.Mutex
	received []*message.Privileged
	senders  []message.Sender

	reply any
	err   error
}

func (s *stubBackend) Dispatch(_ context.Context, msg *message.Privileged, sender message.Sender) (any, error) {
	s.mu.Lock()
	s.received = append(s.received, msg)
	s.senders = append(s.senders, sender)
	s.mu.Unlock()

	return s.reply, s.err
}

func (s *stubBackend) last(t *testing.T) *message.Privileged {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	require.NotEmpty(t, s.received)

	return s.received[len(s.received)-1]
}

func newTestRelay(t *testing.T, backend *stubBackend) (*port.Client, func()) {
	t.Helper()

	pageEnd, relayEnd := port.Pipe(16)
	r := relay.New(relayEnd, backend, message.Sender{TabID: 7, URL: "https://dapp.example"})

	ctx, cancel := context.WithCancel(context.Background())
	go r.Run(ctx)

	client := port.NewClient(pageEnd)

	return client, func() {
		cancel()
		pageEnd.Close()
	}
}

func TestRelayTranslatesAndReplies(t *testing.T) {
	backend := &stubBackend{reply: map[string]any{"accounts": []string{"0xabc"}}}
	client, teardown := newTestRelay(t, backend)
	defer teardown()

	go client.Run(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, err := client.Call(ctx, message.PageMessage{Type: message.PageGetAccounts})
	require.NoError(t, err)

	var body struct {
		Accounts []string `json:"accounts"`
	}
	require.NoError(t, res.Decode(&body))
	assert.Equal(t, []string{"0xabc"}, body.Accounts)

	assert.Equal(t, message.TypeGetAccounts, backend.last(t).Type)
	assert.Equal(t, "https://dapp.example", backend.senders[0].EffectiveOrigin())
}

func TestRelayMapsAddNetworkToSwitch(t *testing.T) {
	backend := &stubBackend{reply: map[string]any{"success": true}}
	client, teardown := newTestRelay(t, backend)
	defer teardown()

	go client.Run(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := client.Call(ctx, message.PageMessage{
		Type: message.PageAddNetwork,
		ChainParams: &message.ChainParams{
			ChainID:   "0x89",
			ChainName: "Polygon",
			RPCURLs:   []string{"https://polygon-rpc.com", "https://backup.invalid"},
		},
	})
	require.NoError(t, err)

	got := backend.last(t)
	assert.Equal(t, message.TypeSwitchNetwork, got.Type)
	assert.Equal(t, "0x89", got.ChainID)
	assert.Equal(t, "Polygon", got.Name)
	assert.Equal(t, "https://polygon-rpc.com", got.RPCURL)
}

func TestRelayFormatsDispatchErrors(t *testing.T) {
	backend := &stubBackend{err: errors.New("User rejected the request")}
	client, teardown := newTestRelay(t, backend)
	defer teardown()

	go client.Run(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, err := client.Call(ctx, message.PageMessage{Type: message.PageRequestConnection})
	require.NoError(t, err)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, res.Decode(&body))
	assert.Equal(t, "User rejected the request", body.Error)
}

func TestRelayIgnoresForeignMessages(t *testing.T) {
	backend := &stubBackend{reply: map[string]any{"ok": true}}

	pageEnd, relayEnd := port.Pipe(16)
	r := relay.New(relayEnd, backend, message.Sender{TabID: 1})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	require.NoError(t, pageEnd.Send(ctx, map[string]any{"type": "SOME_OTHER_SCRIPT", "id": "x"}))

	// a real wallet message after the foreign one still gets an answer
	client := port.NewClient(pageEnd)
	go client.Run(ctx)

	callCtx, cancelCall := context.WithTimeout(ctx, time.Second)
	defer cancelCall()

	_, err := client.Call(callCtx, message.PageMessage{Type: message.PageGetPermissions})
	require.NoError(t, err)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	require.Len(t, backend.received, 1)
	assert.Equal(t, message.TypeGetPermissions, backend.received[0].Type)
}

func TestRelayNotifyPushesEventsToPage(t *testing.T) {
	backend := &stubBackend{}

	pageEnd, relayEnd := port.Pipe(16)
	r := relay.New(relayEnd, backend, message.Sender{TabID: 3})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	client := port.NewClient(pageEnd)
	events := make(chan json.RawMessage, 1)
	client.Subscribe(message.PageChainChanged, func(raw json.RawMessage) {
		events <- raw
	})
	go client.Run(ctx)

	require.NoError(t, r.Notify(ctx, message.ChainChangedEvent{
		Type:    message.PageChainChanged,
		ChainID: "0x38",
	}))

	select {
	case raw := <-events:
		var event message.ChainChangedEvent
		require.NoError(t, json.Unmarshal(raw, &event))
		assert.Equal(t, "0x38", event.ChainID)
	case <-time.After(time.Second):
		t.Fatal("chainChanged event never reached the page")
	}

	assert.Equal(t, 3, r.ID())
}
