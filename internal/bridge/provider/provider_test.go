package provider_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/bridge/port"
	"github/universalwallet/wallet-bridge/internal/bridge/provider"
	"github/universalwallet/wallet-bridge/internal/config"
)

func testConfig() config.BridgeServer {
	return config.BridgeServer{
		AccountsLookupTimeout: 100 * time.Millisecond,
		PortBufferSize:        16,
		DefaultChainID:        "0x1",
	}
}

// newScriptedProvider wires a provider against a fake wallet side that
// answers every page message through handler.
func newScriptedProvider(t *testing.T, handler func(msg message.PageMessage) any) (*provider.Provider, *port.End, func()) {
	t.Helper()

	pageEnd, walletEnd := port.Pipe(16)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		for {
			select {
			case raw, ok := <-walletEnd.Recv():
				if !ok {
					return
				}
				var msg message.PageMessage
				if err := json.Unmarshal(raw, &msg); err != nil {
					continue
				}
				if handler == nil {
					continue
				}
				_ = walletEnd.Send(ctx, message.PageReply{
					Type:     message.PageResponse,
					ID:       msg.ID,
					Response: handler(msg),
				})
			case <-walletEnd.Done():
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	client := port.NewClient(pageEnd)
	p := provider.New(client, testConfig(), nil)
	go client.Run(ctx)

	return p, walletEnd, func() {
		cancel()
		pageEnd.Close()
	}
}

// eventRecorder captures emitted provider events.
type eventRecorder struct {
	mu       sync.Mutex
	payloads []any
}

func (r *eventRecorder) record(payload any) {
	r.mu.Lock()
	r.payloads = append(r.payloads, payload)
	r.mu.Unlock()
}

func (r *eventRecorder) Payloads() []any {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]any{}, r.payloads...)
}

func TestChainStateAndLocalSwitch(t *testing.T) {
	p, _, teardown := newScriptedProvider(t, nil)
	defer teardown()

	chainID, err := p.Request(context.Background(), "eth_chainId", nil)
	require.NoError(t, err)
	assert.Equal(t, "0x1", chainID)

	version, err := p.Request(context.Background(), "net_version", nil)
	require.NoError(t, err)
	assert.Equal(t, "1", version)

	events := &eventRecorder{}
	defer p.On(provider.EventChainChanged, events.record)()

	// switching chains is handled locally, without asking the wallet
	_, err = p.Request(context.Background(), "wallet_switchEthereumChain", []any{
		map[string]any{"chainId": "0x89"},
	})
	require.NoError(t, err)

	assert.Equal(t, "0x89", p.ChainID())
	assert.Equal(t, "137", p.NetworkVersion())
	require.Len(t, events.Payloads(), 1)
	assert.Equal(t, "0x89", events.Payloads()[0])

	// switching to the same chain again emits nothing
	_, err = p.Request(context.Background(), "wallet_switchEthereumChain", []any{
		map[string]any{"chainId": "0x89"},
	})
	require.NoError(t, err)
	assert.Len(t, events.Payloads(), 1)
}

func TestUnsupportedMethod(t *testing.T) {
	p, _, teardown := newScriptedProvider(t, nil)
	defer teardown()

	_, err := p.Request(context.Background(), "eth_mining", nil)
	require.EqualError(t, err, "Unsupported method: eth_mining")
}

func TestLegacySendAndSendAsync(t *testing.T) {
	p, _, teardown := newScriptedProvider(t, nil)
	defer teardown()

	chainID, err := p.Send(context.Background(), "eth_chainId", nil)
	require.NoError(t, err)
	assert.Equal(t, "0x1", chainID)

	type settled struct {
		result any
		err    error
	}
	done := make(chan settled, 1)
	p.SendAsync(context.Background(), "net_version", nil, func(result any, err error) {
		done <- settled{result: result, err: err}
	})

	select {
	case got := <-done:
		require.NoError(t, got.err)
		assert.Equal(t, "1", got.result)
	case <-time.After(time.Second):
		t.Fatal("callback never ran")
	}

	p.SendAsync(context.Background(), "eth_mining", nil, func(result any, err error) {
		done <- settled{result: result, err: err}
	})

	select {
	case got := <-done:
		require.EqualError(t, got.err, "Unsupported method: eth_mining")
	case <-time.After(time.Second):
		t.Fatal("callback never ran")
	}
}

func TestRequestAccountsApproval(t *testing.T) {
	accounts := []string{"0xaaa", "0xbbb", "0xccc"}

	p, _, teardown := newScriptedProvider(t, func(msg message.PageMessage) any {
		switch msg.Type {
		case message.PageRequestConnection:
			return map[string]any{"approved": true, "accounts": accounts, "selectedAddress": "0xbbb"}
		case message.PageGetAccounts:
			return map[string]any{"accounts": accounts, "selectedAddress": "0xbbb"}
		}

		return map[string]any{"error": "Unknown message type"}
	})
	defer teardown()

	events := &eventRecorder{}
	defer p.On(provider.EventAccountsChanged, events.record)()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got, err := p.Request(ctx, "eth_requestAccounts", nil)
	require.NoError(t, err)

	// selected account comes first, the rest keep their order
	assert.Equal(t, []string{"0xbbb", "0xaaa", "0xccc"}, got)
	assert.True(t, p.Connected())
	assert.Equal(t, "0xbbb", p.SelectedAddress())

	// the emitted list carries the same ordering as the returned one
	require.Len(t, events.Payloads(), 1)
	assert.Equal(t, []string{"0xbbb", "0xaaa", "0xccc"}, events.Payloads()[0])

	// a second call reuses the approved connection and emits nothing new
	again, err := p.Request(ctx, "eth_accounts", nil)
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Len(t, events.Payloads(), 1)
}

func TestRequestAccountsRejected(t *testing.T) {
	p, _, teardown := newScriptedProvider(t, func(msg message.PageMessage) any {
		return map[string]any{"error": "User rejected the request"}
	})
	defer teardown()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := p.Request(ctx, "eth_requestAccounts", nil)
	require.ErrorIs(t, err, provider.ErrUserRejectedRequest)
	assert.False(t, p.Connected())
}

func TestSendTransaction(t *testing.T) {
	approve := true
	p, _, teardown := newScriptedProvider(t, func(msg message.PageMessage) any {
		require.Equal(t, message.PageRequestTransaction, msg.Type)
		if !approve {
			return map[string]any{"error": "User rejected the request"}
		}

		return map[string]any{"approved": true, "txHash": "0xhash", "rawTransaction": "0xraw"}
	})
	defer teardown()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	txHash, err := p.Request(ctx, "eth_sendTransaction", []any{
		map[string]any{"to": "0xdead", "value": "0x1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "0xhash", txHash)

	approve = false
	_, err = p.Request(ctx, "eth_sendTransaction", []any{
		map[string]any{"to": "0xdead", "value": "0x1"},
	})
	require.ErrorIs(t, err, provider.ErrUserRejectedTransaction)
}

func TestPersonalSign(t *testing.T) {
	approve := true
	p, _, teardown := newScriptedProvider(t, func(msg message.PageMessage) any {
		require.Equal(t, message.PageRequestSign, msg.Type)
		require.Equal(t, "hello", msg.Message)
		if !approve {
			return map[string]any{"error": "User rejected the request"}
		}

		return map[string]any{"approved": true, "signature": "0xsig"}
	})
	defer teardown()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	sig, err := p.Request(ctx, "personal_sign", []any{"hello", "0xaaa"})
	require.NoError(t, err)
	assert.Equal(t, "0xsig", sig)

	approve = false
	_, err = p.Request(ctx, "personal_sign", []any{"hello", "0xaaa"})
	require.ErrorIs(t, err, provider.ErrUserRejectedSignature)
}

func TestSignTypedData(t *testing.T) {
	p, _, teardown := newScriptedProvider(t, func(msg message.PageMessage) any {
		require.Equal(t, message.PageRequestTypedDataSign, msg.Type)
		require.Equal(t, "0xaaa", msg.Address)
		require.Contains(t, msg.TypedData, "EIP712Domain")

		return map[string]any{"approved": true, "signature": "0xsig"}
	})
	defer teardown()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	sig, err := p.Request(ctx, "eth_signTypedData_v4", []any{"0xaaa", `{"types":{"EIP712Domain":[]}}`})
	require.NoError(t, err)
	assert.Equal(t, "0xsig", sig)
}

func TestGetPermissions(t *testing.T) {
	p, _, teardown := newScriptedProvider(t, func(msg message.PageMessage) any {
		require.Equal(t, message.PageGetPermissions, msg.Type)

		return map[string]any{"permissions": []map[string]any{
			{"parentCapability": "eth_accounts"},
		}}
	})
	defer teardown()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	perms, err := p.Request(ctx, "wallet_getPermissions", nil)
	require.NoError(t, err)
	permissions, ok := perms.([]message.Permission)
	require.True(t, ok)
	require.Len(t, permissions, 1)
	assert.Equal(t, "eth_accounts", permissions[0].ParentCapability)
}

func TestRevokePermissionsDisconnects(t *testing.T) {
	p, _, teardown := newScriptedProvider(t, func(msg message.PageMessage) any {
		switch msg.Type {
		case message.PageRequestConnection:
			return map[string]any{"approved": true, "accounts": []string{"0xaaa"}, "selectedAddress": "0xaaa"}
		case message.PageGetAccounts:
			return map[string]any{"accounts": []string{"0xaaa"}, "selectedAddress": "0xaaa"}
		case message.PageRevokePermissions:
			return map[string]any{"success": true}
		}

		return map[string]any{"error": "Unknown message type"}
	})
	defer teardown()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := p.Request(ctx, "eth_requestAccounts", nil)
	require.NoError(t, err)
	require.True(t, p.Connected())

	disconnects := &eventRecorder{}
	defer p.On(provider.EventDisconnect, disconnects.record)()

	_, err = p.Request(ctx, "wallet_revokePermissions", []any{map[string]any{"eth_accounts": map[string]any{}}})
	require.NoError(t, err)

	assert.False(t, p.Connected())
	assert.Empty(t, p.SelectedAddress())
	require.Len(t, disconnects.Payloads(), 1)
	payload, ok := disconnects.Payloads()[0].(provider.DisconnectPayload)
	require.True(t, ok)
	assert.Equal(t, 4900, payload.Code)
}

func TestInitializeTimesOutQuietly(t *testing.T) {
	// no responder at all; the initial lookup must give up on its own
	p, _, teardown := newScriptedProvider(t, nil)
	defer teardown()

	start := time.Now()
	p.Initialize(context.Background())
	assert.Less(t, time.Since(start), time.Second)
	assert.Empty(t, p.SelectedAddress())
}

func TestBroadcastEventsUpdateState(t *testing.T) {
	p, walletEnd, teardown := newScriptedProvider(t, nil)
	defer teardown()

	ctx := context.Background()

	accountEvents := &eventRecorder{}
	defer p.On(provider.EventAccountsChanged, accountEvents.record)()
	chainEvents := &eventRecorder{}
	defer p.On(provider.EventChainChanged, chainEvents.record)()

	require.NoError(t, walletEnd.Send(ctx, message.AccountsChangedEvent{
		Type:            message.PageAccountsChanged,
		Accounts:        []string{"0xaaa", "0xbbb", "0xccc"},
		SelectedAddress: "0xbbb",
	}))

	require.Eventually(t, func() bool {
		return len(accountEvents.Payloads()) == 1
	}, time.Second, time.Millisecond)

	// the emitted list leads with the selected account
	emitted, ok := accountEvents.Payloads()[0].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"0xbbb", "0xaaa", "0xccc"}, emitted)
	assert.Equal(t, "0xbbb", p.SelectedAddress())

	// the identical list again is not re-emitted
	require.NoError(t, walletEnd.Send(ctx, message.AccountsChangedEvent{
		Type:            message.PageAccountsChanged,
		Accounts:        []string{"0xaaa", "0xbbb", "0xccc"},
		SelectedAddress: "0xbbb",
	}))

	require.NoError(t, walletEnd.Send(ctx, message.ChainChangedEvent{
		Type:    message.PageChainChanged,
		ChainID: "0x38",
	}))

	require.Eventually(t, func() bool {
		return len(chainEvents.Payloads()) == 1
	}, time.Second, time.Millisecond)
	assert.Len(t, accountEvents.Payloads(), 1)
	assert.Equal(t, "0x38", p.ChainID())
	assert.Equal(t, "56", p.NetworkVersion())

	// same chain broadcast a second time stays quiet
	require.NoError(t, walletEnd.Send(ctx, message.ChainChangedEvent{
		Type:    message.PageChainChanged,
		ChainID: "0x38",
	}))
	time.Sleep(10 * time.Millisecond)
	assert.Len(t, chainEvents.Payloads(), 1)
}
