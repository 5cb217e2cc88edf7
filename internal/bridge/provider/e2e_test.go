package provider_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/universalwallet/wallet-bridge/internal/bridge/broker"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/bridge/port"
	"github/universalwallet/wallet-bridge/internal/bridge/provider"
	"github/universalwallet/wallet-bridge/internal/bridge/relay"
	"github/universalwallet/wallet-bridge/internal/bridge/windows"
	"github/universalwallet/wallet-bridge/internal/config"
	"github/universalwallet/wallet-bridge/internal/metrics"
	"github/universalwallet/wallet-bridge/internal/store"
	"github/universalwallet/wallet-bridge/internal/wallet"
	"github/universalwallet/wallet-bridge/internal/wallet/address"
	"github/universalwallet/wallet-bridge/internal/wallet/balance"
	"github/universalwallet/wallet-bridge/internal/wallet/keystore"
	"github/universalwallet/wallet-bridge/internal/wallet/network"
	"github/universalwallet/wallet-bridge/internal/wallet/seed"
	"github/universalwallet/wallet-bridge/internal/wallet/signer"
	"github/universalwallet/wallet-bridge/internal/wallet/token"
)

type fullStack struct {
	provider *provider.Provider
	broker   broker.Service
	wallet   wallet.Service
	windows  *windows.Memory
}

// newFullStack wires provider, relay, broker and wallet the way the
// running bridge does, with an in-memory window surface.
func newFullStack(t *testing.T) *fullStack {
	t.Helper()

	ctx := context.Background()
	st := store.NewInMemory()

	seedMgr := seed.NewManager()
	ks := keystore.NewServiceWithParams(st, keystore.ScryptParams{DKLen: 32, N: 16, R: 8, P: 1})
	addr := address.NewService()
	sig := signer.NewService(seedMgr, addr, true)
	networks := network.NewService(st)
	require.NoError(t, networks.Initialize(ctx))

	w := wallet.NewService(config.WalletServer{MinPasswordLength: 8}, st, seedMgr, ks, addr, sig, networks)
	require.NoError(t, w.Initialize(ctx))
	_, err := w.Create(ctx, "correct horse battery")
	require.NoError(t, err)

	tokens := token.NewService(st)
	require.NoError(t, tokens.Initialize(ctx))
	balances := balance.NewServiceWithDialer(networks, func(_ context.Context, _ string) (balance.Caller, error) {
		return nil, errors.New("no rpc in tests")
	})

	wins := windows.NewInMemory()
	b := broker.NewService(w, networks, tokens, balances, wins, metrics.New())

	pageEnd, relayEnd := port.Pipe(16)
	r := relay.New(relayEnd, b, message.Sender{TabID: 1, URL: "https://dapp.example"})
	unregister := b.RegisterTab(r)
	t.Cleanup(unregister)

	runCtx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go r.Run(runCtx)

	client := port.NewClient(pageEnd)
	p := provider.New(client, testConfig(), nil)
	go client.Run(runCtx)

	return &fullStack{provider: p, broker: b, wallet: w, windows: wins}
}

// approveNext waits for the pending request and approves it.
func (s *fullStack) approveNext(t *testing.T) {
	t.Helper()

	go func() {
		var pending broker.PendingRequest
		for i := 0; i < 1000; i++ {
			latest, ok := s.broker.Latest(context.Background())
			if ok {
				pending = latest
				break
			}
			time.Sleep(time.Millisecond)
		}
		s.broker.Approve(context.Background(), pending.ID)
	}()
}

func TestEndToEndConnect(t *testing.T) {
	s := newFullStack(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.approveNext(t)
	accounts, err := s.provider.Request(ctx, "eth_requestAccounts", nil)
	require.NoError(t, err)

	got, ok := accounts.([]string)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, s.wallet.SelectedAddress(ctx), got[0])
	assert.True(t, s.provider.Connected())
}

func TestEndToEndRejection(t *testing.T) {
	s := newFullStack(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		for i := 0; i < 1000; i++ {
			latest, ok := s.broker.Latest(context.Background())
			if ok {
				s.broker.Reject(context.Background(), latest.ID)
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()

	_, err := s.provider.Request(ctx, "eth_requestAccounts", nil)
	require.ErrorIs(t, err, provider.ErrUserRejectedRequest)
	assert.False(t, s.provider.Connected())
}

func TestEndToEndPersonalSign(t *testing.T) {
	s := newFullStack(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.approveNext(t)
	sig, err := s.provider.Request(ctx, "personal_sign", []any{"hello", s.wallet.SelectedAddress(ctx)})
	require.NoError(t, err)
	signature, ok := sig.(string)
	require.True(t, ok)
	assert.Len(t, signature, 132) // 65 bytes, 0x-prefixed
}

func TestEndToEndChainSwitchBroadcast(t *testing.T) {
	s := newFullStack(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := &eventRecorder{}
	defer s.provider.On(provider.EventChainChanged, events.record)()

	// the wallet UI switches networks; the page provider hears about it
	_, err := s.broker.Dispatch(ctx, &message.Privileged{
		Type:    message.TypeSwitchNetwork,
		ChainID: "0x89",
	}, message.Sender{})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(events.Payloads()) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, "0x89", events.Payloads()[0])
	assert.Equal(t, "0x89", s.provider.ChainID())
	assert.Equal(t, "137", s.provider.NetworkVersion())
}

func TestEndToEndPopupCloseRejects(t *testing.T) {
	s := newFullStack(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		for i := 0; i < 1000; i++ {
			open := s.windows.OpenWindows()
			if len(open) == 1 {
				for id := range open {
					s.windows.SimulateUserClose(id)
				}
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()

	_, err := s.provider.Request(ctx, "eth_requestAccounts", nil)
	require.ErrorIs(t, err, provider.ErrUserRejectedRequest)
}
