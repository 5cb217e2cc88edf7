package broker_test

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
)

type recordingTab struct {
	id   int
	fail bool

	mu     sync.Mutex
	events []any
}

func (r *recordingTab) ID() int { return r.id }

func (r *recordingTab) Notify(_ context.Context, event any) error {
	if r.fail {
		return errors.New("tab unreachable")
	}

	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()

	return nil
}

func (r *recordingTab) Events() []any {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]any{}, r.events...)
}

func TestBroadcastReachesAllTabs(t *testing.T) {
	b := newUnlockedTestBroker(t)
	ctx := context.Background()

	first := &recordingTab{id: 1}
	second := &recordingTab{id: 2}
	broken := &recordingTab{id: 3, fail: true}

	unregisterFirst := b.broker.RegisterTab(first)
	defer b.broker.RegisterTab(second)()
	defer b.broker.RegisterTab(broken)()

	deliveries := b.broker.BroadcastChainChanged(ctx, "0x89")

	require.Len(t, deliveries, 3)
	outcomes := map[int]error{}
	for _, d := range deliveries {
		outcomes[d.TabID] = d.Err
	}
	assert.NoError(t, outcomes[1])
	assert.NoError(t, outcomes[2])
	assert.Error(t, outcomes[3])

	require.Len(t, first.Events(), 1)
	event, ok := first.Events()[0].(message.ChainChangedEvent)
	require.True(t, ok)
	assert.Equal(t, message.PageChainChanged, event.Type)
	assert.Equal(t, "0x89", event.ChainID)
	require.Len(t, second.Events(), 1)

	// an unreachable tab does not block the others
	assert.Empty(t, broken.Events())

	// unregistered tabs stop receiving events
	unregisterFirst()
	deliveries = b.broker.BroadcastChainChanged(ctx, "0x1")
	assert.Len(t, deliveries, 2)
	assert.Len(t, first.Events(), 1)
	assert.Len(t, second.Events(), 2)
}

func TestUnlockBroadcastsAccountsChanged(t *testing.T) {
	b := newUnlockedTestBroker(t)
	ctx := context.Background()

	tab := &recordingTab{id: 1}
	defer b.broker.RegisterTab(tab)()

	b.wallet.Lock(ctx)
	dispatch(t, b, &message.Privileged{
		Type:     message.TypeUnlockWallet,
		Password: testPassword,
	})

	events := tab.Events()
	require.Len(t, events, 1)
	event, ok := events[0].(message.AccountsChangedEvent)
	require.True(t, ok)
	assert.Equal(t, message.PageAccountsChanged, event.Type)
	assert.Equal(t, b.wallet.Addresses(ctx), event.Accounts)
	assert.Equal(t, b.wallet.SelectedAddress(ctx), event.SelectedAddress)
}

func TestAccountChangesBroadcast(t *testing.T) {
	b := newUnlockedTestBroker(t)

	tab := &recordingTab{id: 1}
	defer b.broker.RegisterTab(tab)()

	dispatch(t, b, &message.Privileged{Type: message.TypeCreateAccount, Name: "Second"})
	dispatch(t, b, &message.Privileged{Type: message.TypeSwitchAccount, Index: 0})

	events := tab.Events()
	require.Len(t, events, 2)
	for _, raw := range events {
		event, ok := raw.(message.AccountsChangedEvent)
		require.True(t, ok)
		assert.Len(t, event.Accounts, 2)
	}
}
