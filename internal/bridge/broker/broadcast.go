package broker

import (
	"context"

	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/util"
)

func (s *service) RegisterTab(t Tab) func() {
	s.tabsMu.Lock()
	s.tabSeq++
	key := s.tabSeq
	s.tabs[key] = t
	s.tabsMu.Unlock()

	return func() {
		s.tabsMu.Lock()
		delete(s.tabs, key)
		s.tabsMu.Unlock()
	}
}

func (s *service) BroadcastAccountsChanged(ctx context.Context) []Delivery {
	event := message.AccountsChangedEvent{
		Type:            message.PageAccountsChanged,
		Accounts:        s.wallet.Addresses(ctx),
		SelectedAddress: s.wallet.SelectedAddress(ctx),
	}

	return s.broadcast(ctx, "accountsChanged", event)
}

func (s *service) BroadcastChainChanged(ctx context.Context, chainID string) []Delivery {
	event := message.ChainChangedEvent{
		Type:    message.PageChainChanged,
		ChainID: chainID,
	}

	return s.broadcast(ctx, "chainChanged", event)
}

// broadcast delivers event to every registered tab and reports the per-tab
// outcome. Tabs that cannot be reached are skipped, never retried.
func (s *service) broadcast(ctx context.Context, name string, event any) []Delivery {
	s.tabsMu.Lock()
	targets := make([]Tab, 0, len(s.tabs))
	for _, t := range s.tabs {
		targets = append(targets, t)
	}
	s.tabsMu.Unlock()

	log := util.LogFromContext(ctx)

	deliveries := make([]Delivery, 0, len(targets))
	for _, t := range targets {
		err := t.Notify(ctx, event)
		deliveries = append(deliveries, Delivery{TabID: t.ID(), Err: err})

		if err != nil {
			s.metrics.BroadcastsFailed.WithLabelValues(name).Inc()
			log.Debug().Err(err).Int("tabId", t.ID()).Str("event", name).Msg("Failed to deliver broadcast")

			continue
		}
		s.metrics.BroadcastsSent.WithLabelValues(name).Inc()
	}

	return deliveries
}
