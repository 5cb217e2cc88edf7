package network

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github/universalwallet/wallet-bridge/internal/store"
	"github/universalwallet/wallet-bridge/internal/util"
)

const storeKey = "networks"

type service struct {
	store store.Store

	mu       sync.RWMutex
	networks []Network
}

// NewService creates a new network Service.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(s store.Store) Service {
	return &service{
		store:    s,
		networks: defaultNetworks(),
	}
}

func (s *service) Initialize(ctx context.Context) error {
	log := util.LogFromContext(ctx)

	var stored []Network
	found, err := s.store.Get(ctx, storeKey, &stored)
	if err != nil {
		return errors.Wrap(err, "failed to load stored networks")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// built-ins always win; only custom entries come from the store
	merged := defaultNetworks()
	if found {
		for _, n := range stored {
			if !n.builtIn() {
				merged = append(merged, n)
			}
		}
	}
	s.networks = merged

	log.Debug().Int("count", len(s.networks)).Msg("Networks initialized")

	return nil
}

func (s *service) Networks(_ context.Context) []Network {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Network{}, s.networks...)
}

func (s *service) Add(ctx context.Context, params AddParams) (Network, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.networks {
		if n.ChainID == params.ChainID {
			return Network{}, errors.New("network with this chain ID already exists")
		}
	}

	network := Network{
		ID:               fmt.Sprintf("custom-%d", time.Now().UnixMilli()),
		ChainID:          params.ChainID,
		Name:             params.Name,
		RPCURL:           params.RPCURL,
		Symbol:           params.Symbol,
		BlockExplorerURL: params.BlockExplorerURL,
	}

	s.networks = append(s.networks, network)

	if err := s.persistLocked(ctx); err != nil {
		return Network{}, err
	}

	return network, nil
}

func (s *service) Update(ctx context.Context, id string, params AddParams) (Network, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, n := range s.networks {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Network{}, errors.New("network not found")
	}

	if s.networks[idx].builtIn() {
		return Network{}, errors.New("cannot modify default, mainnet or testnet networks")
	}

	if params.ChainID != "" && params.ChainID != s.networks[idx].ChainID {
		for _, n := range s.networks {
			if n.ChainID == params.ChainID && n.ID != id {
				return Network{}, errors.New("network with this chain ID already exists")
			}
		}
		s.networks[idx].ChainID = params.ChainID
	}

	if params.Name != "" {
		s.networks[idx].Name = params.Name
	}
	if params.RPCURL != "" {
		s.networks[idx].RPCURL = params.RPCURL
	}
	if params.Symbol != "" {
		s.networks[idx].Symbol = params.Symbol
	}
	if params.BlockExplorerURL != "" {
		s.networks[idx].BlockExplorerURL = params.BlockExplorerURL
	}

	if err := s.persistLocked(ctx); err != nil {
		return Network{}, err
	}

	return s.networks[idx], nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, n := range s.networks {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.New("network not found")
	}

	if s.networks[idx].builtIn() {
		return errors.New("cannot remove default, mainnet or testnet networks")
	}

	s.networks = append(s.networks[:idx], s.networks[idx+1:]...)

	return s.persistLocked(ctx)
}

func (s *service) ByID(_ context.Context, id string) (Network, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.networks {
		if n.ID == id {
			return n, true
		}
	}

	return Network{}, false
}

func (s *service) ByChainID(_ context.Context, chainID string) (Network, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.networks {
		if n.ChainID == chainID {
			return n, true
		}
	}

	return Network{}, false
}

func (s *service) Default(_ context.Context) Network {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.networks {
		if n.IsMainnet {
			return n
		}
	}

	return s.networks[0]
}

func (s *service) Mainnets(_ context.Context) []Network {
	return s.filter(func(n Network) bool { return n.Category == "mainnet" || n.IsMainnet })
}

func (s *service) Testnets(_ context.Context) []Network {
	return s.filter(func(n Network) bool { return n.Category == "testnet" || n.IsTestnet })
}

func (s *service) Customs(_ context.Context) []Network {
	return s.filter(func(n Network) bool { return !n.builtIn() })
}

func (s *service) filter(keep func(Network) bool) []Network {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Network
	for _, n := range s.networks {
		if keep(n) {
			out = append(out, n)
		}
	}

	return out
}

// persistLocked stores only the custom networks. Caller must hold s.mu.
func (s *service) persistLocked(ctx context.Context) error {
	var customs []Network
	for _, n := range s.networks {
		if !n.builtIn() {
			customs = append(customs, n)
		}
	}

	if err := s.store.Set(ctx, storeKey, customs); err != nil {
		return errors.Wrap(err, "failed to persist custom networks")
	}

	return nil
}
