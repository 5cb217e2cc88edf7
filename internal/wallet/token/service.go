package token

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github/universalwallet/wallet-bridge/internal/store"
)

const storeKey = "account_tokens"

// accountTokens maps account address -> chain id -> tracked tokens.
type accountTokens map[string]map[string][]Token

type service struct {
	store store.Store

	mu     sync.RWMutex
	tokens accountTokens
}

// NewService creates a new token Service.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(s store.Store) Service {
	return &service{
		store:  s,
		tokens: make(accountTokens),
	}
}

func (s *service) Initialize(ctx context.Context) error {
	var stored accountTokens
	found, err := s.store.Get(ctx, storeKey, &stored)
	if err != nil {
		return errors.Wrap(err, "failed to load tracked tokens")
	}

	s.mu.Lock()
	if found {
		s.tokens = stored
	} else {
		s.tokens = make(accountTokens)
	}
	s.mu.Unlock()

	return nil
}

func (s *service) Tokens(_ context.Context, accountAddress string, chainID string) []Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.tokens[accountAddress][chainID]

	return append([]Token{}, list...)
}

func (s *service) Add(ctx context.Context, accountAddress string, chainID string, params AddParams) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tokens[accountAddress] == nil {
		s.tokens[accountAddress] = make(map[string][]Token)
	}

	normalized := strings.ToLower(params.Address)
	for _, t := range s.tokens[accountAddress][chainID] {
		if strings.EqualFold(t.Address, normalized) {
			return false, nil
		}
	}

	s.tokens[accountAddress][chainID] = append(s.tokens[accountAddress][chainID], Token{
		Address:  normalized,
		Symbol:   params.Symbol,
		Name:     params.Name,
		Decimals: params.Decimals,
		ChainID:  chainID,
		IsCustom: true,
	})

	if err := s.persistLocked(ctx); err != nil {
		return false, err
	}

	return true, nil
}

func (s *service) Remove(ctx context.Context, accountAddress string, chainID string, tokenAddress string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.tokens[accountAddress][chainID]
	for i, t := range list {
		if strings.EqualFold(t.Address, tokenAddress) {
			s.tokens[accountAddress][chainID] = append(list[:i], list[i+1:]...)

			if err := s.persistLocked(ctx); err != nil {
				return false, err
			}

			return true, nil
		}
	}

	return false, nil
}

func (s *service) UpdateBalance(ctx context.Context, accountAddress string, chainID string, tokenAddress string, balance string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.tokens[accountAddress][chainID]
	for i := range list {
		if strings.EqualFold(list[i].Address, tokenAddress) {
			list[i].Balance = balance

			return s.persistLocked(ctx)
		}
	}

	return nil
}

func (s *service) Popular(_ context.Context, chainID string) []Token {
	return append([]Token{}, popularTokens[chainID]...)
}

func (s *service) ClearAccount(ctx context.Context, accountAddress string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, accountAddress)

	return s.persistLocked(ctx)
}

// persistLocked writes the full map. Caller must hold s.mu.
func (s *service) persistLocked(ctx context.Context) error {
	if err := s.store.Set(ctx, storeKey, s.tokens); err != nil {
		return errors.Wrap(err, "failed to persist tracked tokens")
	}

	return nil
}
