package token

import "context"

// Token is an ERC-20 token tracked for an account on one chain.
type Token struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
	ChainID  string `json:"chainId"`
	Balance  string `json:"balance,omitempty"`
	IsCustom bool   `json:"isCustom"`
}

// AddParams are the caller-supplied fields of a tracked token.
type AddParams struct {
	Address  string
	Symbol   string
	Name     string
	Decimals int
}

// Service manages per-account, per-chain token lists persisted to the store.
type Service interface {
	// Initialize loads tracked tokens from the store.
	Initialize(ctx context.Context) error

	// Tokens returns the tokens tracked for an account on a chain.
	Tokens(ctx context.Context, accountAddress string, chainID string) []Token

	// Add tracks a new token. Returns false if it is already tracked.
	Add(ctx context.Context, accountAddress string, chainID string, params AddParams) (bool, error)

	// Remove stops tracking a token. Returns false if it was not tracked.
	Remove(ctx context.Context, accountAddress string, chainID string, tokenAddress string) (bool, error)

	// UpdateBalance caches the last known balance of a tracked token.
	UpdateBalance(ctx context.Context, accountAddress string, chainID string, tokenAddress string, balance string) error

	// Popular returns the curated well-known tokens for a chain.
	Popular(ctx context.Context, chainID string) []Token

	// ClearAccount drops all tokens tracked for an account.
	ClearAccount(ctx context.Context, accountAddress string) error
}
