package token_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/universalwallet/wallet-bridge/internal/store"
	"github/universalwallet/wallet-bridge/internal/wallet/token"
)

const (
	account = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"
	chain   = "0x1"
)

func TestAddRemoveToken(t *testing.T) {
	ctx := context.Background()
	backing := store.NewInMemory()
	svc := token.NewService(backing)
	require.NoError(t, svc.Initialize(ctx))

	added, err := svc.Add(ctx, account, chain, token.AddParams{
		Address:  "0xdAC17F958D2ee523a2206206994597C13D831ec7",
		Symbol:   "USDT",
		Name:     "Tether USD",
		Decimals: 6,
	})
	require.NoError(t, err)
	assert.True(t, added)

	// adding the same address again (any casing) is rejected
	added, err = svc.Add(ctx, account, chain, token.AddParams{
		Address: "0xdac17f958d2ee523a2206206994597c13d831ec7",
		Symbol:  "USDT",
	})
	require.NoError(t, err)
	assert.False(t, added)

	tokens := svc.Tokens(ctx, account, chain)
	require.Len(t, tokens, 1)
	assert.True(t, tokens[0].IsCustom)
	assert.Equal(t, "0xdac17f958d2ee523a2206206994597c13d831ec7", tokens[0].Address)

	// persisted across re-initialization
	reloaded := token.NewService(backing)
	require.NoError(t, reloaded.Initialize(ctx))
	assert.Len(t, reloaded.Tokens(ctx, account, chain), 1)

	removed, err := svc.Remove(ctx, account, chain, "0xDAC17F958D2EE523A2206206994597C13D831EC7")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, svc.Tokens(ctx, account, chain))

	removed, err = svc.Remove(ctx, account, chain, "0xdead")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestUpdateBalance(t *testing.T) {
	ctx := context.Background()
	svc := token.NewService(store.NewInMemory())
	require.NoError(t, svc.Initialize(ctx))

	_, err := svc.Add(ctx, account, chain, token.AddParams{Address: "0xabc", Symbol: "ABC", Decimals: 18})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateBalance(ctx, account, chain, "0xABC", "12.5"))

	tokens := svc.Tokens(ctx, account, chain)
	require.Len(t, tokens, 1)
	assert.Equal(t, "12.5", tokens[0].Balance)

	// unknown token balance update is a no-op
	require.NoError(t, svc.UpdateBalance(ctx, account, chain, "0xmissing", "1"))
}

func TestPopularTokens(t *testing.T) {
	ctx := context.Background()
	svc := token.NewService(store.NewInMemory())

	assert.Len(t, svc.Popular(ctx, "0x1"), 5)
	assert.Len(t, svc.Popular(ctx, "0x89"), 3)
	assert.Len(t, svc.Popular(ctx, "0x38"), 3)
	assert.Empty(t, svc.Popular(ctx, "0x999"))
}

func TestClearAccount(t *testing.T) {
	ctx := context.Background()
	svc := token.NewService(store.NewInMemory())
	require.NoError(t, svc.Initialize(ctx))

	_, err := svc.Add(ctx, account, chain, token.AddParams{Address: "0xabc", Symbol: "ABC"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearAccount(ctx, account))
	assert.Empty(t, svc.Tokens(ctx, account, chain))
}
