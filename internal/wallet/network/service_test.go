package network_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/universalwallet/wallet-bridge/internal/store"
	"github/universalwallet/wallet-bridge/internal/wallet/network"
)

func TestDefaultNetworks(t *testing.T) {
	ctx := context.Background()
	svc := network.NewService(store.NewInMemory())
	require.NoError(t, svc.Initialize(ctx))

	networks := svc.Networks(ctx)
	assert.Len(t, networks, 8)

	eth, ok := svc.ByChainID(ctx, "0x1")
	require.True(t, ok)
	assert.Equal(t, "Ethereum Mainnet", eth.Name)
	assert.Equal(t, eth, svc.Default(ctx))

	assert.Len(t, svc.Mainnets(ctx), 6)
	assert.Len(t, svc.Testnets(ctx), 2)
	assert.Empty(t, svc.Customs(ctx))
}

func TestAddCustomNetwork(t *testing.T) {
	ctx := context.Background()
	backing := store.NewInMemory()
	svc := network.NewService(backing)
	require.NoError(t, svc.Initialize(ctx))

	added, err := svc.Add(ctx, network.AddParams{
		ChainID: "0xa4b1",
		Name:    "Arbitrum One",
		RPCURL:  "https://arb1.arbitrum.io/rpc",
		Symbol:  "ETH",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.False(t, added.IsDefault)

	// duplicate chain id is rejected
	_, err = svc.Add(ctx, network.AddParams{ChainID: "0xa4b1", Name: "dup"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// custom networks survive re-initialization, built-ins are not duplicated
	reloaded := network.NewService(backing)
	require.NoError(t, reloaded.Initialize(ctx))
	assert.Len(t, reloaded.Networks(ctx), 9)
	assert.Len(t, reloaded.Customs(ctx), 1)
}

func TestBuiltInNetworksAreImmutable(t *testing.T) {
	ctx := context.Background()
	svc := network.NewService(store.NewInMemory())
	require.NoError(t, svc.Initialize(ctx))

	err := svc.Remove(ctx, "ethereum-mainnet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot remove")

	_, err = svc.Update(ctx, "ethereum-mainnet", network.AddParams{Name: "hijacked"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot modify")
}

func TestUpdateAndRemoveCustomNetwork(t *testing.T) {
	ctx := context.Background()
	svc := network.NewService(store.NewInMemory())
	require.NoError(t, svc.Initialize(ctx))

	added, err := svc.Add(ctx, network.AddParams{ChainID: "0x539", Name: "Local", RPCURL: "http://localhost:8545", Symbol: "ETH"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, added.ID, network.AddParams{Name: "Localhost 8545"})
	require.NoError(t, err)
	assert.Equal(t, "Localhost 8545", updated.Name)
	assert.Equal(t, "0x539", updated.ChainID)

	require.NoError(t, svc.Remove(ctx, added.ID))
	_, ok := svc.ByID(ctx, added.ID)
	assert.False(t, ok)

	err = svc.Remove(ctx, added.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
