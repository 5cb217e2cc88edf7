package test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/api/router"
	"github/universalwallet/wallet-bridge/internal/bridge/broker"
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

// DefaultTestConfig returns the service config used by test servers:
// in-memory store, no listener quirks, relaxed password policy.
func DefaultTestConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Echo.ListenAddress = ":0"
	cfg.Echo.EnableLoggerMiddleware = false
	cfg.Wallet.StorePath = ""
	cfg.Wallet.MinPasswordLength = 8
	cfg.Wallet.EnableSigning = true

	return cfg
}

// WithTestServer hands a fully wired server to the closure. It mirrors
// api.InitNewServer but swaps in cheap scrypt parameters so wallet tests
// stay fast, and an in-memory window manager the test can drive.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	ctx := context.Background()
	cfg := DefaultTestConfig()

	s := api.NewServer(cfg)
	s.Store = store.NewInMemory()

	seedManager := seed.NewManager()
	keystoreService := keystore.NewServiceWithParams(s.Store, keystore.ScryptParams{DKLen: 32, N: 16, R: 8, P: 1})
	addressService := address.NewService()
	signerService := signer.NewService(seedManager, addressService, cfg.Wallet.EnableSigning)

	s.Networks = network.NewService(s.Store)
	s.Wallet = wallet.NewService(cfg.Wallet, s.Store, seedManager, keystoreService, addressService, signerService, s.Networks)
	s.Tokens = token.NewService(s.Store)
	s.Balances = balance.NewServiceWithDialer(s.Networks, func(_ context.Context, _ string) (balance.Caller, error) {
		return nil, errors.New("no rpc in tests")
	})

	s.Metrics = metrics.New()
	s.Windows = windows.NewInMemory()
	s.Broker = broker.NewService(s.Wallet, s.Networks, s.Tokens, s.Balances, s.Windows, s.Metrics)

	require.NoError(t, s.Networks.Initialize(ctx))
	require.NoError(t, s.Tokens.Initialize(ctx))
	require.NoError(t, s.Wallet.Initialize(ctx))

	router.Init(s)

	closure(s)
}
