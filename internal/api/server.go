package api

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
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

// WalletService interface for wallet state and account operations
// Alias to wallet.Service for API access
type WalletService = wallet.Service

// NetworkService interface for network catalog operations
// Alias to network.Service for API access
type NetworkService = network.Service

// TokenService interface for per-account token list operations
type TokenService = token.Service

// BalanceService interface for on-chain balance reads
type BalanceService = balance.Service

// BrokerService interface for the request broker (pending approvals, dispatch, broadcasts)
type BrokerService = broker.Service

type Router struct {
	Routes        []*echo.Route
	Root          *echo.Group
	Management    *echo.Group
	APIV1Bridge   *echo.Group
	APIV1Wallet   *echo.Group
	APIV1Networks *echo.Group
	APIV1Tokens   *echo.Group
}

// Server is a central struct keeping all the dependencies.
// Components are initialized in InitNewServer in dependency order; Echo and
// Router are initialized afterwards with router.Init(s).
type Server struct {
	Echo   *echo.Echo
	Router *Router

	Config   config.Server
	Store    store.Store
	Wallet   WalletService
	Networks NetworkService
	Tokens   TokenService
	Balances BalanceService
	Broker   BrokerService
	Windows  windows.Manager
	Metrics  *metrics.Service
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

// InitNewServer builds the full component graph for the given configuration
// and runs the service initializers (seeded networks, persisted wallet state).
// The Echo instance and Router are NOT part of this and must be initialized
// separately via router.Init.
func InitNewServer(ctx context.Context, cfg config.Server) (*Server, error) {
	s := NewServer(cfg)

	var err error
	if cfg.Wallet.StorePath == "" {
		s.Store = store.NewInMemory()
	} else {
		s.Store, err = store.NewFile(cfg.Wallet.StorePath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open wallet store")
		}
	}

	seedManager := seed.NewManager()
	keystoreService := keystore.NewService(s.Store)
	addressService := address.NewService()
	signerService := signer.NewService(seedManager, addressService, cfg.Wallet.EnableSigning)

	s.Networks = network.NewService(s.Store)
	s.Wallet = wallet.NewService(cfg.Wallet, s.Store, seedManager, keystoreService, addressService, signerService, s.Networks)
	s.Tokens = token.NewService(s.Store)
	s.Balances = balance.NewService(s.Networks)

	s.Metrics = metrics.New()
	s.Windows = windows.NewInMemory()
	s.Broker = broker.NewService(s.Wallet, s.Networks, s.Tokens, s.Balances, s.Windows, s.Metrics)

	if err := s.Networks.Initialize(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to initialize network catalog")
	}

	if err := s.Tokens.Initialize(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to initialize token lists")
	}

	if err := s.Wallet.Initialize(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to initialize wallet state")
	}

	return s, nil
}

func (s *Server) Ready() bool {
	if s.Echo == nil ||
		s.Router == nil ||
		s.Store == nil ||
		s.Wallet == nil ||
		s.Networks == nil ||
		s.Tokens == nil ||
		s.Balances == nil ||
		s.Broker == nil ||
		s.Windows == nil ||
		s.Metrics == nil {
		log.Debug().Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to shut down echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
