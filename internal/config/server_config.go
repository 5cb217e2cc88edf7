package config

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/subosito/gotenv"

	"github/universalwallet/wallet-bridge/internal/util"
)

// EchoServer holds the configuration of the HTTP layer.
type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableCORSMiddleware           bool
	EnableLoggerMiddleware         bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
}

// LoggerServer holds the logging configuration.
type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	LogRequestBody     bool
	LogRequestHeader   bool
	LogResponseBody    bool
	PrettyPrintConsole bool
}

// BridgeServer holds the configuration of the request broker and provider facade.
type BridgeServer struct {
	// AccountsLookupTimeout bounds the provider's background accounts lookup.
	AccountsLookupTimeout time.Duration
	// PortBufferSize is the channel buffer of each in-process message port.
	PortBufferSize int
	// DefaultChainID is the chain the provider reports before any switch.
	DefaultChainID string
}

// WalletServer holds the configuration of the wallet services.
type WalletServer struct {
	StorePath         string
	MinPasswordLength int
	EnableSigning     bool
}

// Management holds configuration of the management endpoints.
type Management struct {
	Secret string `json:"-"` // sensitive
}

// Server is the aggregated service configuration, sourced from ENV.
type Server struct {
	Echo       EchoServer
	Logger     LoggerServer
	Bridge     BridgeServer
	Wallet     WalletServer
	Management Management
}

var (
	dotEnvOnce sync.Once
)

// DefaultServiceConfigFromEnv returns the server config as parsed from the environment.
func DefaultServiceConfigFromEnv() Server {
	// optionally load a local .env file once (dev convenience, never overrides real ENV)
	dotEnvOnce.Do(func() {
		if err := gotenv.Load(); err != nil {
			log.Debug().Err(err).Msg("No .env file loaded")
		}
	})

	return Server{
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			EnableCORSMiddleware:           util.GetEnvAsBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.DebugLevel.String())),
			RequestLevel:       util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())),
			LogRequestBody:     util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_BODY", false),
			LogRequestHeader:   util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_HEADER", false),
			LogResponseBody:    util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_BODY", false),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Bridge: BridgeServer{
			AccountsLookupTimeout: util.GetEnvAsDuration("SERVER_BRIDGE_ACCOUNTS_LOOKUP_TIMEOUT", 3*time.Second),
			PortBufferSize:        util.GetEnvAsInt("SERVER_BRIDGE_PORT_BUFFER_SIZE", 16),
			DefaultChainID:        util.GetEnv("SERVER_BRIDGE_DEFAULT_CHAIN_ID", "0x1"),
		},
		Wallet: WalletServer{
			StorePath:         util.GetEnv("SERVER_WALLET_STORE_PATH", "wallet-store.json"),
			MinPasswordLength: util.GetEnvAsInt("SERVER_WALLET_MIN_PASSWORD_LENGTH", 8),
			EnableSigning:     util.GetEnvAsBool("SERVER_WALLET_ENABLE_SIGNING", true),
		},
		Management: Management{
			Secret: util.GetEnv("SERVER_MANAGEMENT_SECRET", "mgmt-secret"),
		},
	}
}
