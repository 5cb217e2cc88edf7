package router

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/api/handlers"
	"github/universalwallet/wallet-bridge/internal/api/middlewares"
)

// Init sets up the echo instance, middleware chain and all route groups on
// the given server. It must run after the server components are initialized.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.Logger.SetOutput(&echoLogAdapter{})

	s.Echo.HTTPErrorHandler = middlewares.HTTPErrorHandlerWithConfig(middlewares.HTTPErrorHandlerConfig{
		HideInternalServerErrorDetails: s.Config.Echo.HideInternalServerErrorDetails,
	})

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(middleware.Recover())
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(middleware.RequestID())
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middlewares.Logger(s.Config.Logger))
	}

	if s.Config.Echo.EnableCORSMiddleware {
		s.Echo.Use(middleware.CORS())
	}

	s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Registerer: s.Metrics.Registry,
	}))

	s.Router = &api.Router{
		Routes: nil, // will be populated by handlers.AttachAllRoutes(s)

		Root: s.Echo.Group(""),

		Management: s.Echo.Group("/-"),

		APIV1Bridge:   s.Echo.Group("/api/v1/bridge"),
		APIV1Wallet:   s.Echo.Group("/api/v1/wallet"),
		APIV1Networks: s.Echo.Group("/api/v1/networks"),
		APIV1Tokens:   s.Echo.Group("/api/v1/tokens"),
	}

	s.Router.Management.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: s.Metrics.Registry,
	}))

	handlers.AttachAllRoutes(s)
}

// echoLogAdapter funnels echo's internal log writes into zerolog.
type echoLogAdapter struct{}

func (a *echoLogAdapter) Write(p []byte) (int, error) {
	log.Debug().Bytes("echo", p).Msg("Echo internal log")
	return len(p), nil
}
