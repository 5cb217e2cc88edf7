package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/universalwallet/wallet-bridge/internal/api"
)

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// getReadyHandler returns 200 only once every server component is wired up.
// 521 is used to distinguish "not ready" from echo's own error codes.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			return c.String(521, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
