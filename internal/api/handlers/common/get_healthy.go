package common

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/util"
)

const healthProbeKey = "health-probe"

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// getHealthyHandler performs a store write/read round trip on top of the
// readiness probe. It is guarded by the management secret as it touches
// the persistence layer.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret := c.QueryParam("mgmt-secret")
		if subtle.ConstantTimeCompare([]byte(secret), []byte(s.Config.Management.Secret)) != 1 {
			return echo.ErrUnauthorized
		}

		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		if !s.Ready() {
			return c.String(521, "Not ready.")
		}

		stamp := time.Now().UTC().Format(time.RFC3339Nano)
		if err := s.Store.Set(ctx, healthProbeKey, stamp); err != nil {
			log.Error().Err(err).Msg("Health probe failed to write store")
			return c.String(521, "Not healthy.")
		}

		var got string
		if ok, err := s.Store.Get(ctx, healthProbeKey, &got); err != nil || !ok || got != stamp {
			log.Error().Err(err).Bool("found", ok).Msg("Health probe failed to read store")
			return c.String(521, "Not healthy.")
		}

		if err := s.Store.Delete(ctx, healthProbeKey); err != nil {
			log.Warn().Err(err).Msg("Health probe failed to clean up store key")
		}

		return c.String(http.StatusOK, "OK.")
	}
}
