package networks

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/util"
)

func DeleteNetworkRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Networks.DELETE("/:chainId", deleteNetworkHandler(s))
}

func deleteNetworkHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{
			Type:    message.TypeRemoveNetwork,
			ChainID: c.Param("chainId"),
		}, message.Sender{})
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
