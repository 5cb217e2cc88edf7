package tokens

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/util"
)

func DeleteTokenRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Tokens.DELETE("", deleteTokenHandler(s))
}

func deleteTokenHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{
			Type:           message.TypeRemoveToken,
			AccountAddress: c.QueryParam("accountAddress"),
			ChainID:        c.QueryParam("chainId"),
			TokenAddress:   c.QueryParam("tokenAddress"),
		}, message.Sender{})
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
