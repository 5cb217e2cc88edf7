package tokens

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/util"
)

func GetPopularTokensRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Tokens.GET("/popular", getPopularTokensHandler(s))
}

func getPopularTokensHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{
			Type:    message.TypeGetPopularTokens,
			ChainID: c.QueryParam("chainId"),
		}, message.Sender{})
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
