package tokens

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/types"
	"github/universalwallet/wallet-bridge/internal/util"
)

func PostUpdateTokenBalanceRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Tokens.POST("/balance", postUpdateTokenBalanceHandler(s))
}

func postUpdateTokenBalanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostUpdateTokenBalancePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{
			Type:           message.TypeUpdateTokenBalance,
			AccountAddress: swag.StringValue(body.AccountAddress),
			ChainID:        swag.StringValue(body.ChainID),
			TokenAddress:   swag.StringValue(body.TokenAddress),
			Balance:        swag.StringValue(body.Balance),
		}, message.Sender{})
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
