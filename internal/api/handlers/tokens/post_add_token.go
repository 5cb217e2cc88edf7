package tokens

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/api/httperrors"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/types"
	"github/universalwallet/wallet-bridge/internal/util"
)

func PostAddTokenRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Tokens.POST("", postAddTokenHandler(s))
}

func postAddTokenHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostAddTokenPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{
			Type:           message.TypeAddToken,
			AccountAddress: swag.StringValue(body.AccountAddress),
			ChainID:        swag.StringValue(body.ChainID),
			TokenAddress:   swag.StringValue(body.TokenAddress),
			Symbol:         swag.StringValue(body.Symbol),
			Name:           body.Name,
			Decimals:       int(body.Decimals),
		}, message.Sender{})
		if err != nil {
			log.Debug().Err(err).Msg("Failed to add token")
			return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Could not add token", err.Error())
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
