package wallet

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

func PostRevealPrivateKeyRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/private-key", postRevealPrivateKeyHandler(s))
}

func postRevealPrivateKeyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostRevealSecretPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{
			Type:         message.TypeGetPrivateKey,
			Password:     swag.StringValue(body.Password),
			AccountIndex: int(body.Index),
		}, message.Sender{})
		if err != nil {
			log.Debug().Err(err).Msg("Refused private key export")
			return httperrors.NewHTTPErrorWithDetail(http.StatusForbidden, types.PublicHTTPErrorTypeGeneric, "Could not export private key", err.Error())
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
