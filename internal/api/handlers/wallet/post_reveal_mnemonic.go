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

func PostRevealMnemonicRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/mnemonic", postRevealMnemonicHandler(s))
}

// postRevealMnemonicHandler exports the seed phrase. The password is
// re-checked even on an unlocked wallet.
func postRevealMnemonicHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostRevealSecretPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{
			Type:     message.TypeGetMnemonic,
			Password: swag.StringValue(body.Password),
		}, message.Sender{})
		if err != nil {
			log.Debug().Err(err).Msg("Refused mnemonic export")
			return httperrors.NewHTTPErrorWithDetail(http.StatusForbidden, types.PublicHTTPErrorTypeGeneric, "Could not export mnemonic", err.Error())
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
