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

func PostImportWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/import", postImportWalletHandler(s))
}

func postImportWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostImportWalletPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{
			Type:     message.TypeImportWallet,
			Mnemonic: swag.StringValue(body.Mnemonic),
			Password: swag.StringValue(body.Password),
		}, message.Sender{})
		if err != nil {
			log.Debug().Err(err).Msg("Failed to import wallet")
			return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Could not import wallet", err.Error())
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
