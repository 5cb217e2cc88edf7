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

func PostImportAccountRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/accounts/import", postImportAccountHandler(s))
}

func postImportAccountHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostImportAccountPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{
			Type:       message.TypeImportAccount,
			Name:       body.Name,
			PrivateKey: swag.StringValue(body.PrivateKey),
		}, message.Sender{})
		if err != nil {
			log.Debug().Err(err).Msg("Failed to import account")
			return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Could not import account", err.Error())
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
