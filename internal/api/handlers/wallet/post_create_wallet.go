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

func PostCreateWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/create", postCreateWalletHandler(s))
}

// postCreateWalletHandler creates a fresh wallet and returns the generated
// mnemonic exactly once. The caller is expected to show it to the user and
// never persist it.
func postCreateWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostCreateWalletPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{
			Type:     message.TypeCreateWallet,
			Password: swag.StringValue(body.Password),
		}, message.Sender{})
		if err != nil {
			log.Debug().Err(err).Msg("Failed to create wallet")
			if err.Error() == "Wallet already exists" {
				return httperrors.NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeGeneric, "Wallet already exists")
			}

			return httperrors.NewHTTPValidationError(
				http.StatusBadRequest,
				types.PublicHTTPErrorTypeGeneric,
				"Could not create wallet",
				[]*types.HTTPValidationErrorDetail{
					{
						Key:   swag.String("password"),
						In:    swag.String("body"),
						Error: swag.String(err.Error()),
					},
				},
			)
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
