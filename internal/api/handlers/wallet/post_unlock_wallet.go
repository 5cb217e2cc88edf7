package wallet

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/types"
	"github/universalwallet/wallet-bridge/internal/util"
)

func PostUnlockWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/unlock", postUnlockWalletHandler(s))
}

// postUnlockWalletHandler unlocks the wallet. A wrong password is not an
// HTTP error, it comes back as success=false so the popup can retry.
func postUnlockWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostUnlockWalletPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{
			Type:     message.TypeUnlockWallet,
			Password: swag.StringValue(body.Password),
		}, message.Sender{})
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
