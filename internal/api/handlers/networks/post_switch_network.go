package networks

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

func PostSwitchNetworkRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Networks.POST("/switch", postSwitchNetworkHandler(s))
}

// postSwitchNetworkHandler switches the active chain and broadcasts the
// change to every connected page.
func postSwitchNetworkHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSwitchNetworkPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{
			Type:    message.TypeSwitchNetwork,
			ChainID: swag.StringValue(body.ChainID),
			Name:    body.Name,
			RPCURL:  body.RPCURL,
		}, message.Sender{})
		if err != nil {
			log.Debug().Err(err).Str("chainId", swag.StringValue(body.ChainID)).Msg("Failed to switch network")
			if err.Error() == "Network not found" {
				return httperrors.NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeGeneric, "Network not found")
			}

			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
