package networks

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/types"
	"github/universalwallet/wallet-bridge/internal/util"
)

func PostAddNetworkRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Networks.POST("", postAddNetworkHandler(s))
}

func postAddNetworkHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostAddNetworkPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{
			Type:             message.TypeAddNetwork,
			ChainID:          swag.StringValue(body.ChainID),
			Name:             swag.StringValue(body.Name),
			RPCURL:           swag.StringValue(body.RPCURL),
			Symbol:           body.Symbol,
			BlockExplorerURL: body.BlockExplorerURL,
			NetworkID:        body.NetworkID,
		}, message.Sender{})
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
