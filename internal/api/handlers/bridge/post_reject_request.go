package bridge

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/types"
	"github/universalwallet/wallet-bridge/internal/util"
)

func PostRejectRequestRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Bridge.POST("/requests/reject", postRejectRequestHandler(s))
}

func postRejectRequestHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostRejectRequestPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{
			Type: message.TypeRejectRequest,
			ID:   swag.StringValue(body.ID),
		}, message.Sender{})
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
