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

func PostApproveRequestRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Bridge.POST("/requests/approve", postApproveRequestHandler(s))
}

func postApproveRequestHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostApproveRequestPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{
			Type: message.TypeApproveRequest,
			ID:   swag.StringValue(body.ID),
		}, message.Sender{})
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
