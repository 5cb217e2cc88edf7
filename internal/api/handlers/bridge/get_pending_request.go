package bridge

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/util"
)

func GetPendingRequestRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Bridge.GET("/requests/latest", getPendingRequestHandler(s))
}

// getPendingRequestHandler returns the request the approval popup should
// display, or an empty success reply when nothing is pending.
func getPendingRequestHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{Type: message.TypeGetPendingRequest}, message.Sender{})
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
