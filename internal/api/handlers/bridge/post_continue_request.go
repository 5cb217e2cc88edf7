package bridge

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/util"
)

func PostContinueRequestRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Bridge.POST("/requests/continue", postContinueRequestHandler(s))
}

// postContinueRequestHandler swaps the unlock popup for the approval popup
// after the wallet was unlocked with a request still deferred.
func postContinueRequestHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		res, err := s.Broker.Dispatch(ctx, &message.Privileged{Type: message.TypeWalletUnlockedContinueRequest}, message.Sender{})
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
