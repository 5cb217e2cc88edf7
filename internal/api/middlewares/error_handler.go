package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/universalwallet/wallet-bridge/internal/api/httperrors"
	"github/universalwallet/wallet-bridge/internal/types"
	"github/universalwallet/wallet-bridge/internal/util"
)

type HTTPErrorHandlerConfig struct {
	HideInternalServerErrorDetails bool
}

// HTTPErrorHandlerWithConfig maps every error escaping a handler onto the
// public error shape. Internal causes are logged, and optionally stripped
// from 500 responses.
func HTTPErrorHandlerWithConfig(config HTTPErrorHandlerConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		log := util.LogFromContext(c.Request().Context())

		var code int
		var payload any

		switch e := err.(type) {
		case *httperrors.HTTPError:
			code = int(*e.Code)
			if e.Internal != nil {
				log.Debug().Err(e.Internal).Int("status", code).Msg("Internal error behind HTTP error")
			}
			payload = e.PublicHTTPError
		case *httperrors.HTTPValidationError:
			code = int(*e.Code)
			payload = e.PublicHTTPValidationError
		case *echo.HTTPError:
			code = e.Code
			title, ok := e.Message.(string)
			if !ok {
				title = http.StatusText(code)
			}
			if e.Internal != nil {
				log.Debug().Err(e.Internal).Int("status", code).Msg("Internal error behind echo HTTP error")
			}
			payload = types.NewPublicHTTPError(code, types.PublicHTTPErrorTypeGeneric, title)
		default:
			code = http.StatusInternalServerError
			title := http.StatusText(code)
			if !config.HideInternalServerErrorDetails {
				title = err.Error()
			}
			log.Error().Err(err).Msg("Unhandled error in request")
			payload = types.NewPublicHTTPError(code, types.PublicHTTPErrorTypeGeneric, title)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, payload)
		}

		if writeErr != nil {
			log.Error().Err(writeErr).Msg("Failed to write error response")
		}
	}
}
