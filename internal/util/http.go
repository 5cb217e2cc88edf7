package util

import (
	"net/http"

	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is implemented by payload types that can validate themselves
// against the shared strfmt registry.
type Validatable interface {
	Validate(formats strfmt.Registry) error
}

// BindAndValidateBody binds the request body to v and runs its validation if supported.
func BindAndValidateBody(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return err
	}

	if validatable, ok := v.(Validatable); ok {
		if err := validatable.Validate(strfmt.Default); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	return nil
}

// ValidateAndReturn validates the response payload if supported and writes it as JSON.
func ValidateAndReturn(c echo.Context, code int, v any) error {
	if validatable, ok := v.(Validatable); ok {
		if err := validatable.Validate(strfmt.Default); err != nil {
			return errors.Wrap(err, "invalid response payload")
		}
	}

	return c.JSON(code, v)
}
