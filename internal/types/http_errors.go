package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
)

const (
	PublicHTTPErrorTypeGeneric = "generic"
)

// PublicHTTPError is the wire shape of every error the API returns.
type PublicHTTPError struct {
	// HTTP status code
	Code *int64 `json:"status"`
	// Type of error
	Type *string `json:"type"`
	// Short human-readable title
	Title *string `json:"title"`
	// Optional further detail
	Detail string `json:"detail,omitempty"`
}

func (m *PublicHTTPError) Validate(_ strfmt.Registry) error {
	if m.Code == nil {
		return errors.Required("status", "body", nil)
	}
	if m.Type == nil {
		return errors.Required("type", "body", nil)
	}
	if m.Title == nil {
		return errors.Required("title", "body", nil)
	}

	return nil
}

// PublicHTTPValidationError extends PublicHTTPError with per-field details.
type PublicHTTPValidationError struct {
	PublicHTTPError

	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors"`
}

func (m *PublicHTTPValidationError) Validate(formats strfmt.Registry) error {
	if err := m.PublicHTTPError.Validate(formats); err != nil {
		return err
	}

	for _, detail := range m.ValidationErrors {
		if detail == nil {
			continue
		}
		if err := detail.Validate(formats); err != nil {
			return err
		}
	}

	return nil
}

type HTTPValidationErrorDetail struct {
	// Name of the field that failed validation
	Key *string `json:"key"`
	// Location of the field (body, query, path)
	In *string `json:"in"`
	// Description of the failure
	Error *string `json:"error"`
}

func (m *HTTPValidationErrorDetail) Validate(_ strfmt.Registry) error {
	if m.Key == nil {
		return errors.Required("key", "body", nil)
	}
	if m.In == nil {
		return errors.Required("in", "body", nil)
	}
	if m.Error == nil {
		return errors.Required("error", "body", nil)
	}

	return nil
}

// NewPublicHTTPError constructs the wire error shape for the given status code.
func NewPublicHTTPError(code int, errorType string, title string) PublicHTTPError {
	return PublicHTTPError{
		Code:  swag.Int64(int64(code)),
		Type:  swag.String(errorType),
		Title: swag.String(title),
	}
}
