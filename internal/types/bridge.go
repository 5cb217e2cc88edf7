package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
)

type PostApproveRequestPayload struct {
	// ID of the pending request to approve
	ID *string `json:"id"`
}

func (m *PostApproveRequestPayload) Validate(_ strfmt.Registry) error {
	if m.ID == nil {
		return errors.Required("id", "body", nil)
	}

	return nil
}

type PostRejectRequestPayload struct {
	// ID of the pending request to reject
	ID *string `json:"id"`
}

func (m *PostRejectRequestPayload) Validate(_ strfmt.Registry) error {
	if m.ID == nil {
		return errors.Required("id", "body", nil)
	}

	return nil
}
