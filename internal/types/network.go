package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
)

type PostSwitchNetworkPayload struct {
	// Hex chain id, e.g. 0x1
	ChainID *string `json:"chainId"`
	// Optional catalog entry for chains the wallet does not know yet
	Name   string `json:"name,omitempty"`
	RPCURL string `json:"rpcUrl,omitempty"`
}

func (m *PostSwitchNetworkPayload) Validate(_ strfmt.Registry) error {
	if m.ChainID == nil {
		return errors.Required("chainId", "body", nil)
	}

	return nil
}

type PostAddNetworkPayload struct {
	ChainID          *string `json:"chainId"`
	Name             *string `json:"name"`
	RPCURL           *string `json:"rpcUrl"`
	Symbol           string  `json:"symbol,omitempty"`
	BlockExplorerURL string  `json:"blockExplorerUrl,omitempty"`
	NetworkID        string  `json:"networkId,omitempty"`
}

func (m *PostAddNetworkPayload) Validate(_ strfmt.Registry) error {
	if m.ChainID == nil {
		return errors.Required("chainId", "body", nil)
	}
	if m.Name == nil {
		return errors.Required("name", "body", nil)
	}
	if m.RPCURL == nil {
		return errors.Required("rpcUrl", "body", nil)
	}

	return nil
}
