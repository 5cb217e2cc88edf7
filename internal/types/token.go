package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
)

type PostAddTokenPayload struct {
	// Account whose token list is extended
	AccountAddress *string `json:"accountAddress"`
	// Chain the token lives on, hex chain id
	ChainID      *string `json:"chainId"`
	TokenAddress *string `json:"tokenAddress"`
	Symbol       *string `json:"symbol"`
	Name         string  `json:"name,omitempty"`
	Decimals     int64   `json:"decimals,omitempty"`
}

func (m *PostAddTokenPayload) Validate(_ strfmt.Registry) error {
	if m.AccountAddress == nil {
		return errors.Required("accountAddress", "body", nil)
	}
	if m.ChainID == nil {
		return errors.Required("chainId", "body", nil)
	}
	if m.TokenAddress == nil {
		return errors.Required("tokenAddress", "body", nil)
	}
	if m.Symbol == nil {
		return errors.Required("symbol", "body", nil)
	}

	return nil
}

type PostUpdateTokenBalancePayload struct {
	AccountAddress *string `json:"accountAddress"`
	ChainID        *string `json:"chainId"`
	TokenAddress   *string `json:"tokenAddress"`
	// Display balance string, already formatted
	Balance *string `json:"balance"`
}

func (m *PostUpdateTokenBalancePayload) Validate(_ strfmt.Registry) error {
	if m.AccountAddress == nil {
		return errors.Required("accountAddress", "body", nil)
	}
	if m.ChainID == nil {
		return errors.Required("chainId", "body", nil)
	}
	if m.TokenAddress == nil {
		return errors.Required("tokenAddress", "body", nil)
	}
	if m.Balance == nil {
		return errors.Required("balance", "body", nil)
	}

	return nil
}
