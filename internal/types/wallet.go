package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
)

type PostCreateWalletPayload struct {
	// Wallet password, subject to the configured minimum length
	Password *string `json:"password"`
}

func (m *PostCreateWalletPayload) Validate(_ strfmt.Registry) error {
	if m.Password == nil {
		return errors.Required("password", "body", nil)
	}

	return nil
}

type PostImportWalletPayload struct {
	// BIP39 mnemonic sentence
	Mnemonic *string `json:"mnemonic"`
	Password *string `json:"password"`
}

func (m *PostImportWalletPayload) Validate(_ strfmt.Registry) error {
	if m.Mnemonic == nil {
		return errors.Required("mnemonic", "body", nil)
	}
	if m.Password == nil {
		return errors.Required("password", "body", nil)
	}

	return nil
}

type PostUnlockWalletPayload struct {
	Password *string `json:"password"`
}

func (m *PostUnlockWalletPayload) Validate(_ strfmt.Registry) error {
	if m.Password == nil {
		return errors.Required("password", "body", nil)
	}

	return nil
}

type PostCreateAccountPayload struct {
	// Optional display name, defaults to "Account N"
	Name string `json:"name,omitempty"`
}

func (m *PostCreateAccountPayload) Validate(_ strfmt.Registry) error {
	return nil
}

type PostImportAccountPayload struct {
	// Hex-encoded secp256k1 private key, with or without 0x prefix
	PrivateKey *string `json:"privateKey"`
	Name       string  `json:"name,omitempty"`
}

func (m *PostImportAccountPayload) Validate(_ strfmt.Registry) error {
	if m.PrivateKey == nil {
		return errors.Required("privateKey", "body", nil)
	}

	return nil
}

type PostSwitchAccountPayload struct {
	Index *int64 `json:"index"`
}

func (m *PostSwitchAccountPayload) Validate(_ strfmt.Registry) error {
	if m.Index == nil {
		return errors.Required("index", "body", nil)
	}

	return nil
}

type PostRenameAccountPayload struct {
	Index *int64  `json:"index"`
	Name  *string `json:"name"`
}

func (m *PostRenameAccountPayload) Validate(_ strfmt.Registry) error {
	if m.Index == nil {
		return errors.Required("index", "body", nil)
	}
	if m.Name == nil {
		return errors.Required("name", "body", nil)
	}

	return nil
}

// PostRevealSecretPayload guards mnemonic and private-key exports.
type PostRevealSecretPayload struct {
	Password *string `json:"password"`
	// Account index, only used for private-key export
	Index int64 `json:"index,omitempty"`
}

func (m *PostRevealSecretPayload) Validate(_ strfmt.Registry) error {
	if m.Password == nil {
		return errors.Required("password", "body", nil)
	}

	return nil
}
