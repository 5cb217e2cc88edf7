package keystore

import (
	"context"
	"encoding/json"
	"time"
)

// storeKey is the document key of the single system keystore.
const storeKey = "keystore"

// Keystore is the persisted encrypted wallet secret.
type Keystore struct {
	ID           string          `json:"id"`
	Version      int             `json:"version"`
	Cipher       string          `json:"cipher"`
	KDF          string          `json:"kdf"`
	KeystoreData json.RawMessage `json:"keystoreData"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Service provides keystore encryption and decryption functionality.
type Service interface {
	// Create encrypts the mnemonic and persists it as the system keystore.
	Create(ctx context.Context, mnemonic string, password string) (*Keystore, error)

	// DecryptMnemonic decrypts the mnemonic from the keystore.
	DecryptMnemonic(ctx context.Context, ks *Keystore, password string) (string, error)

	// Get returns the system keystore, or false if none exists.
	Get(ctx context.Context) (*Keystore, bool, error)

	// Exists checks if a keystore exists.
	Exists(ctx context.Context) (bool, error)

	// SealSecret encrypts an arbitrary secret with the same envelope
	// used for the mnemonic. Used for imported account keys.
	SealSecret(secret string, password string) (json.RawMessage, error)

	// OpenSecret decrypts a secret sealed with SealSecret.
	OpenSecret(raw json.RawMessage, password string) (string, error)
}

// CipherJSON is the Ethereum keystore v3 envelope.
type CipherJSON struct {
	Version int    `json:"version"`
	ID      string `json:"id"`
	Crypto  struct {
		Ciphertext   string `json:"ciphertext"`
		CipherParams struct {
			IV string `json:"iv"`
		} `json:"cipherparams"`
		Cipher    string `json:"cipher"`
		KDF       string `json:"kdf"`
		KDFParams struct {
			DKLen int    `json:"dklen"`
			Salt  string `json:"salt"`
			N     int    `json:"n"`
			R     int    `json:"r"`
			P     int    `json:"p"`
		} `json:"kdfparams"`
		MAC string `json:"mac"`
	} `json:"crypto"`
}

// ScryptParams defines scrypt KDF parameters.
type ScryptParams struct {
	DKLen int
	N     int
	R     int
	P     int
}

// DefaultScryptParams returns the Ethereum keystore v3 defaults.
func DefaultScryptParams() ScryptParams {
	const (
		scryptDKLen = 32
		scryptN     = 262144 // 2^18
		scryptR     = 8
		scryptP     = 1
	)

	return ScryptParams{
		DKLen: scryptDKLen,
		N:     scryptN,
		R:     scryptR,
		P:     scryptP,
	}
}
