package address

import "context"

// Service derives EVM addresses and private keys from a wallet seed.
type Service interface {
	// DeriveAddress derives the checksummed address at the given BIP44 path.
	DeriveAddress(ctx context.Context, seed []byte, path string) (string, error)

	// DerivePrivateKey derives the raw private key at the given BIP44 path.
	// Callers must zero the returned key after use.
	DerivePrivateKey(ctx context.Context, seed []byte, path string) ([]byte, error)

	// BIP44Path returns the derivation path for an account index,
	// m/44'/60'/0'/0/{index}.
	BIP44Path(accountIndex int) string
}
