package address

import (
	"context"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

// DeriveAddress derives the EVM address at the given BIP44 path.
func (s service) DeriveAddress(ctx context.Context, seed []byte, path string) (string, error) {
	privateKey, err := s.DerivePrivateKey(ctx, seed, path)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive private key")
	}

	defer func() {
		for i := range privateKey {
			privateKey[i] = 0
		}
	}()

	ecdsaKey, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to convert to ECDSA private key")
	}

	return crypto.PubkeyToAddress(ecdsaKey.PublicKey).Hex(), nil
}

// DerivePrivateKey walks the hardened/normal child keys of the path.
// Callers must zero the returned key after use.
func (service) DerivePrivateKey(_ context.Context, seed []byte, path string) ([]byte, error) {
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	indices, err := parseBIP44Path(path)
	if err != nil {
		return nil, err
	}

	key := masterKey
	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	return key.Key, nil
}

// parseBIP44Path parses "m/44'/60'/0'/0/0" into child key indices, with
// the hardened bit set for segments carrying a trailing apostrophe.
func parseBIP44Path(path string) ([]uint32, error) {
	segments := strings.Split(path, "/")
	if len(segments) == 0 || segments[0] != "m" {
		return nil, errors.Errorf("invalid BIP44 path: %s", path)
	}

	indices := make([]uint32, 0, len(segments)-1)
	for _, segment := range segments[1:] {
		hardened := strings.HasSuffix(segment, "'")
		segment = strings.TrimSuffix(segment, "'")

		index, err := strconv.ParseUint(segment, 10, 32)
		if err != nil {
			return nil, errors.Errorf("invalid path segment: %s", segment)
		}

		if hardened {
			index += uint64(bip32.FirstHardenedChild)
		}

		indices = append(indices, uint32(index))
	}

	return indices, nil
}
