package signer

import (
	"context"
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/universalwallet/wallet-bridge/internal/wallet/address"
	"github/universalwallet/wallet-bridge/internal/wallet/seed"
)

type service struct {
	seedManager    seed.Manager
	addressService address.Service
	enabled        bool
}

// NewService creates a new signer Service.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(seedManager seed.Manager, addressService address.Service, enabled bool) Service {
	return &service{
		seedManager:    seedManager,
		addressService: addressService,
		enabled:        enabled,
	}
}

// resolveKey loads the ECDSA key selected by k. The caller receives a
// cleanup func that wipes the raw key material.
func (s *service) resolveKey(ctx context.Context, k Key) (*ecdsa.PrivateKey, func(), error) {
	if !s.enabled {
		return nil, nil, errors.New("signing is disabled")
	}

	if k.PrivateKeyHex != "" {
		ecdsaKey, err := crypto.HexToECDSA(strip0x(k.PrivateKeyHex))
		if err != nil {
			return nil, nil, errors.Wrap(err, "invalid private key")
		}

		return ecdsaKey, func() {}, nil
	}

	walletSeed := s.seedManager.Seed()
	if walletSeed == nil {
		return nil, nil, errors.New("seed not initialized")
	}

	rawKey, err := s.addressService.DerivePrivateKey(ctx, walletSeed, k.DerivationPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to derive private key")
	}

	cleanup := func() {
		for i := range rawKey {
			rawKey[i] = 0
		}
	}

	ecdsaKey, err := crypto.ToECDSA(rawKey)
	if err != nil {
		cleanup()
		return nil, nil, errors.Wrap(err, "failed to convert private key to ECDSA")
	}

	return ecdsaKey, cleanup, nil
}

func strip0x(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}

	return s
}
