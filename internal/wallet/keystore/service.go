package keystore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github/universalwallet/wallet-bridge/internal/store"
	"github/universalwallet/wallet-bridge/internal/util"
)

type service struct {
	store  store.Store
	params ScryptParams
}

// NewService creates a new keystore Service backed by the given store.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(s store.Store) Service {
	return &service{
		store:  s,
		params: DefaultScryptParams(),
	}
}

// NewServiceWithParams allows tests to use cheaper scrypt parameters.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewServiceWithParams(s store.Store, params ScryptParams) Service {
	return &service{
		store:  s,
		params: params,
	}
}

func (s *service) Create(ctx context.Context, mnemonic string, password string) (*Keystore, error) {
	log := util.LogFromContext(ctx)

	exists, err := s.Exists(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check keystore existence")
	}
	if exists {
		return nil, errors.New("keystore already exists")
	}

	envelope, err := seal(mnemonic, password, s.params)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encrypt mnemonic")
		return nil, errors.Wrap(err, "failed to encrypt mnemonic")
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal keystore envelope")
	}

	ks := &Keystore{
		ID:           uuid.New().String(),
		Version:      3,
		Cipher:       "aes-128-ctr",
		KDF:          "scrypt",
		KeystoreData: data,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.Set(ctx, storeKey, ks); err != nil {
		log.Error().Err(err).Msg("Failed to persist keystore")
		return nil, errors.Wrap(err, "failed to persist keystore")
	}

	return ks, nil
}

func (s *service) DecryptMnemonic(ctx context.Context, ks *Keystore, password string) (string, error) {
	log := util.LogFromContext(ctx)

	var envelope CipherJSON
	if err := json.Unmarshal(ks.KeystoreData, &envelope); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal keystore envelope")
	}

	mnemonic, err := open(&envelope, password)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to decrypt mnemonic")
		return "", errors.Wrap(err, "failed to decrypt mnemonic")
	}

	return mnemonic, nil
}

func (s *service) Get(ctx context.Context) (*Keystore, bool, error) {
	var ks Keystore
	found, err := s.store.Get(ctx, storeKey, &ks)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to get keystore")
	}
	if !found {
		return nil, false, nil
	}

	return &ks, true, nil
}

func (s *service) Exists(ctx context.Context) (bool, error) {
	_, found, err := s.Get(ctx)
	return found, err
}

func (s *service) SealSecret(secret string, password string) (json.RawMessage, error) {
	envelope, err := seal(secret, password, s.params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to seal secret")
	}

	raw, err := json.Marshal(envelope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal sealed secret")
	}

	return raw, nil
}

func (s *service) OpenSecret(raw json.RawMessage, password string) (string, error) {
	var envelope CipherJSON
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal sealed secret")
	}

	return open(&envelope, password)
}
