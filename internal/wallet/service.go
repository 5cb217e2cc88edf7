package wallet

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/config"
	"github/universalwallet/wallet-bridge/internal/store"
	"github/universalwallet/wallet-bridge/internal/util"
	"github/universalwallet/wallet-bridge/internal/wallet/address"
	"github/universalwallet/wallet-bridge/internal/wallet/keystore"
	"github/universalwallet/wallet-bridge/internal/wallet/network"
	"github/universalwallet/wallet-bridge/internal/wallet/seed"
	"github/universalwallet/wallet-bridge/internal/wallet/signer"
)

const storeKeyWallet = "wallet"

var (
	ErrWalletExists    = errors.New("Wallet already exists")
	ErrNoWallet        = errors.New("No wallet found")
	ErrWalletLocked    = errors.New("Wallet is locked")
	ErrNoAccount       = errors.New("No account selected")
	ErrInvalidPass     = errors.New("Invalid password")
	ErrAccountExists   = errors.New("Account already exists")
	ErrUnknownAccount  = errors.New("Account not found")
	ErrNetworkNotFound = errors.New("Network not found")
)

// walletDoc is the persisted wallet document.
type walletDoc struct {
	Accounts            []storedAccount `json:"accounts"`
	CurrentAccountIndex int             `json:"currentAccountIndex"`
	Network             NetworkRef      `json:"network"`
}

type service struct {
	config config.WalletServer

	store    store.Store
	seed     seed.Manager
	keystore keystore.Service
	address  address.Service
	signer   signer.Service
	networks network.Service

	mu       sync.Mutex
	unlocked bool
	password string
	accounts []storedAccount
	current  int
	network  NetworkRef
	// decrypted keys of imported accounts, keyed by lowercase address
	importedKeys map[string]string
}

// NewService assembles the wallet core from its key, account and network
// services.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(cfg config.WalletServer, st store.Store, seedMgr seed.Manager, ks keystore.Service, addr address.Service, sig signer.Service, networks network.Service) Service {
	return &service{
		config:       cfg,
		store:        st,
		seed:         seedMgr,
		keystore:     ks,
		address:      addr,
		signer:       sig,
		networks:     networks,
		current:      0,
		importedKeys: map[string]string{},
	}
}

func (s *service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	def := s.networks.Default(ctx)
	s.network = NetworkRef{ChainID: def.ChainID, Name: def.Name, RPCURL: def.RPCURL}

	var doc walletDoc
	ok, err := s.store.Get(ctx, storeKeyWallet, &doc)
	if err != nil {
		return errors.Wrap(err, "failed to load wallet document")
	}
	if ok && doc.Network.ChainID != "" {
		s.network = doc.Network
	}

	return nil
}

func (s *service) State(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	hasWallet, err := s.keystore.Exists(ctx)
	if err != nil {
		util.LogFromContext(ctx).Warn().Err(err).Msg("Failed to check keystore existence")
	}

	return State{
		IsLocked:            !s.unlocked,
		HasWallet:           hasWallet,
		Accounts:            s.publicAccounts(),
		CurrentAccountIndex: s.current,
		Network:             s.network,
	}
}

func (s *service) Create(ctx context.Context, password string) (string, error) {
	if err := s.checkPassword(password); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.keystore.Exists(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to check keystore existence")
	}
	if exists {
		return "", ErrWalletExists
	}

	mnemonic, err := s.seed.GenerateMnemonic()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic")
	}

	if err := s.initializeWallet(ctx, mnemonic, password); err != nil {
		return "", err
	}

	return mnemonic, nil
}

func (s *service) Import(ctx context.Context, mnemonic string, password string) error {
	if err := s.checkPassword(password); err != nil {
		return err
	}
	if !s.seed.ValidateMnemonic(mnemonic) {
		return errors.New("Invalid mnemonic")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.keystore.Exists(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check keystore existence")
	}
	if exists {
		return ErrWalletExists
	}

	return s.initializeWallet(ctx, mnemonic, password)
}

// initializeWallet sets up keystore, seed and the first account.
// Caller must hold s.mu.
func (s *service) initializeWallet(ctx context.Context, mnemonic string, password string) error {
	if _, err := s.keystore.Create(ctx, mnemonic, password); err != nil {
		return errors.Wrap(err, "failed to create keystore")
	}
	if err := s.seed.Initialize(mnemonic, password); err != nil {
		return errors.Wrap(err, "failed to initialize seed")
	}

	s.unlocked = true
	s.password = password
	s.accounts = nil
	s.importedKeys = map[string]string{}
	s.current = 0

	if _, err := s.deriveAccountLocked(ctx, "Account 1"); err != nil {
		return err
	}

	return s.persistLocked(ctx)
}

func (s *service) Unlock(ctx context.Context, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ks, ok, err := s.keystore.Get(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to load keystore")
	}
	if !ok {
		return false, ErrNoWallet
	}

	mnemonic, err := s.keystore.DecryptMnemonic(ctx, ks, password)
	if err != nil {
		util.LogFromContext(ctx).Debug().Msg("Wallet unlock attempt failed")
		return false, nil
	}

	if err := s.seed.Initialize(mnemonic, password); err != nil {
		return false, errors.Wrap(err, "failed to initialize seed")
	}

	s.unlocked = true
	s.password = password

	if err := s.restoreLocked(ctx); err != nil {
		return false, err
	}

	return true, nil
}

// restoreLocked loads persisted accounts and decrypts imported keys.
// Caller must hold s.mu with the wallet unlocked.
func (s *service) restoreLocked(ctx context.Context) error {
	var doc walletDoc
	ok, err := s.store.Get(ctx, storeKeyWallet, &doc)
	if err != nil {
		return errors.Wrap(err, "failed to load wallet document")
	}
	if !ok {
		return nil
	}

	s.accounts = doc.Accounts
	s.current = doc.CurrentAccountIndex
	if doc.Network.ChainID != "" {
		s.network = doc.Network
	}

	s.importedKeys = map[string]string{}
	for _, acct := range s.accounts {
		if acct.Type != AccountTypeImported || len(acct.SealedKey) == 0 {
			continue
		}
		key, err := s.keystore.OpenSecret(acct.SealedKey, s.password)
		if err != nil {
			return errors.Wrapf(err, "failed to decrypt key for account %s", acct.Address)
		}
		s.importedKeys[strings.ToLower(acct.Address)] = key
	}

	return nil
}

func (s *service) Lock(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unlocked = false
	s.password = ""
	s.importedKeys = map[string]string{}
	s.seed.Clear()

	util.LogFromContext(ctx).Debug().Msg("Wallet locked")
}

func (s *service) Accounts(_ context.Context) []Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.publicAccounts()
}

func (s *service) Addresses(_ context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	addresses := make([]string, 0, len(s.accounts))
	for _, acct := range s.accounts {
		addresses = append(addresses, acct.Address)
	}

	return addresses
}

func (s *service) CurrentAccount(_ context.Context) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.currentLocked()
	if !ok {
		return Account{}, false
	}

	return acct.Account, true
}

func (s *service) SelectedAddress(_ context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acct, ok := s.currentLocked(); ok {
		return acct.Address
	}

	return ""
}

// currentLocked resolves the selected account, falling back to the first
// account when the index is out of range. Caller must hold s.mu.
func (s *service) currentLocked() (storedAccount, bool) {
	if len(s.accounts) == 0 {
		return storedAccount{}, false
	}
	if s.current >= 0 && s.current < len(s.accounts) {
		return s.accounts[s.current], true
	}

	return s.accounts[0], true
}

func (s *service) CreateAccount(ctx context.Context, name string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.unlocked {
		return Account{}, ErrWalletLocked
	}

	acct, err := s.deriveAccountLocked(ctx, name)
	if err != nil {
		return Account{}, err
	}

	if err := s.persistLocked(ctx); err != nil {
		return Account{}, err
	}

	return acct.Account, nil
}

// deriveAccountLocked derives the next seed account. Caller must hold s.mu
// with the wallet unlocked.
func (s *service) deriveAccountLocked(ctx context.Context, name string) (storedAccount, error) {
	derivedCount := 0
	for _, acct := range s.accounts {
		if acct.Type == AccountTypeDerived {
			derivedCount++
		}
	}

	path := s.address.BIP44Path(derivedCount)
	addr, err := s.address.DeriveAddress(ctx, s.seed.Seed(), path)
	if err != nil {
		return storedAccount{}, errors.Wrap(err, "failed to derive address")
	}

	if name == "" {
		name = fmt.Sprintf("Account %d", len(s.accounts)+1)
	}

	acct := storedAccount{
		Account: Account{
			Address: addr,
			Name:    name,
			Index:   len(s.accounts),
			Type:    AccountTypeDerived,
		},
		Path: path,
	}
	s.accounts = append(s.accounts, acct)
	s.current = acct.Index

	return acct, nil
}

func (s *service) ImportAccountFromPrivateKey(ctx context.Context, name string, privateKeyHex string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.unlocked {
		return Account{}, ErrWalletLocked
	}

	keyHex := strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return Account{}, errors.New("Invalid private key")
	}
	addr := crypto.PubkeyToAddress(key.PublicKey).Hex()

	for _, acct := range s.accounts {
		if strings.EqualFold(acct.Address, addr) {
			return Account{}, ErrAccountExists
		}
	}

	sealed, err := s.keystore.SealSecret(keyHex, s.password)
	if err != nil {
		return Account{}, errors.Wrap(err, "failed to encrypt private key")
	}

	if name == "" {
		name = fmt.Sprintf("Imported %d", s.importedCountLocked()+1)
	}

	acct := storedAccount{
		Account: Account{
			Address: addr,
			Name:    name,
			Index:   len(s.accounts),
			Type:    AccountTypeImported,
		},
		SealedKey: sealed,
	}
	s.accounts = append(s.accounts, acct)
	s.current = acct.Index
	s.importedKeys[strings.ToLower(addr)] = keyHex

	if err := s.persistLocked(ctx); err != nil {
		return Account{}, err
	}

	return acct.Account, nil
}

func (s *service) importedCountLocked() int {
	count := 0
	for _, acct := range s.accounts {
		if acct.Type == AccountTypeImported {
			count++
		}
	}

	return count
}

func (s *service) SwitchAccount(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.accounts) {
		return nil
	}

	s.current = index

	return s.persistLocked(ctx)
}

func (s *service) RenameAccount(ctx context.Context, index int, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.accounts) {
		return ErrUnknownAccount
	}
	if strings.TrimSpace(newName) == "" {
		return errors.New("Account name must not be empty")
	}

	s.accounts[index].Name = newName

	return s.persistLocked(ctx)
}

func (s *service) SwitchNetwork(ctx context.Context, chainID string, name string, rpcURL string) error {
	if known, ok := s.networks.ByChainID(ctx, chainID); ok {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.network = NetworkRef{ChainID: known.ChainID, Name: known.Name, RPCURL: known.RPCURL}

		return s.persistLocked(ctx)
	}

	if chainID == "" || rpcURL == "" {
		return ErrNetworkNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.network = NetworkRef{ChainID: chainID, Name: name, RPCURL: rpcURL}

	return s.persistLocked(ctx)
}

func (s *service) PrivateKey(ctx context.Context, password string, accountIndex int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.unlocked {
		return "", ErrWalletLocked
	}
	if password != s.password {
		return "", ErrInvalidPass
	}
	if accountIndex < 0 || accountIndex >= len(s.accounts) {
		return "", ErrUnknownAccount
	}

	acct := s.accounts[accountIndex]
	if acct.Type == AccountTypeImported {
		key, ok := s.importedKeys[strings.ToLower(acct.Address)]
		if !ok {
			return "", errors.New("Imported key not available")
		}

		return "0x" + strings.TrimPrefix(key, "0x"), nil
	}

	rawKey, err := s.address.DerivePrivateKey(ctx, s.seed.Seed(), acct.Path)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive private key")
	}
	keyHex := hex.EncodeToString(rawKey)
	for i := range rawKey {
		rawKey[i] = 0
	}

	return "0x" + keyHex, nil
}

func (s *service) Mnemonic(ctx context.Context, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.unlocked {
		return "", ErrWalletLocked
	}
	if password != s.password {
		return "", ErrInvalidPass
	}

	ks, ok, err := s.keystore.Get(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to load keystore")
	}
	if !ok {
		return "", ErrNoWallet
	}

	mnemonic, err := s.keystore.DecryptMnemonic(ctx, ks, password)
	if err != nil {
		return "", errors.Wrap(err, "failed to decrypt mnemonic")
	}

	return mnemonic, nil
}

// signingKeyLocked resolves the selected account's signing key reference.
// Caller must hold s.mu with the wallet unlocked.
func (s *service) signingKeyLocked() (signer.Key, error) {
	acct, ok := s.currentLocked()
	if !ok {
		return signer.Key{}, ErrNoAccount
	}

	if acct.Type == AccountTypeImported {
		keyHex, ok := s.importedKeys[strings.ToLower(acct.Address)]
		if !ok {
			return signer.Key{}, errors.New("Imported key not available")
		}

		return signer.Key{PrivateKeyHex: keyHex}, nil
	}

	return signer.Key{DerivationPath: acct.Path}, nil
}

func (s *service) SignTransaction(ctx context.Context, tx *message.Transaction) (*signer.SignTxResponse, error) {
	s.mu.Lock()

	if !s.unlocked {
		s.mu.Unlock()
		return nil, ErrWalletLocked
	}

	key, err := s.signingKeyLocked()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	chainID := s.network.ChainID
	s.mu.Unlock()

	return s.signer.SignTransaction(ctx, &signer.SignTxRequest{
		Transaction:    tx,
		Key:            key,
		DefaultChainID: chainID,
	})
}

func (s *service) SignMessage(ctx context.Context, msg string) (string, error) {
	s.mu.Lock()

	if !s.unlocked {
		s.mu.Unlock()
		return "", ErrWalletLocked
	}

	key, err := s.signingKeyLocked()
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	s.mu.Unlock()

	return s.signer.SignPersonalMessage(ctx, &signer.SignMessageRequest{Message: msg, Key: key})
}

func (s *service) SignTypedData(ctx context.Context, typedData apitypes.TypedData) (string, error) {
	s.mu.Lock()

	if !s.unlocked {
		s.mu.Unlock()
		return "", ErrWalletLocked
	}

	key, err := s.signingKeyLocked()
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	s.mu.Unlock()

	return s.signer.SignTypedData(ctx, &signer.SignTypedDataRequest{TypedData: typedData, Key: key})
}

func (s *service) Permissions(_ context.Context) []message.Permission {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.unlocked || len(s.accounts) == 0 {
		return []message.Permission{}
	}

	addresses := make([]string, 0, len(s.accounts))
	for _, acct := range s.accounts {
		addresses = append(addresses, acct.Address)
	}

	return []message.Permission{
		{
			ID:               uuid.New().String(),
			ParentCapability: "eth_accounts",
			Caveats: []message.Caveat{
				{Type: "restrictReturnedAccounts", Value: addresses},
			},
			Date: time.Now().UnixMilli(),
		},
	}
}

func (s *service) publicAccounts() []Account {
	accounts := make([]Account, 0, len(s.accounts))
	for _, acct := range s.accounts {
		accounts = append(accounts, acct.Account)
	}

	return accounts
}

func (s *service) checkPassword(password string) error {
	if len(password) < s.config.MinPasswordLength {
		return errors.Errorf("Password must be at least %d characters", s.config.MinPasswordLength)
	}

	return nil
}

// persistLocked writes the wallet document. Caller must hold s.mu.
func (s *service) persistLocked(ctx context.Context) error {
	doc := walletDoc{
		Accounts:            s.accounts,
		CurrentAccountIndex: s.current,
		Network:             s.network,
	}

	return errors.Wrap(s.store.Set(ctx, storeKeyWallet, doc), "failed to persist wallet document")
}
