package wallet

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/wallet/signer"
)

// AccountType distinguishes seed-derived accounts from imported ones.
type AccountType string

const (
	AccountTypeDerived  AccountType = "derived"
	AccountTypeImported AccountType = "imported"
)

// Account is the public view of a wallet account.
type Account struct {
	Address string      `json:"address"`
	Name    string      `json:"name"`
	Index   int         `json:"index"`
	Type    AccountType `json:"type"`
}

// storedAccount is the persisted form. Imported accounts carry their key
// sealed with the wallet password; derived accounts carry their path.
type storedAccount struct {
	Account
	Path      string          `json:"path,omitempty"`
	SealedKey json.RawMessage `json:"sealedKey,omitempty"`
}

// NetworkRef is the wallet's active network selection.
type NetworkRef struct {
	ChainID string `json:"chainId"`
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
}

// State is the wallet state snapshot handed to UI surfaces.
type State struct {
	IsLocked            bool       `json:"isLocked"`
	HasWallet           bool       `json:"hasWallet"`
	Accounts            []Account  `json:"accounts"`
	CurrentAccountIndex int        `json:"currentAccountIndex"`
	Network             NetworkRef `json:"network"`
}

// Service is the wallet core: key custody, account management and signing.
// All mutating operations require the wallet to be unlocked.
type Service interface {
	// Initialize restores persisted wallet presence at startup.
	Initialize(ctx context.Context) error

	// State returns a snapshot of the wallet state.
	State(ctx context.Context) State

	// Create generates a new wallet and returns its mnemonic.
	Create(ctx context.Context, password string) (string, error)

	// Import restores a wallet from an existing mnemonic.
	Import(ctx context.Context, mnemonic string, password string) error

	// Unlock opens the wallet. A wrong password returns (false, nil).
	Unlock(ctx context.Context, password string) (bool, error)

	// Lock wipes key material from memory.
	Lock(ctx context.Context)

	// Accounts returns all accounts.
	Accounts(ctx context.Context) []Account

	// Addresses returns all account addresses in account order.
	Addresses(ctx context.Context) []string

	// CurrentAccount returns the selected account, if any.
	CurrentAccount(ctx context.Context) (Account, bool)

	// SelectedAddress returns the selected account's address, falling
	// back to the first account.
	SelectedAddress(ctx context.Context) string

	// CreateAccount derives the next account from the seed.
	CreateAccount(ctx context.Context, name string) (Account, error)

	// ImportAccountFromPrivateKey adds an account backed by a raw key.
	ImportAccountFromPrivateKey(ctx context.Context, name string, privateKeyHex string) (Account, error)

	// SwitchAccount selects the account at index. Out-of-range indexes
	// are ignored.
	SwitchAccount(ctx context.Context, index int) error

	// RenameAccount renames the account at index.
	RenameAccount(ctx context.Context, index int, newName string) error

	// SwitchNetwork selects the active network, preferring a known
	// network with the given chain id over the raw parameters.
	SwitchNetwork(ctx context.Context, chainID string, name string, rpcURL string) error

	// PrivateKey reveals an account's private key after re-checking the password.
	PrivateKey(ctx context.Context, password string, accountIndex int) (string, error)

	// Mnemonic reveals the mnemonic after re-checking the password.
	Mnemonic(ctx context.Context, password string) (string, error)

	// SignTransaction signs with the selected account.
	SignTransaction(ctx context.Context, tx *message.Transaction) (*signer.SignTxResponse, error)

	// SignMessage signs a personal message with the selected account.
	SignMessage(ctx context.Context, msg string) (string, error)

	// SignTypedData signs EIP-712 typed data with the selected account.
	SignTypedData(ctx context.Context, typedData apitypes.TypedData) (string, error)

	// Permissions returns the EIP-2255 grants of the unlocked wallet.
	Permissions(ctx context.Context) []message.Permission
}
