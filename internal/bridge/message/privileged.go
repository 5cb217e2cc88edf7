package message

import "encoding/json"

// Privileged message vocabulary, handled by the broker. Relays translate
// page messages into these before dispatching; the wallet UI speaks them
// directly.
const (
	TypeGetWalletState = "GET_WALLET_STATE"
	TypeCreateWallet   = "CREATE_WALLET"
	TypeImportWallet   = "IMPORT_WALLET"
	TypeUnlockWallet   = "UNLOCK_WALLET"
	TypeLockWallet     = "LOCK_WALLET"

	TypeGetAccounts   = "GET_ACCOUNTS"
	TypeCreateAccount = "CREATE_ACCOUNT"
	TypeImportAccount = "IMPORT_ACCOUNT_FROM_PRIVATE_KEY"
	TypeSwitchAccount = "SWITCH_ACCOUNT"
	TypeRenameAccount = "RENAME_ACCOUNT"
	TypeGetPrivateKey = "GET_PRIVATE_KEY"
	TypeGetMnemonic   = "GET_MNEMONIC"
	TypeSwitchNetwork = "SWITCH_NETWORK"

	TypeRequestConnection    = "REQUEST_CONNECTION"
	TypeRequestTransaction   = "REQUEST_TRANSACTION"
	TypeRequestSign          = "REQUEST_SIGN"
	TypeRequestTypedDataSign = "REQUEST_TYPED_DATA_SIGN"

	TypeGetPendingRequest             = "GET_PENDING_REQUEST"
	TypeApproveRequest                = "APPROVE_REQUEST"
	TypeRejectRequest                 = "REJECT_REQUEST"
	TypeWalletUnlockedContinueRequest = "WALLET_UNLOCKED_CONTINUE_REQUEST"

	TypeSignTransaction = "SIGN_TRANSACTION"
	TypeSignMessage     = "SIGN_MESSAGE"
	TypeSignTypedData   = "SIGN_TYPED_DATA"

	TypeGetNetworks   = "GET_NETWORKS"
	TypeAddNetwork    = "ADD_NETWORK"
	TypeUpdateNetwork = "UPDATE_NETWORK"
	TypeRemoveNetwork = "REMOVE_NETWORK"

	TypeGetBalance = "GET_BALANCE"

	TypeGetTokens          = "GET_TOKENS"
	TypeAddToken           = "ADD_TOKEN"
	TypeRemoveToken        = "REMOVE_TOKEN"
	TypeUpdateTokenBalance = "UPDATE_TOKEN_BALANCE"
	TypeGetPopularTokens   = "GET_POPULAR_TOKENS"

	TypeRevokePermissions = "REVOKE_PERMISSIONS"
	TypeGetPermissions    = "GET_PERMISSIONS"
)

// Privileged is the flat privileged message envelope. Only the fields
// matching the Type are set; the rest stay at their zero value.
type Privileged struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`

	Password string `json:"password,omitempty"`
	Mnemonic string `json:"mnemonic,omitempty"`

	Message     string          `json:"message,omitempty"`
	Address     string          `json:"address,omitempty"`
	Transaction *Transaction    `json:"transaction,omitempty"`
	TypedData   string          `json:"typedData,omitempty"`
	Permissions json.RawMessage `json:"permissions,omitempty"`

	ChainID          string `json:"chainId,omitempty"`
	Name             string `json:"name,omitempty"`
	RPCURL           string `json:"rpcUrl,omitempty"`
	Symbol           string `json:"symbol,omitempty"`
	BlockExplorerURL string `json:"blockExplorerUrl,omitempty"`
	NetworkID        string `json:"networkId,omitempty"`

	Index        int    `json:"index,omitempty"`
	AccountIndex int    `json:"accountIndex,omitempty"`
	NewName      string `json:"newName,omitempty"`
	PrivateKey   string `json:"privateKey,omitempty"`

	AccountAddress string `json:"accountAddress,omitempty"`
	TokenAddress   string `json:"tokenAddress,omitempty"`
	Decimals       int    `json:"decimals,omitempty"`
	Balance        string `json:"balance,omitempty"`
}

// Sender identifies the context a privileged message came from.
type Sender struct {
	TabID  int    `json:"tabId,omitempty"`
	URL    string `json:"url,omitempty"`
	Origin string `json:"origin,omitempty"`
}

// EffectiveOrigin prefers the tab URL over the plain origin, matching how
// user requests record where they came from.
func (s Sender) EffectiveOrigin() string {
	if s.URL != "" {
		return s.URL
	}

	return s.Origin
}
