package message

import "encoding/json"

// Page-side message vocabulary. These types travel between the injected
// provider and its relay over a shared page channel, so every message
// carries the wallet prefix to separate it from unrelated page traffic.
const (
	PagePrefix = "UNIVERSAL_WALLET_"

	PageResponse = "UNIVERSAL_WALLET_RESPONSE"

	PageRequestConnection    = "UNIVERSAL_WALLET_REQUEST_CONNECTION"
	PageRequestTransaction   = "UNIVERSAL_WALLET_REQUEST_TRANSACTION"
	PageRequestSign          = "UNIVERSAL_WALLET_REQUEST_SIGN"
	PageRequestTypedDataSign = "UNIVERSAL_WALLET_REQUEST_TYPED_DATA_SIGN"

	PageSignTransaction = "UNIVERSAL_WALLET_SIGN_TRANSACTION"
	PageSignMessage     = "UNIVERSAL_WALLET_SIGN_MESSAGE"
	PageSignTypedData   = "UNIVERSAL_WALLET_SIGN_TYPED_DATA"

	PageGetAccounts       = "UNIVERSAL_WALLET_GET_ACCOUNTS"
	PageAddNetwork        = "UNIVERSAL_WALLET_ADD_NETWORK"
	PageRevokePermissions = "UNIVERSAL_WALLET_REVOKE_PERMISSIONS"
	PageGetPermissions    = "UNIVERSAL_WALLET_GET_PERMISSIONS"

	PageAccountsChanged = "UNIVERSAL_WALLET_ACCOUNTS_CHANGED"
	PageChainChanged    = "UNIVERSAL_WALLET_CHAIN_CHANGED"
)

// ChainParams mirrors the EIP-3085 chain descriptor a dapp passes to
// wallet_addEthereumChain.
type ChainParams struct {
	ChainID          string   `json:"chainId"`
	ChainName        string   `json:"chainName"`
	RPCURLs          []string `json:"rpcUrls"`
	Symbol           string   `json:"symbol,omitempty"`
	BlockExplorerURL string   `json:"blockExplorerUrl,omitempty"`
}

// PageMessage is a request sent by the injected provider to its relay.
type PageMessage struct {
	Type        string          `json:"type"`
	ID          string          `json:"id"`
	Message     string          `json:"message,omitempty"`
	Address     string          `json:"address,omitempty"`
	Transaction *Transaction    `json:"transaction,omitempty"`
	TypedData   string          `json:"typedData,omitempty"`
	ChainParams *ChainParams    `json:"chainParams,omitempty"`
	Permissions json.RawMessage `json:"permissions,omitempty"`
}

// PageReply is the correlated answer the relay posts back to the page.
type PageReply struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Response any    `json:"response"`
}

// AccountsChangedEvent is broadcast to every page when the account set
// or the selected address changes.
type AccountsChangedEvent struct {
	Type            string   `json:"type"`
	Accounts        []string `json:"accounts"`
	SelectedAddress string   `json:"selectedAddress,omitempty"`
}

// ChainChangedEvent is broadcast to every page when the active chain changes.
type ChainChangedEvent struct {
	Type    string `json:"type"`
	ChainID string `json:"chainId"`
}
