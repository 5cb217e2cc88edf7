package signer

import (
	"context"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
)

// Service signs transactions, personal messages and EIP-712 typed data
// with keys held by the seed manager or imported into the wallet.
type Service interface {
	// SignTransaction signs an EIP-1559 transaction.
	SignTransaction(ctx context.Context, req *SignTxRequest) (*SignTxResponse, error)

	// SignPersonalMessage signs a message per EIP-191 (personal_sign).
	SignPersonalMessage(ctx context.Context, req *SignMessageRequest) (string, error)

	// SignTypedData signs EIP-712 typed data (eth_signTypedData_v4).
	SignTypedData(ctx context.Context, req *SignTypedDataRequest) (string, error)
}

// Key selects the signing key: a BIP44 path into the wallet seed for
// derived accounts, or a raw private key for imported ones.
type Key struct {
	DerivationPath string
	PrivateKeyHex  string
}

// SignTxRequest carries the dapp transaction plus the signing key.
// DefaultChainID applies when the transaction does not name a chain.
type SignTxRequest struct {
	Transaction    *message.Transaction
	Key            Key
	DefaultChainID string
}

// SignTxResponse is a signed transaction.
type SignTxResponse struct {
	RawTransaction string // RLP-encoded signed transaction, 0x-prefixed
	TxHash         string
}

// SignMessageRequest carries a personal_sign payload.
type SignMessageRequest struct {
	Message string
	Key     Key
}

// SignTypedDataRequest carries parsed EIP-712 typed data.
type SignTypedDataRequest struct {
	TypedData apitypes.TypedData
	Key       Key
}
