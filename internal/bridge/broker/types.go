package broker

import (
	"context"

	"github/universalwallet/wallet-bridge/internal/bridge/message"
)

// RequestKind classifies a pending user request.
type RequestKind string

const (
	KindConnection  RequestKind = "connection"
	KindTransaction RequestKind = "transaction"
	KindSign        RequestKind = "sign"
	KindTypedData   RequestKind = "typedData"
)

// PendingRequest is a dapp request parked until the user decides on it.
type PendingRequest struct {
	ID          string               `json:"id"`
	Type        RequestKind          `json:"type"`
	Origin      string               `json:"origin,omitempty"`
	Message     string               `json:"message,omitempty"`
	Address     string               `json:"address,omitempty"`
	Transaction *message.Transaction `json:"transaction,omitempty"`
	TypedData   string               `json:"typedData,omitempty"`
	Timestamp   int64                `json:"timestamp"`
}

// ConnectionResult resolves an approved connection request.
type ConnectionResult struct {
	Approved        bool     `json:"approved"`
	Accounts        []string `json:"accounts"`
	SelectedAddress string   `json:"selectedAddress,omitempty"`
}

// TransactionResult resolves an approved transaction request.
type TransactionResult struct {
	Approved       bool   `json:"approved"`
	TxHash         string `json:"txHash"`
	RawTransaction string `json:"rawTransaction"`
}

// SignatureResult resolves an approved sign or typed-data request.
type SignatureResult struct {
	Approved  bool   `json:"approved"`
	Signature string `json:"signature"`
}

// ApproveResponse reports the outcome of an approve call back to the UI.
type ApproveResponse struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RejectResponse reports the outcome of a reject or continue call.
type RejectResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// PendingResponse wraps the latest pending request for the popup UI.
type PendingResponse struct {
	Success bool            `json:"success"`
	Request *PendingRequest `json:"request,omitempty"`
}

// Delivery reports the outcome of one broadcast to one tab.
type Delivery struct {
	TabID int
	Err   error
}

// Tab receives broadcast events, typically a relay bound to one page.
type Tab interface {
	// ID identifies the tab for logging.
	ID() int

	// Notify delivers a broadcast event to the page.
	Notify(ctx context.Context, event any) error
}

// Service is the request broker. It owns the pending request table, the
// single popup window and the broadcast fan-out, and dispatches the full
// privileged message vocabulary.
type Service interface {
	// Dispatch handles one privileged message and returns its reply.
	Dispatch(ctx context.Context, msg *message.Privileged, sender message.Sender) (any, error)

	// Latest returns the most recent pending request, if any.
	Latest(ctx context.Context) (PendingRequest, bool)

	// Approve settles the identified request in the user's favor.
	Approve(ctx context.Context, id string) ApproveResponse

	// Reject settles the identified request against the user.
	Reject(ctx context.Context, id string) RejectResponse

	// ContinueAfterUnlock swaps the unlock popup for the approval popup
	// of the request that was waiting on the unlock.
	ContinueAfterUnlock(ctx context.Context) RejectResponse

	// RegisterTab adds a broadcast target and returns its unregister func.
	RegisterTab(t Tab) func()

	// BroadcastAccountsChanged pushes the current account list to all tabs
	// and reports the per-tab delivery outcome.
	BroadcastAccountsChanged(ctx context.Context) []Delivery

	// BroadcastChainChanged pushes a chain switch to all tabs and reports
	// the per-tab delivery outcome.
	BroadcastChainChanged(ctx context.Context, chainID string) []Delivery
}
