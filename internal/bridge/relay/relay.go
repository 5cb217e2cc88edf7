package relay

import (
	"context"
	"encoding/json"

	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/bridge/port"
	"github/universalwallet/wallet-bridge/internal/util"
)

// Backend handles translated privileged messages. The broker implements it.
type Backend interface {
	Dispatch(ctx context.Context, msg *message.Privileged, sender message.Sender) (any, error)
}

// Relay binds one page to the broker. It forwards wallet-prefixed page
// messages as privileged messages, posts correlated replies back, and
// pushes broadcast events into the page. It is the in-process stand-in
// for a per-tab content script.
type Relay struct {
	end     *port.End
	backend Backend
	sender  message.Sender
}

// New creates a relay for a page connected through end. The sender
// describes the tab the page lives in and is attached to every dispatch.
func New(end *port.End, backend Backend, sender message.Sender) *Relay {
	return &Relay{
		end:     end,
		backend: backend,
		sender:  sender,
	}
}

// ID implements the broker's Tab.
func (r *Relay) ID() int {
	return r.sender.TabID
}

// Notify implements the broker's Tab by pushing a broadcast event to the page.
func (r *Relay) Notify(ctx context.Context, event any) error {
	return r.end.Send(ctx, event)
}

// Run serves the page until ctx ends or the port closes. Each page
// message is handled on its own goroutine so a parked user request does
// not stall the page's other traffic.
func (r *Relay) Run(ctx context.Context) {
	log := util.LogFromContext(ctx)

	for {
		select {
		case raw, ok := <-r.end.Recv():
			if !ok {
				return
			}
			go r.handle(ctx, raw)
		case <-r.end.Done():
			return
		case <-ctx.Done():
			log.Debug().Int("tabId", r.sender.TabID).Msg("Relay shutting down")
			return
		}
	}
}

func (r *Relay) handle(ctx context.Context, raw json.RawMessage) {
	var msg message.PageMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		util.LogFromContext(ctx).Warn().Err(err).Msg("Dropping malformed page message")
		return
	}

	privileged, ok := translate(&msg)
	if !ok {
		// not part of the wallet vocabulary, ignore
		return
	}

	response, err := r.backend.Dispatch(ctx, privileged, r.sender)
	if err != nil {
		response = errorBody{Error: err.Error()}
	}

	reply := message.PageReply{
		Type:     message.PageResponse,
		ID:       msg.ID,
		Response: response,
	}
	if err := r.end.Send(ctx, reply); err != nil {
		util.LogFromContext(ctx).Debug().Err(err).Str("id", msg.ID).Msg("Failed to deliver page reply")
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// translate maps a page message onto the privileged vocabulary. Messages
// outside the wallet prefix return false.
func translate(msg *message.PageMessage) (*message.Privileged, bool) {
	switch msg.Type {
	case message.PageRequestConnection:
		return &message.Privileged{Type: message.TypeRequestConnection}, true

	case message.PageRequestTransaction:
		return &message.Privileged{Type: message.TypeRequestTransaction, Transaction: msg.Transaction}, true

	case message.PageRequestSign:
		return &message.Privileged{Type: message.TypeRequestSign, Message: msg.Message, Address: msg.Address}, true

	case message.PageRequestTypedDataSign:
		return &message.Privileged{Type: message.TypeRequestTypedDataSign, TypedData: msg.TypedData, Address: msg.Address}, true

	case message.PageSignTransaction:
		return &message.Privileged{Type: message.TypeSignTransaction, Transaction: msg.Transaction}, true

	case message.PageSignMessage:
		return &message.Privileged{Type: message.TypeSignMessage, Message: msg.Message, Address: msg.Address}, true

	case message.PageSignTypedData:
		return &message.Privileged{Type: message.TypeSignTypedData, TypedData: msg.TypedData, Address: msg.Address}, true

	case message.PageGetAccounts:
		return &message.Privileged{Type: message.TypeGetAccounts}, true

	case message.PageAddNetwork:
		// a dapp's add-network call doubles as a switch to that network
		if msg.ChainParams == nil {
			return &message.Privileged{Type: message.TypeSwitchNetwork}, true
		}
		rpcURL := ""
		if len(msg.ChainParams.RPCURLs) > 0 {
			rpcURL = msg.ChainParams.RPCURLs[0]
		}

		return &message.Privileged{
			Type:    message.TypeSwitchNetwork,
			ChainID: msg.ChainParams.ChainID,
			Name:    msg.ChainParams.ChainName,
			RPCURL:  rpcURL,
		}, true

	case message.PageRevokePermissions:
		return &message.Privileged{Type: message.TypeRevokePermissions, Permissions: msg.Permissions}, true

	case message.PageGetPermissions:
		return &message.Privileged{Type: message.TypeGetPermissions}, true
	}

	return nil, false
}
