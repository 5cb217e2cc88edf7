package provider

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/bridge/port"
	"github/universalwallet/wallet-bridge/internal/config"
	"github/universalwallet/wallet-bridge/internal/util"
)

// Provider events.
const (
	EventAccountsChanged = "accountsChanged"
	EventChainChanged    = "chainChanged"
	EventDisconnect      = "disconnect"
)

var (
	ErrUserRejectedRequest     = errors.New("User rejected the request")
	ErrUserRejectedTransaction = errors.New("User rejected transaction")
	ErrUserRejectedSignature   = errors.New("User rejected signature")
)

// RPCFunc proxies read-only JSON-RPC calls straight to a node, the way
// the injected provider answers eth_getBalance without going through the
// wallet.
type RPCFunc func(ctx context.Context, method string, params []any) (any, error)

// DisconnectPayload accompanies the disconnect event.
type DisconnectPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Provider is the EIP-1193 facade a dapp talks to. It owns the page-side
// cache of chain and account state and forwards everything privileged
// through its port to the relay.
type Provider struct {
	*Emitter

	client *port.Client
	config config.BridgeServer
	rpc    RPCFunc

	mu              sync.Mutex
	chainID         string
	networkVersion  string
	selectedAddress string
	accounts        []string
	connected       bool
}

// New creates a provider speaking through client. rpc may be nil, which
// disables the direct node passthrough.
func New(client *port.Client, cfg config.BridgeServer, rpc RPCFunc) *Provider {
	p := &Provider{
		Emitter:        NewEmitter(),
		client:         client,
		config:         cfg,
		rpc:            rpc,
		chainID:        cfg.DefaultChainID,
		networkVersion: chainVersion(cfg.DefaultChainID),
	}

	client.Subscribe(message.PageAccountsChanged, p.onAccountsChanged)
	client.Subscribe(message.PageChainChanged, p.onChainChanged)

	return p
}

// Initialize warms the account cache. It never marks the provider
// connected; that takes an explicit user approval.
func (p *Provider) Initialize(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.config.AccountsLookupTimeout)
	defer cancel()

	accounts, err := p.fetchAccounts(ctx)
	if err != nil {
		util.LogFromContext(ctx).Debug().Err(err).Msg("Initial account lookup failed, will request on first use")
		return
	}

	p.mu.Lock()
	if len(accounts) > 0 {
		p.accounts = accounts
		if p.selectedAddress == "" {
			p.selectedAddress = accounts[0]
		}
	}
	p.mu.Unlock()
}

// ChainID returns the provider's current chain id.
func (p *Provider) ChainID() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.chainID
}

// NetworkVersion returns the decimal rendering of the chain id.
func (p *Provider) NetworkVersion() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.networkVersion
}

// SelectedAddress returns the currently selected account, or "".
func (p *Provider) SelectedAddress() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.selectedAddress
}

// Connected reports whether the dapp holds an approved connection.
func (p *Provider) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.connected && len(p.accounts) > 0
}

// Request handles one EIP-1193 request.
//
//nolint:gocyclo // The RPC method surface is one flat switch.
func (p *Provider) Request(ctx context.Context, method string, params []any) (any, error) {
	switch method {
	case "eth_requestAccounts", "eth_accounts":
		return p.accountsRequest(ctx)

	case "eth_chainId":
		return p.ChainID(), nil

	case "net_version":
		return p.NetworkVersion(), nil

	case "eth_getBalance":
		if p.rpc == nil {
			return nil, errors.New("no rpc endpoint configured")
		}

		return p.rpc(ctx, "eth_getBalance", params)

	case "eth_sendTransaction":
		tx, err := paramTransaction(params, 0)
		if err != nil {
			return nil, err
		}

		return p.sendTransaction(ctx, tx)

	case "personal_sign":
		msg, err := paramString(params, 0)
		if err != nil {
			return nil, err
		}
		address, _ := paramString(params, 1)

		return p.personalSign(ctx, msg, address)

	case "eth_signTypedData_v4":
		address, err := paramString(params, 0)
		if err != nil {
			return nil, err
		}
		typedData, err := paramString(params, 1)
		if err != nil {
			return nil, err
		}

		return p.signTypedData(ctx, address, typedData)

	case "wallet_switchEthereumChain":
		chainParams, err := paramChain(params, 0)
		if err != nil {
			return nil, err
		}
		p.SetChainID(chainParams.ChainID)

		return nil, nil

	case "wallet_addEthereumChain":
		chainParams, err := paramChain(params, 0)
		if err != nil {
			return nil, err
		}

		return nil, p.addChain(ctx, chainParams)

	case "wallet_revokePermissions":
		return nil, p.revokePermissions(ctx, params)

	case "wallet_getPermissions":
		return p.getPermissions(ctx)
	}

	return nil, errors.Errorf("Unsupported method: %s", method)
}

// Enable is the legacy connection entrypoint.
func (p *Provider) Enable(ctx context.Context) ([]string, error) {
	return p.accountsRequest(ctx)
}

// Send is the legacy request entrypoint predating EIP-1193. It funnels
// straight into Request.
func (p *Provider) Send(ctx context.Context, method string, params []any) (any, error) {
	return p.Request(ctx, method, params)
}

// SendAsync is the callback flavor of Send. The callback runs on its own
// goroutine once the request settles.
func (p *Provider) SendAsync(ctx context.Context, method string, params []any, callback func(result any, err error)) {
	go func() {
		result, err := p.Request(ctx, method, params)
		callback(result, err)
	}()
}

type connectionResponse struct {
	Approved        bool     `json:"approved"`
	Accounts        []string `json:"accounts"`
	SelectedAddress string   `json:"selectedAddress"`
	Error           string   `json:"error"`
}

func (p *Provider) accountsRequest(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	connected := p.connected
	p.mu.Unlock()

	if !connected {
		res, err := p.client.Call(ctx, message.PageMessage{Type: message.PageRequestConnection})
		if err != nil {
			return nil, err
		}

		var body connectionResponse
		if err := res.Decode(&body); err != nil {
			return nil, errors.Wrap(err, "malformed connection response")
		}
		if body.Error != "" || !body.Approved {
			return nil, ErrUserRejectedRequest
		}

		p.mu.Lock()
		p.connected = true
		previous := p.accounts
		if len(body.Accounts) > 0 {
			p.accounts = body.Accounts
			p.selectedAddress = body.SelectedAddress
			if p.selectedAddress == "" {
				p.selectedAddress = body.Accounts[0]
			}
		}
		changed := !sameAccounts(previous, p.accounts)
		toEmit := reorderSelectedFirst(p.accounts, p.selectedAddress)
		p.mu.Unlock()

		if changed && len(toEmit) > 0 {
			p.Emit(EventAccountsChanged, toEmit)
		}
	}

	p.mu.Lock()
	empty := len(p.accounts) == 0
	p.mu.Unlock()

	if empty {
		lookupCtx, cancel := context.WithTimeout(ctx, p.config.AccountsLookupTimeout)
		accounts, err := p.fetchAccounts(lookupCtx)
		cancel()
		if err == nil && len(accounts) > 0 {
			p.mu.Lock()
			previous := p.accounts
			p.accounts = accounts
			if p.selectedAddress == "" {
				p.selectedAddress = accounts[0]
			}
			changed := !sameAccounts(previous, accounts)
			toEmit := reorderSelectedFirst(accounts, p.selectedAddress)
			p.mu.Unlock()

			if changed {
				p.Emit(EventAccountsChanged, toEmit)
			}
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return reorderSelectedFirst(p.accounts, p.selectedAddress), nil
}

type accountsResponse struct {
	Accounts        []string `json:"accounts"`
	SelectedAddress string   `json:"selectedAddress"`
	Error           string   `json:"error"`
}

// fetchAccounts asks the wallet for its account list without prompting
// the user. Updates the selected address when the wallet names one.
func (p *Provider) fetchAccounts(ctx context.Context) ([]string, error) {
	res, err := p.client.Call(ctx, message.PageMessage{Type: message.PageGetAccounts})
	if err != nil {
		return nil, err
	}

	var body accountsResponse
	if err := res.Decode(&body); err != nil {
		return nil, errors.Wrap(err, "malformed accounts response")
	}
	if body.Error != "" {
		return nil, errors.New(body.Error)
	}

	if body.SelectedAddress != "" && contains(body.Accounts, body.SelectedAddress) {
		p.mu.Lock()
		p.selectedAddress = body.SelectedAddress
		p.mu.Unlock()
	}

	return body.Accounts, nil
}

type approvalResponse struct {
	Approved  bool   `json:"approved"`
	TxHash    string `json:"txHash"`
	Signature string `json:"signature"`
	Error     string `json:"error"`
}

func (p *Provider) sendTransaction(ctx context.Context, tx *message.Transaction) (string, error) {
	res, err := p.client.Call(ctx, message.PageMessage{
		Type:        message.PageRequestTransaction,
		Transaction: tx,
	})
	if err != nil {
		return "", err
	}

	var body approvalResponse
	if err := res.Decode(&body); err != nil {
		return "", errors.Wrap(err, "malformed transaction response")
	}
	if body.Error != "" || !body.Approved {
		return "", ErrUserRejectedTransaction
	}

	return body.TxHash, nil
}

func (p *Provider) personalSign(ctx context.Context, msg string, address string) (string, error) {
	res, err := p.client.Call(ctx, message.PageMessage{
		Type:    message.PageRequestSign,
		Message: msg,
		Address: address,
	})
	if err != nil {
		return "", err
	}

	var body approvalResponse
	if err := res.Decode(&body); err != nil {
		return "", errors.Wrap(err, "malformed sign response")
	}
	if body.Error != "" || !body.Approved {
		return "", ErrUserRejectedSignature
	}

	return body.Signature, nil
}

func (p *Provider) signTypedData(ctx context.Context, address string, typedData string) (string, error) {
	res, err := p.client.Call(ctx, message.PageMessage{
		Type:      message.PageRequestTypedDataSign,
		TypedData: typedData,
		Address:   address,
	})
	if err != nil {
		return "", err
	}

	var body approvalResponse
	if err := res.Decode(&body); err != nil {
		return "", errors.Wrap(err, "malformed typed data response")
	}
	if body.Error != "" || !body.Approved {
		return "", ErrUserRejectedSignature
	}

	return body.Signature, nil
}

func (p *Provider) addChain(ctx context.Context, chainParams *message.ChainParams) error {
	_, err := p.client.Call(ctx, message.PageMessage{
		Type:        message.PageAddNetwork,
		ChainParams: chainParams,
	})

	return err
}

func (p *Provider) revokePermissions(ctx context.Context, params []any) error {
	var raw json.RawMessage
	if len(params) > 0 {
		encoded, err := json.Marshal(params[0])
		if err != nil {
			return errors.Wrap(err, "invalid permissions payload")
		}
		raw = encoded
	}

	if _, err := p.client.Call(ctx, message.PageMessage{
		Type:        message.PageRevokePermissions,
		Permissions: raw,
	}); err != nil {
		return err
	}

	p.Disconnect()

	return nil
}

type permissionsResponse struct {
	Permissions []message.Permission `json:"permissions"`
	Error       string               `json:"error"`
}

func (p *Provider) getPermissions(ctx context.Context) ([]message.Permission, error) {
	res, err := p.client.Call(ctx, message.PageMessage{Type: message.PageGetPermissions})
	if err != nil {
		return nil, err
	}

	var body permissionsResponse
	if err := res.Decode(&body); err != nil {
		return nil, errors.Wrap(err, "malformed permissions response")
	}
	if body.Error != "" {
		return nil, errors.New(body.Error)
	}
	if body.Permissions == nil {
		return []message.Permission{}, nil
	}

	return body.Permissions, nil
}

// onAccountsChanged applies a broadcast account change and re-emits it
// when the list actually changed, selected account first.
func (p *Provider) onAccountsChanged(raw json.RawMessage) {
	var event message.AccountsChangedEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return
	}

	p.mu.Lock()
	previous := p.accounts
	p.accounts = event.Accounts

	if event.SelectedAddress != "" && contains(event.Accounts, event.SelectedAddress) {
		p.selectedAddress = event.SelectedAddress
	} else if len(event.Accounts) > 0 {
		p.selectedAddress = event.Accounts[0]
	} else {
		p.selectedAddress = ""
	}

	changed := !sameAccounts(previous, event.Accounts)
	toEmit := reorderSelectedFirst(event.Accounts, p.selectedAddress)
	p.mu.Unlock()

	if changed {
		p.Emit(EventAccountsChanged, toEmit)
	}
}

// onChainChanged applies a broadcast chain switch and re-emits it when
// the chain actually changed.
func (p *Provider) onChainChanged(raw json.RawMessage) {
	var event message.ChainChangedEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return
	}

	p.mu.Lock()
	changed := p.chainID != event.ChainID
	p.chainID = event.ChainID
	p.networkVersion = chainVersion(event.ChainID)
	p.mu.Unlock()

	if changed {
		p.Emit(EventChainChanged, event.ChainID)
	}
}

// SetAccounts lets the wallet UI replace the account list directly.
func (p *Provider) SetAccounts(accounts []string) {
	p.mu.Lock()
	previous := p.accounts
	p.accounts = accounts
	if len(accounts) > 0 {
		p.selectedAddress = accounts[0]
	} else {
		p.selectedAddress = ""
	}
	changed := !sameAccounts(previous, accounts)
	p.mu.Unlock()

	if changed {
		p.Emit(EventAccountsChanged, accounts)
	}
}

// SetChainID lets the wallet UI switch the chain directly.
func (p *Provider) SetChainID(chainID string) {
	p.mu.Lock()
	changed := p.chainID != chainID
	p.chainID = chainID
	p.networkVersion = chainVersion(chainID)
	p.mu.Unlock()

	if changed {
		p.Emit(EventChainChanged, chainID)
	}
}

// Disconnect drops the connection state and tells the dapp.
func (p *Provider) Disconnect() {
	p.mu.Lock()
	p.connected = false
	p.accounts = nil
	p.selectedAddress = ""
	p.mu.Unlock()

	p.Emit(EventAccountsChanged, []string{})
	p.Emit(EventDisconnect, DisconnectPayload{Code: 4900, Message: "User disconnected"})
}

// chainVersion renders a hex chain id as the decimal net_version string.
func chainVersion(chainID string) string {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimPrefix(chainID, "0x"), "0X"), 16, 64)
	if err != nil {
		return "0"
	}

	return strconv.FormatUint(v, 10)
}

// sameAccounts compares account lists order-sensitively, the way the
// change events are deduplicated.
func sameAccounts(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}

	return false
}

// reorderSelectedFirst moves the selected account to the front without
// touching the relative order of the rest.
func reorderSelectedFirst(accounts []string, selected string) []string {
	if selected == "" || !contains(accounts, selected) {
		return append([]string{}, accounts...)
	}

	out := make([]string, 0, len(accounts))
	out = append(out, selected)
	for _, acc := range accounts {
		if acc != selected {
			out = append(out, acc)
		}
	}

	return out
}

// paramString pulls a string parameter by position.
func paramString(params []any, i int) (string, error) {
	if i >= len(params) {
		return "", errors.Errorf("missing parameter %d", i)
	}
	s, ok := params[i].(string)
	if !ok {
		return "", errors.Errorf("parameter %d is not a string", i)
	}

	return s, nil
}

// paramTransaction pulls a transaction parameter by position, accepting
// both the typed struct and a raw dapp object.
func paramTransaction(params []any, i int) (*message.Transaction, error) {
	if i >= len(params) {
		return nil, errors.Errorf("missing parameter %d", i)
	}

	if tx, ok := params[i].(*message.Transaction); ok {
		return tx, nil
	}

	encoded, err := json.Marshal(params[i])
	if err != nil {
		return nil, errors.Wrapf(err, "parameter %d is not a transaction", i)
	}
	var tx message.Transaction
	if err := json.Unmarshal(encoded, &tx); err != nil {
		return nil, errors.Wrapf(err, "parameter %d is not a transaction", i)
	}

	return &tx, nil
}

// paramChain pulls an EIP-3085 chain descriptor by position.
func paramChain(params []any, i int) (*message.ChainParams, error) {
	if i >= len(params) {
		return nil, errors.Errorf("missing parameter %d", i)
	}

	if chain, ok := params[i].(*message.ChainParams); ok {
		return chain, nil
	}

	encoded, err := json.Marshal(params[i])
	if err != nil {
		return nil, errors.Wrapf(err, "parameter %d is not a chain descriptor", i)
	}
	var chain message.ChainParams
	if err := json.Unmarshal(encoded, &chain); err != nil {
		return nil, errors.Wrapf(err, "parameter %d is not a chain descriptor", i)
	}

	return &chain, nil
}
