package broker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github/universalwallet/wallet-bridge/internal/bridge/windows"
	"github/universalwallet/wallet-bridge/internal/metrics"
	"github/universalwallet/wallet-bridge/internal/util"
	"github/universalwallet/wallet-bridge/internal/wallet"
	"github/universalwallet/wallet-bridge/internal/wallet/balance"
	"github/universalwallet/wallet-bridge/internal/wallet/network"
	"github/universalwallet/wallet-bridge/internal/wallet/token"
)

var (
	ErrRequestNotFound   = errors.New("Request not found")
	ErrNoPendingRequest  = errors.New("No pending request found")
	ErrUserRejected      = errors.New("User rejected the request")
	ErrPopupClosed       = errors.New("User closed popup")
	ErrUnlockPopupClosed = errors.New("User closed unlock popup")
)

// outcome settles a pending request either way.
type outcome struct {
	value any
	err   error
}

type pendingRequest struct {
	PendingRequest

	seq    uint64
	result chan outcome // buffered, the taker sends exactly once
}

type service struct {
	wallet   wallet.Service
	networks network.Service
	tokens   token.Service
	balances balance.Service
	windows  windows.Manager
	metrics  *metrics.Service

	mu      sync.Mutex
	pending map[string]*pendingRequest
	seq     uint64

	// single popup slot
	popupWindowID  int
	popupKind      windows.Kind
	popupRequestID string

	// request parked while the unlock popup is up
	deferred *pendingRequest

	tabsMu sync.Mutex
	tabs   map[int]Tab
	tabSeq int
}

// NewService creates the request broker and hooks it into window removal
// events.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(w wallet.Service, networks network.Service, tokens token.Service, balances balance.Service, wins windows.Manager, m *metrics.Service) Service {
	s := &service{
		wallet:   w,
		networks: networks,
		tokens:   tokens,
		balances: balances,
		windows:  wins,
		metrics:  m,
		pending:  map[string]*pendingRequest{},
		tabs:     map[int]Tab{},
	}

	wins.OnRemoved(s.handleWindowRemoved)

	return s
}

// takeLocked removes and returns the request with the given id. Whoever
// takes a request is the one who settles it. Caller must hold s.mu.
func (s *service) takeLocked(id string) *pendingRequest {
	req, ok := s.pending[id]
	if !ok {
		return nil
	}
	delete(s.pending, id)

	return req
}

// handleWindowRemoved reacts to any popup window going away. Removals the
// broker initiated itself have the popup slot cleared beforehand and are
// ignored here; everything else counts as the user dismissing the popup.
func (s *service) handleWindowRemoved(windowID int) {
	s.mu.Lock()

	if windowID != s.popupWindowID {
		s.mu.Unlock()
		return
	}

	kind := s.popupKind
	displayedID := s.popupRequestID
	s.popupWindowID = 0
	s.popupRequestID = ""
	s.popupKind = ""

	var take *pendingRequest
	var reason error

	if kind == windows.KindUnlock {
		if s.deferred != nil {
			take = s.takeLocked(s.deferred.ID)
			s.deferred = nil
			reason = ErrUnlockPopupClosed
		}
	} else if displayedID != "" {
		take = s.takeLocked(displayedID)
		reason = ErrPopupClosed
	}
	s.mu.Unlock()

	if take != nil {
		s.settle(take, outcome{err: reason}, metrics.OutcomeClosed)
	}
}

// settle delivers the outcome to the waiting dapp call.
func (s *service) settle(req *pendingRequest, out outcome, outcomeLabel string) {
	req.result <- out
	s.metrics.RequestsSettled.WithLabelValues(string(req.Type), outcomeLabel).Inc()
}

// createUserRequest parks a dapp request, opens the right popup and blocks
// until the user (or the popup lifecycle) settles it.
func (s *service) createUserRequest(ctx context.Context, kind RequestKind, req PendingRequest) (any, error) {
	log := util.LogFromContext(ctx)

	pend := &pendingRequest{
		PendingRequest: req,
		result:         make(chan outcome, 1),
	}
	pend.ID = uuid.New().String()
	pend.Type = kind
	pend.Timestamp = time.Now().UnixMilli()

	locked := s.wallet.State(ctx).IsLocked

	s.mu.Lock()
	s.seq++
	pend.seq = s.seq
	s.pending[pend.ID] = pend

	// a newer request displaces one still waiting on the unlock popup
	var displaced *pendingRequest
	if locked {
		if s.deferred != nil {
			displaced = s.takeLocked(s.deferred.ID)
		}
		s.deferred = pend
	}
	s.mu.Unlock()

	if displaced != nil {
		s.settle(displaced, outcome{err: ErrUnlockPopupClosed}, metrics.OutcomeClosed)
	}

	s.metrics.RequestsCreated.WithLabelValues(string(kind)).Inc()
	log.Debug().Str("id", pend.ID).Str("kind", string(kind)).Bool("locked", locked).Msg("User request created")

	popupKind := windows.KindApproval
	if locked {
		popupKind = windows.KindUnlock
	}
	s.openPopup(ctx, popupKind, pend)

	select {
	case out := <-pend.result:
		return out.value, out.err
	case <-ctx.Done():
		s.mu.Lock()
		delete(s.pending, pend.ID)
		if s.deferred == pend {
			s.deferred = nil
		}
		s.mu.Unlock()

		return nil, ctx.Err()
	}
}

// openPopup evicts any popup already on screen and opens a new one for
// req. Evicting a popup rejects the request it was showing. If opening
// fails the request is settled with the error.
func (s *service) openPopup(ctx context.Context, kind windows.Kind, req *pendingRequest) {
	s.mu.Lock()
	evictID := s.popupWindowID
	evictKind := s.popupKind
	evictReqID := s.popupRequestID
	// clear the slot first so the removal handler ignores the close below
	s.popupWindowID = 0
	s.popupRequestID = ""
	s.popupKind = ""

	var evicted *pendingRequest
	var reason error
	if evictID != 0 {
		switch {
		case evictKind == windows.KindApproval && evictReqID != "" && evictReqID != req.ID:
			evicted = s.takeLocked(evictReqID)
			reason = ErrPopupClosed
		case evictKind == windows.KindUnlock && s.deferred != nil && s.deferred != req:
			evicted = s.takeLocked(s.deferred.ID)
			s.deferred = nil
			reason = ErrUnlockPopupClosed
		}
	}
	s.mu.Unlock()

	if evicted != nil {
		s.settle(evicted, outcome{err: reason}, metrics.OutcomeClosed)
	}
	if evictID != 0 {
		if err := s.windows.Close(ctx, evictID); err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Int("windowId", evictID).Msg("Failed to close previous popup")
		}
	}

	windowID, err := s.windows.Open(ctx, kind, req.ID)
	if err != nil {
		s.mu.Lock()
		take := s.takeLocked(req.ID)
		if s.deferred == req {
			s.deferred = nil
		}
		s.mu.Unlock()

		if take != nil {
			s.settle(take, outcome{err: err}, metrics.OutcomeFailed)
		}

		return
	}

	s.mu.Lock()
	s.popupWindowID = windowID
	s.popupKind = kind
	if kind == windows.KindApproval {
		s.popupRequestID = req.ID
	} else {
		s.popupRequestID = ""
	}
	s.mu.Unlock()

	s.metrics.PopupsOpened.WithLabelValues(string(kind)).Inc()
}

// closePopup clears the popup slot before removing the window, so the
// removal handler knows the broker initiated it.
func (s *service) closePopup(ctx context.Context) {
	s.mu.Lock()
	windowID := s.popupWindowID
	s.popupWindowID = 0
	s.popupRequestID = ""
	s.popupKind = ""
	s.mu.Unlock()

	if windowID == 0 {
		return
	}

	if err := s.windows.Close(ctx, windowID); err != nil {
		util.LogFromContext(ctx).Debug().Err(err).Int("windowId", windowID).Msg("Failed to close popup")
	}
}

func (s *service) Latest(_ context.Context) (PendingRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *pendingRequest
	for _, req := range s.pending {
		if latest == nil ||
			req.Timestamp > latest.Timestamp ||
			(req.Timestamp == latest.Timestamp && req.seq > latest.seq) {
			latest = req
		}
	}
	if latest == nil {
		return PendingRequest{}, false
	}

	return latest.PendingRequest, true
}

func (s *service) Approve(ctx context.Context, id string) ApproveResponse {
	s.mu.Lock()
	req := s.takeLocked(id)
	if req != nil && s.deferred == req {
		s.deferred = nil
	}
	s.mu.Unlock()

	if req == nil {
		return ApproveResponse{Success: false, Error: ErrRequestNotFound.Error()}
	}

	result, err := s.resolveApproval(ctx, req)
	if err != nil {
		s.settle(req, outcome{err: err}, metrics.OutcomeFailed)

		return ApproveResponse{Success: false, Error: err.Error()}
	}

	s.settle(req, outcome{value: result}, metrics.OutcomeApproved)
	s.closePopup(ctx)

	return ApproveResponse{Success: true, Result: result}
}

// resolveApproval produces the value an approved request resolves with.
func (s *service) resolveApproval(ctx context.Context, req *pendingRequest) (any, error) {
	switch req.Type {
	case KindConnection:
		addresses := s.wallet.Addresses(ctx)

		return ConnectionResult{
			Approved:        true,
			Accounts:        addresses,
			SelectedAddress: s.wallet.SelectedAddress(ctx),
		}, nil

	case KindTransaction:
		signed, err := s.wallet.SignTransaction(ctx, req.Transaction)
		if err != nil {
			return nil, err
		}

		return TransactionResult{
			Approved:       true,
			TxHash:         signed.TxHash,
			RawTransaction: signed.RawTransaction,
		}, nil

	case KindSign:
		if req.Message == "" {
			return nil, errors.New("Message is required for signing")
		}
		signature, err := s.wallet.SignMessage(ctx, req.Message)
		if err != nil {
			return nil, err
		}

		return SignatureResult{Approved: true, Signature: signature}, nil

	case KindTypedData:
		signature, err := s.signTypedDataJSON(ctx, req.TypedData)
		if err != nil {
			return nil, err
		}

		return SignatureResult{Approved: true, Signature: signature}, nil
	}

	return nil, errors.Errorf("unknown request kind %q", req.Type)
}

// signTypedDataJSON parses the dapp's raw EIP-712 payload and signs it.
func (s *service) signTypedDataJSON(ctx context.Context, raw string) (string, error) {
	var typedData apitypes.TypedData
	if err := json.Unmarshal([]byte(raw), &typedData); err != nil {
		return "", errors.Wrap(err, "invalid typed data")
	}

	return s.wallet.SignTypedData(ctx, typedData)
}

func (s *service) Reject(ctx context.Context, id string) RejectResponse {
	s.mu.Lock()
	req := s.takeLocked(id)
	if req != nil && s.deferred == req {
		s.deferred = nil
	}
	s.mu.Unlock()

	if req == nil {
		return RejectResponse{Success: false, Error: ErrRequestNotFound.Error()}
	}

	s.settle(req, outcome{err: ErrUserRejected}, metrics.OutcomeRejected)
	s.closePopup(ctx)

	return RejectResponse{Success: true}
}

func (s *service) ContinueAfterUnlock(ctx context.Context) RejectResponse {
	s.mu.Lock()
	req := s.deferred
	if req != nil {
		if _, stillPending := s.pending[req.ID]; !stillPending {
			req = nil
		}
	}
	s.deferred = nil
	s.mu.Unlock()

	if req == nil {
		return RejectResponse{Success: false, Error: ErrNoPendingRequest.Error()}
	}

	s.closePopup(ctx)
	s.openPopup(ctx, windows.KindApproval, req)

	return RejectResponse{Success: true}
}
