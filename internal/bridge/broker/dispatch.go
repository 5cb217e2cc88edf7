package broker

import (
	"context"

	"github.com/pkg/errors"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/util"
	"github/universalwallet/wallet-bridge/internal/wallet"
	"github/universalwallet/wallet-bridge/internal/wallet/balance"
	"github/universalwallet/wallet-bridge/internal/wallet/network"
	"github/universalwallet/wallet-bridge/internal/wallet/token"
)

var ErrUnknownMessageType = errors.New("Unknown message type")

// Reply envelopes of the privileged vocabulary.
type (
	stateReply struct {
		State wallet.State `json:"state"`
	}
	successReply struct {
		Success bool `json:"success"`
	}
	mnemonicReply struct {
		Success  bool   `json:"success"`
		Mnemonic string `json:"mnemonic"`
	}
	accountsReply struct {
		Accounts        []string `json:"accounts"`
		SelectedAddress string   `json:"selectedAddress,omitempty"`
	}
	accountReply struct {
		Account string `json:"account"`
	}
	importedAccountReply struct {
		Success bool   `json:"success"`
		Account string `json:"account"`
	}
	signatureReply struct {
		Signature string `json:"signature"`
	}
	networksReply struct {
		Success  bool              `json:"success"`
		Networks []network.Network `json:"networks"`
	}
	networkReply struct {
		Success bool            `json:"success"`
		Network network.Network `json:"network"`
	}
	privateKeyReply struct {
		Success    bool   `json:"success"`
		PrivateKey string `json:"privateKey"`
	}
	balanceReply struct {
		Success bool   `json:"success"`
		Balance string `json:"balance"`
	}
	tokensReply struct {
		Success bool          `json:"success"`
		Tokens  []token.Token `json:"tokens"`
	}
	permissionsReply struct {
		Success     bool                 `json:"success"`
		Permissions []message.Permission `json:"permissions"`
	}
)

//nolint:gocyclo // The privileged vocabulary is one big flat switch.
func (s *service) Dispatch(ctx context.Context, msg *message.Privileged, sender message.Sender) (any, error) {
	switch msg.Type {
	case message.TypeGetWalletState:
		return stateReply{State: s.wallet.State(ctx)}, nil

	case message.TypeCreateWallet:
		mnemonic, err := s.wallet.Create(ctx, msg.Password)
		if err != nil {
			return nil, err
		}

		return mnemonicReply{Success: true, Mnemonic: mnemonic}, nil

	case message.TypeImportWallet:
		if err := s.wallet.Import(ctx, msg.Mnemonic, msg.Password); err != nil {
			return nil, err
		}

		return successReply{Success: true}, nil

	case message.TypeUnlockWallet:
		unlocked, err := s.wallet.Unlock(ctx, msg.Password)
		if err != nil {
			return nil, err
		}
		if unlocked {
			s.BroadcastAccountsChanged(ctx)
		}

		return successReply{Success: unlocked}, nil

	case message.TypeLockWallet:
		s.wallet.Lock(ctx)

		return successReply{Success: true}, nil

	case message.TypeGetAccounts:
		return accountsReply{
			Accounts:        s.wallet.Addresses(ctx),
			SelectedAddress: s.wallet.SelectedAddress(ctx),
		}, nil

	case message.TypeCreateAccount:
		account, err := s.wallet.CreateAccount(ctx, msg.Name)
		if err != nil {
			return nil, err
		}
		s.BroadcastAccountsChanged(ctx)

		return accountReply{Account: account.Address}, nil

	case message.TypeImportAccount:
		account, err := s.wallet.ImportAccountFromPrivateKey(ctx, msg.Name, msg.PrivateKey)
		if err != nil {
			return nil, err
		}
		s.BroadcastAccountsChanged(ctx)

		return importedAccountReply{Success: true, Account: account.Address}, nil

	case message.TypeSwitchAccount:
		if err := s.wallet.SwitchAccount(ctx, msg.Index); err != nil {
			return nil, err
		}
		s.BroadcastAccountsChanged(ctx)

		return successReply{Success: true}, nil

	case message.TypeSwitchNetwork:
		if err := s.wallet.SwitchNetwork(ctx, msg.ChainID, msg.Name, msg.RPCURL); err != nil {
			return nil, err
		}
		s.BroadcastChainChanged(ctx, msg.ChainID)

		return successReply{Success: true}, nil

	case message.TypeRequestConnection:
		return s.createUserRequest(ctx, KindConnection, PendingRequest{
			Origin: sender.EffectiveOrigin(),
		})

	case message.TypeRequestTransaction:
		return s.createUserRequest(ctx, KindTransaction, PendingRequest{
			Transaction: msg.Transaction,
			Origin:      sender.EffectiveOrigin(),
		})

	case message.TypeRequestSign:
		return s.createUserRequest(ctx, KindSign, PendingRequest{
			Message: msg.Message,
			Address: msg.Address,
			Origin:  sender.EffectiveOrigin(),
		})

	case message.TypeRequestTypedDataSign:
		return s.createUserRequest(ctx, KindTypedData, PendingRequest{
			TypedData: msg.TypedData,
			Address:   msg.Address,
			Origin:    sender.EffectiveOrigin(),
		})

	case message.TypeGetPendingRequest:
		if latest, ok := s.Latest(ctx); ok {
			return PendingResponse{Success: true, Request: &latest}, nil
		}

		return PendingResponse{Success: true}, nil

	case message.TypeApproveRequest:
		return s.Approve(ctx, msg.ID), nil

	case message.TypeRejectRequest:
		return s.Reject(ctx, msg.ID), nil

	case message.TypeWalletUnlockedContinueRequest:
		return s.ContinueAfterUnlock(ctx), nil

	case message.TypeSignTransaction:
		signed, err := s.wallet.SignTransaction(ctx, msg.Transaction)
		if err != nil {
			return nil, err
		}

		return signatureReply{Signature: signed.RawTransaction}, nil

	case message.TypeSignMessage:
		signature, err := s.wallet.SignMessage(ctx, msg.Message)
		if err != nil {
			return nil, err
		}

		return signatureReply{Signature: signature}, nil

	case message.TypeSignTypedData:
		signature, err := s.signTypedDataJSON(ctx, msg.TypedData)
		if err != nil {
			return nil, err
		}

		return signatureReply{Signature: signature}, nil

	case message.TypeGetNetworks:
		return networksReply{Success: true, Networks: s.networks.Networks(ctx)}, nil

	case message.TypeAddNetwork:
		added, err := s.networks.Add(ctx, network.AddParams{
			ChainID:          msg.ChainID,
			Name:             msg.Name,
			RPCURL:           msg.RPCURL,
			Symbol:           msg.Symbol,
			BlockExplorerURL: msg.BlockExplorerURL,
		})
		if err != nil {
			return nil, err
		}

		return networkReply{Success: true, Network: added}, nil

	case message.TypeUpdateNetwork:
		updated, err := s.networks.Update(ctx, msg.NetworkID, network.AddParams{
			ChainID:          msg.ChainID,
			Name:             msg.Name,
			RPCURL:           msg.RPCURL,
			Symbol:           msg.Symbol,
			BlockExplorerURL: msg.BlockExplorerURL,
		})
		if err != nil {
			return nil, err
		}

		return networkReply{Success: true, Network: updated}, nil

	case message.TypeRemoveNetwork:
		if err := s.networks.Remove(ctx, msg.NetworkID); err != nil {
			return nil, err
		}

		return successReply{Success: true}, nil

	case message.TypeGetPrivateKey:
		privateKey, err := s.wallet.PrivateKey(ctx, msg.Password, msg.AccountIndex)
		if err != nil {
			return nil, err
		}

		return privateKeyReply{Success: true, PrivateKey: privateKey}, nil

	case message.TypeGetMnemonic:
		mnemonic, err := s.wallet.Mnemonic(ctx, msg.Password)
		if err != nil {
			return nil, err
		}

		return mnemonicReply{Success: true, Mnemonic: mnemonic}, nil

	case message.TypeGetBalance:
		// balance failures degrade to a zero display value
		bal, err := s.balances.NativeBalance(ctx, msg.Address, msg.ChainID)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Str("chainId", msg.ChainID).Msg("Failed to fetch balance")
			bal = balance.ZeroBalance
		}

		return balanceReply{Success: true, Balance: bal}, nil

	case message.TypeRenameAccount:
		if err := s.wallet.RenameAccount(ctx, msg.AccountIndex, msg.NewName); err != nil {
			return nil, err
		}

		return successReply{Success: true}, nil

	case message.TypeGetTokens:
		return tokensReply{Success: true, Tokens: s.tokens.Tokens(ctx, msg.AccountAddress, msg.ChainID)}, nil

	case message.TypeAddToken:
		added, err := s.tokens.Add(ctx, msg.AccountAddress, msg.ChainID, token.AddParams{
			Address:  msg.TokenAddress,
			Symbol:   msg.Symbol,
			Name:     msg.Name,
			Decimals: msg.Decimals,
		})
		if err != nil {
			return nil, err
		}

		return successReply{Success: added}, nil

	case message.TypeRemoveToken:
		removed, err := s.tokens.Remove(ctx, msg.AccountAddress, msg.ChainID, msg.TokenAddress)
		if err != nil {
			return nil, err
		}

		return successReply{Success: removed}, nil

	case message.TypeUpdateTokenBalance:
		if err := s.tokens.UpdateBalance(ctx, msg.AccountAddress, msg.ChainID, msg.TokenAddress, msg.Balance); err != nil {
			return nil, err
		}

		return successReply{Success: true}, nil

	case message.TypeGetPopularTokens:
		return tokensReply{Success: true, Tokens: s.tokens.Popular(ctx, msg.ChainID)}, nil

	case message.TypeRevokePermissions:
		return successReply{Success: true}, nil

	case message.TypeGetPermissions:
		return permissionsReply{Success: true, Permissions: s.wallet.Permissions(ctx)}, nil
	}

	return nil, ErrUnknownMessageType
}
