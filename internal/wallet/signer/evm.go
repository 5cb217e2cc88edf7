package signer

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const defaultGasLimit = 21000

// SignTransaction signs an EIP-1559 transaction built from the dapp
// transaction object.
func (s *service) SignTransaction(ctx context.Context, req *SignTxRequest) (*SignTxResponse, error) {
	if req.Transaction == nil {
		return nil, errors.New("transaction is required")
	}

	ecdsaKey, cleanup, err := s.resolveKey(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if req.Transaction.From != "" {
		derived := crypto.PubkeyToAddress(ecdsaKey.PublicKey)
		if derived != common.HexToAddress(req.Transaction.From) {
			return nil, errors.New("from address does not match signing key")
		}
	}

	chainIDHex := req.Transaction.ChainID
	if chainIDHex == "" {
		chainIDHex = req.DefaultChainID
	}
	chainID, err := parseHexBig(chainIDHex)
	if err != nil {
		return nil, errors.Wrap(err, "invalid chainId")
	}

	nonce, err := parseHexUint(req.Transaction.Nonce, 0)
	if err != nil {
		return nil, errors.Wrap(err, "invalid nonce")
	}

	gasLimit, err := parseHexUint(req.Transaction.Gas, defaultGasLimit)
	if err != nil {
		return nil, errors.Wrap(err, "invalid gas")
	}

	value, err := parseHexBigDefault(req.Transaction.Value)
	if err != nil {
		return nil, errors.Wrap(err, "invalid value")
	}

	// legacy gasPrice doubles as both fee caps when no EIP-1559 fields are set
	feeCap := req.Transaction.MaxFeePerGas
	if feeCap == "" {
		feeCap = req.Transaction.GasPrice
	}
	maxFeePerGas, err := parseHexBigDefault(feeCap)
	if err != nil {
		return nil, errors.Wrap(err, "invalid maxFeePerGas")
	}

	maxPriorityFeePerGas, err := parseHexBigDefault(req.Transaction.MaxPriorityFeePerGas)
	if err != nil {
		return nil, errors.Wrap(err, "invalid maxPriorityFeePerGas")
	}

	var data []byte
	if req.Transaction.Data != "" {
		data, err = hexutil.Decode(req.Transaction.Data)
		if err != nil {
			return nil, errors.Wrap(err, "invalid data")
		}
	}

	var to *common.Address
	if req.Transaction.To != "" {
		addr := common.HexToAddress(req.Transaction.To)
		to = &addr
	}

	//nolint:varnamelen // tx is a common abbreviation for transaction
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: maxPriorityFeePerGas,
		GasFeeCap: maxFeePerGas,
		Gas:       gasLimit,
		To:        to,
		Value:     value,
		Data:      data,
	})

	signedTx, err := types.SignTx(tx, types.NewLondonSigner(chainID), ecdsaKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	raw, err := signedTx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal transaction")
	}

	return &SignTxResponse{
		RawTransaction: hexutil.Encode(raw),
		TxHash:         signedTx.Hash().Hex(),
	}, nil
}

// SignPersonalMessage signs per EIP-191: the message is prefixed and
// keccak-hashed, the recovery id is shifted into the legacy 27/28 range.
func (s *service) SignPersonalMessage(ctx context.Context, req *SignMessageRequest) (string, error) {
	ecdsaKey, cleanup, err := s.resolveKey(ctx, req.Key)
	if err != nil {
		return "", err
	}
	defer cleanup()

	digest := accounts.TextHash([]byte(req.Message))

	sig, err := crypto.Sign(digest, ecdsaKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign message")
	}
	sig[crypto.RecoveryIDOffset] += 27

	return hexutil.Encode(sig), nil
}

// SignTypedData signs the EIP-712 hash of the typed data.
func (s *service) SignTypedData(ctx context.Context, req *SignTypedDataRequest) (string, error) {
	ecdsaKey, cleanup, err := s.resolveKey(ctx, req.Key)
	if err != nil {
		return "", err
	}
	defer cleanup()

	digest, _, err := apitypesHash(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash typed data")
	}

	sig, err := crypto.Sign(digest, ecdsaKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign typed data")
	}
	sig[crypto.RecoveryIDOffset] += 27

	return hexutil.Encode(sig), nil
}

func parseHexBig(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.New("missing value")
	}

	return hexutil.DecodeBig(s)
}

func parseHexBigDefault(s string) (*big.Int, error) {
	if s == "" {
		return big.NewInt(0), nil
	}

	return hexutil.DecodeBig(s)
}

func parseHexUint(s string, fallback uint64) (uint64, error) {
	if s == "" {
		return fallback, nil
	}

	return hexutil.DecodeUint64(s)
}
