package balance

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github/universalwallet/wallet-bridge/internal/util"
	"github/universalwallet/wallet-bridge/internal/wallet/network"
)

// ZeroBalance is what callers display when the balance cannot be fetched.
const ZeroBalance = "0.0000"

// Service fetches native coin balances over each network's JSON-RPC endpoint.
type Service interface {
	// NativeBalance returns the balance of address on the given chain,
	// formatted in whole coins with four decimals.
	NativeBalance(ctx context.Context, address string, chainID string) (string, error)
}

// Caller is the subset of the JSON-RPC client the service needs.
type Caller interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
	Close()
}

// DialFunc opens a JSON-RPC connection to url.
type DialFunc func(ctx context.Context, url string) (Caller, error)

type service struct {
	networks network.Service
	dial     DialFunc
}

// NewService creates a balance Service using go-ethereum's RPC client.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(networks network.Service) Service {
	return NewServiceWithDialer(networks, func(ctx context.Context, url string) (Caller, error) {
		return rpc.DialContext(ctx, url)
	})
}

// NewServiceWithDialer allows tests to stub the RPC connection.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewServiceWithDialer(networks network.Service, dial DialFunc) Service {
	return &service{
		networks: networks,
		dial:     dial,
	}
}

func (s *service) NativeBalance(ctx context.Context, address string, chainID string) (string, error) {
	log := util.LogFromContext(ctx)

	net, ok := s.networks.ByChainID(ctx, chainID)
	if !ok {
		return "", errors.New("network not found")
	}

	client, err := s.dial(ctx, net.RPCURL)
	if err != nil {
		log.Debug().Err(err).Str("chain_id", chainID).Msg("Failed to dial RPC endpoint")
		return "", errors.Wrap(err, "failed to dial RPC endpoint")
	}
	defer client.Close()

	var wei hexutil.Big
	if err := client.CallContext(ctx, &wei, "eth_getBalance", common.HexToAddress(address), "latest"); err != nil {
		log.Debug().Err(err).Str("chain_id", chainID).Msg("eth_getBalance failed")
		return "", errors.Wrap(err, "eth_getBalance failed")
	}

	return FormatWei(wei.ToInt()), nil
}

// FormatWei renders a wei amount as whole coins with four decimals.
func FormatWei(wei *big.Int) string {
	coins := new(big.Float).Quo(
		new(big.Float).SetInt(wei),
		new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)),
	)

	return coins.Text('f', 4)
}
