package balance_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/universalwallet/wallet-bridge/internal/store"
	"github/universalwallet/wallet-bridge/internal/wallet/balance"
	"github/universalwallet/wallet-bridge/internal/wallet/network"
)

type stubCaller struct {
	wei *big.Int
	err error
}

func (c *stubCaller) CallContext(_ context.Context, result any, method string, _ ...any) error {
	if c.err != nil {
		return c.err
	}
	if method != "eth_getBalance" {
		return errors.Errorf("unexpected method %s", method)
	}

	out, ok := result.(*hexutil.Big)
	if !ok {
		return errors.New("unexpected result type")
	}
	*out = hexutil.Big(*c.wei)

	return nil
}

func (c *stubCaller) Close() {}

func newBalanceService(t *testing.T, caller *stubCaller) balance.Service {
	t.Helper()

	networks := network.NewService(store.NewInMemory())
	require.NoError(t, networks.Initialize(context.Background()))

	return balance.NewServiceWithDialer(networks, func(_ context.Context, _ string) (balance.Caller, error) {
		return caller, nil
	})
}

func TestNativeBalance(t *testing.T) {
	oneAndAHalf, _ := new(big.Int).SetString("1500000000000000000", 10)
	svc := newBalanceService(t, &stubCaller{wei: oneAndAHalf})

	got, err := svc.NativeBalance(context.Background(), "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", "0x1")
	require.NoError(t, err)
	assert.Equal(t, "1.5000", got)
}

func TestNativeBalanceUnknownNetwork(t *testing.T) {
	svc := newBalanceService(t, &stubCaller{wei: big.NewInt(0)})

	_, err := svc.NativeBalance(context.Background(), "0xdead", "0xdeadbeef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network not found")
}

func TestNativeBalanceRPCError(t *testing.T) {
	svc := newBalanceService(t, &stubCaller{err: errors.New("boom")})

	_, err := svc.NativeBalance(context.Background(), "0xdead", "0x1")
	require.Error(t, err)
}

func TestFormatWei(t *testing.T) {
	assert.Equal(t, "0.0000", balance.FormatWei(big.NewInt(0)))

	wei, _ := new(big.Int).SetString("1000000000000000000", 10)
	assert.Equal(t, "1.0000", balance.FormatWei(wei))

	small, _ := new(big.Int).SetString("123400000000000", 10)
	assert.Equal(t, "0.0001", balance.FormatWei(small))
}
