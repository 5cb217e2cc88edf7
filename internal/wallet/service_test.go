package wallet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/universalwallet/wallet-bridge/internal/bridge/message"
	"github/universalwallet/wallet-bridge/internal/config"
	"github/universalwallet/wallet-bridge/internal/store"
	"github/universalwallet/wallet-bridge/internal/wallet"
	"github/universalwallet/wallet-bridge/internal/wallet/address"
	"github/universalwallet/wallet-bridge/internal/wallet/keystore"
	"github/universalwallet/wallet-bridge/internal/wallet/network"
	"github/universalwallet/wallet-bridge/internal/wallet/seed"
	"github/universalwallet/wallet-bridge/internal/wallet/signer"
)

const testPassword = "correct horse battery"

func newTestWallet(t *testing.T) (wallet.Service, store.Store) {
	t.Helper()

	st := store.NewInMemory()

	return newTestWalletWithStore(t, st), st
}

func newTestWalletWithStore(t *testing.T, st store.Store) wallet.Service {
	t.Helper()

	seedMgr := seed.NewManager()
	ks := keystore.NewServiceWithParams(st, keystore.ScryptParams{DKLen: 32, N: 16, R: 8, P: 1})
	addr := address.NewService()
	sig := signer.NewService(seedMgr, addr, true)
	networks := network.NewService(st)

	ctx := context.Background()
	require.NoError(t, networks.Initialize(ctx))

	svc := wallet.NewService(config.WalletServer{MinPasswordLength: 8}, st, seedMgr, ks, addr, sig, networks)
	require.NoError(t, svc.Initialize(ctx))

	return svc
}

func TestWalletCreateAndState(t *testing.T) {
	svc, _ := newTestWallet(t)
	ctx := context.Background()

	state := svc.State(ctx)
	assert.False(t, state.HasWallet)
	assert.True(t, state.IsLocked)

	mnemonic, err := svc.Create(ctx, testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, mnemonic)

	state = svc.State(ctx)
	assert.True(t, state.HasWallet)
	assert.False(t, state.IsLocked)
	require.Len(t, state.Accounts, 1)
	assert.Equal(t, "Account 1", state.Accounts[0].Name)
	assert.Equal(t, wallet.AccountTypeDerived, state.Accounts[0].Type)
	assert.NotEmpty(t, state.Accounts[0].Address)
	assert.Equal(t, "0x1", state.Network.ChainID)

	_, err = svc.Create(ctx, testPassword)
	require.ErrorIs(t, err, wallet.ErrWalletExists)
}

func TestWalletCreateRejectsShortPassword(t *testing.T) {
	svc, _ := newTestWallet(t)

	_, err := svc.Create(context.Background(), "short")
	require.Error(t, err)
}

func TestWalletLockUnlock(t *testing.T) {
	svc, _ := newTestWallet(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testPassword)
	require.NoError(t, err)

	selected := svc.SelectedAddress(ctx)
	require.NotEmpty(t, selected)

	svc.Lock(ctx)
	assert.True(t, svc.State(ctx).IsLocked)

	_, err = svc.SignMessage(ctx, "hello")
	require.ErrorIs(t, err, wallet.ErrWalletLocked)

	ok, err := svc.Unlock(ctx, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Unlock(ctx, testPassword)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, selected, svc.SelectedAddress(ctx))
}

func TestWalletImportMnemonicIsDeterministic(t *testing.T) {
	// well-known test vector
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	svc, _ := newTestWallet(t)
	ctx := context.Background()

	require.NoError(t, svc.Import(ctx, mnemonic, testPassword))

	accounts := svc.Accounts(ctx)
	require.Len(t, accounts, 1)
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", accounts[0].Address)

	got, err := svc.Mnemonic(ctx, testPassword)
	require.NoError(t, err)
	assert.Equal(t, mnemonic, got)

	_, err = svc.Mnemonic(ctx, "wrong password")
	require.ErrorIs(t, err, wallet.ErrInvalidPass)
}

func TestWalletImportRejectsInvalidMnemonic(t *testing.T) {
	svc, _ := newTestWallet(t)

	err := svc.Import(context.Background(), "definitely not a mnemonic", testPassword)
	require.Error(t, err)
}

func TestWalletCreateAccountDerivesSequentially(t *testing.T) {
	svc, _ := newTestWallet(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testPassword)
	require.NoError(t, err)

	second, err := svc.CreateAccount(ctx, "Savings")
	require.NoError(t, err)
	assert.Equal(t, "Savings", second.Name)
	assert.Equal(t, 1, second.Index)

	accounts := svc.Accounts(ctx)
	require.Len(t, accounts, 2)
	assert.NotEqual(t, accounts[0].Address, accounts[1].Address)

	// new account becomes the selection
	assert.Equal(t, second.Address, svc.SelectedAddress(ctx))
}

func TestWalletImportPrivateKey(t *testing.T) {
	svc, _ := newTestWallet(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testPassword)
	require.NoError(t, err)

	// key of the first "abandon... about" account
	keyHex := "0x1ab42cc412b618bdea3a599e3c9bae199ebf030895b039e9db1e30dafb12b727"

	acct, err := svc.ImportAccountFromPrivateKey(ctx, "Cold", keyHex)
	require.NoError(t, err)
	assert.Equal(t, wallet.AccountTypeImported, acct.Type)
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", acct.Address)

	_, err = svc.ImportAccountFromPrivateKey(ctx, "Cold again", keyHex)
	require.ErrorIs(t, err, wallet.ErrAccountExists)

	got, err := svc.PrivateKey(ctx, testPassword, acct.Index)
	require.NoError(t, err)
	assert.Equal(t, keyHex, got)

	_, err = svc.ImportAccountFromPrivateKey(ctx, "Broken", "0xnothex")
	require.Error(t, err)
}

func TestWalletImportedAccountSurvivesRelock(t *testing.T) {
	st := store.NewInMemory()
	svc := newTestWalletWithStore(t, st)
	ctx := context.Background()

	_, err := svc.Create(ctx, testPassword)
	require.NoError(t, err)

	keyHex := "0x1ab42cc412b618bdea3a599e3c9bae199ebf030895b039e9db1e30dafb12b727"
	acct, err := svc.ImportAccountFromPrivateKey(ctx, "Cold", keyHex)
	require.NoError(t, err)

	// fresh service over the same store, as after a restart
	svc2 := newTestWalletWithStore(t, st)
	ok, err := svc2.Unlock(ctx, testPassword)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := svc2.PrivateKey(ctx, testPassword, acct.Index)
	require.NoError(t, err)
	assert.Equal(t, keyHex, got)

	// imported account can still sign
	require.NoError(t, svc2.SwitchAccount(ctx, acct.Index))
	sig, err := svc2.SignMessage(ctx, "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, sig)
}

func TestWalletSwitchAccountIgnoresOutOfRange(t *testing.T) {
	svc, _ := newTestWallet(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testPassword)
	require.NoError(t, err)

	first := svc.SelectedAddress(ctx)

	require.NoError(t, svc.SwitchAccount(ctx, 5))
	assert.Equal(t, first, svc.SelectedAddress(ctx))

	require.NoError(t, svc.SwitchAccount(ctx, -1))
	assert.Equal(t, first, svc.SelectedAddress(ctx))
}

func TestWalletRenameAccount(t *testing.T) {
	svc, _ := newTestWallet(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testPassword)
	require.NoError(t, err)

	require.NoError(t, svc.RenameAccount(ctx, 0, "Main"))
	assert.Equal(t, "Main", svc.Accounts(ctx)[0].Name)

	require.ErrorIs(t, svc.RenameAccount(ctx, 7, "Nope"), wallet.ErrUnknownAccount)
	require.Error(t, svc.RenameAccount(ctx, 0, "  "))
}

func TestWalletSwitchNetwork(t *testing.T) {
	svc, _ := newTestWallet(t)
	ctx := context.Background()

	require.NoError(t, svc.SwitchNetwork(ctx, "0x89", "", ""))
	assert.Equal(t, "0x89", svc.State(ctx).Network.ChainID)
	assert.Equal(t, "Polygon Mainnet", svc.State(ctx).Network.Name)

	// unknown chain with explicit parameters is accepted as-is
	require.NoError(t, svc.SwitchNetwork(ctx, "0x539", "Localhost", "http://localhost:8545"))
	assert.Equal(t, "0x539", svc.State(ctx).Network.ChainID)

	// unknown chain without parameters is rejected
	require.ErrorIs(t, svc.SwitchNetwork(ctx, "0xdeadbeef", "", ""), wallet.ErrNetworkNotFound)
	assert.Equal(t, "0x539", svc.State(ctx).Network.ChainID)
}

func TestWalletPermissions(t *testing.T) {
	svc, _ := newTestWallet(t)
	ctx := context.Background()

	assert.Empty(t, svc.Permissions(ctx))

	_, err := svc.Create(ctx, testPassword)
	require.NoError(t, err)

	perms := svc.Permissions(ctx)
	require.Len(t, perms, 1)
	assert.Equal(t, "eth_accounts", perms[0].ParentCapability)
	require.Len(t, perms[0].Caveats, 1)
	assert.Equal(t, "restrictReturnedAccounts", perms[0].Caveats[0].Type)
	assert.Equal(t, svc.Addresses(ctx), perms[0].Caveats[0].Value)

	svc.Lock(ctx)
	assert.Empty(t, svc.Permissions(ctx))
}

func TestWalletSignTransaction(t *testing.T) {
	svc, _ := newTestWallet(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testPassword)
	require.NoError(t, err)

	res, err := svc.SignTransaction(ctx, &message.Transaction{
		To:                   "0x000000000000000000000000000000000000dEaD",
		Value:                "0xde0b6b3a7640000",
		Nonce:                "0x0",
		MaxFeePerGas:         "0x3b9aca00",
		MaxPriorityFeePerGas: "0x3b9aca00",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.RawTransaction)
	assert.Len(t, res.TxHash, 66)
}
