package nanocore

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeAccountInfo struct {
	info *AccountInfo
	err  error
}

func (f *fakeAccountInfo) GetAccountInfo(ctx context.Context, address string) (*AccountInfo, error) {
	return f.info, f.err
}

type fakeWork struct {
	workHex string
	err     error
}

func (f *fakeWork) GenerateWork(ctx context.Context, root, thresholdHex string) (string, error) {
	return f.workHex, f.err
}

func newTestWallet(t *testing.T) *WalletSecret {
	t.Helper()
	seedHex := "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"
	w, err := NewWalletSecret(seedHex, "test-api-key")
	require.Nil(t, err)
	return w
}

func TestBuilderOpensUnopenedAccount(t *testing.T) {
	wallet := newTestWallet(t)

	info := &fakeAccountInfo{info: &AccountInfo{
		Frontier:       ZeroFrontier,
		Balance:        "0",
		Representative: "",
	}}
	work := &fakeWork{workHex: "0000000000000001"}

	b := NewBuilder(info, work)
	signed, err := b.Build(context.Background(), wallet, amountRaw(t, "1"), wallet.PublicKey, true)
	require.Nil(t, err)
	require.Equal(t, "open", signed.Subtype)
	require.Equal(t, ZeroFrontier, signed.Block.Previous)
	require.Equal(t, wallet.PublicKey, signed.WorkRoot)
}

func TestBuilderReceiveOntoExistingAccount(t *testing.T) {
	wallet := newTestWallet(t)
	frontier := "1111111111111111111111111111111111111111111111111111111111111111"

	info := &fakeAccountInfo{info: &AccountInfo{
		Frontier:       frontier,
		Balance:        "1000000000000000000000000000000",
		Representative: wallet.Address,
	}}
	work := &fakeWork{workHex: "0000000000000001"}

	b := NewBuilder(info, work)
	signed, err := b.Build(context.Background(), wallet, amountRaw(t, "1"), wallet.PublicKey, true)
	require.Nil(t, err)
	require.Equal(t, "receive", signed.Subtype)
	require.Equal(t, frontier, signed.WorkRoot)
}

func TestBuilderSendInsufficientFunds(t *testing.T) {
	wallet := newTestWallet(t)
	frontier := "2222222222222222222222222222222222222222222222222222222222222222"

	info := &fakeAccountInfo{info: &AccountInfo{
		Frontier:       frontier,
		Balance:        "0",
		Representative: wallet.Address,
	}}
	work := &fakeWork{workHex: "0000000000000001"}

	b := NewBuilder(info, work)
	_, err := b.Build(context.Background(), wallet, amountRaw(t, "1"), wallet.PublicKey, false)
	require.NotNil(t, err)
	require.Equal(t, ErrInsufficientFunds, err.Kind)
}

func TestBuilderSendDecreasesBalanceAndUsesSendThreshold(t *testing.T) {
	wallet := newTestWallet(t)
	frontier := "3333333333333333333333333333333333333333333333333333333333333333"

	info := &fakeAccountInfo{info: &AccountInfo{
		Frontier:       frontier,
		Balance:        "2000000000000000000000000000000",
		Representative: wallet.Address,
	}}
	work := &fakeWork{workHex: "0000000000000001"}

	b := NewBuilder(info, work)
	signed, err := b.Build(context.Background(), wallet, amountRaw(t, "1"), wallet.PublicKey, false)
	require.Nil(t, err)
	require.Equal(t, "send", signed.Subtype)
	require.Equal(t, "0x"+hexThreshold(ThresholdSendChange), signed.ThresholdHex)
	require.Equal(t, "1000000000000000000000000000000", signed.Block.Balance)
}

func amountRaw(t *testing.T, nano string) *big.Int {
	t.Helper()
	v, err := NanoToRaw(nano)
	require.Nil(t, err)
	return v
}

func hexThreshold(v uint64) string {
	const hexdigits = "0123456789abcdef"
	b := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		b[i] = hexdigits[v&0xf]
		v >>= 4
	}
	return string(b)
}
