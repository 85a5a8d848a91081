package stdiorpc

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/synthron-labs/nanoagent/internal/agent"
	"github.com/synthron-labs/nanoagent/internal/nanocore"
)

type fakeAccountInfo struct{ info *nanocore.AccountInfo }

func (f *fakeAccountInfo) GetAccountInfo(ctx context.Context, address string) (*nanocore.AccountInfo, error) {
	return f.info, nil
}

type fakeWork struct{}

func (fakeWork) GenerateWork(ctx context.Context, root, thresholdHex string) (string, error) {
	return "0000000000000001", nil
}

type fakePublisher struct{ published []*nanocore.SignedBlock }

func (f *fakePublisher) PublishBlock(ctx context.Context, block *nanocore.SignedBlock) error {
	f.published = append(f.published, block)
	return nil
}

func testService(t *testing.T) (*agent.Service, *nanocore.WalletSecret, *fakePublisher) {
	t.Helper()
	secret, err := nanocore.NewWalletSecret("0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20", "key")
	require.Nil(t, err)

	info := &fakeAccountInfo{info: &nanocore.AccountInfo{
		Frontier:       nanocore.ZeroFrontier,
		Balance:        "0",
		Representative: "",
	}}
	builder := nanocore.NewBuilder(info, fakeWork{})
	pub := &fakePublisher{}
	return agent.New(secret, builder, pub, nil), secret, pub
}

func TestDispatchWalletAddress(t *testing.T) {
	svc, _, _ := testService(t)
	server := New(svc, strings.NewReader(""), &bytes.Buffer{})

	result, rerr := server.dispatch(context.Background(), "wallet.address", nil)
	require.Nil(t, rerr)
	m, ok := result.(map[string]string)
	require.True(t, ok)
	require.Equal(t, svc.Address(), m["address"])
}

func TestDispatchUnknownMethod(t *testing.T) {
	svc, _, _ := testService(t)
	server := New(svc, strings.NewReader(""), &bytes.Buffer{})

	_, rerr := server.dispatch(context.Background(), "wallet.nonexistent", nil)
	require.NotNil(t, rerr)
	require.Equal(t, codeMethodNotFound, rerr.Code)
}

func TestDispatchWalletReceiveOpensAccount(t *testing.T) {
	svc, secret, pub := testService(t)
	server := New(svc, strings.NewReader(""), &bytes.Buffer{})

	params, err := json.Marshal(moveParams{AmountNano: "1", Link: secret.PublicKey})
	require.NoError(t, err)

	result, rerr := server.dispatch(context.Background(), "wallet.receive", params)
	require.Nil(t, rerr)
	block, ok := result.(*nanocore.SignedBlock)
	require.True(t, ok)
	require.Equal(t, "open", block.Subtype)
	require.Len(t, pub.published, 1)
}

func TestRunProcessesFramedRequestAndWritesResponse(t *testing.T) {
	svc, _, _ := testService(t)
	var out bytes.Buffer
	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"wallet.address"}` + "\n")

	server := New(svc, in, &out)
	err := server.Run(context.Background())
	require.NoError(t, err)

	var resp response
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(out.Bytes()), &resp))
	require.Nil(t, resp.Error)
	require.NotNil(t, resp.Result)
}

func TestRunSkipsNotificationsWithoutID(t *testing.T) {
	svc, _, _ := testService(t)
	var out bytes.Buffer
	in := strings.NewReader(`{"jsonrpc":"2.0","method":"wallet.address"}` + "\n")

	server := New(svc, in, &out)
	err := server.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, out.Len())
}
