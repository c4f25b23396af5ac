package wallet_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/mazegate/client/core/builder"
	"github.com/weisyn/mazegate/client/core/transport"
	"github.com/weisyn/mazegate/client/core/transport/transporttest"
	"github.com/weisyn/mazegate/client/core/wallet"
	"github.com/weisyn/mazegate/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/mazegate/internal/core/infrastructure/crypto/signature"
	cryptointf "github.com/weisyn/mazegate/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/mazegate/pkg/types"
)

const (
	testAddress = "0x4a1c4e5f0c9a5b1e3d2f8a7b6c5d4e3f2a1b0c9d8e7f6a5b4c3d2e1f0a9b8c7"
	testKey     = "0x1"
)

func newNodeAndClient(t *testing.T) (*transporttest.FakeNode, *transport.JSONRPCClient) {
	t.Helper()
	node := transporttest.NewFakeNode(types.ChainSepolia)
	t.Cleanup(node.Close)
	client, err := transport.NewJSONRPCClient(context.Background(), node.URL(), time.Second, nil)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return node, client
}

func TestNewAccountFromHex_InvalidCredentials(t *testing.T) {
	_, client := newNodeAndClient(t)

	order := "0x800000000000010ffffffffffffffffb781126dcae7b2321e66a241adc64d2f"
	tests := []struct {
		name    string
		address string
		key     string
	}{
		{"空地址", "", testKey},
		{"非十六进制地址", "0xzz", testKey},
		{"空私钥", testAddress, ""},
		{"非十六进制私钥", testAddress, "0x12g4"},
		{"私钥为零", testAddress, "0x0"},
		{"私钥等于曲线阶", testAddress, order},
		{"地址超出字段模数", "0x800000000000011000000000000000000000000000000000000000000000001", testKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := wallet.NewAccountFromHex(tt.address, tt.key, client, types.ChainSepolia)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrInvalidCredentialFormat)
		})
	}
}

func TestNewAccountFromHex_DerivesPublicKey(t *testing.T) {
	_, client := newNodeAndClient(t)

	account, err := wallet.NewAccountFromHex(testAddress, testKey, client, types.ChainSepolia)
	require.NoError(t, err)
	assert.Equal(t, types.MustParseFelt(testAddress), account.Address())
	assert.Equal(t, "0x1ef15c18599971b7beced415a40f0c7deacfd9b0d1819e03d723d8bc943cfca", account.Signer().PublicKey().String())
	assert.NotContains(t, account.Signer().String(), "privateKey")
}

func TestAccount_FetchNonce(t *testing.T) {
	node, client := newNodeAndClient(t)
	node.AddAccount(types.MustParseFelt(testAddress), 4)

	account, err := wallet.NewAccountFromHex(testAddress, testKey, client, types.ChainSepolia)
	require.NoError(t, err)

	nonce, err := account.FetchNonce(context.Background())
	require.NoError(t, err)
	assert.True(t, nonce.Equal(types.FeltFromUint64(4)))
	assert.Equal(t, []string{"starknet_getNonce"}, node.Methods())
}

func TestAccount_FetchNonce_AccountNotFound(t *testing.T) {
	_, client := newNodeAndClient(t)

	account, err := wallet.NewAccountFromHex(testAddress, testKey, client, types.ChainSepolia)
	require.NoError(t, err)

	_, err = account.FetchNonce(context.Background())
	assert.ErrorIs(t, err, types.ErrAccountNotFound)
	assert.False(t, errors.Is(err, types.ErrNetwork))
}

func TestAccount_FetchNonce_NetworkFailure(t *testing.T) {
	node, client := newNodeAndClient(t)
	account, err := wallet.NewAccountFromHex(testAddress, testKey, client, types.ChainSepolia)
	require.NoError(t, err)

	node.Close()
	_, err = account.FetchNonce(context.Background())
	assert.ErrorIs(t, err, types.ErrNetwork)
}

func TestAccount_SignAndSubmit(t *testing.T) {
	node, client := newNodeAndClient(t)
	address := types.MustParseFelt(testAddress)
	node.AddAccount(address, 2)
	node.SetOverallFee(1000)

	hasher := hash.NewHashService()
	sigs := signature.NewSignatureService()
	account, err := wallet.NewAccountFromHex(testAddress, testKey, client, types.ChainSepolia,
		wallet.WithHashManager(hasher), wallet.WithSignatureManager(sigs), wallet.WithFeeMultiplier(1.5))
	require.NoError(t, err)

	contract := types.FeltFromUint64(0xc0ffee)
	selector := hasher.Selector("move_left")

	nonce, err := account.FetchNonce(context.Background())
	require.NoError(t, err)
	outcome, err := account.SignAndSubmit(context.Background(), contract, selector, nil, nonce)
	require.NoError(t, err)

	assert.False(t, outcome.TransactionHash.IsZero())
	assert.True(t, outcome.Nonce.Equal(types.FeltFromUint64(2)))
	assert.True(t, outcome.MaxFee.Equal(types.FeltFromUint64(1500)))

	estimated := node.Estimated()
	require.Len(t, estimated, 1)
	assert.True(t, estimated[0].Version.Equal(builder.QueryVersion1))

	submitted := node.Submitted()
	require.Len(t, submitted, 1)
	tx := submitted[0]
	assert.True(t, tx.Version.Equal(builder.TransactionVersion1))
	assert.True(t, tx.MaxFee.Equal(types.FeltFromUint64(1500)))
	assert.Equal(t, builder.ExecuteCalldata(builder.Call{To: contract, Selector: selector}), tx.Calldata)

	// 重新计算交易哈希并验证签名
	composed, err := builder.NewInvokeBuilder(hasher).
		Draft(address, types.ChainSepolia, nonce, builder.Call{To: contract, Selector: selector}).
		WithMaxFee(tx.MaxFee).
		Compose()
	require.NoError(t, err)
	require.Len(t, tx.Signature, 2)
	sig := cryptointf.StarkSignature{R: tx.Signature[0], S: tx.Signature[1]}
	assert.True(t, sigs.Verify(composed.Hash(), sig, account.Signer().PublicKey()))

	next, err := account.FetchNonce(context.Background())
	require.NoError(t, err)
	assert.True(t, next.Equal(types.FeltFromUint64(3)))
}

func TestAccount_SignAndSubmit_Rejected(t *testing.T) {
	node, client := newNodeAndClient(t)
	node.AddAccount(types.MustParseFelt(testAddress), 0)
	node.FailSubmissions(&transporttest.RPCFailure{
		Code:    transport.CodeTransactionExecution,
		Message: "Transaction execution error",
		Data:    "Wall in the way",
	})

	account, err := wallet.NewAccountFromHex(testAddress, testKey, client, types.ChainSepolia)
	require.NoError(t, err)

	_, err = account.SignAndSubmit(context.Background(), types.FeltFromUint64(1), types.FeltFromUint64(2), nil, types.FeltFromUint64(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSubmissionRejected)

	var rejected *types.SubmissionRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, transport.CodeTransactionExecution, rejected.Code)
	assert.Contains(t, rejected.Reason, "Wall in the way")
}

func TestAccount_SignAndSubmit_StaleNonce(t *testing.T) {
	node, client := newNodeAndClient(t)
	node.AddAccount(types.MustParseFelt(testAddress), 5)

	account, err := wallet.NewAccountFromHex(testAddress, testKey, client, types.ChainSepolia)
	require.NoError(t, err)

	_, err = account.SignAndSubmit(context.Background(), types.FeltFromUint64(1), types.FeltFromUint64(2), nil, types.FeltFromUint64(4))
	var rejected *types.SubmissionRejectedError
	require.True(t, errors.As(err, &rejected), "unexpected error: %v", err)
	assert.Equal(t, transport.CodeInvalidTxnNonce, rejected.Code)
	assert.Empty(t, node.Submitted())
}

func TestAccount_SignAndSubmit_EstimateRejected(t *testing.T) {
	node, client := newNodeAndClient(t)
	node.AddAccount(types.MustParseFelt(testAddress), 0)
	node.FailEstimates(&transporttest.RPCFailure{Code: transport.CodeContractError, Message: "Contract error"})

	account, err := wallet.NewAccountFromHex(testAddress, testKey, client, types.ChainSepolia)
	require.NoError(t, err)

	_, err = account.SignAndSubmit(context.Background(), types.FeltFromUint64(1), types.FeltFromUint64(2), nil, types.FeltFromUint64(0))
	assert.ErrorIs(t, err, types.ErrSubmissionRejected)
	assert.Empty(t, node.Submitted())
}
