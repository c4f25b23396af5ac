package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/weisyn/mazegate/client/core/builder"
	"github.com/weisyn/mazegate/client/core/transport"
	"github.com/weisyn/mazegate/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/mazegate/internal/core/infrastructure/crypto/signature"
	cryptointf "github.com/weisyn/mazegate/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/mazegate/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/mazegate/pkg/types"
)

// DefaultFeeMultiplier 估算手续费的默认放大倍数
const DefaultFeeMultiplier = 1.1

// Account 账户上下文：地址 + 签名器 + 链 + 节点
//
// 不保存任何调用间状态；每次提交都由调用方传入刚从节点读取的 nonce。
type Account struct {
	signer        *StarkSigner
	provider      transport.Client
	chain         types.ChainID
	builder       *builder.InvokeBuilder
	feeMultiplier float64
	logger        log.Logger
}

// TransactionOutcome 提交结果
type TransactionOutcome struct {
	TransactionHash types.Felt `json:"transaction_hash"`
	Nonce           types.Felt `json:"nonce"`
	MaxFee          types.Felt `json:"max_fee"`
}

// accountOptions 账户可选依赖
type accountOptions struct {
	hasher        cryptointf.HashManager
	signatures    cryptointf.SignatureManager
	feeMultiplier float64
	logger        log.Logger
}

// AccountOption 账户选项函数类型
type AccountOption func(*accountOptions)

// WithHashManager 指定哈希服务
func WithHashManager(h cryptointf.HashManager) AccountOption {
	return func(o *accountOptions) {
		o.hasher = h
	}
}

// WithSignatureManager 指定签名服务
func WithSignatureManager(s cryptointf.SignatureManager) AccountOption {
	return func(o *accountOptions) {
		o.signatures = s
	}
}

// WithFeeMultiplier 指定手续费放大倍数
func WithFeeMultiplier(m float64) AccountOption {
	return func(o *accountOptions) {
		o.feeMultiplier = m
	}
}

// WithLogger 指定日志记录器
func WithLogger(l log.Logger) AccountOption {
	return func(o *accountOptions) {
		o.logger = l
	}
}

// NewAccountFromHex 由十六进制地址与私钥创建账户
//
// 任一值为空、含非十六进制字符、不小于字段模数，或私钥为零/不小于曲线阶时，
// 返回 types.ErrInvalidCredentialFormat。
func NewAccountFromHex(address, privateKey string, provider transport.Client, chain types.ChainID, opts ...AccountOption) (*Account, error) {
	options := accountOptions{feeMultiplier: DefaultFeeMultiplier}
	for _, opt := range opts {
		opt(&options)
	}
	if options.hasher == nil {
		options.hasher = hash.NewHashService()
	}
	if options.signatures == nil {
		options.signatures = signature.NewSignatureService()
	}

	addr, err := types.ParseFelt(address)
	if err != nil {
		return nil, fmt.Errorf("sender address: %w", err)
	}
	key, err := types.ParseFelt(privateKey)
	if err != nil {
		// 不回显私钥内容
		return nil, fmt.Errorf("%w: private key is not a valid field element", types.ErrInvalidCredentialFormat)
	}

	signer, err := NewStarkSigner(addr, key, options.signatures)
	if err != nil {
		return nil, err
	}

	return &Account{
		signer:        signer,
		provider:      provider,
		chain:         chain,
		builder:       builder.NewInvokeBuilder(options.hasher),
		feeMultiplier: options.feeMultiplier,
		logger:        options.logger,
	}, nil
}

// Address 账户地址
func (a *Account) Address() types.Felt {
	return a.signer.Address()
}

// Signer 账户签名器
func (a *Account) Signer() *StarkSigner {
	return a.signer
}

// FetchNonce 读取账户在 pending 区块的 nonce
func (a *Account) FetchNonce(ctx context.Context) (types.Felt, error) {
	nonce, err := a.provider.GetNonce(ctx, transport.BlockPending, a.signer.Address())
	if err == nil {
		return nonce, nil
	}

	if rpcErr, ok := transport.AsRPCError(err); ok {
		if rpcErr.Code == transport.CodeContractNotFound {
			return types.Felt{}, fmt.Errorf("%w: %s", types.ErrAccountNotFound, a.signer.Address())
		}
		return types.Felt{}, fmt.Errorf("%w: %v", types.ErrNetwork, rpcErr)
	}
	return types.Felt{}, err
}

// EstimateMaxFee 以查询版本签名并估费，返回放大后的最大手续费
func (a *Account) EstimateMaxFee(ctx context.Context, call builder.Call, nonce types.Felt) (types.Felt, error) {
	composed, err := a.builder.Draft(a.signer.Address(), a.chain, nonce, call).ForQuery().Compose()
	if err != nil {
		return types.Felt{}, err
	}
	signed, err := composed.Sign(a.signer)
	if err != nil {
		return types.Felt{}, err
	}

	estimates, err := a.provider.EstimateFee(ctx, []transport.BroadcastInvokeTxn{signed.Broadcast()}, transport.BlockPending)
	if err != nil {
		return types.Felt{}, classifySubmitError(err)
	}

	fee, err := builder.NewFeeFromFelt(estimates[0].OverallFee).Scale(a.feeMultiplier)
	if err != nil {
		return types.Felt{}, err
	}
	return fee.Felt()
}

// SignAndSubmit 构建单调用 INVOKE 交易，估费、签名并提交
//
// nonce 必须是刚从节点读取的值；本方法不做任何重试。
func (a *Account) SignAndSubmit(ctx context.Context, contract, selector types.Felt, calldata []types.Felt, nonce types.Felt) (*TransactionOutcome, error) {
	call := builder.Call{To: contract, Selector: selector, Calldata: calldata}

	maxFee, err := a.EstimateMaxFee(ctx, call, nonce)
	if err != nil {
		return nil, fmt.Errorf("estimate fee: %w", err)
	}

	composed, err := a.builder.Draft(a.signer.Address(), a.chain, nonce, call).WithMaxFee(maxFee).Compose()
	if err != nil {
		return nil, err
	}
	signed, err := composed.Sign(a.signer)
	if err != nil {
		return nil, err
	}

	if a.logger != nil {
		a.logger.Debugf("submitting invoke %s nonce=%s max_fee=%s", signed.Hash(), nonce, maxFee)
	}

	result, err := a.provider.AddInvokeTransaction(ctx, signed.Broadcast())
	if err != nil {
		return nil, classifySubmitError(err)
	}

	return &TransactionOutcome{
		TransactionHash: result.TransactionHash,
		Nonce:           nonce,
		MaxFee:          maxFee,
	}, nil
}

// classifySubmitError 节点拒绝 → SubmissionRejectedError；传输失败保持 ErrNetwork
func classifySubmitError(err error) error {
	if rpcErr, ok := transport.AsRPCError(err); ok {
		return &types.SubmissionRejectedError{Code: rpcErr.Code, Reason: rpcErr.Reason()}
	}
	if errors.Is(err, types.ErrNetwork) {
		return err
	}
	return fmt.Errorf("%w: %v", types.ErrNetwork, err)
}
