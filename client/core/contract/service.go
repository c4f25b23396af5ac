// Package contract is the single entry point the HTTP layer uses to invoke and
// query the maze contract.
package contract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/weisyn/mazegate/client/core/transport"
	"github.com/weisyn/mazegate/client/core/wallet"
	cryptointf "github.com/weisyn/mazegate/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/mazegate/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/mazegate/pkg/types"
)

// SuccessMessage 写操作成功时返回给调用方的消息
const SuccessMessage = "Transaction sent successfully!"

// DefaultRequestTimeout 未配置时的单次请求超时
const DefaultRequestTimeout = 15 * time.Second

// InvokeRoundTrips 一次写操作的总时限按 RequestTimeout 的倍数计算
const InvokeRoundTrips = 3

// InvokeBudget 一次写操作（排队、读取 nonce、估费、提交）的总时限
func InvokeBudget(requestTimeout time.Duration) time.Duration {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	return InvokeRoundTrips * requestTimeout
}

// Config 合约客户端配置
type Config struct {
	Deployment     types.Deployment // 目标合约版本
	Chain          types.ChainID    // 目标链
	RequestTimeout time.Duration    // 排队等待与每次节点往返的上限；整个写操作不超过 InvokeBudget
	FeeMultiplier  float64          // 估算手续费放大倍数
}

// InvokeResult 写操作结果
type InvokeResult struct {
	Message         string     `json:"message"`
	TransactionHash types.Felt `json:"transaction_hash"`
	Nonce           types.Felt `json:"nonce"`
}

// ContractService 合约业务服务
//
// 不持有任何请求级可变状态；每次写操作由调用方提供凭据，
// 服务内部构造账户、读取 nonce、估费、签名并提交，从不重试。
type ContractService struct {
	cfg        Config
	dialer     transport.Dialer
	hasher     cryptointf.HashManager
	signatures cryptointf.SignatureManager
	queue      *SubmissionQueue
	metrics    *Metrics
	logger     log.Logger
}

// Option 服务选项
type Option func(*ContractService)

// WithMetrics 启用调用指标
func WithMetrics(m *Metrics) Option {
	return func(s *ContractService) {
		s.metrics = m
	}
}

// WithLogger 指定日志记录器
func WithLogger(l log.Logger) Option {
	return func(s *ContractService) {
		s.logger = l
	}
}

// WithSubmissionQueue 共享提交队列（多个服务实例共用同一账户时）
func WithSubmissionQueue(q *SubmissionQueue) Option {
	return func(s *ContractService) {
		s.queue = q
	}
}

// NewContractService 创建合约业务服务
func NewContractService(
	cfg Config,
	dialer transport.Dialer,
	hasher cryptointf.HashManager,
	signatures cryptointf.SignatureManager,
	opts ...Option,
) *ContractService {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.FeeMultiplier < 1 {
		cfg.FeeMultiplier = wallet.DefaultFeeMultiplier
	}

	s := &ContractService{
		cfg:        cfg,
		dialer:     dialer,
		hasher:     hasher,
		signatures: signatures,
		queue:      NewSubmissionQueue(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deployment 目标合约版本
func (s *ContractService) Deployment() types.Deployment {
	return s.cfg.Deployment
}

// Chain 目标链
func (s *ContractService) Chain() types.ChainID {
	return s.cfg.Chain
}

// ========== 写操作 ==========

// Invoke 以凭据对应的账户调用合约方法
//
// 流程：
//  1. 由方法名计算选择器
//  2. 由凭据构造账户上下文
//  3. 获取该发送方的提交槽位
//  4. 在 pending 区块读取 nonce
//  5. 估费、签名并提交单调用交易
func (s *ContractService) Invoke(ctx context.Context, method string, calldata []types.Felt, creds types.Credentials) (*InvokeResult, error) {
	start := time.Now()
	result, err := s.invoke(ctx, method, calldata, creds)
	s.metrics.observe("invoke", method, start, err)

	if err != nil {
		s.debugf("invoke %s failed: %v", method, err)
		return nil, err
	}
	s.debugf("invoke %s accepted: tx=%s nonce=%s", method, result.TransactionHash, result.Nonce)
	return result, nil
}

func (s *ContractService) invoke(ctx context.Context, method string, calldata []types.Felt, creds types.Credentials) (*InvokeResult, error) {
	ctx, cancelInvoke := context.WithTimeout(ctx, InvokeBudget(s.cfg.RequestTimeout))
	defer cancelInvoke()

	selector := s.hasher.Selector(method)

	client, err := s.dialer.Dial(ctx, creds.NodeURL)
	if err != nil {
		return nil, err
	}

	account, err := wallet.NewAccountFromHex(creds.SenderAddress, creds.PrivateKey, client, s.cfg.Chain,
		wallet.WithHashManager(s.hasher),
		wallet.WithSignatureManager(s.signatures),
		wallet.WithFeeMultiplier(s.cfg.FeeMultiplier),
		wallet.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()
	waitStart := time.Now()
	release, err := s.queue.Acquire(waitCtx, account.Address())
	s.metrics.observeWait(waitStart)
	if err != nil {
		return nil, fmt.Errorf("wait for submission slot of %s: %w", account.Address(), err)
	}
	defer release()

	nonce, err := account.FetchNonce(ctx)
	if err != nil {
		return nil, err
	}

	outcome, err := account.SignAndSubmit(ctx, s.cfg.Deployment.ContractAddress, selector, calldata, nonce)
	if err != nil {
		return nil, err
	}

	return &InvokeResult{
		Message:         SuccessMessage,
		TransactionHash: outcome.TransactionHash,
		Nonce:           outcome.Nonce,
	}, nil
}

// FailureMessage 将写操作错误转为面向用户的消息
func FailureMessage(err error) string {
	if err == nil {
		return SuccessMessage
	}
	var rejected *types.SubmissionRejectedError
	if errors.As(err, &rejected) {
		return "Error: " + rejected.Reason
	}
	return "Error: " + err.Error()
}

// ========== 只读查询 ==========

// QueryVector 在 latest 区块对合约做零参数只读调用
//
// 任何失败（传输错误、节点拒绝选择器）都归为 types.ErrNetwork。
func (s *ContractService) QueryVector(ctx context.Context, method string, nodeURL string) ([]types.Felt, error) {
	start := time.Now()
	values, err := s.queryVector(ctx, method, nodeURL)
	s.metrics.observe("query", method, start, err)
	return values, err
}

func (s *ContractService) queryVector(ctx context.Context, method string, nodeURL string) ([]types.Felt, error) {
	client, err := s.dialer.Dial(ctx, nodeURL)
	if err != nil {
		return nil, asNetworkError(method, err)
	}

	values, err := client.Call(ctx, transport.FunctionCall{
		ContractAddress:    s.cfg.Deployment.ContractAddress,
		EntryPointSelector: s.hasher.Selector(method),
		Calldata:           []types.Felt{},
	}, transport.BlockLatest)
	if err != nil {
		return nil, asNetworkError(method, err)
	}
	return values, nil
}

// QueryPosition 查询并解码坐标
func (s *ContractService) QueryPosition(ctx context.Context, method string, nodeURL string) (types.Position, error) {
	values, err := s.QueryVector(ctx, method, nodeURL)
	if err != nil {
		return types.Position{}, err
	}
	return DecodePosition(values)
}

// QueryWalls 查询并解码墙体列表
func (s *ContractService) QueryWalls(ctx context.Context, method string, nodeURL string) ([]types.Position, error) {
	values, err := s.QueryVector(ctx, method, nodeURL)
	if err != nil {
		return nil, err
	}
	return DecodeWalls(values)
}

// ChainID 读取节点所在链并与配置比对（健康检查使用）
func (s *ContractService) ChainID(ctx context.Context, nodeURL string) (types.Felt, error) {
	client, err := s.dialer.Dial(ctx, nodeURL)
	if err != nil {
		return types.Felt{}, asNetworkError("starknet_chainId", err)
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return types.Felt{}, asNetworkError("starknet_chainId", err)
	}
	if !chainID.Equal(s.cfg.Chain.Felt()) {
		return chainID, fmt.Errorf("%w: node is on chain %s, expected %s (%s)",
			types.ErrNetwork, chainID, s.cfg.Chain.Felt(), s.cfg.Chain)
	}
	return chainID, nil
}

// asNetworkError 已是 ErrNetwork 的原样返回，其余（节点级错误）补上 ErrNetwork
func asNetworkError(method string, err error) error {
	if errors.Is(err, types.ErrNetwork) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", types.ErrNetwork, method, err)
}

func (s *ContractService) debugf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debugf(format, args...)
	}
}
