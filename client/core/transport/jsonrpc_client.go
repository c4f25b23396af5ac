package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/rpc"

	log "github.com/weisyn/mazegate/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/mazegate/pkg/types"
)

// 确保实现了Client接口
var _ Client = (*JSONRPCClient)(nil)

// JSONRPCClient Starknet JSON-RPC 2.0 客户端实现
//
// 报文编解码由 go-ethereum rpc 客户端完成；本类型负责方法参数组装与错误归类。
type JSONRPCClient struct {
	endpoint string
	timeout  time.Duration
	rpc      *rpc.Client
	logger   log.Logger
}

// NewJSONRPCClient 创建JSON-RPC客户端
//
// timeout 同时约束 http.Client 与每次调用的 context；为 0 时使用 30 秒。
func NewJSONRPCClient(ctx context.Context, endpoint string, timeout time.Duration, logger log.Logger) (*JSONRPCClient, error) {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	client, err := rpc.DialOptions(ctx, endpoint, rpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", types.ErrNetwork, endpoint, err)
	}

	return &JSONRPCClient{
		endpoint: endpoint,
		timeout:  timeout,
		rpc:      client,
		logger:   logger,
	}, nil
}

// call 统一的JSON-RPC调用方法
func (c *JSONRPCClient) call(ctx context.Context, result interface{}, method string, params ...interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := c.rpc.CallContext(ctx, result, method, params...)
	if c.logger != nil {
		if err != nil {
			c.logger.Debugf("rpc %s failed after %s: %v", method, time.Since(start), err)
		} else {
			c.logger.Debugf("rpc %s ok in %s", method, time.Since(start))
		}
	}
	return classifyError(method, err)
}

// ===== 接口实现 =====

// ChainID 等价于 starknet_chainId
func (c *JSONRPCClient) ChainID(ctx context.Context) (types.Felt, error) {
	var chainID types.Felt
	err := c.call(ctx, &chainID, "starknet_chainId")
	return chainID, err
}

// GetNonce 等价于 starknet_getNonce(block_id, contract_address)
func (c *JSONRPCClient) GetNonce(ctx context.Context, block BlockID, address types.Felt) (types.Felt, error) {
	var nonce types.Felt
	err := c.call(ctx, &nonce, "starknet_getNonce", block, address)
	return nonce, err
}

// Call 等价于 starknet_call(request, block_id)
func (c *JSONRPCClient) Call(ctx context.Context, call FunctionCall, block BlockID) ([]types.Felt, error) {
	if call.Calldata == nil {
		call.Calldata = []types.Felt{}
	}

	var result []types.Felt
	if err := c.call(ctx, &result, "starknet_call", call, block); err != nil {
		return nil, err
	}
	return result, nil
}

// EstimateFee 等价于 starknet_estimateFee(request, simulation_flags, block_id)
func (c *JSONRPCClient) EstimateFee(ctx context.Context, txs []BroadcastInvokeTxn, block BlockID) ([]FeeEstimate, error) {
	var result []FeeEstimate
	if err := c.call(ctx, &result, "starknet_estimateFee", txs, []string{}, block); err != nil {
		return nil, err
	}
	if len(result) != len(txs) {
		return nil, fmt.Errorf("%w: starknet_estimateFee returned %d estimates for %d transactions",
			types.ErrNetwork, len(result), len(txs))
	}
	return result, nil
}

// AddInvokeTransaction 等价于 starknet_addInvokeTransaction(invoke_transaction)
func (c *JSONRPCClient) AddInvokeTransaction(ctx context.Context, tx BroadcastInvokeTxn) (*AddInvokeTransactionResult, error) {
	var result AddInvokeTransactionResult
	if err := c.call(ctx, &result, "starknet_addInvokeTransaction", tx); err != nil {
		return nil, err
	}
	return &result, nil
}

// Endpoint 返回节点地址
func (c *JSONRPCClient) Endpoint() string {
	return c.endpoint
}

// Close 关闭底层连接
func (c *JSONRPCClient) Close() {
	c.rpc.Close()
}
