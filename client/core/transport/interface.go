// Package transport provides the Starknet node transport used by the contract client.
package transport

import (
	"context"

	"github.com/weisyn/mazegate/pkg/types"
)

// Client 节点传输客户端接口
// 账户与合约客户端的所有节点访问都经由此接口
type Client interface {
	// ChainID 获取节点所在链的 ID（short string 编码）
	ChainID(ctx context.Context) (types.Felt, error)

	// GetNonce 获取账户在指定区块的 nonce
	GetNonce(ctx context.Context, block BlockID, address types.Felt) (types.Felt, error)

	// Call 只读调用合约入口点
	Call(ctx context.Context, call FunctionCall, block BlockID) ([]types.Felt, error)

	// EstimateFee 估算交易手续费，每笔交易对应一个结果
	EstimateFee(ctx context.Context, txs []BroadcastInvokeTxn, block BlockID) ([]FeeEstimate, error)

	// AddInvokeTransaction 提交已签名的 INVOKE 交易
	AddInvokeTransaction(ctx context.Context, tx BroadcastInvokeTxn) (*AddInvokeTransactionResult, error)

	// Endpoint 返回节点地址
	Endpoint() string

	// Close 关闭底层连接
	Close()
}

// BlockID 区块标识，只使用区块标签
type BlockID string

const (
	// BlockLatest 最新已接受区块（只读查询使用）
	BlockLatest BlockID = "latest"
	// BlockPending 待定区块（nonce 读取与估费使用，可看到尚未出块的前序交易）
	BlockPending BlockID = "pending"
)

// FunctionCall 合约函数调用
type FunctionCall struct {
	ContractAddress    types.Felt   `json:"contract_address"`
	EntryPointSelector types.Felt   `json:"entry_point_selector"`
	Calldata           []types.Felt `json:"calldata"`
}

// BroadcastInvokeTxn INVOKE v1 交易（广播格式）
type BroadcastInvokeTxn struct {
	Type          string       `json:"type"`
	SenderAddress types.Felt   `json:"sender_address"`
	Calldata      []types.Felt `json:"calldata"`
	MaxFee        types.Felt   `json:"max_fee"`
	Version       types.Felt   `json:"version"`
	Signature     []types.Felt `json:"signature"`
	Nonce         types.Felt   `json:"nonce"`
}

// FeeEstimate 手续费估算结果
type FeeEstimate struct {
	GasConsumed types.Felt `json:"gas_consumed"`
	GasPrice    types.Felt `json:"gas_price"`
	OverallFee  types.Felt `json:"overall_fee"`
	Unit        string     `json:"unit,omitempty"`
}

// AddInvokeTransactionResult 提交结果
type AddInvokeTransactionResult struct {
	TransactionHash types.Felt `json:"transaction_hash"`
}
