package builder

import (
	"math/big"

	"github.com/weisyn/mazegate/pkg/types"
)

// 交易常量
var (
	// invokePrefix "invoke" 的 short string 编码
	invokePrefix = types.FeltFromShortString("invoke")

	// TransactionVersion1 INVOKE v1
	TransactionVersion1 = types.FeltFromUint64(1)

	// QueryVersion1 仅用于估费/模拟的 v1 版本号：2^128 + 1
	// 节点不会接受以此版本号签名的交易上链
	QueryVersion1 = types.FeltFromBigInt(new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))
)

// TxTypeInvoke 广播交易类型
const TxTypeInvoke = "INVOKE"

// Call 单个合约调用
type Call struct {
	To       types.Felt   // 目标合约地址
	Selector types.Felt   // 入口点选择器
	Calldata []types.Felt // 入口点参数
}

// Signer 交易哈希签名者
type Signer interface {
	// Address 发送方账户地址
	Address() types.Felt

	// SignHash 对交易哈希签名，返回交易 signature 字段
	SignHash(hash types.Felt) ([]types.Felt, error)
}
