// Package crypto 提供 Starknet 密码学原语的接口定义
//
// 🎯 **核心功能**
// - HashManager：选择器计算与 Pedersen 哈希
// - SignatureManager：Stark 曲线 ECDSA 签名与验证
//
// 🔗 **组件关系**
// - HashManager：被交易构建器（client/core/builder）用于计算入口选择器与交易哈希
// - SignatureManager：被账户签名器（client/core/wallet）用于签署交易哈希
package crypto

import "github.com/weisyn/mazegate/pkg/types"

// HashManager 定义 Starknet 哈希计算相关接口
type HashManager interface {
	// StarknetKeccak 计算 keccak256 并截断到低 250 位
	StarknetKeccak(data []byte) types.Felt

	// Selector 计算合约入口点选择器
	// 等价于 StarknetKeccak([]byte(name))，结果会被缓存
	Selector(name string) types.Felt

	// Pedersen 计算两个字段元素的 Pedersen 哈希
	Pedersen(a, b types.Felt) types.Felt

	// PedersenArray 计算数组哈希：h(h(h(0, a1), a2)..., n)
	PedersenArray(elems ...types.Felt) types.Felt
}
