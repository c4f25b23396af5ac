// Package builder provides INVOKE transaction building for the contract client.
package builder

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/weisyn/mazegate/pkg/types"
)

// Fee 手续费金额（wei/fri 最小单位）
//
// 使用 *big.Int 保存，避免浮点精度问题；构造后不可变。
type Fee struct {
	value *big.Int
}

var (
	// ErrInvalidFee 无效的手续费
	ErrInvalidFee = errors.New("invalid fee")

	// ErrInvalidMultiplier 放大倍数小于 1
	ErrInvalidMultiplier = errors.New("fee multiplier must be >= 1")

	// permille 倍数按千分比换算成整数运算
	permille = big.NewInt(1000)
)

// NewFeeFromUnits 从最小单位创建手续费
func NewFeeFromUnits(units uint64) *Fee {
	return &Fee{value: new(big.Int).SetUint64(units)}
}

// NewFeeFromFelt 从节点返回的字段元素创建手续费
func NewFeeFromFelt(f types.Felt) *Fee {
	return &Fee{value: f.BigInt()}
}

// Scale 按倍数放大，结果向下取整
//
// 倍数精确到千分位：1.1 → ×1100/1000。
//
// 示例：
//
//	NewFeeFromUnits(1000).Scale(1.1) → 1100
func (f *Fee) Scale(multiplier float64) (*Fee, error) {
	if math.IsNaN(multiplier) || math.IsInf(multiplier, 0) || multiplier < 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMultiplier, multiplier)
	}

	factor := big.NewInt(int64(math.Round(multiplier * 1000)))
	scaled := new(big.Int).Mul(f.value, factor)
	scaled.Quo(scaled, permille)
	return &Fee{value: scaled}, nil
}

// Felt 转换为字段元素，超出字段范围时返回错误
func (f *Fee) Felt() (types.Felt, error) {
	if f.value.Sign() < 0 || f.value.Cmp(types.FeltModulus()) >= 0 {
		return types.Felt{}, fmt.Errorf("%w: %s out of field range", ErrInvalidFee, f.value)
	}
	return types.FeltFromBigInt(f.value), nil
}

// BigInt 返回副本
func (f *Fee) BigInt() *big.Int {
	return new(big.Int).Set(f.value)
}

// Cmp 比较两个手续费
func (f *Fee) Cmp(other *Fee) int {
	return f.value.Cmp(other.value)
}

// IsZero 是否为零
func (f *Fee) IsZero() bool {
	return f.value.Sign() == 0
}

// String 十进制表示
func (f *Fee) String() string {
	return f.value.String()
}
