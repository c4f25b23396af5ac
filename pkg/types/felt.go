// Package types 提供 Starknet 字段元素及相关领域类型定义
package types

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

// Felt Starknet 字段元素
//
// 取值范围 [0, p)，p = 2^251 + 17·2^192 + 1。
// 在 API 边界上以 0x 前缀的十六进制字符串表示。
// 零值即为 0，可直接使用。
type Felt struct {
	element fp.Element
}

// FeltModulus 返回字段模数 p 的副本
func FeltModulus() *big.Int {
	return fp.Modulus()
}

// ParseFelt 解析十六进制字符串为字段元素
// 接受可选的 0x/0X 前缀；空串、非十六进制字符或 >= p 的值返回 ErrInvalidCredentialFormat
func ParseFelt(s string) (Felt, error) {
	digits := strings.TrimSpace(s)
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}
	if digits == "" {
		return Felt{}, fmt.Errorf("%w: empty hex value", ErrInvalidCredentialFormat)
	}
	for _, r := range digits {
		if !isHexDigit(r) {
			return Felt{}, fmt.Errorf("%w: %q contains non-hex character %q", ErrInvalidCredentialFormat, s, r)
		}
	}

	v, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return Felt{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidCredentialFormat, s)
	}
	if v.Cmp(fp.Modulus()) >= 0 {
		return Felt{}, fmt.Errorf("%w: %q exceeds field modulus", ErrInvalidCredentialFormat, s)
	}

	var f Felt
	f.element.SetBigInt(v)
	return f, nil
}

// MustParseFelt 解析常量表中的十六进制值，失败时 panic
// 仅用于包级常量初始化
func MustParseFelt(s string) Felt {
	f, err := ParseFelt(s)
	if err != nil {
		panic(err)
	}
	return f
}

// FeltFromInt64 将有符号整数映射到字段：负数 x 映射为 p - |x|
func FeltFromInt64(v int64) Felt {
	return FeltFromBigInt(big.NewInt(v))
}

// FeltFromUint64 将无符号整数转换为字段元素
func FeltFromUint64(v uint64) Felt {
	var f Felt
	f.element.SetUint64(v)
	return f
}

// FeltFromBigInt 将任意整数按模 p 约简为字段元素
func FeltFromBigInt(v *big.Int) Felt {
	reduced := new(big.Int).Mod(v, fp.Modulus())
	var f Felt
	f.element.SetBigInt(reduced)
	return f
}

// FeltFromShortString 按 Cairo short string 规则编码 ASCII 字符串（最多 31 字节）
func FeltFromShortString(s string) Felt {
	return FeltFromBigInt(new(big.Int).SetBytes([]byte(s)))
}

// FeltFromElement 包装一个 gnark-crypto 字段元素
func FeltFromElement(e *fp.Element) Felt {
	return Felt{element: *e}
}

// Impl 返回底层 fp.Element 的副本指针，供哈希原语使用
func (f Felt) Impl() *fp.Element {
	e := f.element
	return &e
}

// BigInt 返回规范整数表示
func (f Felt) BigInt() *big.Int {
	return f.element.BigInt(new(big.Int))
}

// Uint64 返回低 64 位及是否无损
func (f Felt) Uint64() (uint64, bool) {
	v := f.BigInt()
	return v.Uint64(), v.IsUint64()
}

// IsZero 是否为 0
func (f Felt) IsZero() bool {
	return f.element.IsZero()
}

// Equal 判断两个字段元素是否相等
func (f Felt) Equal(other Felt) bool {
	return f.element.Equal(&other.element)
}

// Cmp 按规范整数比较
func (f Felt) Cmp(other Felt) int {
	return f.BigInt().Cmp(other.BigInt())
}

// String 返回 0x 前缀的小写十六进制
func (f Felt) String() string {
	return "0x" + f.BigInt().Text(16)
}

// MarshalJSON 序列化为十六进制字符串
func (f Felt) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON 从十六进制字符串反序列化
func (f *Felt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("felt must be a hex string: %w", err)
	}
	parsed, err := ParseFelt(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// FeltsFromInt64s 批量转换有符号整数（HTTP 查询参数 → CallData）
func FeltsFromInt64s(values []int64) []Felt {
	out := make([]Felt, len(values))
	for i, v := range values {
		out[i] = FeltFromInt64(v)
	}
	return out
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
