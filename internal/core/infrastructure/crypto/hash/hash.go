// Package hash 提供 Starknet 哈希原语：截断 Keccak、入口选择器与 Pedersen 哈希
package hash

import (
	"math/big"
	"sync"

	pedersenhash "github.com/consensys/gnark-crypto/ecc/stark-curve/pedersen-hash"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"golang.org/x/crypto/sha3"

	cryptointf "github.com/weisyn/mazegate/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/mazegate/pkg/types"
)

// 确保HashService实现了cryptointf.HashManager接口
var _ cryptointf.HashManager = (*HashService)(nil)

// keccakMask 2^250 - 1，Starknet Keccak 只保留低 250 位
var keccakMask = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 250), big.NewInt(1))

// HashCache 选择器缓存，键为入口点名称
type HashCache struct {
	cache map[string]types.Felt
	mu    sync.RWMutex
}

// NewHashCache 创建新的哈希缓存
func NewHashCache() *HashCache {
	return &HashCache{
		cache: make(map[string]types.Felt),
	}
}

// Get 从缓存获取哈希值
func (c *HashCache) Get(key string) (types.Felt, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.cache[key]
	return value, ok
}

// Set 设置缓存中的哈希值
func (c *HashCache) Set(key string, value types.Felt) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[key] = value
}

// Len 返回缓存条目数
func (c *HashCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.cache)
}

// HashService 提供 Starknet 哈希计算功能
type HashService struct {
	// 入口点名称 → 选择器
	selectorCache *HashCache
}

// NewHashService 创建新的哈希服务
func NewHashService() *HashService {
	return &HashService{
		selectorCache: NewHashCache(),
	}
}

// StarknetKeccak 计算 keccak256(data) 的低 250 位
//
// 参数:
//   - data: 要计算哈希的数据
//
// 返回:
//   - types.Felt: 截断后的哈希，必然小于字段模数
func (s *HashService) StarknetKeccak(data []byte) types.Felt {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data)
	digest := new(big.Int).SetBytes(hasher.Sum(nil))
	return types.FeltFromBigInt(digest.And(digest, keccakMask))
}

// Selector 计算合约入口点选择器
//
// 等价于 starknet_keccak(name)，例如 "move" 或 "__execute__"。
func (s *HashService) Selector(name string) types.Felt {
	if cached, ok := s.selectorCache.Get(name); ok {
		return cached
	}

	selector := s.StarknetKeccak([]byte(name))
	s.selectorCache.Set(name, selector)
	return selector
}

// Pedersen 计算 H(a, b)
func (s *HashService) Pedersen(a, b types.Felt) types.Felt {
	out := pedersenhash.Pedersen(a.Impl(), b.Impl())
	return types.FeltFromElement(&out)
}

// PedersenArray 计算 h(h(h(h(0, a1), a2), ...), an), n)
func (s *HashService) PedersenArray(elems ...types.Felt) types.Felt {
	impls := make([]*fp.Element, len(elems))
	for i := range elems {
		impls[i] = elems[i].Impl()
	}
	out := pedersenhash.PedersenArray(impls...)
	return types.FeltFromElement(&out)
}
