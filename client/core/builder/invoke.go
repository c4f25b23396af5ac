package builder

import (
	"errors"
	"fmt"

	"github.com/weisyn/mazegate/client/core/transport"
	cryptointf "github.com/weisyn/mazegate/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/mazegate/pkg/types"
)

var (
	// ErrNoCalls 交易中没有任何调用
	ErrNoCalls = errors.New("invoke transaction has no calls")

	// ErrSignerMismatch 签名者地址与交易发送方不一致
	ErrSignerMismatch = errors.New("signer address does not match sender")
)

// InvokeBuilder INVOKE v1 交易构建器 - Type-State模式的入口
//
// Draft（可变） → Compose（密封，计算哈希） → Sign（可广播）
type InvokeBuilder struct {
	hasher cryptointf.HashManager
}

// NewInvokeBuilder 创建交易构建器
func NewInvokeBuilder(hasher cryptointf.HashManager) *InvokeBuilder {
	return &InvokeBuilder{hasher: hasher}
}

// DraftInvoke 草稿交易(可变状态)
type DraftInvoke struct {
	builder *InvokeBuilder
	sender  types.Felt
	chain   types.ChainID
	nonce   types.Felt
	calls   []Call
	maxFee  types.Felt
	query   bool
}

// ComposedInvoke 组合交易(不可变状态)，已确定 calldata、版本与哈希
type ComposedInvoke struct {
	sender   types.Felt
	nonce    types.Felt
	maxFee   types.Felt
	version  types.Felt
	calldata []types.Felt
	hash     types.Felt
}

// SignedInvoke 签名交易(可广播)
type SignedInvoke struct {
	composed  *ComposedInvoke
	signature []types.Felt
}

// Draft 创建交易草稿
func (b *InvokeBuilder) Draft(sender types.Felt, chain types.ChainID, nonce types.Felt, calls ...Call) *DraftInvoke {
	return &DraftInvoke{
		builder: b,
		sender:  sender,
		chain:   chain,
		nonce:   nonce,
		calls:   append([]Call(nil), calls...),
	}
}

// WithMaxFee 设置最大手续费
func (d *DraftInvoke) WithMaxFee(maxFee types.Felt) *DraftInvoke {
	d.maxFee = maxFee
	return d
}

// ForQuery 使用查询版本号（估费专用）
func (d *DraftInvoke) ForQuery() *DraftInvoke {
	d.query = true
	return d
}

// Compose 密封草稿并计算交易哈希
func (d *DraftInvoke) Compose() (*ComposedInvoke, error) {
	if len(d.calls) == 0 {
		return nil, ErrNoCalls
	}

	version := TransactionVersion1
	if d.query {
		version = QueryVersion1
	}
	calldata := ExecuteCalldata(d.calls...)

	h := d.builder.hasher
	hash := h.PedersenArray(
		invokePrefix,
		version,
		d.sender,
		types.Felt{}, // entry_point_selector，v1 固定为 0
		h.PedersenArray(calldata...),
		d.maxFee,
		d.chain.Felt(),
		d.nonce,
	)

	return &ComposedInvoke{
		sender:   d.sender,
		nonce:    d.nonce,
		maxFee:   d.maxFee,
		version:  version,
		calldata: calldata,
		hash:     hash,
	}, nil
}

// Hash 交易哈希
func (c *ComposedInvoke) Hash() types.Felt {
	return c.hash
}

// Calldata 账户 __execute__ 的参数
func (c *ComposedInvoke) Calldata() []types.Felt {
	return append([]types.Felt(nil), c.calldata...)
}

// Sign 使用账户签名者签名
func (c *ComposedInvoke) Sign(signer Signer) (*SignedInvoke, error) {
	if !signer.Address().Equal(c.sender) {
		return nil, fmt.Errorf("%w: signer %s, sender %s", ErrSignerMismatch, signer.Address(), c.sender)
	}

	signature, err := signer.SignHash(c.hash)
	if err != nil {
		return nil, fmt.Errorf("sign invoke %s: %w", c.hash, err)
	}

	return &SignedInvoke{composed: c, signature: signature}, nil
}

// Hash 交易哈希
func (s *SignedInvoke) Hash() types.Felt {
	return s.composed.hash
}

// Broadcast 转换为 starknet_addInvokeTransaction / starknet_estimateFee 的请求体
func (s *SignedInvoke) Broadcast() transport.BroadcastInvokeTxn {
	c := s.composed
	return transport.BroadcastInvokeTxn{
		Type:          TxTypeInvoke,
		SenderAddress: c.sender,
		Calldata:      c.Calldata(),
		MaxFee:        c.maxFee,
		Version:       c.version,
		Signature:     append([]types.Felt(nil), s.signature...),
		Nonce:         c.nonce,
	}
}

// ExecuteCalldata 按 Cairo 1 账户 __execute__ 的格式编码调用列表
//
// [n_calls, to_1, selector_1, len_1, data_1..., to_2, ...]
func ExecuteCalldata(calls ...Call) []types.Felt {
	size := 1
	for _, call := range calls {
		size += 3 + len(call.Calldata)
	}

	out := make([]types.Felt, 0, size)
	out = append(out, types.FeltFromUint64(uint64(len(calls))))
	for _, call := range calls {
		out = append(out, call.To, call.Selector, types.FeltFromUint64(uint64(len(call.Calldata))))
		out = append(out, call.Calldata...)
	}
	return out
}
