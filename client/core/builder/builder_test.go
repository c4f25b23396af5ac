package builder

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/mazegate/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/mazegate/pkg/types"
)

type stubSigner struct {
	address types.Felt
	signed  []types.Felt
	err     error
}

func (s *stubSigner) Address() types.Felt { return s.address }

func (s *stubSigner) SignHash(h types.Felt) ([]types.Felt, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.signed = append(s.signed, h)
	return []types.Felt{types.FeltFromUint64(1), types.FeltFromUint64(2)}, nil
}

func TestFee_Scale(t *testing.T) {
	tests := []struct {
		name       string
		units      uint64
		multiplier float64
		want       string
		wantErr    bool
	}{
		{"1.1倍", 1000, 1.1, "1100", false},
		{"1倍", 999, 1.0, "999", false},
		{"向下取整", 7, 1.5, "10", false},
		{"小于1", 1000, 0.9, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewFeeFromUnits(tt.units).Scale(tt.multiplier)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMultiplier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFee_Felt(t *testing.T) {
	fee := NewFeeFromFelt(types.FeltFromUint64(0x2a))
	f, err := fee.Felt()
	require.NoError(t, err)
	assert.Equal(t, "0x2a", f.String())
	assert.False(t, fee.IsZero())
	assert.Equal(t, 1, fee.Cmp(NewFeeFromUnits(1)))
}

func TestExecuteCalldata(t *testing.T) {
	to := types.FeltFromUint64(0xaa)
	selector := types.FeltFromUint64(0xbb)

	t.Run("单个调用", func(t *testing.T) {
		got := ExecuteCalldata(Call{To: to, Selector: selector, Calldata: types.FeltsFromInt64s([]int64{0, -1})})
		require.Len(t, got, 6)
		assert.Equal(t, "0x1", got[0].String())
		assert.True(t, got[1].Equal(to))
		assert.True(t, got[2].Equal(selector))
		assert.Equal(t, "0x2", got[3].String())
		assert.Equal(t, "0x0", got[4].String())
		assert.True(t, got[5].Equal(types.FeltFromInt64(-1)))
	})

	t.Run("无参数调用", func(t *testing.T) {
		got := ExecuteCalldata(Call{To: to, Selector: selector})
		require.Len(t, got, 4)
		assert.Equal(t, "0x0", got[3].String())
	})
}

func TestInvokeBuilder_Compose(t *testing.T) {
	hasher := hash.NewHashService()
	b := NewInvokeBuilder(hasher)

	sender := types.FeltFromUint64(0x5e)
	call := Call{To: types.FeltFromUint64(0xc0), Selector: hasher.Selector("update_position"), Calldata: types.FeltsFromInt64s([]int64{1, 0})}

	composed, err := b.Draft(sender, types.ChainSepolia, types.FeltFromUint64(3), call).
		WithMaxFee(types.FeltFromUint64(1100)).
		Compose()
	require.NoError(t, err)

	t.Run("哈希按定义计算", func(t *testing.T) {
		expected := hasher.PedersenArray(
			types.FeltFromShortString("invoke"),
			types.FeltFromUint64(1),
			sender,
			types.Felt{},
			hasher.PedersenArray(composed.Calldata()...),
			types.FeltFromUint64(1100),
			types.FeltFromShortString("SN_SEPOLIA"),
			types.FeltFromUint64(3),
		)
		assert.True(t, expected.Equal(composed.Hash()))
	})

	t.Run("nonce参与哈希", func(t *testing.T) {
		other, err := b.Draft(sender, types.ChainSepolia, types.FeltFromUint64(4), call).
			WithMaxFee(types.FeltFromUint64(1100)).
			Compose()
		require.NoError(t, err)
		assert.False(t, other.Hash().Equal(composed.Hash()))
	})

	t.Run("查询版本号", func(t *testing.T) {
		query, err := b.Draft(sender, types.ChainSepolia, types.FeltFromUint64(3), call).ForQuery().Compose()
		require.NoError(t, err)
		assert.Equal(t, "0x100000000000000000000000000000001", query.version.String())
		assert.False(t, query.Hash().Equal(composed.Hash()))
	})

	t.Run("无调用", func(t *testing.T) {
		_, err := b.Draft(sender, types.ChainSepolia, types.FeltFromUint64(3)).Compose()
		assert.ErrorIs(t, err, ErrNoCalls)
	})
}

func TestComposedInvoke_Sign(t *testing.T) {
	hasher := hash.NewHashService()
	sender := types.FeltFromUint64(0x5e)

	composed, err := NewInvokeBuilder(hasher).
		Draft(sender, types.ChainSepolia, types.FeltFromUint64(0), Call{To: types.FeltFromUint64(1), Selector: hasher.Selector("initialize_position")}).
		WithMaxFee(types.FeltFromUint64(10)).
		Compose()
	require.NoError(t, err)

	t.Run("签名并生成广播报文", func(t *testing.T) {
		signer := &stubSigner{address: sender}
		signed, err := composed.Sign(signer)
		require.NoError(t, err)
		require.Len(t, signer.signed, 1)
		assert.True(t, signer.signed[0].Equal(composed.Hash()))

		raw, err := json.Marshal(signed.Broadcast())
		require.NoError(t, err)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "INVOKE", body["type"])
		assert.Equal(t, "0x1", body["version"])
		assert.Equal(t, "0x5e", body["sender_address"])
		assert.Equal(t, "0xa", body["max_fee"])
		assert.Equal(t, "0x0", body["nonce"])
		assert.Equal(t, []interface{}{"0x1", "0x2"}, body["signature"])
		assert.Len(t, body["calldata"], 4)
	})

	t.Run("签名者地址不一致", func(t *testing.T) {
		_, err := composed.Sign(&stubSigner{address: types.FeltFromUint64(0x99)})
		assert.ErrorIs(t, err, ErrSignerMismatch)
	})

	t.Run("签名失败", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := composed.Sign(&stubSigner{address: sender, err: boom})
		assert.ErrorIs(t, err, boom)
	})
}
