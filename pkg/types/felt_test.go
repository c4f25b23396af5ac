package types

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFelt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"带0x前缀", "0x1f", "0x1f", false},
		{"大写前缀与字母", "0XABCDEF", "0xabcdef", false},
		{"无前缀", "10", "0x10", false},
		{"前导零", "0x0001", "0x1", false},
		{"零", "0x0", "0x0", false},
		{"p-1", "0x800000000000011000000000000000000000000000000000000000000000000", "0x800000000000011000000000000000000000000000000000000000000000000", false},
		{"空串", "", "", true},
		{"只有前缀", "0x", "", true},
		{"非十六进制字符", "0xzz", "", true},
		{"负号", "-0x1", "", true},
		{"重复前缀0x0X", "0x0X1", "", true},
		{"重复前缀0X0x", "0X0x1", "", true},
		{"等于模数", "0x800000000000011000000000000000000000000000000000000000000000001", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFelt(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidCredentialFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFeltFromInt64_Negative(t *testing.T) {
	minusOne := FeltFromInt64(-1)

	want := new(big.Int).Sub(FeltModulus(), big.NewInt(1))
	assert.Equal(t, 0, minusOne.BigInt().Cmp(want))
	assert.True(t, FeltFromInt64(0).IsZero())
	assert.Equal(t, "0x5", FeltFromInt64(5).String())
}

func TestFeltFromShortString(t *testing.T) {
	assert.Equal(t, "0x534e5f5345504f4c4941", FeltFromShortString("SN_SEPOLIA").String())
	assert.Equal(t, "0x534e5f4d41494e", FeltFromShortString("SN_MAIN").String())
}

func TestFelt_JSON(t *testing.T) {
	data, err := json.Marshal(FeltFromUint64(255))
	require.NoError(t, err)
	assert.JSONEq(t, `"0xff"`, string(data))

	var f Felt
	require.NoError(t, json.Unmarshal([]byte(`"0xff"`), &f))
	assert.True(t, f.Equal(FeltFromUint64(255)))

	assert.Error(t, json.Unmarshal([]byte(`255`), &f), "数字形式不接受")
	assert.Error(t, json.Unmarshal([]byte(`"0xg"`), &f))
}

func TestFelt_Uint64(t *testing.T) {
	v, ok := FeltFromUint64(42).Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(42), v)

	_, ok = FeltFromInt64(-1).Uint64()
	assert.False(t, ok)
}

func TestFeltsFromInt64s(t *testing.T) {
	felts := FeltsFromInt64s([]int64{1, -1, 0})

	require.Len(t, felts, 3)
	assert.Equal(t, "0x1", felts[0].String())
	assert.True(t, felts[1].Equal(FeltFromInt64(-1)))
	assert.True(t, felts[2].IsZero())
}

func TestCredentials_StringRedactsKey(t *testing.T) {
	c := Credentials{NodeURL: "http://n", SenderAddress: "0x1", PrivateKey: "0xsecret"}
	assert.NotContains(t, c.String(), "0xsecret")
	assert.NotContains(t, c.String(), "secret")
}
