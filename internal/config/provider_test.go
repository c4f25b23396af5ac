package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/mazegate/pkg/types"
)

func validStarknetConfig() *types.UserStarknetConfig {
	return &types.UserStarknetConfig{
		NodeURL:       types.StringPtr("http://127.0.0.1:5050/rpc"),
		SenderAddress: types.StringPtr("0x6162896d1d7ab204c7ccac6dd5f8e9e7c25ecd5ae4fcb4ad32e57786bb46e03"),
		PrivateKey:    types.StringPtr("0x1800000000300000180000000000030000000000003006001800006600"),
	}
}

// TestGetAPI 测试 API 默认值与覆盖
func TestGetAPI(t *testing.T) {
	t.Run("未配置时使用默认值", func(t *testing.T) {
		provider := NewProvider(nil)
		httpCfg := provider.GetAPI().HTTP
		assert.Equal(t, "127.0.0.1:4000", httpCfg.Address())
		assert.True(t, httpCfg.CORSEnabled)
		assert.Equal(t, []string{"*"}, httpCfg.CORSOrigins)
		assert.Greater(t, httpCfg.ReadRateLimit, httpCfg.WriteRateLimit)
	})

	t.Run("用户配置覆盖", func(t *testing.T) {
		provider := NewProvider(&types.AppConfig{
			API: &types.UserAPIConfig{
				HTTPHost:        types.StringPtr("0.0.0.0"),
				HTTPPort:        types.IntPtr(8088),
				HTTPCorsEnabled: types.BoolPtr(false),
				WriteRateLimit:  types.IntPtr(1),
			},
		})
		httpCfg := provider.GetAPI().HTTP
		assert.Equal(t, "0.0.0.0:8088", httpCfg.Address())
		assert.False(t, httpCfg.CORSEnabled)
		assert.Equal(t, 1, httpCfg.WriteRateLimit)
	})
}

// TestGetLog 测试日志配置
func TestGetLog(t *testing.T) {
	t.Run("默认输出到控制台", func(t *testing.T) {
		opts := NewProvider(nil).GetLog()
		assert.Equal(t, "info", opts.Level)
		assert.True(t, opts.ToConsole)
		assert.Empty(t, opts.FilePath)
	})

	t.Run("指定文件后关闭控制台输出", func(t *testing.T) {
		opts := NewProvider(&types.AppConfig{
			Log: &types.UserLogConfig{
				Level:    types.StringPtr("debug"),
				FilePath: types.StringPtr("/tmp/mazegate.log"),
			},
		}).GetLog()
		assert.Equal(t, "debug", opts.Level)
		assert.False(t, opts.ToConsole)
		assert.Equal(t, "/tmp/mazegate.log", opts.FilePath)
	})
}

// TestGetStarknet 测试节点配置
func TestGetStarknet(t *testing.T) {
	t.Run("默认链与合约版本", func(t *testing.T) {
		opts := NewProvider(&types.AppConfig{Starknet: validStarknetConfig()}).GetStarknet()
		assert.Equal(t, types.ChainSepolia, opts.ChainID)
		assert.Equal(t, "walls", opts.Deployment)
		assert.Equal(t, 15*time.Second, opts.RequestTimeout)
		assert.InDelta(t, 1.1, opts.FeeMultiplier, 1e-9)
	})

	t.Run("覆盖超时与链", func(t *testing.T) {
		user := validStarknetConfig()
		user.ChainID = types.StringPtr("sn_main")
		user.RequestTimeout = types.StringPtr("3s")
		user.Deployment = types.StringPtr("legacy")

		provider := NewProvider(&types.AppConfig{Starknet: user})
		require.NoError(t, provider.Validate())

		opts := provider.GetStarknet()
		assert.Equal(t, types.ChainMainnet, opts.ChainID)
		assert.Equal(t, 3*time.Second, opts.RequestTimeout)

		deployment, err := opts.Contract()
		require.NoError(t, err)
		assert.Equal(t, "legacy", deployment.Name)
	})

	t.Run("凭据打印时隐藏私钥", func(t *testing.T) {
		creds := NewProvider(&types.AppConfig{Starknet: validStarknetConfig()}).GetStarknet().Credentials()
		assert.NotContains(t, creds.String(), creds.PrivateKey)
	})
}

// TestValidate 测试必填项校验
func TestValidate(t *testing.T) {
	t.Run("完整配置通过", func(t *testing.T) {
		provider := NewProvider(&types.AppConfig{Starknet: validStarknetConfig()})
		assert.NoError(t, provider.Validate())
	})

	t.Run("缺少全部必填项", func(t *testing.T) {
		err := NewProvider(nil).Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "URL")
		assert.Contains(t, err.Error(), "SENDER_ADDRESS")
		assert.Contains(t, err.Error(), "PRIVATE_KEY")

		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.Equal(t, "starknet", verr.Field)
	})

	t.Run("私钥不是十六进制", func(t *testing.T) {
		user := validStarknetConfig()
		user.PrivateKey = types.StringPtr("0xnothex")
		err := NewProvider(&types.AppConfig{Starknet: user}).Validate()
		assert.ErrorIs(t, err, types.ErrInvalidCredentialFormat)
	})

	t.Run("节点地址不是URL", func(t *testing.T) {
		user := validStarknetConfig()
		user.NodeURL = types.StringPtr("localhost:5050")
		err := NewProvider(&types.AppConfig{Starknet: user}).Validate()
		assert.ErrorIs(t, err, types.ErrInvalidArgument)
	})

	t.Run("未知合约版本", func(t *testing.T) {
		user := validStarknetConfig()
		user.Deployment = types.StringPtr("v9")
		err := NewProvider(&types.AppConfig{Starknet: user}).Validate()
		assert.ErrorIs(t, err, types.ErrInvalidArgument)
	})

	t.Run("未知链ID在解析阶段失败", func(t *testing.T) {
		user := validStarknetConfig()
		user.ChainID = types.StringPtr("SN_GOERLI")
		err := NewProvider(&types.AppConfig{Starknet: user}).Validate()
		assert.ErrorIs(t, err, types.ErrInvalidArgument)
	})

	t.Run("未知日志级别", func(t *testing.T) {
		err := NewProvider(&types.AppConfig{
			Starknet: validStarknetConfig(),
			Log:      &types.UserLogConfig{Level: types.StringPtr("verbose")},
		}).Validate()
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "log", verr.Field)
	})
}
