// Package starknet 提供节点地址、账户凭据与合约版本配置
package starknet

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/weisyn/mazegate/pkg/types"
)

// StarknetOptions 节点与账户配置选项
type StarknetOptions struct {
	NodeURL       string `json:"node_url"`       // 节点 JSON-RPC 地址
	SenderAddress string `json:"sender_address"` // 发送方账户地址
	PrivateKey    string `json:"-"`              // 私钥，不参与序列化

	ChainID    types.ChainID `json:"chain_id"`   // 链 ID
	Deployment string        `json:"deployment"` // 合约版本名称

	RequestTimeout time.Duration `json:"request_timeout"` // 单次节点请求超时
	FeeMultiplier  float64       `json:"fee_multiplier"`  // 估算手续费放大倍数
}

// Config 节点配置实现
type Config struct {
	options *StarknetOptions
}

// New 创建节点配置：默认值 + 用户配置覆盖
func New(userConfig *types.UserStarknetConfig) (*Config, error) {
	options := createDefaultStarknetOptions()
	if err := applyUserStarknetConfig(options, userConfig); err != nil {
		return nil, err
	}
	return &Config{options: options}, nil
}

// createDefaultStarknetOptions 创建默认配置
func createDefaultStarknetOptions() *StarknetOptions {
	return &StarknetOptions{
		ChainID:        defaultChainID,
		Deployment:     defaultDeployment,
		RequestTimeout: defaultRequestTimeout,
		FeeMultiplier:  defaultFeeMultiplier,
	}
}

// applyUserStarknetConfig 合并用户配置
func applyUserStarknetConfig(options *StarknetOptions, user *types.UserStarknetConfig) error {
	if user == nil {
		return nil
	}
	if user.NodeURL != nil {
		options.NodeURL = *user.NodeURL
	}
	if user.SenderAddress != nil {
		options.SenderAddress = *user.SenderAddress
	}
	if user.PrivateKey != nil {
		options.PrivateKey = *user.PrivateKey
	}
	if user.ChainID != nil && *user.ChainID != "" {
		chain, err := types.ParseChainID(*user.ChainID)
		if err != nil {
			return err
		}
		options.ChainID = chain
	}
	if user.Deployment != nil && *user.Deployment != "" {
		options.Deployment = *user.Deployment
	}
	if user.RequestTimeout != nil && *user.RequestTimeout != "" {
		d, err := time.ParseDuration(*user.RequestTimeout)
		if err != nil {
			return fmt.Errorf("%w: request_timeout %q: %v", types.ErrInvalidArgument, *user.RequestTimeout, err)
		}
		options.RequestTimeout = d
	}
	if user.FeeMultiplier != nil {
		options.FeeMultiplier = *user.FeeMultiplier
	}
	return nil
}

// Validate 校验必需项
//
// 节点地址、账户地址、私钥三者缺一不可；账户地址和私钥必须是合法的十六进制字段元素。
func (o *StarknetOptions) Validate() error {
	var errs []error

	if o.NodeURL == "" {
		errs = append(errs, fmt.Errorf("缺少节点地址（--url 或环境变量 %s）", EnvNodeURL))
	} else if u, err := url.Parse(o.NodeURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: 节点地址 %q 不是 http(s) URL", types.ErrInvalidArgument, o.NodeURL))
	}

	if o.SenderAddress == "" {
		errs = append(errs, fmt.Errorf("缺少账户地址（--sender-address 或环境变量 %s）", EnvSenderAddress))
	} else if _, err := types.ParseFelt(o.SenderAddress); err != nil {
		errs = append(errs, fmt.Errorf("账户地址: %w", err))
	}

	if o.PrivateKey == "" {
		errs = append(errs, fmt.Errorf("缺少私钥（--private-key 或环境变量 %s）", EnvPrivateKey))
	} else if _, err := types.ParseFelt(o.PrivateKey); err != nil {
		errs = append(errs, fmt.Errorf("私钥: %w", err))
	}

	if _, err := types.LookupDeployment(o.Deployment); err != nil {
		errs = append(errs, err)
	}
	if o.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: request_timeout 必须为正数", types.ErrInvalidArgument))
	}
	if o.FeeMultiplier < 1 {
		errs = append(errs, fmt.Errorf("%w: fee_multiplier 不能小于 1", types.ErrInvalidArgument))
	}

	return errors.Join(errs...)
}

// Credentials 返回单次调用使用的凭据
func (o *StarknetOptions) Credentials() types.Credentials {
	return types.Credentials{
		NodeURL:       o.NodeURL,
		SenderAddress: o.SenderAddress,
		PrivateKey:    o.PrivateKey,
	}
}

// Contract 返回当前配置的合约版本
func (o *StarknetOptions) Contract() (types.Deployment, error) {
	return types.LookupDeployment(o.Deployment)
}

// GetOptions 获取完整配置
func (c *Config) GetOptions() *StarknetOptions {
	return c.options
}
