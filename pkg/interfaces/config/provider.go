// Package config provides configuration provider interfaces.
package config

import (
	apiconfig "github.com/weisyn/mazegate/internal/config/api"
	logconfig "github.com/weisyn/mazegate/internal/config/log"
	starknetconfig "github.com/weisyn/mazegate/internal/config/starknet"
)

// Provider 配置提供者接口
type Provider interface {
	// GetAPI 获取 HTTP API 配置
	GetAPI() *apiconfig.APIOptions

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetStarknet 获取节点与账户配置
	GetStarknet() *starknetconfig.StarknetOptions

	// Validate 校验必需配置项（节点地址、账户地址、私钥）
	Validate() error
}
