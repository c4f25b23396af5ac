package config

import (
	"github.com/weisyn/mazegate/internal/config/api"
	"github.com/weisyn/mazegate/internal/config/log"
	"github.com/weisyn/mazegate/internal/config/starknet"
	"github.com/weisyn/mazegate/pkg/interfaces/config"
	"github.com/weisyn/mazegate/pkg/types"
)

// 编译时校验Provider是否实现了config.Provider接口
var _ config.Provider = (*Provider)(nil)

// Provider 实现配置提供者接口
//
// 各区域配置在构造时合并一次，之后只读。
type Provider struct {
	appConfig *types.AppConfig

	api      *api.APIOptions
	log      *log.LogOptions
	starknet *starknet.StarknetOptions

	// starknetErr 用户配置无法解析时记录，由 Validate 返回
	starknetErr error
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) *Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}

	p := &Provider{
		appConfig: appConfig,
		api:       api.New(appConfig.API).GetOptions(),
		log:       log.New(appConfig.Log).GetOptions(),
	}

	sc, err := starknet.New(appConfig.Starknet)
	if err != nil {
		p.starknetErr = err
		sc, _ = starknet.New(nil)
	}
	p.starknet = sc.GetOptions()

	return p
}

// GetAPI 获取API服务配置
func (p *Provider) GetAPI() *api.APIOptions {
	return p.api
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	return p.log
}

// GetStarknet 获取节点与账户配置
func (p *Provider) GetStarknet() *starknet.StarknetOptions {
	return p.starknet
}

// GetAppConfig 返回原始用户配置
func (p *Provider) GetAppConfig() *types.AppConfig {
	return p.appConfig
}

// Validate 校验必需配置项
func (p *Provider) Validate() error {
	return ValidateMandatoryConfig(p)
}
