package app

import (
	"github.com/weisyn/mazegate/pkg/interfaces/config"
	"github.com/weisyn/mazegate/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径，为空时只使用命令行与环境变量
	configFilePath string

	// 命令行与环境变量给出的配置，覆盖配置文件中的同名字段
	overrides *types.AppConfig

	// 合并后的最终用户配置
	appConfig *types.AppConfig
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置 JSON 配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithUserConfig 设置覆盖配置文件的用户配置
//
// 只有非 nil 字段参与覆盖，可多次调用，后者优先。
func WithUserConfig(userConfig *types.AppConfig) Option {
	return func(o *options) {
		o.overrides = mergeAppConfig(o.overrides, userConfig)
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	o := &options{
		appConfig: &types.AppConfig{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetAppConfig 返回合并后的用户配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
