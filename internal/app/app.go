// Package app 装配并运行 mazegate 服务
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/fx"

	"github.com/weisyn/mazegate/pkg/types"
)

// 启动与停止的超时
const (
	startTimeout = 30 * time.Second
	stopTimeout  = 15 * time.Second
)

// App 是mazegate应用的对外接口
type App interface {
	// Stop 停止应用
	Stop() error

	// Wait 阻塞直到收到 SIGINT/SIGTERM，然后停止应用
	Wait() error
}

// internalApp 应用的内部实现
type internalApp struct {
	bootstrap *Bootstrap
}

// Stop 停止应用
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return a.bootstrap.StopApp(ctx)
}

// Wait 等待退出信号
func (a *internalApp) Wait() error {
	<-a.bootstrap.Done()
	return a.Stop()
}

// Start 加载配置、装配模块并启动应用
func Start(appOptions ...Option) (App, error) {
	opts := newOptions(appOptions...)

	appConfig, err := loadAppConfig(opts)
	if err != nil {
		return nil, err
	}
	opts.appConfig = appConfig

	bootstrap := NewBootstrap(opts)
	bootstrap.CreateFxApp()

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	if err := bootstrap.StartApp(ctx); err != nil {
		return nil, err
	}

	return &internalApp{bootstrap: bootstrap}, nil
}

// loadAppConfig 读取配置文件并叠加命令行覆盖项
//
// 显式指定的配置文件不存在或无法解析时返回错误，不回退到默认值。
func loadAppConfig(opts *options) (*types.AppConfig, error) {
	var fileConfig *types.AppConfig
	if opts.configFilePath != "" {
		cfg, err := loadConfigFromFile(opts.configFilePath)
		if err != nil {
			return nil, err
		}
		fileConfig = cfg
	}
	return mergeAppConfig(fileConfig, opts.overrides), nil
}

// loadConfigFromFile 从 JSON 文件加载用户配置
func loadConfigFromFile(path string) (*types.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}

	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	return &appConfig, nil
}

// mergeAppConfig 以 overlay 的非 nil 字段覆盖 base，返回新对象
func mergeAppConfig(base, overlay *types.AppConfig) *types.AppConfig {
	out := &types.AppConfig{}
	for _, cfg := range []*types.AppConfig{base, overlay} {
		if cfg == nil {
			continue
		}
		if cfg.API != nil {
			out.API = mergeAPIConfig(out.API, cfg.API)
		}
		if cfg.Log != nil {
			out.Log = mergeLogConfig(out.Log, cfg.Log)
		}
		if cfg.Starknet != nil {
			out.Starknet = mergeStarknetConfig(out.Starknet, cfg.Starknet)
		}
	}
	return out
}

func mergeAPIConfig(base, overlay *types.UserAPIConfig) *types.UserAPIConfig {
	out := types.UserAPIConfig{}
	if base != nil {
		out = *base
	}
	if overlay.HTTPHost != nil {
		out.HTTPHost = overlay.HTTPHost
	}
	if overlay.HTTPPort != nil {
		out.HTTPPort = overlay.HTTPPort
	}
	if overlay.HTTPCorsEnabled != nil {
		out.HTTPCorsEnabled = overlay.HTTPCorsEnabled
	}
	if overlay.HTTPCorsOrigins != nil {
		out.HTTPCorsOrigins = overlay.HTTPCorsOrigins
	}
	if overlay.ReadRateLimit != nil {
		out.ReadRateLimit = overlay.ReadRateLimit
	}
	if overlay.WriteRateLimit != nil {
		out.WriteRateLimit = overlay.WriteRateLimit
	}
	if overlay.EnableMetrics != nil {
		out.EnableMetrics = overlay.EnableMetrics
	}
	return &out
}

func mergeLogConfig(base, overlay *types.UserLogConfig) *types.UserLogConfig {
	out := types.UserLogConfig{}
	if base != nil {
		out = *base
	}
	if overlay.Level != nil {
		out.Level = overlay.Level
	}
	if overlay.FilePath != nil {
		out.FilePath = overlay.FilePath
	}
	return &out
}

func mergeStarknetConfig(base, overlay *types.UserStarknetConfig) *types.UserStarknetConfig {
	out := types.UserStarknetConfig{}
	if base != nil {
		out = *base
	}
	if overlay.NodeURL != nil {
		out.NodeURL = overlay.NodeURL
	}
	if overlay.SenderAddress != nil {
		out.SenderAddress = overlay.SenderAddress
	}
	if overlay.PrivateKey != nil {
		out.PrivateKey = overlay.PrivateKey
	}
	if overlay.ChainID != nil {
		out.ChainID = overlay.ChainID
	}
	if overlay.Deployment != nil {
		out.Deployment = overlay.Deployment
	}
	if overlay.RequestTimeout != nil {
		out.RequestTimeout = overlay.RequestTimeout
	}
	if overlay.FeeMultiplier != nil {
		out.FeeMultiplier = overlay.FeeMultiplier
	}
	return &out
}

// fxOptionsFor 返回给定选项对应的完整模块集合，供启动与依赖校验共用
func fxOptionsFor(opts *options) fx.Option {
	return fx.Options(NewBootstrap(opts).SetupModules()...)
}
