package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"

	"github.com/weisyn/mazegate/client/core/contract"
	"github.com/weisyn/mazegate/internal/api"
	appconfig "github.com/weisyn/mazegate/internal/config"
	"github.com/weisyn/mazegate/internal/core/infrastructure/crypto"
	logimpl "github.com/weisyn/mazegate/internal/core/infrastructure/log"
	"github.com/weisyn/mazegate/internal/core/infrastructure/metrics"
	"github.com/weisyn/mazegate/pkg/interfaces/config"
	"github.com/weisyn/mazegate/pkg/interfaces/infrastructure/log"
)

// Bootstrap 应用程序引导器
type Bootstrap struct {
	opts  *options
	fxApp *fx.App
}

// NewBootstrap 创建新的引导器
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{opts: opts}
}

// SetupInfrastructureLayer 配置、日志、指标与密码学服务
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		fx.Provide(func() config.AppOptions { return b.opts }),
		appconfig.Module(),
		logimpl.Module(),
		metrics.Module(),
		crypto.Module(),
	}
}

// SetupBusinessLayer 合约调用服务
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	return []fx.Option{
		contract.Module(),
	}
}

// SetupApplicationLayer HTTP API
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	return []fx.Option{
		api.Module(),
		fx.Invoke(func(lifecycle fx.Lifecycle, provider config.Provider, logger log.Logger) {
			appLogger := logimpl.WithModule(logger, "app")
			lifecycle.Append(fx.Hook{
				OnStart: func(context.Context) error {
					sn := provider.GetStarknet()
					appLogger.Infof("mazegate 已启动: chain=%s deployment=%s node=%s",
						sn.ChainID, sn.Deployment, sn.NodeURL)
					return nil
				},
				OnStop: func(context.Context) error {
					appLogger.Info("mazegate 正在停止")
					return nil
				},
			})
		}),
	}
}

// SetupModules 按依赖顺序返回所有模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var allModules []fx.Option
	allModules = append(allModules, b.SetupInfrastructureLayer()...)
	allModules = append(allModules, b.SetupBusinessLayer()...)
	allModules = append(allModules, b.SetupApplicationLayer()...)
	return allModules
}

// CreateFxApp 创建fx应用
func (b *Bootstrap) CreateFxApp() {
	b.fxApp = fx.New(
		fx.Options(b.SetupModules()...),
		// 禁用fx内部日志
		fx.NopLogger,
	)
}

// StartApp 启动应用程序
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Err(); err != nil {
		return fmt.Errorf("装配应用失败: %w", err)
	}
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动应用失败: %w", err)
	}
	return nil
}

// StopApp 停止应用程序
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}

// Done 返回接收 SIGINT/SIGTERM 的通道
func (b *Bootstrap) Done() <-chan os.Signal {
	return b.fxApp.Done()
}
