// Package log 提供日志管理功能
package log

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/weisyn/mazegate/pkg/interfaces/config"
	logInterface "github.com/weisyn/mazegate/pkg/interfaces/infrastructure/log"
)

// ModuleParams 定义日志模块的依赖参数
type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  config.Provider // 配置提供者
}

// ModuleOutput 定义日志模块的输出结构
type ModuleOutput struct {
	fx.Out

	Logger    logInterface.Logger // 日志记录器接口
	ZapLogger *zap.Logger         // 供 gin 中间件等需要结构化字段的组件使用
}

// Module 返回日志模块
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 根据配置初始化日志记录器，并替换 init() 时创建的全局实例
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger, err := New(params.Provider.GetLog())
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("根据用户配置创建日志记录器失败: %w", err)
	}

	SetLogger(logger)

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			// stdout 在部分平台上 Sync 会返回 EINVAL，忽略
			_ = logger.Sync()
			return nil
		},
	})

	return ModuleOutput{
		Logger:    logger,
		ZapLogger: logger.GetZapLogger(),
	}, nil
}

// WithModule 为 logger 添加 module 字段
//
// 参数：
//   - logger: 基础 logger，允许为 nil
//   - module: 模块名称（如 "api", "contract", "transport", "wallet"）
func WithModule(logger logInterface.Logger, module string) logInterface.Logger {
	if logger == nil {
		return nil
	}
	return logger.With("module", module)
}

// WithModuleZap 为 zap logger 添加 module 字段
func WithModuleZap(logger *zap.Logger, module string) *zap.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(zap.String("module", module))
}

// OrNop 返回可用的 logger：nil 时返回丢弃所有输出的实现
func OrNop(logger logInterface.Logger) logInterface.Logger {
	if logger != nil {
		return logger
	}
	return NewFromCore(zap.NewNop().Core())
}
