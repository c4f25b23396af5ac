// Package metrics 提供进程级 Prometheus 注册表
//
// HTTP 中间件与合约调用指标都注册到同一个注册表，由 /metrics 统一暴露。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ModuleParams 定义 metrics 模块的依赖参数
type ModuleParams struct {
	fx.In

	Logger *zap.Logger `optional:"true"`
}

// ModuleOutput 定义 metrics 模块的输出结构
type ModuleOutput struct {
	fx.Out

	Registry   *prometheus.Registry
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// Module 返回 metrics 模块
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建注册表并注册运行时采集器
func ProvideServices(params ModuleParams) ModuleOutput {
	reg := NewRegistry()

	if params.Logger != nil {
		params.Logger.With(zap.String("module", "metrics")).
			Debug("Prometheus 注册表已创建", zap.Int("collectors", 2))
	}

	return ModuleOutput{
		Registry:   reg,
		Registerer: reg,
		Gatherer:   reg,
	}
}

// NewRegistry 创建带 Go 运行时与进程采集器的注册表
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
