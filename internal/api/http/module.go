package http

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/weisyn/mazegate/client/core/contract"
	logimpl "github.com/weisyn/mazegate/internal/core/infrastructure/log"
	"github.com/weisyn/mazegate/pkg/interfaces/config"
	"github.com/weisyn/mazegate/pkg/interfaces/infrastructure/log"
)

// ServerParams HTTP服务器依赖
type ServerParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Config     config.Provider
	Logger     log.Logger
	Contract   *contract.ContractService
	Registerer prometheus.Registerer `optional:"true"`
	Gatherer   prometheus.Gatherer   `optional:"true"`
}

// initializeGinMode 在创建路由引擎之前设置GIN模式，关闭GIN自带的调试输出
func initializeGinMode() {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard
}

// NewServer 创建HTTP服务器并注册生命周期钩子
func NewServer(params ServerParams) (*Server, error) {
	server, err := New(Deps{
		API:        params.Config.GetAPI(),
		Starknet:   params.Config.GetStarknet(),
		Contract:   params.Contract,
		Logger:     logimpl.WithModule(params.Logger, "api"),
		Registerer: params.Registerer,
		Gatherer:   params.Gatherer,
	})
	if err != nil {
		return nil, err
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})

	return server, nil
}

// Module 返回HTTP服务模块
func Module() fx.Option {
	return fx.Options(
		fx.Invoke(initializeGinMode),
		fx.Provide(NewServer),
	)
}
