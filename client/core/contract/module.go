package contract

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/weisyn/mazegate/client/core/transport"
	logimpl "github.com/weisyn/mazegate/internal/core/infrastructure/log"
	"github.com/weisyn/mazegate/pkg/interfaces/config"
	cryptointf "github.com/weisyn/mazegate/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/mazegate/pkg/interfaces/infrastructure/log"
)

// ModuleParams 合约模块依赖
type ModuleParams struct {
	fx.In

	Lifecycle        fx.Lifecycle
	Provider         config.Provider
	HashManager      cryptointf.HashManager
	SignatureManager cryptointf.SignatureManager
	Logger           log.Logger            `optional:"true"`
	Registerer       prometheus.Registerer `optional:"true"`
}

// ModuleOutput 合约模块输出
type ModuleOutput struct {
	fx.Out

	Service *ContractService
	Pool    *transport.ClientPool
}

// Module 返回合约模块
func Module() fx.Option {
	return fx.Module("contract",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建节点客户端池与合约服务
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	opts := params.Provider.GetStarknet()
	deployment, err := opts.Contract()
	if err != nil {
		return ModuleOutput{}, err
	}

	logger := logimpl.WithModule(params.Logger, "contract")
	pool := transport.NewClientPool(opts.RequestTimeout, logimpl.WithModule(params.Logger, "transport"))

	serviceOpts := []Option{WithLogger(logger)}
	if params.Registerer != nil {
		serviceOpts = append(serviceOpts, WithMetrics(NewMetrics(params.Registerer)))
	}

	service := NewContractService(Config{
		Deployment:     deployment,
		Chain:          opts.ChainID,
		RequestTimeout: opts.RequestTimeout,
		FeeMultiplier:  opts.FeeMultiplier,
	}, pool, params.HashManager, params.SignatureManager, serviceOpts...)

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})

	if logger != nil {
		logger.Infof("合约客户端已初始化: deployment=%s address=%s chain=%s",
			deployment.Name, deployment.ContractAddress, opts.ChainID)
	}

	return ModuleOutput{Service: service, Pool: pool}, nil
}
