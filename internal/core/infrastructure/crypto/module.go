// Package crypto 装配 Starknet 密码学服务
package crypto

import (
	"go.uber.org/fx"

	"github.com/weisyn/mazegate/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/mazegate/internal/core/infrastructure/crypto/signature"
	"github.com/weisyn/mazegate/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/mazegate/pkg/interfaces/infrastructure/log"
)

// CryptoParams 定义加密模块的依赖参数
type CryptoParams struct {
	fx.In

	Logger log.Logger `optional:"true"` // 日志记录器
}

// CryptoOutput 定义加密模块的输出结构
type CryptoOutput struct {
	fx.Out

	HashManager      crypto.HashManager
	SignatureManager crypto.SignatureManager
}

// Module 返回加密模块
func Module() fx.Option {
	return fx.Module("crypto",
		fx.Provide(ProvideCryptoServices),
	)
}

// ProvideCryptoServices 提供加密服务
func ProvideCryptoServices(params CryptoParams) CryptoOutput {
	if params.Logger != nil {
		params.Logger.With("module", "crypto").Info("加密模块已初始化：pedersen, stark-ecdsa")
	}

	return CryptoOutput{
		HashManager:      hash.NewHashService(),
		SignatureManager: signature.NewSignatureService(),
	}
}
