package starknet

import (
	"time"

	"github.com/weisyn/mazegate/pkg/types"
)

// 节点与账户默认配置
const (
	// defaultChainID 默认链
	defaultChainID = types.ChainSepolia

	// defaultDeployment 默认合约版本
	defaultDeployment = types.DefaultDeployment

	// defaultRequestTimeout 单次节点往返的超时
	defaultRequestTimeout = 15 * time.Second

	// defaultFeeMultiplier 估算手续费放大倍数
	defaultFeeMultiplier = 1.1
)

// 以下环境变量在命令行标志未给出时生效
const (
	EnvNodeURL       = "URL"
	EnvSenderAddress = "SENDER_ADDRESS"
	EnvPrivateKey    = "PRIVATE_KEY"
)
