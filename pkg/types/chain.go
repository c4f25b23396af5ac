package types

import (
	"fmt"
	"sort"
	"strings"
)

// ChainID Starknet 网络标识（Cairo short string）
type ChainID string

const (
	ChainSepolia ChainID = "SN_SEPOLIA" // 测试网
	ChainMainnet ChainID = "SN_MAIN"    // 主网
)

// Felt 返回链 ID 的字段元素编码
func (c ChainID) Felt() Felt {
	return FeltFromShortString(string(c))
}

// ParseChainID 解析链 ID 名称（大小写不敏感）
func ParseChainID(name string) (ChainID, error) {
	switch ChainID(strings.ToUpper(strings.TrimSpace(name))) {
	case ChainSepolia:
		return ChainSepolia, nil
	case ChainMainnet:
		return ChainMainnet, nil
	default:
		return "", fmt.Errorf("%w: unknown chain id %q", ErrInvalidArgument, name)
	}
}

// Deployment 一个已部署的迷宫合约版本
type Deployment struct {
	Name            string // 版本名称
	ContractAddress Felt   // 合约地址
}

// DefaultDeployment 默认使用的合约版本
const DefaultDeployment = "walls"

// deploymentAddresses 合约版本常量表，进程内只读
var deploymentAddresses = map[string]string{
	// 支持墙体的当前版本（initialize_map / get_wall_positions）
	"walls": "0x2c5ecb4bd05fb50fc0da17a804a4e9fa22272796c4e942b5d45d5513ea3888e",
	// 早期仅含位置移动的版本
	"legacy": "0x4881106983c4e4fce51627cb3845995ea40ff68808bfb15dd1ad85915f05605",
}

// LookupDeployment 按名称查找合约版本
func LookupDeployment(name string) (Deployment, error) {
	addr, ok := deploymentAddresses[name]
	if !ok {
		return Deployment{}, fmt.Errorf("%w: unknown deployment %q (known: %s)",
			ErrInvalidArgument, name, strings.Join(DeploymentNames(), ", "))
	}
	return Deployment{Name: name, ContractAddress: MustParseFelt(addr)}, nil
}

// DeploymentNames 返回所有已知版本名称（有序）
func DeploymentNames() []string {
	names := make([]string, 0, len(deploymentAddresses))
	for name := range deploymentAddresses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
