package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weisyn/mazegate/configs"
	"github.com/weisyn/mazegate/internal/app"
	"github.com/weisyn/mazegate/internal/app/version"
	"github.com/weisyn/mazegate/internal/config/starknet"
	"github.com/weisyn/mazegate/pkg/types"
)

// lookupEnvFunc 读取环境变量，测试中可替换
type lookupEnvFunc func(key string) (string, bool)

// rootFlags 命令行标志
type rootFlags struct {
	ConfigFile string

	NodeURL       string
	SenderAddress string
	PrivateKey    string

	Host string
	Port int

	Deployment     string
	Chain          string
	RequestTimeout string
	FeeMultiplier  float64

	LogLevel string
	LogFile  string
}

// newRootCommand 创建根命令，同时返回绑定的标志
func newRootCommand(lookupEnv lookupEnvFunc) (*cobra.Command, *rootFlags) {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "mazegate",
		Short: "Starknet 迷宫合约 HTTP 网关",
		Long: `mazegate - 在 Starknet 迷宫合约上移动玩家的 HTTP 服务

每个写接口签名并提交一笔 INVOKE 交易，读接口直接查询合约状态。

必需参数（命令行优先于环境变量）:
  --url, -u              节点 JSON-RPC 地址     (URL)
  --sender-address, -s   账户地址               (SENDER_ADDRESS)
  --private-key, -p      账户私钥               (PRIVATE_KEY)`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(buildAppOptions(cmd, flags, lookupEnv))
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&flags.ConfigFile, "config", "c", "", "JSON 配置文件路径")
	fs.StringVarP(&flags.NodeURL, "url", "u", "", "节点 JSON-RPC 地址")
	fs.StringVarP(&flags.SenderAddress, "sender-address", "s", "", "发送方账户地址（0x 十六进制）")
	fs.StringVarP(&flags.PrivateKey, "private-key", "p", "", "账户私钥（0x 十六进制）")
	fs.StringVar(&flags.Host, "host", "", "HTTP 监听地址 (默认 127.0.0.1)")
	fs.IntVar(&flags.Port, "port", 0, "HTTP 监听端口 (默认 4000)")
	fs.StringVar(&flags.Deployment, "deployment", "", "合约版本: walls|legacy (默认 walls)")
	fs.StringVar(&flags.Chain, "chain", "", "链 ID: SN_SEPOLIA|SN_MAIN (默认 SN_SEPOLIA)")
	fs.StringVar(&flags.RequestTimeout, "request-timeout", "", "单次节点请求超时，如 15s")
	fs.Float64Var(&flags.FeeMultiplier, "fee-multiplier", 0, "估算手续费放大倍数 (默认 1.1)")
	fs.StringVar(&flags.LogLevel, "log-level", "", "日志级别: debug|info|warn|error")
	fs.StringVar(&flags.LogFile, "log-file", "", "日志文件路径（设置后不再输出到控制台）")

	cmd.AddCommand(newExampleConfigCommand())

	return cmd, flags
}

// newExampleConfigCommand 输出示例 JSON 配置，可作为 --config 的起点
func newExampleConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example-config",
		Short: "打印示例 JSON 配置",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(configs.GetExampleConfig())
			return err
		},
	}
}

// buildAppOptions 按 命令行 > 环境变量 > 配置文件 > 默认值 组装应用选项
func buildAppOptions(cmd *cobra.Command, flags *rootFlags, lookupEnv lookupEnvFunc) []app.Option {
	var opts []app.Option
	if flags.ConfigFile != "" {
		opts = append(opts, app.WithConfigFile(flags.ConfigFile))
	}
	return append(opts,
		app.WithUserConfig(userConfigFromEnv(lookupEnv)),
		app.WithUserConfig(userConfigFromFlags(cmd, flags)),
	)
}

// userConfigFromEnv 读取凭据相关环境变量，空值视为未设置
func userConfigFromEnv(lookupEnv lookupEnvFunc) *types.AppConfig {
	if lookupEnv == nil {
		return nil
	}

	sn := &types.UserStarknetConfig{}
	if v, ok := lookupEnv(starknet.EnvNodeURL); ok && v != "" {
		sn.NodeURL = types.StringPtr(v)
	}
	if v, ok := lookupEnv(starknet.EnvSenderAddress); ok && v != "" {
		sn.SenderAddress = types.StringPtr(v)
	}
	if v, ok := lookupEnv(starknet.EnvPrivateKey); ok && v != "" {
		sn.PrivateKey = types.StringPtr(v)
	}
	return &types.AppConfig{Starknet: sn}
}

// userConfigFromFlags 只收集显式给出的标志
func userConfigFromFlags(cmd *cobra.Command, flags *rootFlags) *types.AppConfig {
	changed := cmd.Flags().Changed
	cfg := &types.AppConfig{
		API:      &types.UserAPIConfig{},
		Log:      &types.UserLogConfig{},
		Starknet: &types.UserStarknetConfig{},
	}

	if changed("url") {
		cfg.Starknet.NodeURL = types.StringPtr(flags.NodeURL)
	}
	if changed("sender-address") {
		cfg.Starknet.SenderAddress = types.StringPtr(flags.SenderAddress)
	}
	if changed("private-key") {
		cfg.Starknet.PrivateKey = types.StringPtr(flags.PrivateKey)
	}
	if changed("deployment") {
		cfg.Starknet.Deployment = types.StringPtr(flags.Deployment)
	}
	if changed("chain") {
		cfg.Starknet.ChainID = types.StringPtr(flags.Chain)
	}
	if changed("request-timeout") {
		cfg.Starknet.RequestTimeout = types.StringPtr(flags.RequestTimeout)
	}
	if changed("fee-multiplier") {
		cfg.Starknet.FeeMultiplier = types.Float64Ptr(flags.FeeMultiplier)
	}
	if changed("host") {
		cfg.API.HTTPHost = types.StringPtr(flags.Host)
	}
	if changed("port") {
		cfg.API.HTTPPort = types.IntPtr(flags.Port)
	}
	if changed("log-level") {
		cfg.Log.Level = types.StringPtr(flags.LogLevel)
	}
	if changed("log-file") {
		cfg.Log.FilePath = types.StringPtr(flags.LogFile)
	}
	return cfg
}

// run 启动应用并阻塞到收到退出信号
func run(opts []app.Option) error {
	application, err := app.Start(opts...)
	if err != nil {
		return err
	}
	if err := application.Wait(); err != nil {
		return fmt.Errorf("停止服务: %w", err)
	}
	return nil
}
