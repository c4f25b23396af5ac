package types

// AppConfig 应用配置文件结构
//
// 所有字段使用指针类型，以区分"用户未设置"(nil) 与"显式设置为零值"。
// 未设置的字段由 internal/config 下各模块的默认值补齐。
type AppConfig struct {
	API      *UserAPIConfig      `json:"api,omitempty"`      // HTTP API 配置
	Log      *UserLogConfig      `json:"log,omitempty"`      // 日志配置
	Starknet *UserStarknetConfig `json:"starknet,omitempty"` // 节点与账户配置
}

// UserAPIConfig 用户 HTTP API 配置
type UserAPIConfig struct {
	HTTPHost *string `json:"http_host,omitempty"` // 监听地址
	HTTPPort *int    `json:"http_port,omitempty"` // 监听端口

	HTTPCorsEnabled *bool    `json:"http_cors_enabled,omitempty"` // 是否启用CORS
	HTTPCorsOrigins []string `json:"http_cors_origins,omitempty"` // 允许的CORS源

	ReadRateLimit  *int `json:"read_rate_limit,omitempty"`  // 读接口每IP每秒请求数
	WriteRateLimit *int `json:"write_rate_limit,omitempty"` // 写接口每IP每秒请求数

	EnableMetrics *bool `json:"enable_metrics,omitempty"` // 是否暴露 /metrics
}

// UserLogConfig 用户日志配置
type UserLogConfig struct {
	Level    *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error, fatal
	FilePath *string `json:"file_path,omitempty"` // 日志文件路径
}

// UserStarknetConfig 用户节点与账户配置
type UserStarknetConfig struct {
	NodeURL        *string  `json:"node_url,omitempty"`        // 节点 JSON-RPC 地址
	SenderAddress  *string  `json:"sender_address,omitempty"`  // 发送方账户地址
	PrivateKey     *string  `json:"private_key,omitempty"`     // 私钥
	ChainID        *string  `json:"chain_id,omitempty"`        // 链 ID：SN_SEPOLIA | SN_MAIN
	Deployment     *string  `json:"deployment,omitempty"`      // 合约版本名称
	RequestTimeout *string  `json:"request_timeout,omitempty"` // 单次节点请求超时，如 "15s"
	FeeMultiplier  *float64 `json:"fee_multiplier,omitempty"`  // 费用估算放大倍数，如 1.1
}

// BoolPtr 返回布尔值指针
func BoolPtr(v bool) *bool {
	return &v
}

// IntPtr 返回整数指针
func IntPtr(v int) *int {
	return &v
}

// Float64Ptr 返回浮点数指针
func Float64Ptr(v float64) *float64 {
	return &v
}

// StringPtr 返回字符串指针
func StringPtr(v string) *string {
	return &v
}
