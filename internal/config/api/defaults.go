package api

import "time"

// API服务默认配置值
const (
	// defaultHTTPHost 默认只监听本机回环地址
	defaultHTTPHost = "127.0.0.1"

	// defaultHTTPPort 默认端口
	defaultHTTPPort = 4000

	// defaultHTTPReadTimeout 读取请求超时
	defaultHTTPReadTimeout = 15 * time.Second

	// defaultHTTPWriteTimeout 写入响应超时，须大于写操作总时限（3 × 默认 request_timeout = 45s）
	defaultHTTPWriteTimeout = 60 * time.Second

	// defaultShutdownTimeout 优雅关闭等待时间
	defaultShutdownTimeout = 10 * time.Second

	// defaultCORSEnabled 演示页面可能由其他源加载
	defaultCORSEnabled = true

	// defaultReadRateLimit 只读接口每IP每秒请求数
	defaultReadRateLimit = 20

	// defaultWriteRateLimit 写接口每IP每秒请求数，每次调用都消耗手续费
	defaultWriteRateLimit = 2

	// defaultEnableMetrics 默认暴露 /metrics
	defaultEnableMetrics = true
)

// defaultCORSOrigins 默认允许所有源
var defaultCORSOrigins = []string{"*"}
