package api

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/weisyn/mazegate/pkg/types"
)

// APIOptions API服务配置选项
type APIOptions struct {
	HTTP HTTPConfig `json:"http"`
}

// HTTPConfig HTTP API配置
type HTTPConfig struct {
	Host string `json:"host"` // 监听地址
	Port int    `json:"port"` // 监听端口

	ReadTimeout     time.Duration `json:"read_timeout"`     // 读取超时时间
	WriteTimeout    time.Duration `json:"write_timeout"`    // 写入超时时间
	ShutdownTimeout time.Duration `json:"shutdown_timeout"` // 优雅关闭超时

	CORSEnabled bool     `json:"cors_enabled"` // 是否启用CORS
	CORSOrigins []string `json:"cors_origins"` // 允许的CORS源

	// 限流：每IP每秒请求数，写接口单独限流
	ReadRateLimit  int `json:"read_rate_limit"`
	WriteRateLimit int `json:"write_rate_limit"`

	EnableMetrics bool `json:"enable_metrics"` // 是否暴露 /metrics
}

// Address 返回 host:port 监听地址
func (h HTTPConfig) Address() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// Validate 校验端口与限流参数
func (h HTTPConfig) Validate() error {
	if h.Port <= 0 || h.Port > 65535 {
		return fmt.Errorf("无效的HTTP端口: %d", h.Port)
	}
	if h.ReadRateLimit <= 0 || h.WriteRateLimit <= 0 {
		return fmt.Errorf("限流参数必须为正数: read=%d write=%d", h.ReadRateLimit, h.WriteRateLimit)
	}
	return nil
}

// Config API配置实现
type Config struct {
	options *APIOptions
}

// New 创建API配置实现
func New(userConfig *types.UserAPIConfig) *Config {
	// 1. 先创建完整的默认配置
	defaultOptions := createDefaultAPIOptions()

	// 2. 如果有用户配置，则转换并覆盖默认配置
	if userConfig != nil {
		convertAndMergeUserConfig(defaultOptions, userConfig)
	}

	return &Config{
		options: defaultOptions,
	}
}

// createDefaultAPIOptions 创建默认API配置
func createDefaultAPIOptions() *APIOptions {
	return &APIOptions{
		HTTP: HTTPConfig{
			Host:            defaultHTTPHost,
			Port:            defaultHTTPPort,
			ReadTimeout:     defaultHTTPReadTimeout,
			WriteTimeout:    defaultHTTPWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
			CORSEnabled:     defaultCORSEnabled,
			CORSOrigins:     append([]string{}, defaultCORSOrigins...),
			ReadRateLimit:   defaultReadRateLimit,
			WriteRateLimit:  defaultWriteRateLimit,
			EnableMetrics:   defaultEnableMetrics,
		},
	}
}

// convertAndMergeUserConfig 将用户配置合并到默认配置中
// nil 表示"未设置"，保持默认值
func convertAndMergeUserConfig(defaultOpts *APIOptions, userConfig *types.UserAPIConfig) {
	if userConfig.HTTPHost != nil && *userConfig.HTTPHost != "" {
		defaultOpts.HTTP.Host = *userConfig.HTTPHost
	}
	if userConfig.HTTPPort != nil {
		defaultOpts.HTTP.Port = *userConfig.HTTPPort
	}
	if userConfig.HTTPCorsEnabled != nil {
		defaultOpts.HTTP.CORSEnabled = *userConfig.HTTPCorsEnabled
	}
	if len(userConfig.HTTPCorsOrigins) > 0 {
		defaultOpts.HTTP.CORSOrigins = append([]string{}, userConfig.HTTPCorsOrigins...)
	}
	if userConfig.ReadRateLimit != nil {
		defaultOpts.HTTP.ReadRateLimit = *userConfig.ReadRateLimit
	}
	if userConfig.WriteRateLimit != nil {
		defaultOpts.HTTP.WriteRateLimit = *userConfig.WriteRateLimit
	}
	if userConfig.EnableMetrics != nil {
		defaultOpts.HTTP.EnableMetrics = *userConfig.EnableMetrics
	}
}

// GetOptions 获取完整的API配置选项
func (c *Config) GetOptions() *APIOptions {
	return c.options
}
