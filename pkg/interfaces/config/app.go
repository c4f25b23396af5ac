// Package config provides application configuration interfaces.
package config

import "github.com/weisyn/mazegate/pkg/types"

// AppOptions 应用配置选项接口
type AppOptions interface {
	// GetAppConfig 获取合并前的用户配置
	GetAppConfig() *types.AppConfig
}
