// Package configs 嵌入示例配置文件
package configs

import _ "embed"

// 凭据（sender_address、private_key）不写入示例，通过命令行或环境变量提供
//
//go:embed example.json
var exampleConfig []byte

// GetExampleConfig 获取示例配置
func GetExampleConfig() []byte {
	return exampleConfig
}
