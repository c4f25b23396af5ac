// Package log 定义服务内统一的日志接口
//
// 所有模块通过 fx 注入 Logger，而不是直接依赖 zap。
// 需要结构化字段时可经由 GetZapLogger 取得底层实现。
package log

import "go.uber.org/zap"

// Logger 定义日志记录器接口
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})

	Info(msg string)
	Infof(format string, args ...interface{})

	Warn(msg string)
	Warnf(format string, args ...interface{})

	Error(msg string)
	Errorf(format string, args ...interface{})

	// Fatal 记录日志后退出进程
	Fatal(msg string)
	Fatalf(format string, args ...interface{})

	// With 返回附加了键值对的 Logger
	With(args ...interface{}) Logger

	// Sync 刷新缓冲区
	Sync() error

	// GetZapLogger 获取原始的zap日志记录器
	GetZapLogger() *zap.Logger
}
