// Package api assembles the externally visible API surfaces.
package api

import (
	"go.uber.org/fx"

	"github.com/weisyn/mazegate/internal/api/http"
)

// Module 返回API模块选项
func Module() fx.Option {
	return fx.Module("api",
		http.Module(),

		// 显式依赖服务器实例，确保其生命周期钩子被注册
		fx.Invoke(func(*http.Server) {}),
	)
}
