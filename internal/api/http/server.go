// Package http provides the gin based HTTP API server.
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/weisyn/mazegate/client/core/contract"
	"github.com/weisyn/mazegate/internal/api/http/handlers"
	"github.com/weisyn/mazegate/internal/api/http/middleware"
	apiconfig "github.com/weisyn/mazegate/internal/config/api"
	starknetconfig "github.com/weisyn/mazegate/internal/config/starknet"
	logimpl "github.com/weisyn/mazegate/internal/core/infrastructure/log"
	"github.com/weisyn/mazegate/pkg/interfaces/infrastructure/log"
)

// Deps 服务器依赖
type Deps struct {
	API      *apiconfig.APIOptions
	Starknet *starknetconfig.StarknetOptions
	Contract *contract.ContractService
	Logger   log.Logger

	// Registerer 与 Gatherer 均为空时不采集HTTP指标
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// Server HTTP服务器
// 负责路由装配、服务启动和停止
type Server struct {
	router     *gin.Engine  // Gin路由引擎
	handler    http.Handler // 外层包装（CORS）后的处理器
	httpServer *http.Server
	options    apiconfig.HTTPConfig
	logger     log.Logger

	mu   sync.Mutex
	addr string // 实际监听地址
}

// New 创建HTTP服务器并注册全部路由
func New(deps Deps) (*Server, error) {
	if deps.API == nil || deps.Starknet == nil || deps.Contract == nil {
		return nil, errors.New("http server: missing api, starknet options or contract service")
	}

	logger := logimpl.OrNop(deps.Logger)
	zl := logger.GetZapLogger()
	if zl == nil {
		zl = zap.NewNop()
	}

	s := &Server{
		router:  gin.New(),
		options: deps.API.HTTP,
		logger:  logger,
	}
	s.setupRoutes(deps, zl)

	s.handler = s.router
	if s.options.CORSEnabled {
		s.handler = cors.New(cors.Options{
			AllowedOrigins: s.options.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", middleware.HeaderRequestID},
			ExposedHeaders: []string{middleware.HeaderRequestID},
			MaxAge:         600,
		}).Handler(s.router)
	}

	return s, nil
}

// setupRoutes 设置中间件与所有API端点
func (s *Server) setupRoutes(deps Deps, zl *zap.Logger) {
	metricsEnabled := s.options.EnableMetrics && deps.Registerer != nil && deps.Gatherer != nil

	s.router.Use(
		middleware.NewRequestID().Middleware(),
		middleware.NewLogger(zl, handlers.PathMetrics).Middleware(),
	)
	if metricsEnabled {
		s.router.Use(middleware.NewMetrics(deps.Registerer).Middleware())
	}
	s.router.Use(
		middleware.NewRateLimit(zl, s.options.ReadRateLimit, s.options.WriteRateLimit, handlers.WritePaths()).Middleware(),
		middleware.ErrorHandler(zl),
		gin.Recovery(),
	)

	deployment := deps.Contract.Deployment()

	s.router.GET(handlers.PathIndex, handlers.Index)
	handlers.NewMazeHandlers(deps.Contract, deps.Starknet.Credentials(), zl).RegisterRoutes(s.router)
	handlers.NewHealthHandler(zl, deps.Contract, deps.Starknet.NodeURL, deps.Contract.Chain(), deployment).RegisterRoutes(s.router)

	if metricsEnabled {
		s.router.GET(handlers.PathMetrics, gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	s.logger.Infof("HTTP路由注册完成: deployment=%s metrics=%v cors=%v", deployment.Name, metricsEnabled, s.options.CORSEnabled)
}

// Handler 返回完整的HTTP处理器（含CORS包装）
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr 返回实际监听地址，未启动时为空
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Start 绑定端口并在后台提供服务
//
// 端口被占用时直接返回错误。
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.options.Address())
	if err != nil {
		return fmt.Errorf("监听 %s 失败: %w", s.options.Address(), err)
	}

	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.httpServer = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.options.ReadTimeout,
		WriteTimeout: s.options.WriteTimeout,
	}
	srv := s.httpServer
	s.mu.Unlock()

	go func() {
		// 正常关闭时返回 http.ErrServerClosed，不视为错误
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("HTTP服务器运行失败: %v", err)
		}
	}()

	s.logger.Infof("HTTP服务器启动成功，监听地址: http://%s/", s.Addr())
	return nil
}

// Stop 优雅关闭，等待进行中的请求完成
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	if s.options.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.ShutdownTimeout)
		defer cancel()
	}

	s.logger.Info("正在关闭HTTP服务器")
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Errorf("HTTP服务器关闭出错: %v", err)
		return err
	}
	s.logger.Info("HTTP服务器已关闭")
	return nil
}
