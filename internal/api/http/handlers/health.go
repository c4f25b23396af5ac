package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httptypes "github.com/weisyn/mazegate/internal/api/http/types"
	"github.com/weisyn/mazegate/pkg/types"
)

// ChainChecker 读取节点链ID并与配置比对
type ChainChecker interface {
	ChainID(ctx context.Context, nodeURL string) (types.Felt, error)
}

// HealthHandler 健康检查端点处理器
//
// - /health: 访问节点并核对链ID
// - /health/live: 存活检查（进程是否响应，不访问节点）
type HealthHandler struct {
	logger     *zap.Logger
	startTime  time.Time
	checker    ChainChecker
	nodeURL    string
	chain      types.ChainID
	deployment types.Deployment
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(logger *zap.Logger, checker ChainChecker, nodeURL string, chain types.ChainID, deployment types.Deployment) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{
		logger:     logger,
		startTime:  time.Now(),
		checker:    checker,
		nodeURL:    nodeURL,
		chain:      chain,
		deployment: deployment,
	}
}

// RegisterRoutes 注册健康检查路由
func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET(PathHealth, h.GetHealth)
	r.GET(PathHealth+"/live", h.GetLiveness)
}

// GetHealth 获取健康状态
//
// GET /health
// 节点可达且链ID与配置一致时返回 200，否则返回 503。
func (h *HealthHandler) GetHealth(c *gin.Context) {
	resp := h.baseResponse()

	chainID, err := h.checker.ChainID(c.Request.Context(), h.nodeURL)
	if !chainID.IsZero() {
		resp.ChainID = chainID.String()
	}
	if err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Error = err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	resp.Status = "healthy"
	c.JSON(http.StatusOK, resp)
}

// GetLiveness 存活检查
//
// GET /health/live
func (h *HealthHandler) GetLiveness(c *gin.Context) {
	resp := h.baseResponse()
	resp.Status = "alive"
	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) baseResponse() httptypes.HealthResponse {
	return httptypes.HealthResponse{
		Chain:      string(h.chain),
		Deployment: h.deployment.Name,
		Contract:   h.deployment.ContractAddress.String(),
		Uptime:     time.Since(h.startTime).Truncate(time.Second).String(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}
