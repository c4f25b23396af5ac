package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/weisyn/mazegate/client/core/contract"
	httptypes "github.com/weisyn/mazegate/internal/api/http/types"
	"github.com/weisyn/mazegate/internal/api/types"
	pkgtypes "github.com/weisyn/mazegate/pkg/types"
)

// ContractClient 处理器依赖的合约客户端
type ContractClient interface {
	Invoke(ctx context.Context, method string, calldata []pkgtypes.Felt, creds pkgtypes.Credentials) (*contract.InvokeResult, error)
	QueryPosition(ctx context.Context, method string, nodeURL string) (pkgtypes.Position, error)
	QueryWalls(ctx context.Context, method string, nodeURL string) ([]pkgtypes.Position, error)
}

// 确保ContractService满足处理器依赖
var _ ContractClient = (*contract.ContractService)(nil)

// MazeHandlers 迷宫游戏接口处理器
//
// 写接口始终以 {"message"} 应答，失败时 message 为 "Error: <原因>"；
// 读接口失败时通过 c.Error 交给错误中间件输出 Problem Details。
type MazeHandlers struct {
	client ContractClient
	creds  pkgtypes.Credentials
	logger *zap.Logger
}

// NewMazeHandlers 创建处理器
func NewMazeHandlers(client ContractClient, creds pkgtypes.Credentials, logger *zap.Logger) *MazeHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MazeHandlers{client: client, creds: creds, logger: logger}
}

// RegisterRoutes 注册游戏路由
func (h *MazeHandlers) RegisterRoutes(r gin.IRouter) {
	r.GET(PathInitializePosition, h.InitializePosition)
	r.GET(PathInitializeMap, h.InitializeMap)
	r.GET(PathMoveForward, h.move(pkgtypes.MoveForward))
	r.GET(PathMoveDown, h.move(pkgtypes.MoveDown))
	r.GET(PathMoveLeft, h.move(pkgtypes.MoveLeft))
	r.GET(PathMoveRight, h.move(pkgtypes.MoveRight))
	r.GET(PathTeleportTo, h.TeleportTo)
	r.GET(PathGetPosition, h.GetPosition)
	r.GET(PathGetWallPositions, h.GetWallPositions)
}

// ========== 写接口 ==========

// InitializePosition 重置玩家位置
//
// GET /initialize_position
func (h *MazeHandlers) InitializePosition(c *gin.Context) {
	h.invoke(c, MethodInitializePosition, nil)
}

// InitializeMap 写入墙体坐标
//
// GET /initialize_map?coords[]=x1&coords[]=y1...
// 坐标个数必须为偶数，校验失败时不访问节点。
func (h *MazeHandlers) InitializeMap(c *gin.Context) {
	coords, err := coordsQuery(c)
	if err != nil {
		h.writeFailure(c, MethodInitializeMap, err)
		return
	}
	h.invoke(c, MethodInitializeMap, pkgtypes.FeltsFromInt64s(coords))
}

// move 单步移动
//
// GET /move_forward | /move_down | /move_left | /move_right
func (h *MazeHandlers) move(delta [2]int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.invoke(c, MethodUpdatePosition, pkgtypes.FeltsFromInt64s(delta[:]))
	}
}

// TeleportTo 传送到指定坐标
//
// GET /teleport_to?x=&y=
func (h *MazeHandlers) TeleportTo(c *gin.Context) {
	x, err := requiredInt64Query(c, "x")
	if err != nil {
		h.writeFailure(c, MethodTeleport, err)
		return
	}
	y, err := requiredInt64Query(c, "y")
	if err != nil {
		h.writeFailure(c, MethodTeleport, err)
		return
	}
	h.invoke(c, MethodTeleport, pkgtypes.FeltsFromInt64s([]int64{x, y}))
}

func (h *MazeHandlers) invoke(c *gin.Context, method string, calldata []pkgtypes.Felt) {
	result, err := h.client.Invoke(c.Request.Context(), method, calldata, h.creds)
	if err != nil {
		h.writeFailure(c, method, err)
		return
	}

	h.logger.Info("transaction submitted",
		zap.String("method", method),
		zap.String("transaction_hash", result.TransactionHash.String()),
		zap.String("nonce", result.Nonce.String()))

	c.JSON(http.StatusOK, httptypes.MessageResponse{
		Message:         result.Message,
		TransactionHash: result.TransactionHash.String(),
	})
}

func (h *MazeHandlers) writeFailure(c *gin.Context, method string, err error) {
	status := types.StatusFor(err)
	h.logger.Warn("contract invocation failed",
		zap.String("method", method),
		zap.Int("status", status),
		zap.Error(err))
	_ = c.Error(err)
	c.JSON(status, httptypes.MessageResponse{Message: contract.FailureMessage(err)})
}

// ========== 读接口 ==========

// GetPosition 查询玩家坐标
//
// GET /get_position
func (h *MazeHandlers) GetPosition(c *gin.Context) {
	pos, err := h.client.QueryPosition(c.Request.Context(), MethodGetPosition, h.creds.NodeURL)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httptypes.NewPositionResponse(pos))
}

// GetWallPositions 查询墙体坐标
//
// GET /get_wall_positions
func (h *MazeHandlers) GetWallPositions(c *gin.Context) {
	walls, err := h.client.QueryWalls(c.Request.Context(), MethodGetWallPositions, h.creds.NodeURL)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httptypes.NewWallsResponse(walls))
}
