// Package handlers provides the HTTP handlers of the maze gateway.
package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/weisyn/mazegate/pkg/types"
)

// 路由路径
const (
	PathIndex              = "/"
	PathInitializePosition = "/initialize_position"
	PathInitializeMap      = "/initialize_map"
	PathMoveForward        = "/move_forward"
	PathMoveDown           = "/move_down"
	PathMoveLeft           = "/move_left"
	PathMoveRight          = "/move_right"
	PathTeleportTo         = "/teleport_to"
	PathGetPosition        = "/get_position"
	PathGetWallPositions   = "/get_wall_positions"
	PathHealth             = "/health"
	PathMetrics            = "/metrics"
)

// 合约方法名
const (
	MethodInitializePosition = "initialize_position"
	MethodInitializeMap      = "initialize_map"
	MethodUpdatePosition     = "update_position"
	MethodTeleport           = "teleport"
	MethodGetPosition        = "get_position"
	MethodGetWallPositions   = "get_wall_positions"
)

// WritePaths 会签名并提交交易的路由
func WritePaths() []string {
	return []string{
		PathInitializePosition,
		PathInitializeMap,
		PathMoveForward,
		PathMoveDown,
		PathMoveLeft,
		PathMoveRight,
		PathTeleportTo,
	}
}

// requiredInt64Query 读取必填的有符号整数查询参数
func requiredInt64Query(c *gin.Context, name string) (int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: missing query parameter %q", types.ErrInvalidArgument, name)
	}
	return parseInt64(name, raw)
}

// coordsQuery 读取 coords[]（兼容 coords）参数列表
func coordsQuery(c *gin.Context) ([]int64, error) {
	raw := c.QueryArray("coords[]")
	if len(raw) == 0 {
		raw = c.QueryArray("coords")
	}

	values := make([]int64, len(raw))
	for i, s := range raw {
		v, err := parseInt64(fmt.Sprintf("coords[%d]", i), s)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("%w: coords must contain an even number of values, got %d", types.ErrInvalidArgument, len(values))
	}
	return values, nil
}

func parseInt64(name, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a signed 64-bit integer", types.ErrInvalidArgument, name, raw)
	}
	return v, nil
}
