// Package types provides HTTP response type definitions.
package types

import "github.com/weisyn/mazegate/pkg/types"

// MessageResponse 写接口响应
type MessageResponse struct {
	Message         string `json:"message"`
	TransactionHash string `json:"transaction_hash,omitempty"`
}

// PositionResponse 坐标查询响应
type PositionResponse struct {
	X types.Felt `json:"x"`
	Y types.Felt `json:"y"`
}

// NewPositionResponse 由领域坐标构造响应
func NewPositionResponse(p types.Position) *PositionResponse {
	return &PositionResponse{X: p.X, Y: p.Y}
}

// WallsResponse 墙体查询响应，每面墙序列化为 [x, y]
type WallsResponse struct {
	Walls [][2]types.Felt `json:"walls"`
}

// NewWallsResponse 由领域墙体列表构造响应；空列表序列化为 []
func NewWallsResponse(walls []types.Position) *WallsResponse {
	pairs := make([][2]types.Felt, len(walls))
	for i, w := range walls {
		pairs[i] = w.Pair()
	}
	return &WallsResponse{Walls: pairs}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status     string `json:"status"` // healthy, unhealthy
	ChainID    string `json:"chain_id,omitempty"`
	Chain      string `json:"chain"`
	Deployment string `json:"deployment"`
	Contract   string `json:"contract"`
	Uptime     string `json:"uptime"`
	Timestamp  string `json:"timestamp"`
	Error      string `json:"error,omitempty"`
}
