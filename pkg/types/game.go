package types

// Position 玩家或墙体坐标
type Position struct {
	X Felt `json:"x"`
	Y Felt `json:"y"`
}

// Pair 以 [x, y] 数组形式返回坐标（墙体列表的序列化格式）
func (p Position) Pair() [2]Felt {
	return [2]Felt{p.X, p.Y}
}

// 单步移动的坐标增量
var (
	MoveForward = [2]int64{0, 1}
	MoveDown    = [2]int64{0, -1}
	MoveLeft    = [2]int64{-1, 0}
	MoveRight   = [2]int64{1, 0}
)
