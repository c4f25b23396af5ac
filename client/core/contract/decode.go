package contract

import (
	"fmt"

	"github.com/weisyn/mazegate/pkg/types"
)

// DecodePosition 取查询结果的前两个元素作为 (x, y)
func DecodePosition(values []types.Felt) (types.Position, error) {
	if len(values) < 2 {
		return types.Position{}, fmt.Errorf("%w: position needs 2 values, got %d", types.ErrMalformedResponse, len(values))
	}
	return types.Position{X: values[0], Y: values[1]}, nil
}

// DecodeWalls 解码墙体列表
//
// 首元素是合约写入的计数前缀，直接丢弃；其余元素两两配对，末尾落单的元素忽略。
func DecodeWalls(values []types.Felt) ([]types.Position, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: wall list is empty, missing count prefix", types.ErrMalformedResponse)
	}

	body := values[1:]
	walls := make([]types.Position, 0, len(body)/2)
	for i := 0; i+1 < len(body); i += 2 {
		walls = append(walls, types.Position{X: body[i], Y: body[i+1]})
	}
	return walls, nil
}
