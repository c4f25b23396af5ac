package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/weisyn/mazegate/pkg/types"
)

// 节点常见错误码（Starknet JSON-RPC 规范）
const (
	CodeContractNotFound     = 20
	CodeEntrypointNotFound   = 21
	CodeContractError        = 40
	CodeTransactionExecution = 41
	CodeInvalidTxnNonce      = 52
	CodeInsufficientMaxFee   = 53
	CodeInsufficientBalance  = 54
	CodeValidationFailure    = 55
)

// RPCError 节点返回的 JSON-RPC 错误
// 传输层面的失败（连接、超时、HTTP 状态码）不会产生 RPCError，而是包装 types.ErrNetwork
type RPCError struct {
	Method  string
	Code    int
	Message string
	Data    string
}

// Error 实现 error 接口
func (e *RPCError) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("%s: rpc error %d: %s: %s", e.Method, e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("%s: rpc error %d: %s", e.Method, e.Code, e.Message)
}

// Reason 返回面向用户的原因描述（message + data）
func (e *RPCError) Reason() string {
	if e.Data != "" {
		return e.Message + ": " + e.Data
	}
	return e.Message
}

// AsRPCError 提取节点级错误
func AsRPCError(err error) (*RPCError, bool) {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr, true
	}
	return nil, false
}

// classifyError 将 go-ethereum rpc 返回的错误归类
//
// 节点级错误 → *RPCError；其他一律包装 types.ErrNetwork，并保留原始错误供 errors.Is 判断超时。
func classifyError(method string, err error) error {
	if err == nil {
		return nil
	}

	var codeErr rpc.Error
	if errors.As(err, &codeErr) {
		rpcErr := &RPCError{
			Method:  method,
			Code:    codeErr.ErrorCode(),
			Message: codeErr.Error(),
		}
		var dataErr rpc.DataError
		if errors.As(err, &dataErr) {
			rpcErr.Data = formatErrorData(dataErr.ErrorData())
		}
		return rpcErr
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %w", types.ErrNetwork, method, err)
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Errorf("%w: %s: node answered HTTP %d", types.ErrNetwork, method, httpErr.StatusCode)
	}

	return fmt.Errorf("%w: %s: %v", types.ErrNetwork, method, err)
}

// formatErrorData 将错误附带数据转成单行字符串
func formatErrorData(data interface{}) string {
	switch v := data.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}
