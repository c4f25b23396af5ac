package types

import (
	"errors"
	"fmt"
)

// 错误分类
//
// 所有对外错误都通过 fmt.Errorf("...: %w", ErrXxx) 包装，
// 调用方使用 errors.Is / errors.As 判断类别。
var (
	// ErrInvalidCredentialFormat 十六进制标量格式错误或超出字段范围
	ErrInvalidCredentialFormat = errors.New("invalid credential format")

	// ErrNetwork 与节点通信失败（传输错误、超时、节点级拒绝查询）
	ErrNetwork = errors.New("network error")

	// ErrAccountNotFound 发送方地址在链上没有账户合约
	ErrAccountNotFound = errors.New("account not found")

	// ErrSubmissionRejected 节点拒绝交易
	ErrSubmissionRejected = errors.New("submission rejected")

	// ErrMalformedResponse 查询结果长度不满足最小要求
	ErrMalformedResponse = errors.New("malformed response")

	// ErrInvalidArgument 调用方参数不合法（HTTP 查询参数校验）
	ErrInvalidArgument = errors.New("invalid argument")
)

// SubmissionRejectedError 节点拒绝交易的详细原因
type SubmissionRejectedError struct {
	Code   int    // 节点返回的 JSON-RPC 错误码
	Reason string // 节点返回的错误信息（含 data）
}

// Error 实现 error 接口
func (e *SubmissionRejectedError) Error() string {
	return fmt.Sprintf("submission rejected (code %d): %s", e.Code, e.Reason)
}

// Is 使 errors.Is(err, ErrSubmissionRejected) 成立
func (e *SubmissionRejectedError) Is(target error) bool {
	return target == ErrSubmissionRejected
}
