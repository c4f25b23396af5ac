// Package types defines the Problem Details error body shared by the HTTP API.
package types

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/weisyn/mazegate/pkg/types"
)

// ProblemDetails 错误响应体（基于 RFC7807 + 扩展字段）
type ProblemDetails struct {
	// RFC7807 标准字段
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   int    `json:"status,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// 扩展字段
	Code        string                 `json:"code"`
	Layer       string                 `json:"layer"`
	UserMessage string                 `json:"userMessage"`
	Details     map[string]interface{} `json:"details,omitempty"`
	TraceID     string                 `json:"traceId"`
	Timestamp   string                 `json:"timestamp"`
}

// Error 实现 error 接口
func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.UserMessage
}

// WriteJSON 将 Problem Details 写入 HTTP 响应
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// NewProblemDetails 创建新的 Problem Details
func NewProblemDetails(
	code string,
	layer string,
	userMessage string,
	detail string,
	status int,
	details map[string]interface{},
) *ProblemDetails {
	if details == nil {
		details = make(map[string]interface{})
	}

	return &ProblemDetails{
		Title:       http.StatusText(status),
		Code:        code,
		Layer:       layer,
		UserMessage: userMessage,
		Detail:      detail,
		Status:      status,
		Details:     details,
		TraceID:     uuid.New().String(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// IsProblemDetails 检查错误是否为 Problem Details
func IsProblemDetails(err error) (*ProblemDetails, bool) {
	var pd *ProblemDetails
	if errors.As(err, &pd) {
		return pd, true
	}
	return nil, false
}

// 错误码常量
const (
	CodeInvalidArgument     = "COMMON_VALIDATION_ERROR"
	CodeInternalError       = "COMMON_INTERNAL_ERROR"
	CodeTimeout             = "COMMON_TIMEOUT"
	CodeRateLimited         = "COMMON_RATE_LIMITED"
	CodeNodeUnavailable     = "NODE_UNAVAILABLE"
	CodeMalformedResponse   = "NODE_MALFORMED_RESPONSE"
	CodeAccountNotFound     = "ACCOUNT_NOT_FOUND"
	CodeSubmissionRejected  = "TX_SUBMISSION_REJECTED"
	CodeInvalidCredentials  = "SERVER_INVALID_CREDENTIALS"
)

// Layer 常量
const (
	LayerGateway = "gateway"
	LayerNode    = "starknet-node"
)

// StatusFor 按错误类别映射 HTTP 状态码
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, types.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrInvalidCredentialFormat):
		return http.StatusInternalServerError
	case errors.Is(err, types.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrSubmissionRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrMalformedResponse), errors.Is(err, types.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// codeFor 按错误类别选择错误码与所在层
func codeFor(err error) (code, layer, userMessage string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout, LayerNode, "节点响应超时，请稍后重试。"
	case errors.Is(err, types.ErrInvalidArgument):
		return CodeInvalidArgument, LayerGateway, "请求参数不合法。"
	case errors.Is(err, types.ErrInvalidCredentialFormat):
		return CodeInvalidCredentials, LayerGateway, "服务端账户配置有误，请联系管理员。"
	case errors.Is(err, types.ErrAccountNotFound):
		return CodeAccountNotFound, LayerNode, "发送方账户在链上不存在。"
	case errors.Is(err, types.ErrSubmissionRejected):
		return CodeSubmissionRejected, LayerNode, "节点拒绝了该交易。"
	case errors.Is(err, types.ErrMalformedResponse):
		return CodeMalformedResponse, LayerNode, "合约返回的数据格式不符合预期。"
	case errors.Is(err, types.ErrNetwork):
		return CodeNodeUnavailable, LayerNode, "无法访问区块链节点，请稍后重试。"
	default:
		return CodeInternalError, LayerGateway, "服务器内部错误，请稍后重试或联系管理员。"
	}
}

// FromError 将领域错误转换为 Problem Details
func FromError(err error, instance string) *ProblemDetails {
	if pd, ok := IsProblemDetails(err); ok {
		return pd
	}

	code, layer, userMessage := codeFor(err)
	problem := NewProblemDetails(code, layer, userMessage, err.Error(), StatusFor(err), nil)
	problem.Instance = instance
	return problem
}
