package types

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/mazegate/pkg/types"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"无错误", nil, http.StatusOK},
		{"参数错误", fmt.Errorf("coords: %w", types.ErrInvalidArgument), http.StatusBadRequest},
		{"凭据错误", types.ErrInvalidCredentialFormat, http.StatusInternalServerError},
		{"账户不存在", types.ErrAccountNotFound, http.StatusNotFound},
		{"交易被拒", &types.SubmissionRejectedError{Code: 41, Reason: "reverted"}, http.StatusUnprocessableEntity},
		{"结果格式错误", types.ErrMalformedResponse, http.StatusBadGateway},
		{"网络错误", types.ErrNetwork, http.StatusBadGateway},
		{"超时优先于网络错误", fmt.Errorf("%w: starknet_call: %w", types.ErrNetwork, context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"未知错误", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestFromError(t *testing.T) {
	problem := FromError(fmt.Errorf("get_position: %w", types.ErrMalformedResponse), "/get_position")
	assert.Equal(t, http.StatusBadGateway, problem.Status)
	assert.Equal(t, CodeMalformedResponse, problem.Code)
	assert.Equal(t, LayerNode, problem.Layer)
	assert.Equal(t, "/get_position", problem.Instance)
	assert.NotEmpty(t, problem.TraceID)

	// 已是 Problem Details 的原样返回
	assert.Same(t, problem, FromError(problem, "/other"))
}

func TestProblemDetails_WriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	NewProblemDetails(CodeRateLimited, LayerGateway, "请求过于频繁。", "", http.StatusTooManyRequests, nil).WriteJSON(rec)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"code":"COMMON_RATE_LIMITED"`)
}
