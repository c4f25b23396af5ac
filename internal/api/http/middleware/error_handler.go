package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apitypes "github.com/weisyn/mazegate/internal/api/types"
)

// ErrorHandler 错误处理中间件
//
// 处理器通过 c.Error 上报错误且尚未写响应时，统一转换为 Problem Details 输出。
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		problem := apitypes.FromError(err, c.Request.URL.Path)

		fields := []zap.Field{
			zap.String("code", problem.Code),
			zap.String("traceId", problem.TraceID),
			zap.String("request_id", GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		}
		if problem.Status >= 500 {
			logger.Error("HTTP error", fields...)
		} else {
			logger.Warn("HTTP error", fields...)
		}

		problem.WriteJSON(c.Writer)
		c.Abort()
	}
}
