package middleware

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apitypes "github.com/weisyn/mazegate/internal/api/types"
)

// MinBurst 令牌桶最小容量，允许短时间内连续点击若干次
const MinBurst = 5

// RateLimit 按客户端IP限流
// - 读操作宽松限流
// - 写操作（会签名并支付手续费）严格限流
type RateLimit struct {
	logger     *zap.Logger
	writePaths map[string]struct{}
	readLimit  int // 读操作每秒请求数
	writeLimit int // 写操作每秒请求数

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRateLimit 创建限流中间件；limit <= 0 表示不限流
func NewRateLimit(logger *zap.Logger, readLimit, writeLimit int, writePaths []string) *RateLimit {
	paths := make(map[string]struct{}, len(writePaths))
	for _, p := range writePaths {
		paths[p] = struct{}{}
	}
	return &RateLimit{
		logger:     logger,
		writePaths: paths,
		readLimit:  readLimit,
		writeLimit: writeLimit,
		limiters:   make(map[string]*rate.Limiter),
	}
}

// Middleware 返回Gin中间件
func (m *RateLimit) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isWrite := m.isWriteOperation(c.Request.URL.Path)

		limit := m.readLimit
		class := "read"
		if isWrite {
			limit = m.writeLimit
			class = "write"
		}
		if limit <= 0 {
			c.Next()
			return
		}

		if m.limiter(c.ClientIP(), class, limit).Allow() {
			c.Next()
			return
		}

		m.logger.Debug("rate limit exceeded",
			zap.String("client_ip", c.ClientIP()),
			zap.String("path", c.Request.URL.Path),
			zap.String("class", class))

		c.Header("Retry-After", "1")
		if isWrite {
			// 写接口始终以 {"message"} 应答
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Error: request rate limit exceeded",
			})
			return
		}
		problem := apitypes.NewProblemDetails(
			apitypes.CodeRateLimited,
			apitypes.LayerGateway,
			"请求过于频繁，请稍后重试。",
			"request rate limit exceeded",
			http.StatusTooManyRequests,
			map[string]interface{}{"limit": strconv.Itoa(limit) + "/s"},
		)
		problem.Instance = c.Request.URL.Path
		problem.WriteJSON(c.Writer)
		c.Abort()
	}
}

// isWriteOperation 判断是否为写操作路径
func (m *RateLimit) isWriteOperation(path string) bool {
	_, ok := m.writePaths[path]
	return ok
}

// limiter 获取客户端在某类操作上的令牌桶，首次访问时创建
func (m *RateLimit) limiter(clientID, class string, limit int) *rate.Limiter {
	key := class + "|" + clientID

	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.limiters[key]
	if !ok {
		burst := limit
		if burst < MinBurst {
			burst = MinBurst
		}
		l = rate.NewLimiter(rate.Limit(limit), burst)
		m.limiters[key] = l
	}
	return l
}
