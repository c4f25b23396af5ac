package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/weisyn/mazegate/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(NewRequestID().Middleware())
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("生成新ID", func(t *testing.T) {
		rec := perform(r, "/id")
		id := rec.Header().Get(HeaderRequestID)
		assert.Len(t, id, 36)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("沿用请求头中的ID", func(t *testing.T) {
		rec := perform(r, "/id", HeaderRequestID, "abc-123")
		assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
		assert.Equal(t, "abc-123", rec.Body.String())
	})
}

func TestRateLimit_WriteStricterThanRead(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimit(zap.NewNop(), 5, 1, []string{"/move_left"}).Middleware())
	r.GET("/move_left", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "ok"}) })
	r.GET("/get_position", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"x": "0x0"}) })

	for i := 0; i < MinBurst; i++ {
		assert.Equal(t, http.StatusOK, perform(r, "/move_left").Code, "write #%d", i)
	}
	rec := perform(r, "/move_left")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"message":"Error: request rate limit exceeded"}`, rec.Body.String())

	// 读写令牌桶相互独立
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, perform(r, "/get_position").Code, "read #%d", i)
	}
	rec = perform(r, "/get_position")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestRateLimit_BurstFloor(t *testing.T) {
	t.Run("低速率仍允许连续点击", func(t *testing.T) {
		rl := NewRateLimit(zap.NewNop(), 20, 2, []string{"/move_forward"})
		assert.Equal(t, MinBurst, rl.limiter("10.0.0.1", "write", 2).Burst())
	})

	t.Run("高速率沿用速率作为容量", func(t *testing.T) {
		rl := NewRateLimit(zap.NewNop(), 20, 2, nil)
		assert.Equal(t, 20, rl.limiter("10.0.0.1", "read", 20).Burst())
	})
}

func TestRateLimit_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimit(zap.NewNop(), 0, 0, []string{"/w"}).Middleware())
	r.GET("/w", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusNoContent, perform(r, "/w").Code)
	}
}

func TestErrorHandler(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(NewRequestID().Middleware(), ErrorHandler(zap.New(core)))
	r.GET("/malformed", func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("get_position: %w", types.ErrMalformedResponse))
	})
	r.GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error: bad"})
		_ = c.Error(errors.New("already answered"))
	})

	rec := perform(r, "/malformed")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NODE_MALFORMED_RESPONSE"`)
	assert.Contains(t, rec.Body.String(), `"instance":"/malformed"`)
	require.Equal(t, 1, logs.FilterMessage("HTTP error").Len())

	rec = perform(r, "/written")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Error: bad"}`, rec.Body.String())
}

func TestLogger_SkipsPaths(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(NewRequestID().Middleware(), NewLogger(zap.New(core), "/metrics").Middleware())
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/get_position", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	perform(r, "/metrics")
	perform(r, "/get_position?x=1")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/get_position", fields["path"])
	assert.Equal(t, "x=1", fields["query"])
	assert.Equal(t, int64(http.StatusBadGateway), fields["status"])
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/get_position", func(c *gin.Context) { c.Status(http.StatusOK) })

	perform(r, "/get_position")
	perform(r, "/get_position")
	perform(r, "/nope")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCounter.WithLabelValues("GET", "/get_position", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCounter.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))

	count, err := testutil.GatherAndCount(reg, "mazegate_api_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
