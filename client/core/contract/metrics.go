package contract

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/weisyn/mazegate/pkg/types"
)

// Metrics 合约调用指标
type Metrics struct {
	calls     *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	queueWait prometheus.Histogram
}

// NewMetrics 在指定注册表上创建指标
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mazegate",
				Subsystem: "contract",
				Name:      "calls_total",
				Help:      "Total number of contract invocations and queries",
			},
			[]string{"kind", "method", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mazegate",
				Subsystem: "contract",
				Name:      "call_duration_seconds",
				Help:      "Contract call duration in seconds, including node round trips",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15, 30},
			},
			[]string{"kind", "method"},
		),
		queueWait: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "mazegate",
				Subsystem: "contract",
				Name:      "submission_wait_seconds",
				Help:      "Time spent waiting for the per-sender submission slot",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10},
			},
		),
	}
}

// observe 记录一次调用；m 为 nil 时什么也不做
func (m *Metrics) observe(kind, method string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(kind, method, outcome(err)).Inc()
	m.duration.WithLabelValues(kind, method).Observe(time.Since(start).Seconds())
}

func (m *Metrics) observeWait(start time.Time) {
	if m == nil {
		return
	}
	m.queueWait.Observe(time.Since(start).Seconds())
}

// outcome 错误类别标签
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, types.ErrSubmissionRejected):
		return "rejected"
	case errors.Is(err, types.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, types.ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, types.ErrInvalidCredentialFormat):
		return "invalid_credentials"
	case errors.Is(err, types.ErrNetwork):
		return "network"
	default:
		return "error"
	}
}
