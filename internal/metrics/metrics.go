// Package metrics Prometheus 指標
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"moviesgo/internal/apperror"
	"moviesgo/internal/media"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "moviesgo"

// Metrics 包含 API 的所有指標
type Metrics struct {
	reg prometheus.Gatherer

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	MediaOperationsTotal *prometheus.CounterVec
	MediaDuration        *prometheus.HistogramVec
}

// New 在 reg 上註冊指標；reg 為 nil 時建立新的 Registry
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		MediaOperationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "media_operations_total",
				Help:      "Total media host operations",
			},
			[]string{"op", "result"},
		),
		MediaDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "media_operation_duration_seconds",
				Help:      "Media host operation duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"op"},
		),
	}
}

// Middleware 記錄請求數、延遲與進行中的請求
// path 使用路由樣板（例如 /api/movies/:id）避免標籤爆量
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.HTTPRequestsInFlight.Inc()
			defer m.HTTPRequestsInFlight.Dec()

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = apperror.StatusOf(err)
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			m.HTTPRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler /metrics 端點
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// InstrumentUploader 包裝 Uploader，記錄每次上傳與刪除
func (m *Metrics) InstrumentUploader(u media.Uploader) media.Uploader {
	return &instrumentedUploader{next: u, m: m}
}

type instrumentedUploader struct {
	next media.Uploader
	m    *Metrics
}

func (u *instrumentedUploader) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	u.m.MediaOperationsTotal.WithLabelValues(op, result).Inc()
	u.m.MediaDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (u *instrumentedUploader) Upload(ctx context.Context, img media.Image) (media.Result, error) {
	start := time.Now()
	res, err := u.next.Upload(ctx, img)
	u.observe("upload", start, err)
	return res, err
}

func (u *instrumentedUploader) Delete(ctx context.Context, storageID string) error {
	start := time.Now()
	err := u.next.Delete(ctx, storageID)
	u.observe("delete", start, err)
	return err
}
