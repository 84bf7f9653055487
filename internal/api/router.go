package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires the handler routes and, when gatherer is not nil, a
// /metrics endpoint.
func NewRouter(h *APIHandler, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(h.logger), gin.Recovery())

	r.GET("/healthz", h.Health)
	r.GET("/snapshot", h.GetSnapshot)
	r.GET("/hw", h.GetHardwareInfo)
	r.GET("/system", h.GetSystemInfo)

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
