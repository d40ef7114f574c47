// Package server exposes the word error rate computation over HTTP
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ughe/wer/editdist"
	"github.com/ughe/wer/metrics"
	"github.com/ughe/wer/wer"
)

type Config struct {
	Addr            string
	StaticDir       string // served for any path not matched by the API
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type werRequest struct {
	Reference  string `json:"reference"`
	Hypothesis string `json:"hypothesis"`
	Normalize  bool   `json:"normalize"`
	Lowercase  bool   `json:"lowercase"`
}

type werResponse struct {
	WER        string          `json:"wer"`
	Distance   int             `json:"distance"`
	Ops        []editdist.Op   `json:"ops"`
	Counts     editdist.Counts `json:"counts"`
	Reference  string          `json:"reference"`
	Hypothesis string          `json:"hypothesis"`
	Evaluation string          `json:"evaluation"`
}

// NewRouter builds the gin engine with the API, health and metrics routes
func NewRouter(cfg Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/wer", handleWER)
	}
	if cfg.StaticDir != "" {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.StaticDir))))
	}
	return router
}

// requestLogger tags each request with an id and logs it once served
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-Id", id)
		start := time.Now()
		c.Next()
		slog.Info("request",
			"id", id,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func handleWER(c *gin.Context) {
	var req werRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.Requests.WithLabelValues(metrics.Invalid).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request: " + err.Error()})
		return
	}
	opts := wer.TokenizeOptions{Normalize: req.Normalize, Lowercase: req.Lowercase}
	ref, hyp := wer.Fields(req.Reference, opts), wer.Fields(req.Hypothesis, opts)

	start := time.Now()
	res, err := wer.Compute(ref, hyp)
	metrics.ComputeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		status, outcome := statusFor(err)
		metrics.Requests.WithLabelValues(outcome).Inc()
		if status == http.StatusInternalServerError {
			slog.Error("compute wer", "error", err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	metrics.Requests.WithLabelValues(metrics.OK).Inc()
	metrics.Ratio.Observe(res.Rate())
	metrics.Distance.Observe(float64(res.Distance))

	r, h, e := res.Alignment().Lines()
	c.JSON(http.StatusOK, werResponse{
		WER:        res.Percentage,
		Distance:   res.Distance,
		Ops:        res.Ops,
		Counts:     res.Counts,
		Reference:  r,
		Hypothesis: h,
		Evaluation: e,
	})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, wer.ErrInvalidInput):
		return http.StatusBadRequest, metrics.Invalid
	case errors.Is(err, wer.ErrUndefinedRate):
		return http.StatusUnprocessableEntity, metrics.Undefined
	}
	return http.StatusInternalServerError, metrics.Failed
}

// Run serves until ctx is cancelled, then shuts down gracefully
func Run(ctx context.Context, cfg Config) error {
	srv := &http.Server{
		Addr:        cfg.Addr,
		Handler:     NewRouter(cfg),
		ReadTimeout: cfg.ReadTimeout,
	}
	errc := make(chan error, 1)
	go func() {
		slog.Info("wer server starting", "addr", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("wer server stopped")
	return nil
}
