// Package api exposes predictions, arrival searches, reference data and the
// audit trail over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/steel-maritime/demurrage/app"
	coremon "github.com/steel-maritime/demurrage/core/monitoring"
	"github.com/steel-maritime/demurrage/infra/logger"
	"github.com/steel-maritime/demurrage/infra/metrics"
)

const shutdownTimeout = 5 * time.Second

// Handler serves the HTTP API of a Service.
type Handler struct {
	svc *app.Service
	log logger.Logger
}

// NewRouter builds the gin engine with every route registered. The caller
// selects the gin mode beforehand.
func NewRouter(svc *app.Service, log logger.Logger) *gin.Engine {
	if log == nil {
		log = logger.NopLogger{}
	}
	h := &Handler{svc: svc, log: log}

	r := gin.New()
	r.Use(h.recovery(), h.requestLog())

	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(metrics.Handler(nil)))

	api := r.Group("/api")
	api.POST("/predict", h.predict)
	api.POST("/optimization", h.optimize)

	cat := api.Group("/catalog")
	cat.GET("", h.catalog)
	cat.GET("/delays", h.delayCauses)
	cat.GET("/risk", h.riskFactors)

	fl := api.Group("/fleet")
	fl.GET("/vessels", h.vessels)
	fl.GET("/vessels/:id", h.vessel)
	fl.GET("/ports", h.ports)
	fl.GET("/cargo-types", h.cargoTypes)

	api.GET("/history", h.history)
	api.GET("/analytics", h.analytics)
	api.GET("/analytics/ports/:id", h.portExposure)
	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "catalog_version": h.svc.Catalog().Version()})
}

// recovery answers 500 and reports the panic to the monitor.
func (h *Handler) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				coremon.CapturePanic(r, map[string]string{"module": "api", "route": c.FullPath()})
				h.log.Errorf("panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}

func (h *Handler) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.log.Debugw("http request", map[string]any{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// Serve runs the router on addr until ctx is done.
func Serve(ctx context.Context, addr string, handler http.Handler, log logger.Logger) error {
	if log == nil {
		log = logger.NopLogger{}
	}
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("api shutdown: %v", err)
		}
	}()
	log.Infof("serving API on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}
