// Package server exposes the pipeline engine over HTTP for the hiring
// dashboard. It is a thin transport: every decision lives in the engine
// and the handlers only translate JSON in and out.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mountainops/lifthire/internal/pipeline"
	"github.com/mountainops/lifthire/internal/settings"
)

type Server struct {
	engine   *pipeline.Engine
	settings *settings.Holder
	logger   *zap.Logger
	router   *gin.Engine
}

func New(engine *pipeline.Engine, holder *settings.Holder, logger *zap.Logger, debug bool) *Server {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine:   engine,
		settings: holder,
		logger:   logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/job", s.job)
		api.GET("/applicants", s.listApplicants)
		api.GET("/applicants/:id", s.getApplicant)
		api.PATCH("/applicants/:id/status", s.updateStatus)
		api.POST("/score/all", s.scoreAll)
		api.POST("/score/:id", s.scoreOne)
		api.POST("/bulk", s.bulkAction)
		api.POST("/email/preview", s.previewEmails)
		api.POST("/simulate-reply", s.simulateReply)
		api.POST("/upload-resume", s.uploadResume)
		api.GET("/settings", s.getSettings)
		api.PUT("/settings", s.putSettings)
		api.POST("/settings/reset", s.resetSettings)
		api.POST("/refresh", s.refresh)
		api.GET("/summary", s.summary)
		api.GET("/digest", s.digest)
		api.GET("/search", s.search)
	}

	s.router = router
	return s
}

// Router exposes the configured routes, mainly for handler tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("http server listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
