// Package pipeline contains the Echo server for the transcription/alert
// service.
package pipeline

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"shield/config"
	"shield/internal/delivery"
	httpmiddleware "shield/internal/delivery/http/middleware"
	"shield/internal/delivery/http/validator"
	sharedmiddleware "shield/internal/delivery/middleware"
	"shield/internal/delivery/pipeline/handler"
	"shield/internal/domain/lifecycle"
	"shield/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
	"go.uber.org/fx"
)

const defaultPipelinePort = 5000

// ServerParams holds dependencies for the pipeline server, injected by Fx.
type ServerParams struct {
	fx.In
	fx.Lifecycle

	Config          *config.Config
	Logger          *slog.Logger
	AlertHandler    *handler.AlertHandler
	RequestID       *sharedmiddleware.RequestIDMiddleware
	ErrorMiddleware *httpmiddleware.ErrorMiddleware
}

type pipelineServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// NewServer builds the pipeline Echo server with its routes.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Use(slogecho.New(params.Logger))
	echoServer.Validator = validator.New()
	echoServer.Use(echomiddleware.Recover())
	echoServer.Use(echomiddleware.CORS())
	echoServer.Use(params.RequestID.Process)
	echoServer.HTTPErrorHandler = params.ErrorMiddleware.HandleHTTPError

	echoServer.POST("/transcribe", params.AlertHandler.Transcribe)
	echoServer.POST("/generate-alert", params.AlertHandler.GenerateAlert)
	echoServer.POST("/transcribe-and-alert", params.AlertHandler.TranscribeAndAlert)
	echoServer.GET("/health", params.AlertHandler.Health)
	echoServer.POST("/model/reload", params.AlertHandler.ReloadModel)

	srv := &pipelineServer{
		cfg:    params.Config,
		logger: params.Logger,
		server: echoServer,
	}

	params.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

func (s *pipelineServer) Serve(ctx context.Context) error {
	port := defaultPipelinePort
	if s.cfg.Pipeline != nil && s.cfg.Pipeline.Port > 0 {
		port = s.cfg.Pipeline.Port
	}

	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(port))
	s.logger.Info("Starting pipeline HTTP server", slog.String("hostPort", hostPort))
	if err := s.server.Start(hostPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *pipelineServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down pipeline HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
