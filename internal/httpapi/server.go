package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tracklab/pmt/internal/service"
)

const defaultBindAddress = "127.0.0.1:8700"

// defaultShutdownTimeout bounds graceful shutdown once context
// cancellation starts.
const defaultShutdownTimeout = 5 * time.Second

// ServerConfig defines serve-mode endpoint configuration.
type ServerConfig struct {
	Bind        string
	APIEndpoint string
}

// Dependencies are the services the API surfaces.
type Dependencies struct {
	Workflow   service.WorkflowService
	Timelines  service.TimelineService
	Reports    service.ReportService
	Milestones service.MilestoneService
	Projects   service.ProjectService
}

// NewServerHandler composes the root mux: health endpoints plus the
// versioned API.
func NewServerHandler(cfg ServerConfig, deps Dependencies) (http.Handler, ServerConfig, error) {
	cfg = normalizeConfig(cfg)
	if deps.Workflow == nil || deps.Timelines == nil || deps.Reports == nil || deps.Milestones == nil || deps.Projects == nil {
		return nil, ServerConfig{}, errors.New("all service dependencies are required")
	}

	apiHandler := NewHandler(deps.Workflow, deps.Timelines, deps.Reports, deps.Milestones, deps.Projects)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", writeHealthStatus)
	mux.HandleFunc("/readyz", writeHealthStatus)
	mux.Handle(cfg.APIEndpoint, http.StripPrefix(cfg.APIEndpoint, apiHandler))
	mux.Handle(cfg.APIEndpoint+"/", http.StripPrefix(cfg.APIEndpoint, apiHandler))
	return mux, cfg, nil
}

// Run starts the HTTP server and blocks until shutdown or startup failure.
func Run(ctx context.Context, cfg ServerConfig, deps Dependencies, logger *log.Logger) error {
	handler, cfg, err := NewServerHandler(cfg, deps)
	if err != nil {
		return fmt.Errorf("build server handler: %w", err)
	}
	httpServer := &http.Server{
		Addr:    cfg.Bind,
		Handler: handler,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Bind, "api", cfg.APIEndpoint)
		serveErrCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErrCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen and serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()

		shutdownErr := httpServer.Shutdown(shutdownCtx)
		serveErr := <-serveErrCh
		if shutdownErr != nil && !errors.Is(shutdownErr, context.Canceled) {
			return fmt.Errorf("shutdown server: %w", shutdownErr)
		}
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("serve after shutdown: %w", serveErr)
		}
		return nil
	}
}

func normalizeConfig(cfg ServerConfig) ServerConfig {
	cfg.Bind = strings.TrimSpace(cfg.Bind)
	if cfg.Bind == "" {
		cfg.Bind = defaultBindAddress
	}
	cfg.APIEndpoint = strings.TrimSpace(cfg.APIEndpoint)
	if cfg.APIEndpoint == "" {
		cfg.APIEndpoint = "/api/v1"
	}
	cfg.APIEndpoint = "/" + strings.Trim(cfg.APIEndpoint, "/")
	return cfg
}

// writeHealthStatus responds with a deterministic readiness payload.
func writeHealthStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}
