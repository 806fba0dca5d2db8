// Package report serves pipeline results over HTTP: run records and cluster
// thresholds from the local results store, and the rendered chart files.
package report

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hauslab/powerprofiles/internal/storage/sqlite"
)

// Server is the profile-server controller.
type Server struct {
	store     *sqlite.Store
	chartsDir string
	server    http.Server
	logger    *zap.SugaredLogger
	format    Formatter
}

// New creates a profile server reading from the given results store and
// serving rendered charts from chartsDir.
func New(addr string, store *sqlite.Store, chartsDir string, logger *zap.SugaredLogger) *Server {
	s := &Server{
		store:     store,
		chartsDir: chartsDir,
		logger:    logger,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/units", s.handleUnits).Methods(http.MethodGet)
	router.HandleFunc("/api/runs", s.handleRuns).Methods(http.MethodGet)
	router.HandleFunc("/api/thresholds", s.handleThresholds).Methods(http.MethodGet)
	router.PathPrefix("/charts/").Handler(
		http.StripPrefix("/charts/", http.FileServer(http.Dir(chartsDir))))

	s.server = http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("profile server listening on %s", s.server.Addr)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = s.format.WriteResponse(w, r, map[string]string{"status": "ok"})
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	units, err := s.store.ListUnits(r.Context())
	if err != nil {
		s.logger.Errorf("listing units: %v", err)
		s.format.WriteError(w, r, http.StatusInternalServerError, "failed to list units")
		return
	}
	_ = s.format.WriteResponse(w, r, map[string]any{"units": units})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		s.format.WriteError(w, r, http.StatusBadRequest, "unit parameter is required")
		return
	}

	runs, err := s.store.ListRuns(r.Context(), unit, r.URL.Query().Get("kind"))
	if err != nil {
		s.logger.Errorf("listing runs for %s: %v", unit, err)
		s.format.WriteError(w, r, http.StatusInternalServerError, "failed to list runs")
		return
	}
	_ = s.format.WriteResponse(w, r, map[string]any{"unit": unit, "runs": runs})
}

func (s *Server) handleThresholds(w http.ResponseWriter, r *http.Request) {
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		s.format.WriteError(w, r, http.StatusBadRequest, "unit parameter is required")
		return
	}

	thresholds, err := s.store.ListThresholds(r.Context(), unit)
	if err != nil {
		s.logger.Errorf("listing thresholds for %s: %v", unit, err)
		s.format.WriteError(w, r, http.StatusInternalServerError, "failed to list thresholds")
		return
	}
	_ = s.format.WriteResponse(w, r, map[string]any{"unit": unit, "thresholds": thresholds})
}
