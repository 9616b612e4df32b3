// Package daemon provides the long-running background sync watcher.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/theirongolddev/smokesense/internal/outbox"
)

// Config controls the watcher runtime behavior.
type Config struct {
	Interval time.Duration
	Addr     string
}

// Status is served at /v1/status.
type Status struct {
	StartedAt        time.Time `json:"started_at"`
	LastDrainAt      time.Time `json:"last_drain_at"`
	DrainIntervalSec int       `json:"drain_interval_sec"`
	DrainCount       int64     `json:"drain_count"`
	Pending          int       `json:"pending"`
	LastError        string    `json:"last_error,omitempty"`
}

// Service drains the outbox on a fixed interval and exposes a small
// local HTTP API for inspecting sync health.
type Service struct {
	cfg Config
	ob  *outbox.Outbox
	log *zap.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastDrainAt time.Time
	drainCount  int64
	pending     int
	lastError   string
}

// New returns a watcher over the given outbox.
func New(cfg Config, ob *outbox.Outbox, log *zap.Logger) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8878"
	}

	return &Service{
		cfg:       cfg,
		ob:        ob,
		log:       log,
		startedAt: time.Now(),
	}
}

// Run serves the status API and drains until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Drain immediately so a freshly started watcher catches the backlog.
	s.drainOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.drainOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("watcher http server: %w", err)
		}
	}
}

func (s *Service) drainOnce(ctx context.Context) {
	err := s.ob.Drain(ctx)
	pending, countErr := s.ob.UnsyncedCount()

	s.mu.Lock()
	s.lastDrainAt = time.Now()
	s.drainCount++
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
	}
	if countErr == nil {
		s.pending = pending
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("watcher drain failed", zap.Error(err))
	}
}

func (s *Service) status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:        s.startedAt,
		LastDrainAt:      s.lastDrainAt,
		DrainIntervalSec: int(s.cfg.Interval.Seconds()),
		DrainCount:       s.drainCount,
		Pending:          s.pending,
		LastError:        s.lastError,
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.status())
}
