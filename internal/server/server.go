package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/verbum-dei-api/internal/database"
	"github.com/taiwoajasa245/verbum-dei-api/internal/oracle"
	"github.com/taiwoajasa245/verbum-dei-api/internal/storage"
	"github.com/taiwoajasa245/verbum-dei-api/internal/storage/postgres"
	"github.com/taiwoajasa245/verbum-dei-api/internal/storage/sqlite"
	"github.com/taiwoajasa245/verbum-dei-api/internal/study"
	"github.com/taiwoajasa245/verbum-dei-api/pkg/config"
)

type Server struct {
	port     string
	cfg      *config.Config
	logger   *zap.Logger
	db       database.Service
	store    storage.Store
	closeFns []func() error
	manager  *study.Manager
	handler  http.Handler
	cancel   context.CancelFunc
}

// NewServer opens the configured store and oracle and wires the routes.
func NewServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	s := &Server{port: cfg.Port, cfg: cfg, logger: logger}

	store, err := s.openStore(ctx)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.store = store

	s.manager = study.NewManager(store, newOracle(ctx, cfg, logger), study.ManagerConfig{
		Secret:             cfg.JWTSecret,
		TTL:                cfg.SessionTTL,
		OracleTimeout:      cfg.OracleTimeout,
		DefaultTranslation: cfg.DefaultTranslation,
	}, logger)

	s.handler = s.RegisterRoutes()
	return s, nil
}

// newOracle falls back to an oracle that fails every call when no API key is
// configured, so the catalog and the reader's records stay usable.
func newOracle(ctx context.Context, cfg *config.Config, logger *zap.Logger) oracle.Oracle {
	g, err := oracle.NewGemini(ctx, oracle.GeminiConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel}, logger)
	if err != nil {
		logger.Warn("gemini oracle unavailable, searches and commentary will fail", zap.Error(err))
		return oracle.Unconfigured{}
	}
	return g
}

func (s *Server) openStore(ctx context.Context) (storage.Store, error) {
	switch s.cfg.StorageDriver {
	case "memory":
		return storage.NewMemory(), nil
	case "file":
		return storage.NewDir(s.cfg.StoragePath)
	case "sqlite":
		st, err := sqlite.Open(s.cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		s.closeFns = append(s.closeFns, st.Close)
		return st, nil
	case "postgres":
		db, err := database.New(ctx, s.cfg.DB, s.logger)
		if err != nil {
			return nil, err
		}
		s.db = db
		s.closeFns = append(s.closeFns, db.Close)

		stats := db.Health()
		s.logger.Info("database health", zap.Any("stats", stats))
		if stats["status"] != "up" {
			return nil, errors.New("database connection failed")
		}
		return postgres.New(ctx, db)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", s.cfg.StorageDriver)
	}
}

// HTTPServer returns the actual *http.Server instance
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", s.port),
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// StartBackgroundJobs runs scheduled jobs
func (s *Server) StartBackgroundJobs() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.manager.StartJanitor(ctx, s.cfg.JanitorInterval, s.cfg.SessionIdleTimeout)
}

func (s *Server) StopBackgroundJobs() {
	if s.cancel != nil {
		s.cancel()
		s.logger.Info("background jobs stopped")
	}
}

// Close releases the store.
func (s *Server) Close() error {
	var errs []error
	for _, fn := range s.closeFns {
		errs = append(errs, fn())
	}
	return errors.Join(errs...)
}
