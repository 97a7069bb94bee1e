package app

import (
	"log/slog"
	"os"

	"rate_relay/internal/infra"
	"rate_relay/internal/infra/storage"
)

// DefaultConfigPath is used unless RELAY_CONFIG points elsewhere.
const DefaultConfigPath = "configs/config.yaml"

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config  *infra.Config
	Metrics *infra.Metrics
	Journal *storage.Journal
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, journal).
func (b *Bootstrap) Initialize() error {
	slog.Info("🚀 Bootstrapping rate relay...")

	// 1. Load Config
	path := DefaultConfigPath
	if env := os.Getenv("RELAY_CONFIG"); env != "" {
		path = env
	}
	cfg, err := infra.LoadConfig(path)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Metrics
	b.Metrics = infra.NewMetrics()

	// 4. Fetch journal (optional)
	if cfg.Journal.Enabled {
		journal, err := storage.NewJournal(cfg.Journal.Path)
		if err != nil {
			return err
		}
		b.Journal = journal
		slog.Info("✅ Fetch journal initialized", slog.String("path", cfg.Journal.Path))
	}

	return nil
}

// Shutdown releases resources acquired during Initialize.
func (b *Bootstrap) Shutdown() {
	if b.Journal != nil {
		b.Journal.Close()
	}
}
