package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kararlabs/meetmind/internal/config"
	"github.com/kararlabs/meetmind/internal/heuristic"
	"github.com/kararlabs/meetmind/internal/ledger"
	"github.com/kararlabs/meetmind/internal/logging"
	"github.com/kararlabs/meetmind/internal/meeting"
	"github.com/kararlabs/meetmind/internal/orchestrator"
	"github.com/kararlabs/meetmind/internal/provider"
	"github.com/kararlabs/meetmind/internal/scrub"
	"github.com/kararlabs/meetmind/internal/services"
	"github.com/kararlabs/meetmind/internal/telemetry"
)

var (
	flagConfig   string
	flagProvider string
	flagTimeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "meetmind",
	Short:         "AI-assisted task extraction from meeting decisions",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default ~/.config/meetmind/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "Preferred AI provider (gemini, openai, anthropic)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 2*time.Minute, "Time budget for one operation")
}

// wire builds the full service registry from configuration. Credential
// slots come from the environment; a local .env file is loaded first when
// present.
func wire() (services.Registry, *zap.Logger, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}

	scrubber, err := scrub.NewWithAllowlist(cfg.Scrub.AllowlistPath)
	if err != nil {
		return nil, nil, err
	}

	metrics := telemetry.New(prometheus.NewRegistry())

	meetings, err := meeting.NewFileRepository(cfg.Meetings.Path)
	if err != nil {
		return nil, nil, err
	}

	store, err := ledger.NewFileStore(cfg.Ledger.Path)
	if err != nil {
		return nil, nil, err
	}
	taskLedger, err := ledger.Open(store)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(provider.Options{
		Configs:  cfg.ProviderConfigs(),
		Scrubber: scrubber,
		Logger:   log,
		Metrics:  metrics,
	})

	extractor := heuristic.NewExtractor()

	orch := orchestrator.New(orchestrator.Options{
		Registry:  registry,
		Meetings:  meetings,
		Ledger:    taskLedger,
		Extractor: extractor,
		Logger:    log,
		Metrics:   metrics,
	})

	return services.NewRegistry(services.Options{
		Orchestrator: orch,
		Meetings:     meetings,
		Ledger:       taskLedger,
		Extractor:    extractor,
		Scrubber:     scrubber,
		Metrics:      metrics,
	}), log, nil
}
