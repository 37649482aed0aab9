// Package cli provides the command-line interface for the strategy
// analytics application. Commands assemble leg and market inputs from
// flags, hand them to the pure analytics core, and render the results;
// no computation lives here.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"options-lab/internal/analysis/greeks"
	"options-lab/internal/analysis/payoff"
	"options-lab/internal/analysis/scoring"
	"options-lab/internal/analysis/strategy"
	"options-lab/internal/config"
	"options-lab/internal/logging"
	"options-lab/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Store      store.AnalysisStore
	Estimator  *greeks.Estimator
	Generator  *payoff.Generator
	Aggregator *strategy.Aggregator
	Scorer     *scoring.Scorer
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	estimator := greeks.NewEstimator(cfg.Analytics.AssumedVolatility)
	app := &App{
		Config:     cfg,
		Logger:     logger,
		Estimator:  estimator,
		Generator:  payoff.NewGenerator(cfg.Analytics.ContractMultiplier),
		Aggregator: strategy.NewAggregator(estimator, cfg.Analytics.ContractMultiplier, cfg.Analytics.DirectionThreshold),
		Scorer:     scoring.NewScorerWithRubric(rubricFromConfig(cfg.Scoring)),
	}

	// Journal store is optional: analysis commands work without it.
	dataStore, err := store.NewSQLiteStore(cfg.Store.DatabasePath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize journal store, history will be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Msg("SQLite journal store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "options-lab",
		Short: "Options strategy analytics CLI",
		Long: `Options Lab analyzes option strategies: Greeks estimation, payoff
curves, strategy aggregation, breakevens, and wheel-candidate scoring.

All figures are dashboard approximations, not exact pricing theory.
Use 'options-lab help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/options-lab)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addAnalysisCommands(rootCmd, app)
	addStrategyCommands(rootCmd, app)
	addJournalCommands(rootCmd, app)
	addUtilityCommands(rootCmd, app)

	return rootCmd
}

func rubricFromConfig(cfg config.ScoringConfig) scoring.Rubric {
	return scoring.Rubric{
		ReturnCap:      cfg.ReturnCap,
		ProbCap:        cfg.ProbCap,
		DeltaIdeal:     scoring.Band{Low: cfg.DeltaIdealLow, High: cfg.DeltaIdealHigh},
		DeltaGood:      scoring.Band{Low: cfg.DeltaGoodLow, High: cfg.DeltaGoodHigh},
		DeltaFair:      scoring.Band{Low: cfg.DeltaFairLow, High: cfg.DeltaFairHigh},
		DeltaFloor:     cfg.DeltaFloor,
		DTEIdeal:       scoring.Band{Low: cfg.DTEIdealLow, High: cfg.DTEIdealHigh},
		DTEGood:        scoring.Band{Low: cfg.DTEGoodLow, High: cfg.DTEGoodHigh},
		DTEFair:        scoring.Band{Low: cfg.DTEFairLow, High: cfg.DTEFairHigh},
		RiskRewardHigh: cfg.RiskRewardHigh,
		RiskRewardMid:  cfg.RiskRewardMid,
		RiskRewardLow:  cfg.RiskRewardLow,
	}
}

func addUtilityCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			output.Printf("options-lab %s\n", Version)
		},
	})
}
