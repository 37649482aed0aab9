// Package config provides configuration management for the analytics
// application. The numeric defaults the estimators rely on (assumed
// volatility, contract multiplier, sweep ranges) live here as named
// configuration rather than literals so tests and users can override
// them.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Store     StoreConfig     `mapstructure:"store"`
	UI        UIConfig        `mapstructure:"ui"`
}

// AnalyticsConfig holds the constants of the strategy analytics core.
type AnalyticsConfig struct {
	// AssumedVolatility is used when the caller supplies no implied vol.
	AssumedVolatility float64 `mapstructure:"assumed_volatility"`
	// ContractMultiplier encodes shares per contract.
	ContractMultiplier float64 `mapstructure:"contract_multiplier"`
	// SweepPercent is the payoff sweep half-range for generic
	// strategies, as a fraction of the underlying price.
	SweepPercent float64 `mapstructure:"sweep_percent"`
	// CondorSweepPercent is the narrower half-range used for
	// defined-risk condors, keeping the visible curve legible near the
	// profit zone.
	CondorSweepPercent float64 `mapstructure:"condor_sweep_percent"`
	// CurveSamples is the number of points per payoff curve.
	CurveSamples int `mapstructure:"curve_samples"`
	// DirectionThreshold is the |net delta| above which a strategy is
	// classified bullish or bearish rather than neutral.
	DirectionThreshold float64 `mapstructure:"direction_threshold"`
}

// ScoringConfig holds the candidate-scoring rubric: per-factor point
// caps and the sweet-spot bands for delta and days-to-expiry. Band
// bounds are inclusive on both sides.
type ScoringConfig struct {
	ReturnCap      float64 `mapstructure:"return_cap"`
	ProbCap        float64 `mapstructure:"prob_cap"`
	DeltaIdealLow  float64 `mapstructure:"delta_ideal_low"`
	DeltaIdealHigh float64 `mapstructure:"delta_ideal_high"`
	DeltaGoodLow   float64 `mapstructure:"delta_good_low"`
	DeltaGoodHigh  float64 `mapstructure:"delta_good_high"`
	DeltaFairLow   float64 `mapstructure:"delta_fair_low"`
	DeltaFairHigh  float64 `mapstructure:"delta_fair_high"`
	DeltaFloor     float64 `mapstructure:"delta_floor"`
	DTEIdealLow    float64 `mapstructure:"dte_ideal_low"`
	DTEIdealHigh   float64 `mapstructure:"dte_ideal_high"`
	DTEGoodLow     float64 `mapstructure:"dte_good_low"`
	DTEGoodHigh    float64 `mapstructure:"dte_good_high"`
	DTEFairLow     float64 `mapstructure:"dte_fair_low"`
	DTEFairHigh    float64 `mapstructure:"dte_fair_high"`
	RiskRewardHigh float64 `mapstructure:"risk_reward_high"`
	RiskRewardMid  float64 `mapstructure:"risk_reward_mid"`
	RiskRewardLow  float64 `mapstructure:"risk_reward_low"`
}

// StoreConfig holds journal persistence configuration.
type StoreConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}

// UIConfig holds output-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/options-lab"
	}
	return filepath.Join(home, ".config", "options-lab")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Analytics: AnalyticsConfig{
			AssumedVolatility:  0.25,
			ContractMultiplier: 100,
			SweepPercent:       0.25,
			CondorSweepPercent: 0.15,
			CurveSamples:       60,
			DirectionThreshold: 0.1,
		},
		Scoring: ScoringConfig{
			ReturnCap:      30,
			ProbCap:        25,
			DeltaIdealLow:  0.20,
			DeltaIdealHigh: 0.35,
			DeltaGoodLow:   0.15,
			DeltaGoodHigh:  0.40,
			DeltaFairLow:   0.10,
			DeltaFairHigh:  0.50,
			DeltaFloor:     5,
			DTEIdealLow:    30,
			DTEIdealHigh:   45,
			DTEGoodLow:     21,
			DTEGoodHigh:    60,
			DTEFairLow:     14,
			DTEFairHigh:    90,
			RiskRewardHigh: 0.03,
			RiskRewardMid:  0.02,
			RiskRewardLow:  0.01,
		},
		Store: StoreConfig{
			DatabasePath: filepath.Join(DefaultConfigDir(), "options-lab.db"),
		},
		UI: UIConfig{
			ColorEnabled: true,
			DateFormat:   "2006-01-02",
		},
	}
}

// Load loads configuration from the specified directory, falling back
// to built-in defaults when no config file exists. If configDir is
// empty, the default config directory is used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default()
	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target *Config) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	setDefaults(v, Default())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file is fine: run on defaults.
			return nil
		}
		return err
	}

	return v.Unmarshal(target)
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("analytics.assumed_volatility", d.Analytics.AssumedVolatility)
	v.SetDefault("analytics.contract_multiplier", d.Analytics.ContractMultiplier)
	v.SetDefault("analytics.sweep_percent", d.Analytics.SweepPercent)
	v.SetDefault("analytics.condor_sweep_percent", d.Analytics.CondorSweepPercent)
	v.SetDefault("analytics.curve_samples", d.Analytics.CurveSamples)
	v.SetDefault("analytics.direction_threshold", d.Analytics.DirectionThreshold)
	v.SetDefault("scoring.return_cap", d.Scoring.ReturnCap)
	v.SetDefault("scoring.prob_cap", d.Scoring.ProbCap)
	v.SetDefault("scoring.delta_ideal_low", d.Scoring.DeltaIdealLow)
	v.SetDefault("scoring.delta_ideal_high", d.Scoring.DeltaIdealHigh)
	v.SetDefault("scoring.delta_good_low", d.Scoring.DeltaGoodLow)
	v.SetDefault("scoring.delta_good_high", d.Scoring.DeltaGoodHigh)
	v.SetDefault("scoring.delta_fair_low", d.Scoring.DeltaFairLow)
	v.SetDefault("scoring.delta_fair_high", d.Scoring.DeltaFairHigh)
	v.SetDefault("scoring.delta_floor", d.Scoring.DeltaFloor)
	v.SetDefault("scoring.dte_ideal_low", d.Scoring.DTEIdealLow)
	v.SetDefault("scoring.dte_ideal_high", d.Scoring.DTEIdealHigh)
	v.SetDefault("scoring.dte_good_low", d.Scoring.DTEGoodLow)
	v.SetDefault("scoring.dte_good_high", d.Scoring.DTEGoodHigh)
	v.SetDefault("scoring.dte_fair_low", d.Scoring.DTEFairLow)
	v.SetDefault("scoring.dte_fair_high", d.Scoring.DTEFairHigh)
	v.SetDefault("scoring.risk_reward_high", d.Scoring.RiskRewardHigh)
	v.SetDefault("scoring.risk_reward_mid", d.Scoring.RiskRewardMid)
	v.SetDefault("scoring.risk_reward_low", d.Scoring.RiskRewardLow)
	v.SetDefault("store.database_path", d.Store.DatabasePath)
	v.SetDefault("ui.color_enabled", d.UI.ColorEnabled)
	v.SetDefault("ui.date_format", d.UI.DateFormat)
}

// Validate checks the configuration for values the core cannot work
// with.
func (c *Config) Validate() error {
	if c.Analytics.AssumedVolatility <= 0 {
		return fmt.Errorf("analytics.assumed_volatility must be positive, got %v", c.Analytics.AssumedVolatility)
	}
	if c.Analytics.ContractMultiplier <= 0 {
		return fmt.Errorf("analytics.contract_multiplier must be positive, got %v", c.Analytics.ContractMultiplier)
	}
	if c.Analytics.CurveSamples < 2 {
		return fmt.Errorf("analytics.curve_samples must be at least 2, got %d", c.Analytics.CurveSamples)
	}
	if c.Analytics.SweepPercent <= 0 || c.Analytics.CondorSweepPercent <= 0 {
		return fmt.Errorf("sweep percents must be positive")
	}
	if c.Scoring.ReturnCap <= 0 || c.Scoring.ProbCap <= 0 {
		return fmt.Errorf("scoring point caps must be positive")
	}
	return nil
}
