package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"options-lab/internal/analysis/payoff"
	"options-lab/internal/analysis/scoring"
	"options-lab/internal/analysis/strategy"
	"options-lab/internal/logging"
	"options-lab/internal/models"
)

// addStrategyCommands adds the strategy builder commands.
func addStrategyCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newSpreadCmd(app))
	rootCmd.AddCommand(newCondorCmd(app))
	rootCmd.AddCommand(newWheelCmd(app))
}

// parseQuote parses a strike:premium pair, e.g. "490:2.50".
func parseQuote(s string) (strike, premium float64, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid quote %q: want strike:premium", s)
	}
	strike, err = strconv.ParseFloat(parts[0], 64)
	if err != nil || strike <= 0 {
		return 0, 0, fmt.Errorf("invalid strike %q", parts[0])
	}
	premium, err = strconv.ParseFloat(parts[1], 64)
	if err != nil || premium < 0 {
		return 0, 0, fmt.Errorf("invalid premium %q", parts[1])
	}
	return strike, premium, nil
}

func newSpreadCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spread",
		Short: "Analyze a credit vertical spread",
		Long: `Analyze a credit vertical: a short strike sold against a
further-out long strike of the same option type.`,
		Example: `  options-lab spread --type put --short 490:2.50 --long 485:1.50 --price 500 --dte 35
  options-lab spread --type call --short 510:2.50 --long 515:1.50 --qty 2 --price 500 --dte 35`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			typeStr, _ := cmd.Flags().GetString("type")
			var optType models.OptionType
			switch strings.ToLower(typeStr) {
			case "put":
				optType = models.Put
			case "call":
				optType = models.Call
			default:
				output.Error("Invalid --type %q: want put|call", typeStr)
				return fmt.Errorf("invalid type %q", typeStr)
			}

			shortSpec, _ := cmd.Flags().GetString("short")
			longSpec, _ := cmd.Flags().GetString("long")
			shortStrike, shortPremium, err := parseQuote(shortSpec)
			if err != nil {
				output.Error("--short: %v", err)
				return err
			}
			longStrike, longPremium, err := parseQuote(longSpec)
			if err != nil {
				output.Error("--long: %v", err)
				return err
			}
			qty, _ := cmd.Flags().GetInt("qty")
			market, err := marketFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			params := strategy.VerticalCreditParams{
				Type:         optType,
				ShortStrike:  shortStrike,
				ShortPremium: shortPremium,
				LongStrike:   longStrike,
				LongPremium:  longPremium,
				Contracts:    qty,
			}
			metrics := app.Aggregator.VerticalCredit(params, market)
			logging.LogEvaluation(app.Logger, "vertical-credit", 2, metrics.NetCost, metrics.MaxRisk)

			if output.IsJSON() {
				return output.JSON(metrics)
			}
			displayMetrics(output, metrics, market)
			return nil
		},
	}

	cmd.Flags().String("type", "put", "Spread type: put or call")
	cmd.Flags().String("short", "", "Short leg as strike:premium (required)")
	cmd.Flags().String("long", "", "Long leg as strike:premium (required)")
	cmd.Flags().Int("qty", 1, "Contracts per leg")
	cmd.MarkFlagRequired("short")
	cmd.MarkFlagRequired("long")
	addMarketFlags(cmd)
	return cmd
}

func newCondorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "condor",
		Short: "Analyze an iron condor",
		Long: `Analyze an iron condor built as two credit verticals. Max loss is
bounded by the wider wing, not the sum of both wings. The payoff sweep
uses the narrower defined-risk range to keep the profit zone legible.`,
		Example: `  options-lab condor --put-buy 485:1.50 --put-sell 490:2.50 --call-sell 510:2.50 --call-buy 515:1.50 --price 500 --dte 35`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			var params strategy.CondorParams
			var err error
			read := func(flag string, strike, premium *float64) {
				if err != nil {
					return
				}
				spec, _ := cmd.Flags().GetString(flag)
				var e error
				*strike, *premium, e = parseQuote(spec)
				if e != nil {
					err = fmt.Errorf("--%s: %w", flag, e)
				}
			}
			read("put-buy", &params.PutBuyStrike, &params.PutBuyPremium)
			read("put-sell", &params.PutSellStrike, &params.PutSellPremium)
			read("call-sell", &params.CallSellStrike, &params.CallSellPremium)
			read("call-buy", &params.CallBuyStrike, &params.CallBuyPremium)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			params.Contracts, _ = cmd.Flags().GetInt("qty")

			market, err := marketFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			metrics := app.Aggregator.Condor(params, market)
			logging.LogEvaluation(app.Logger, "iron-condor", 4, metrics.NetCost, metrics.MaxRisk)

			curve := app.Generator.Curve(params.PayoffLegs(), market, payoff.RangeSpec{
				SweepPercent: app.Config.Analytics.CondorSweepPercent,
				Samples:      app.Config.Analytics.CurveSamples,
				NetCredit:    params.NetCredit(app.Config.Analytics.ContractMultiplier),
			})

			if output.IsJSON() {
				return output.JSON(struct {
					Metrics models.StrategyMetrics `json:"metrics"`
					Curve   models.PayoffCurve     `json:"curve"`
				}{metrics, curve})
			}

			displayMetrics(output, metrics, market)
			output.Println()
			if showCurve, _ := cmd.Flags().GetBool("curve"); showCurve {
				displayCurve(output, curve, market.UnderlyingPrice)
			}
			return nil
		},
	}

	cmd.Flags().String("put-buy", "", "Long put as strike:premium (required)")
	cmd.Flags().String("put-sell", "", "Short put as strike:premium (required)")
	cmd.Flags().String("call-sell", "", "Short call as strike:premium (required)")
	cmd.Flags().String("call-buy", "", "Long call as strike:premium (required)")
	cmd.Flags().Int("qty", 1, "Contracts per leg")
	cmd.Flags().Bool("curve", false, "Print the payoff curve")
	for _, f := range []string{"put-buy", "put-sell", "call-sell", "call-buy"} {
		cmd.MarkFlagRequired(f)
	}
	addMarketFlags(cmd)
	return cmd
}

func newWheelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wheel",
		Short: "Score a wheel-strategy candidate",
		Long: `Evaluate and score a wheel candidate: a cash-secured put or a
covered call sold for premium.

The probability of profit shown is a delta-based approximation, not a
statistically rigorous figure. Scored candidates are saved to the
journal when the store is available.`,
		Example: `  options-lab wheel --shape csp --strike 490 --premium 2.50 --price 500 --dte 35
  options-lab wheel --shape cc --strike 510 --premium 2.50 --price 500 --dte 35 --symbol AAPL`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			shapeStr, _ := cmd.Flags().GetString("shape")
			var shape models.StrategyShape
			switch strings.ToLower(shapeStr) {
			case "csp", "put":
				shape = models.ShapeCashSecuredPut
			case "cc", "call":
				shape = models.ShapeCoveredCall
			default:
				output.Error("Invalid --shape %q: want csp|cc", shapeStr)
				return fmt.Errorf("invalid shape %q", shapeStr)
			}

			strike, _ := cmd.Flags().GetFloat64("strike")
			premium, _ := cmd.Flags().GetFloat64("premium")
			qty, _ := cmd.Flags().GetInt("qty")
			symbol, _ := cmd.Flags().GetString("symbol")
			market, err := marketFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			params := strategy.WheelParams{
				Shape:     shape,
				Strike:    strike,
				Premium:   premium,
				Contracts: qty,
				Market:    market,
			}
			eval, err := app.Aggregator.EvaluateWheel(params)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			score := app.Scorer.Score(scoring.CandidateMetrics{
				AnnualizedReturn: eval.AnnualizedReturn,
				ProbProfit:       eval.ProbProfit,
				Delta:            eval.Delta,
				DaysToExpiry:     market.DaysToExpiry,
				RiskReward:       eval.RiskReward,
			})
			logging.LogScore(app.Logger, string(shape), score.Score, string(score.Recommendation))

			if app.Store != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				record := &models.AnalysisRecord{
					Symbol: symbol,
					Strategy: models.StrategyDefinition{
						Name:  "wheel",
						Shape: shape,
						Legs:  []models.OptionLeg{params.Leg()},
					},
					Market: market,
					Metrics: models.StrategyMetrics{
						TotalCredit: eval.PremiumIncome,
						NetCost:     -eval.PremiumIncome,
						MaxRisk:     eval.CapitalRequired - eval.PremiumIncome,
						MaxProfit:   eval.MaxProfit,
						Breakevens:  []float64{eval.BreakEven},
					},
					Score: &score,
				}
				if err := app.Store.SaveAnalysis(ctx, record); err != nil {
					app.Logger.Warn().Err(err).Msg("Failed to save analysis to journal")
				}
			}

			if output.IsJSON() {
				return output.JSON(struct {
					Evaluation strategy.WheelEvaluation `json:"evaluation"`
					Score      models.ScoreResult       `json:"score"`
				}{eval, score})
			}

			displayWheel(output, shape, eval, score)
			return nil
		},
	}

	cmd.Flags().String("shape", "csp", "Wheel shape: csp (cash-secured put) or cc (covered call)")
	cmd.Flags().Float64("strike", 0, "Strike price (required)")
	cmd.Flags().Float64("premium", 0, "Premium per share (required)")
	cmd.Flags().Int("qty", 1, "Contracts")
	cmd.Flags().String("symbol", "", "Underlying symbol for the journal")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("premium")
	addMarketFlags(cmd)
	return cmd
}

func displayMetrics(output *Output, m models.StrategyMetrics, market models.MarketContext) {
	output.Bold("Strategy Analysis")
	output.Printf("  Underlying:  %s  DTE: %d\n\n", FormatPrice(market.UnderlyingPrice), market.DaysToExpiry)

	if m.NetCost >= 0 {
		output.Printf("  Net Debit:   %s\n", FormatPrice(m.NetCost))
	} else {
		output.Printf("  Net Credit:  %s\n", output.Green(FormatPrice(-m.NetCost)))
	}
	output.Printf("  Max Risk:    %s\n", output.Red(FormatPrice(m.MaxRisk)))
	if m.MaxProfit != 0 {
		output.Printf("  Max Profit:  %s\n", output.Green(FormatPrice(m.MaxProfit)))
	}
	for i, be := range m.Breakevens {
		output.Printf("  Breakeven %d: %s\n", i+1, FormatPrice(be))
	}
	if m.ReturnOnRiskValid {
		output.Printf("  Return/Risk: %s\n", FormatPercent(m.ReturnOnRisk*100))
	}
	output.Println()
	output.Printf("  Net Delta: %s  Gamma: %s  Theta: %s  Vega: %s\n",
		FormatGreek(m.NetGreeks.Delta), FormatGreek(m.NetGreeks.Gamma),
		FormatGreek(m.NetGreeks.Theta), FormatGreek(m.NetGreeks.Vega))
	output.Printf("  Direction: %s\n", string(m.Direction))
}

func displayWheel(output *Output, shape models.StrategyShape, eval strategy.WheelEvaluation, score models.ScoreResult) {
	name := "Cash-Secured Put"
	if shape == models.ShapeCoveredCall {
		name = "Covered Call"
	}
	output.Bold("Wheel Candidate - %s", name)
	output.Println()
	output.Printf("  Premium Income:    %s\n", output.Green(FormatPrice(eval.PremiumIncome)))
	output.Printf("  Capital Required:  %s\n", FormatPrice(eval.CapitalRequired))
	output.Printf("  Breakeven:         %s\n", FormatPrice(eval.BreakEven))
	output.Printf("  Max Profit:        %s\n", FormatPrice(eval.MaxProfit))
	output.Printf("  Premium Yield:     %s\n", FormatPercent(eval.PremiumYield))
	output.Printf("  Annualized Return: %s\n", FormatPercent(eval.AnnualizedReturn))
	output.Printf("  Prob. of Profit:   %s %s\n", FormatPercent(eval.ProbProfit), output.DimNote())
	output.Printf("  Delta:             %s\n", FormatGreek(eval.Delta))
	output.Println()

	label := string(score.Recommendation)
	switch score.Recommendation {
	case models.RecommendExcellent, models.RecommendGood:
		label = output.Green(label)
	case models.RecommendPoor:
		label = output.Red(label)
	}
	output.Printf("  Score: %s / 100  →  %s\n", output.BoldText(fmt.Sprintf("%d", score.Score)), label)
}

// DimNote returns the POP approximation disclaimer.
func (o *Output) DimNote() string {
	return o.ColoredString(ColorDim, "(delta approximation)")
}
