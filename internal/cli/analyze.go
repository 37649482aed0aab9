package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"options-lab/internal/analysis/payoff"
	"options-lab/internal/models"
)

// addAnalysisCommands adds the leg-level analysis commands.
func addAnalysisCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newGreeksCmd(app))
	rootCmd.AddCommand(newPayoffCmd(app))
}

// parseLeg parses a leg flag of the form side:type:strike:premium[:qty],
// e.g. "long:call:100:2.50:1". Quantity defaults to 1.
func parseLeg(s string) (models.OptionLeg, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 4 || len(parts) > 5 {
		return models.OptionLeg{}, fmt.Errorf("invalid leg %q: want side:type:strike:premium[:qty]", s)
	}

	var leg models.OptionLeg
	switch strings.ToLower(parts[0]) {
	case "long", "buy":
		leg.Side = models.Long
	case "short", "sell":
		leg.Side = models.Short
	default:
		return models.OptionLeg{}, fmt.Errorf("invalid leg side %q: want long|short", parts[0])
	}

	switch strings.ToLower(parts[1]) {
	case "call", "c":
		leg.Type = models.Call
	case "put", "p":
		leg.Type = models.Put
	default:
		return models.OptionLeg{}, fmt.Errorf("invalid leg type %q: want call|put", parts[1])
	}

	strike, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || strike <= 0 {
		return models.OptionLeg{}, fmt.Errorf("invalid leg strike %q", parts[2])
	}
	leg.Strike = strike

	premium, err := strconv.ParseFloat(parts[3], 64)
	if err != nil || premium < 0 {
		return models.OptionLeg{}, fmt.Errorf("invalid leg premium %q", parts[3])
	}
	leg.Premium = premium

	leg.Quantity = 1
	if len(parts) == 5 {
		qty, err := strconv.Atoi(parts[4])
		if err != nil || qty < 1 {
			return models.OptionLeg{}, fmt.Errorf("invalid leg quantity %q", parts[4])
		}
		leg.Quantity = qty
	}
	return leg, nil
}

func parseLegs(specs []string) ([]models.OptionLeg, error) {
	legs := make([]models.OptionLeg, 0, len(specs))
	for _, s := range specs {
		leg, err := parseLeg(s)
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

func marketFromFlags(cmd *cobra.Command) (models.MarketContext, error) {
	price, _ := cmd.Flags().GetFloat64("price")
	dte, _ := cmd.Flags().GetInt("dte")
	iv, _ := cmd.Flags().GetFloat64("iv")

	if price <= 0 {
		return models.MarketContext{}, fmt.Errorf("--price must be positive, got %v", price)
	}
	if dte < 0 {
		return models.MarketContext{}, fmt.Errorf("--dte must be non-negative, got %d", dte)
	}
	return models.MarketContext{
		UnderlyingPrice: price,
		DaysToExpiry:    dte,
		ImpliedVol:      iv,
	}, nil
}

func addMarketFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("price", 0, "Underlying price (required)")
	cmd.Flags().Int("dte", 30, "Days to expiry")
	cmd.Flags().Float64("iv", 0, "Implied volatility (default: assumed volatility)")
	cmd.MarkFlagRequired("price")
}

func newGreeksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greeks",
		Short: "Estimate option Greeks for one or more legs",
		Long: `Estimate approximate Greeks (Delta, Gamma, Theta, Vega) for a set
of legs from moneyness and time to expiry.

The estimates are display approximations, not exact pricing theory.`,
		Example: `  options-lab greeks --leg long:call:105:2.50 --price 100 --dte 30
  options-lab greeks --leg short:put:95:1.80:2 --leg short:call:110:1.20:2 --price 100 --dte 45`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			specs, _ := cmd.Flags().GetStringArray("leg")
			legs, err := parseLegs(specs)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if len(legs) == 0 {
				output.Error("At least one --leg is required")
				return fmt.Errorf("no legs provided")
			}
			market, err := marketFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			type legGreeks struct {
				Leg    models.OptionLeg `json:"leg"`
				Greeks models.Greeks    `json:"greeks"`
			}
			result := struct {
				Legs []legGreeks   `json:"legs"`
				Net  models.Greeks `json:"net"`
			}{}
			for _, leg := range legs {
				g := app.Estimator.Estimate(leg, market)
				result.Legs = append(result.Legs, legGreeks{Leg: leg, Greeks: g})
				result.Net = result.Net.Add(g)
			}

			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("Option Greeks")
			output.Printf("  Underlying: %s  DTE: %d\n\n", FormatPrice(market.UnderlyingPrice), market.DaysToExpiry)
			for i, lg := range result.Legs {
				output.Printf("  %d. %-5s %-4s %s @ %s x%d\n", i+1,
					lg.Leg.Side, lg.Leg.Type, FormatPrice(lg.Leg.Strike), FormatPrice(lg.Leg.Premium), lg.Leg.Quantity)
				output.Printf("     Delta: %s  Gamma: %s  Theta: %s  Vega: %s\n",
					FormatGreek(lg.Greeks.Delta), FormatGreek(lg.Greeks.Gamma),
					FormatGreek(lg.Greeks.Theta), FormatGreek(lg.Greeks.Vega))
			}
			output.Println()
			output.Bold("Net")
			output.Printf("  Delta: %s  Gamma: %s  Theta: %s  Vega: %s\n",
				FormatGreek(result.Net.Delta), FormatGreek(result.Net.Gamma),
				FormatGreek(result.Net.Theta), FormatGreek(result.Net.Vega))
			return nil
		},
	}

	cmd.Flags().StringArray("leg", nil, "Leg as side:type:strike:premium[:qty] (repeatable)")
	addMarketFlags(cmd)
	return cmd
}

func newPayoffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payoff",
		Short: "Generate a payoff curve at expiration",
		Long: `Sweep the settlement price across a symmetric range around the
underlying and print the strategy profit/loss at each sample.`,
		Example: `  options-lab payoff --leg long:call:100:3.20 --price 100 --dte 30
  options-lab payoff --leg short:put:95:2.10 --leg short:call:110:1.80 --price 100 --csv condor.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			specs, _ := cmd.Flags().GetStringArray("leg")
			legs, err := parseLegs(specs)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if len(legs) == 0 {
				output.Error("At least one --leg is required")
				return fmt.Errorf("no legs provided")
			}
			market, err := marketFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			sweep, _ := cmd.Flags().GetFloat64("range")
			samples, _ := cmd.Flags().GetInt("samples")
			if sweep <= 0 {
				sweep = app.Config.Analytics.SweepPercent
			}
			if samples <= 0 {
				samples = app.Config.Analytics.CurveSamples
			}

			curve := app.Generator.Curve(legs, market, payoff.RangeSpec{
				SweepPercent: sweep,
				Samples:      samples,
			})

			if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
				if err := writeCurveCSV(curve, csvPath); err != nil {
					output.Error("Failed to write CSV: %v", err)
					return err
				}
				output.Success("Payoff curve written to %s", csvPath)
				return nil
			}

			if output.IsJSON() {
				return output.JSON(curve)
			}

			displayCurve(output, curve, market.UnderlyingPrice)
			return nil
		},
	}

	cmd.Flags().StringArray("leg", nil, "Leg as side:type:strike:premium[:qty] (repeatable)")
	cmd.Flags().Float64("range", 0, "Sweep half-range as a fraction of the underlying")
	cmd.Flags().Int("samples", 0, "Number of curve samples")
	cmd.Flags().String("csv", "", "Write the curve to a CSV file instead of printing")
	addMarketFlags(cmd)
	return cmd
}

func writeCurveCSV(curve models.PayoffCurve, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	points := []models.PayoffPoint(curve)
	return gocsv.MarshalFile(&points, f)
}

// displayCurve prints the sampled curve, profit rows green, loss rows
// red, with a marker at the sample nearest the current underlying.
func displayCurve(output *Output, curve models.PayoffCurve, underlying float64) {
	profit := color.New(color.FgGreen)
	loss := color.New(color.FgRed)

	output.Bold("Payoff at Expiration")
	output.Printf("  %-12s %s\n", "Price", "P/L")

	nearest := 0
	for i, p := range curve {
		if abs(p.Price-underlying) < abs(curve[nearest].Price-underlying) {
			nearest = i
		}
	}

	for i, p := range curve {
		marker := " "
		if i == nearest {
			marker = "◀"
		}
		line := fmt.Sprintf("  %-12s %-14s %s", FormatPrice(p.Price), FormatSigned(p.ProfitLoss), marker)
		switch {
		case p.ProfitLoss > 0:
			profit.Fprintln(output.writer, line)
		case p.ProfitLoss < 0:
			loss.Fprintln(output.writer, line)
		default:
			output.Println(line)
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
