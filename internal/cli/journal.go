package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"options-lab/internal/store"
)

// addJournalCommands adds the analysis journal commands.
func addJournalCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Browse past strategy analyses",
	}
	cmd.AddCommand(newJournalListCmd(app))
	cmd.AddCommand(newJournalShowCmd(app))
	rootCmd.AddCommand(cmd)
}

func newJournalListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved analyses",
		Example: `  options-lab journal list
  options-lab journal list --symbol AAPL --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Error("Journal store is unavailable")
				return fmt.Errorf("store not configured")
			}

			symbol, _ := cmd.Flags().GetString("symbol")
			strategyName, _ := cmd.Flags().GetString("strategy")
			limit, _ := cmd.Flags().GetInt("limit")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			records, err := app.Store.ListAnalyses(ctx, store.AnalysisFilter{
				Symbol:   symbol,
				Strategy: strategyName,
				Limit:    limit,
			})
			if err != nil {
				output.Error("Failed to list analyses: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(records)
			}

			if len(records) == 0 {
				output.Dim("No analyses recorded yet")
				return nil
			}

			output.Bold("Analysis Journal")
			output.Printf("  %-24s %-12s %-10s %-14s %-6s %s\n",
				"ID", "Date", "Symbol", "Strategy", "Score", "Recommendation")
			for _, r := range records {
				score := "-"
				recommendation := "-"
				if r.Score != nil {
					score = fmt.Sprintf("%d", r.Score.Score)
					recommendation = string(r.Score.Recommendation)
				}
				symbol := r.Symbol
				if symbol == "" {
					symbol = "-"
				}
				output.Printf("  %-24s %-12s %-10s %-14s %-6s %s\n",
					r.ID, r.Timestamp.Format(app.Config.UI.DateFormat),
					symbol, r.Strategy.Name, score, recommendation)
			}
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "Filter by symbol")
	cmd.Flags().String("strategy", "", "Filter by strategy name")
	cmd.Flags().Int("limit", 20, "Maximum entries to show")
	return cmd
}

func newJournalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Error("Journal store is unavailable")
				return fmt.Errorf("store not configured")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			record, err := app.Store.GetAnalysis(ctx, args[0])
			if err != nil {
				output.Error("Failed to load analysis: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(record)
			}

			output.Bold("Analysis %s", record.ID)
			output.Printf("  Date:     %s\n", record.Timestamp.Format(time.RFC3339))
			if record.Symbol != "" {
				output.Printf("  Symbol:   %s\n", record.Symbol)
			}
			output.Printf("  Strategy: %s\n", record.Strategy.Name)
			for i, leg := range record.Strategy.Legs {
				output.Printf("    %d. %-5s %-4s %s @ %s x%d\n", i+1,
					leg.Side, leg.Type, FormatPrice(leg.Strike), FormatPrice(leg.Premium), leg.Quantity)
			}
			output.Println()
			displayMetrics(output, record.Metrics, record.Market)
			if record.Score != nil {
				output.Println()
				output.Printf("  Score: %d / 100  (%s)\n", record.Score.Score, record.Score.Recommendation)
			}
			return nil
		},
	}
}
