package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gluco-mcp/internal/export"
	"gluco-mcp/internal/insulin"
	"gluco-mcp/internal/metrics"
	"gluco-mcp/internal/store"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	reportOut  string
	reportOpen bool
)

// report is the full JSON document the report command emits.
type report struct {
	GeneratedAt time.Time              `json:"generatedAt"`
	Summary     *metrics.Summary       `json:"summary"`
	Insulin     []insulin.DailySummary `json:"insulin,omitempty"`
}

var reportCmd = &cobra.Command{
	Use:   "report [export-file]",
	Short: "Compute a glycemic report and print it as JSON",
	Long: `Computes the full glycemic summary either from a JSON export file given as
argument or, without one, from the readings previously imported into the store.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		glucose, doses, err := reportInput(cmd.Context(), args)
		if err != nil {
			return err
		}

		summary, err := metrics.Summarize(cmd.Context(), glucose, cfg.Thresholds, cfg.CategoryMode, time.Time{})
		if err != nil {
			return err
		}
		doc := report{
			GeneratedAt: time.Now(),
			Summary:     summary,
			Insulin:     insulin.DailySummaries(doses),
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}

		out := reportOut
		if out == "" && reportOpen {
			out = filepath.Join(os.TempDir(), "gluco-mcp-report.json")
		}
		if out == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		log.Info().Str("path", out).Msg("report written")
		if reportOpen {
			return browser.OpenFile(out)
		}
		return nil
	},
}

func reportInput(ctx context.Context, args []string) ([]metrics.Reading, []insulin.Reading, error) {
	if len(args) == 1 {
		file, err := export.Load(args[0])
		if err != nil {
			return nil, nil, err
		}
		return file.Glucose, file.Insulin, nil
	}

	st, err := store.OpenFile(cfg.StorePath)
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()

	glucose, err := st.QueryGlucose(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, nil, err
	}
	doses, err := st.QueryInsulin(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, nil, err
	}
	return glucose, doses, nil
}

func init() {
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "write the report to a file instead of stdout")
	reportCmd.Flags().BoolVar(&reportOpen, "open", false, "open the written report in the default browser")
	rootCmd.AddCommand(reportCmd)
}
