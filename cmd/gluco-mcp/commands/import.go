package commands

import (
	"time"

	"gluco-mcp/internal/export"
	"gluco-mcp/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <export-file>",
	Short: "Import a JSON export into the local store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := export.Load(args[0])
		if err != nil {
			return err
		}

		st, err := store.OpenFile(cfg.StorePath)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.SaveGlucose(cmd.Context(), file.Glucose); err != nil {
			return err
		}
		if err := st.SaveInsulin(cmd.Context(), file.Insulin); err != nil {
			return err
		}

		ev := log.Info().
			Str("path", args[0]).
			Int("glucose", len(file.Glucose)).
			Int("insulin", len(file.Insulin))
		if first, last := file.Span(); !first.IsZero() {
			ev = ev.Str("from", first.Format(time.RFC3339)).Str("to", last.Format(time.RFC3339))
		}
		ev.Msg("export imported")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
