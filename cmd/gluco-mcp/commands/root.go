package commands

import (
	"context"

	"gluco-mcp/internal/config"
	"gluco-mcp/internal/logging"
	"gluco-mcp/internal/mcp"
	"gluco-mcp/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "gluco-mcp",
	Short: "Gluco-MCP is a glycemic-analytics MCP server for CGM data",
	Long: `An MCP server that computes time-in-range breakdowns, glycemic variability,
estimated HbA1c, risk indices and insulin summaries from CGM and pump exports.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("Gluco-MCP starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.OpenFile(cfg.StorePath)
		if err != nil {
			return err
		}
		defer st.Close()

		server := mcp.NewServer(cfg, st)
		return server.Run(context.Background())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
