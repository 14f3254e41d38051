package cmd

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swrand",
	Short: "Build, query, and inspect small-world random-graph indexes",
}

// Execute runs the CLI. Each invocation gets a fresh run id so its log
// lines can be correlated with the Prometheus metrics it emits, the way
// a benchmark session stitches together several short-lived runs.
func Execute() error {
	runID := uuid.NewString()
	log.Logger = log.With().Str("run_id", runID).Logger()
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(buildCmd, searchCmd, saveCmd, loadCmd, benchCmd)
}
