package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "envoverlay",
	Short:   "Inspect and apply environment-variable configuration overrides",
	Long: `Envoverlay resolves prefixed environment variables against a schema of
known configuration keys and writes the coerced values into a
configuration tree.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		readConfig(cmd)
		setupLogging()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "tool config file path (default: ./envoverlay.yaml)")
	rootCmd.PersistentFlags().String("schema", "", "schema file listing known keys (default: ./schema.yaml, env: ENVOVERLAY_SCHEMA_FILE)")
	rootCmd.PersistentFlags().String("prefix", "", "environment variable prefix (default: LIBRELOGIN_, env: ENVOVERLAY_OVERLAY_PREFIX)")
	rootCmd.PersistentFlags().Bool("json", false, "output results as JSON")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
