package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/librelogin/envoverlay"
	"github.com/librelogin/envoverlay/configtree"
	"github.com/librelogin/envoverlay/schema"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show which configuration keys the environment would override",
	Long: `Resolve performs a dry run. Variables carrying the overlay prefix are
matched against the schema and coerced, and the writes they would make
are printed without touching any configuration file.

By default the process environment is inspected. Pass --env to resolve
a synthetic environment instead:

  envoverlay resolve --env LIBRELOGIN_DATABASE_PORT=5433 --env LIBRELOGIN_DEBUG=yes`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringArray("env", nil, "resolve NAME=value instead of the process environment (repeatable)")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, _ []string) error {
	keys, err := loadSchema()
	if err != nil {
		return err
	}

	overlay := newOverrider()
	if pairs, flagErr := cmd.Flags().GetStringArray("env"); flagErr == nil && len(pairs) > 0 {
		overlay = envoverlay.New(envoverlay.Config{
			Prefix:  viper.GetString("overlay.prefix"),
			Environ: func() []string { return pairs },
		})
	}

	tree := configtree.New()
	res := overlay.Apply(tree, schema.Known(keys...))

	return getFormatter().FormatResult(os.Stdout, res)
}
