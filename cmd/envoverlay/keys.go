package main

import (
	"os"

	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the configuration keys declared by the schema",
	RunE:  runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func runKeys(_ *cobra.Command, _ []string) error {
	keys, err := loadSchema()
	if err != nil {
		return err
	}
	return getFormatter().FormatKeys(os.Stdout, keys)
}
