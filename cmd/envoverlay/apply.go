package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/librelogin/envoverlay/configtree"
	"github.com/librelogin/envoverlay/schema"
)

var applyCmd = &cobra.Command{
	Use:   "apply <config.yaml>",
	Short: "Merge environment overrides into a configuration file",
	Long: `Apply reads a YAML configuration file, overlays every matching
environment variable onto it and emits the merged document. Key order
of the input file is preserved; new keys are appended at the end.

The merged configuration is printed to stdout unless --output names a
file, in which case it is written atomically.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringP("output", "o", "", "write the merged configuration to a file instead of stdout")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	keys, err := loadSchema()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0]) //nolint:gosec // Path comes from the command line.
	if err != nil {
		return fmt.Errorf("read config %s: %w", args[0], err)
	}

	tree, err := configtree.FromYAML(data)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", args[0], err)
	}

	res := newOverrider().Apply(tree, schema.Known(keys...))
	slog.Info("merged environment overrides", "applied", len(res.Applied), "failed", len(res.Failures))

	out, err := tree.ToYAML()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	target, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if target == "" {
		_, writeErr := os.Stdout.Write(out)
		return writeErr
	}
	return writeFileAtomic(target, out)
}

// writeFileAtomic writes data to a temporary file in the target directory
// and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".t%s", uuid.New().String()))
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
