package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/librelogin/envoverlay/schema"
)

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Interactively create a schema file",
	Long: `Init asks for key paths and comments and writes them to a schema file.
Without an argument the configured schema file is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, args []string) error {
	target := viper.GetString("schema.file")
	if len(args) == 1 {
		target = args[0]
	}

	if _, err := os.Stat(target); err == nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Schema %s already exists. Overwrite", target),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			return handlePromptError(err) //nolint:nilerr // User cancelled, not an error.
		}
	}

	var keys []schema.Key
	for {
		pathPrompt := promptui.Prompt{
			Label: "Key path (empty to finish)",
			Validate: func(input string) error {
				if input == "" {
					return nil
				}
				if !schema.IsValidKeyPath(input) {
					return errors.New("key paths are dot-separated words, e.g. database.host")
				}
				return nil
			},
		}
		path, err := pathPrompt.Run()
		if err != nil {
			return handlePromptError(err)
		}
		if path == "" {
			break
		}

		commentPrompt := promptui.Prompt{Label: "Comment (optional)"}
		comment, err := commentPrompt.Run()
		if err != nil {
			return handlePromptError(err)
		}

		keys = append(keys, schema.NewKey(path, nil, comment))
	}

	if len(keys) == 0 {
		fmt.Println("No keys declared, nothing written.")
		return nil
	}

	if err := schema.SaveFile(target, keys); err != nil {
		return fmt.Errorf("save schema %s: %w", target, err)
	}

	fmt.Printf("Wrote %d key(s) to %s\n", len(keys), target)
	return nil
}

// handlePromptError handles common prompt errors like interrupts.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		// User answered no to a confirmation.
		return nil
	}
	return err
}
