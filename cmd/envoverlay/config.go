package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/librelogin/envoverlay"
	"github.com/librelogin/envoverlay/schema"
)

func init() {
	setDefaults()
}

func setDefaults() {
	viper.SetDefault("overlay.prefix", envoverlay.DefaultPrefix)

	viper.SetDefault("schema.file", "schema.yaml")

	viper.SetDefault("output.json", false)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"schema": "schema.file",
	"prefix": "overlay.prefix",
	"json":   "output.json",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

func readConfig(cmd *cobra.Command) {
	bindFlags(viper.GetViper(), cmd.Flags())

	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("envoverlay")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("ENVOVERLAY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			slog.Warn("error reading config file", "err", err)
		}
	}
}

// loadSchema reads the schema file named by configuration.
func loadSchema() ([]schema.Key, error) {
	path := viper.GetString("schema.file")
	keys, err := schema.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", path, err)
	}
	return keys, nil
}

// newOverrider builds the engine from the configured prefix.
func newOverrider() *envoverlay.Overrider {
	return envoverlay.New(envoverlay.Config{
		Prefix: viper.GetString("overlay.prefix"),
	})
}
