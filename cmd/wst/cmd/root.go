package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tehiaohiao/wst/pkg/config"
	"github.com/Tehiaohiao/wst/pkg/di"
)

type containerKey struct{}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wst",
	Short: "wst - a working-set tree",
	Long: `wst is an in-memory ordered dictionary that amortizes access cost
toward recently used keys via a cascade of B-trees of increasing capacity.

Every subcommand builds a fresh, empty cascade from the configured tier
geometry (wst holds no state between invocations; use "serve" or
"import" for anything that needs the cascade to see more than one key).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		cfg := config.DefaultConfig()
		if configPath != "" {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
		}

		container, err := di.NewContainer(cfg)
		if err != nil {
			return fmt.Errorf("failed to build cascade: %w", err)
		}

		cmd.SetContext(context.WithValue(cmd.Context(), containerKey{}, container))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(); it only needs to happen
// once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to a wst config file (uses built-in defaults if unset)")
}

func containerFrom(cmd *cobra.Command) (*di.Container, error) {
	container, ok := cmd.Context().Value(containerKey{}).(*di.Container)
	if !ok {
		return nil, fmt.Errorf("dependency container not found in context")
	}
	return container, nil
}
