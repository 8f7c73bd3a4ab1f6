package main

import (
	"fmt"
	"os"

	"github.com/aretw0/shadenet/internal/cli"
	"github.com/aretw0/shadenet/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shadenet",
	Short: "shadenet inspects and serves shading networks",
	Long: `shadenet stores shading networks as layer documents and resolves them:
ports, connections across inherit arcs, implementation sources and sdrMetadata.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.FileName, "Path to the config file")
	rootCmd.PersistentFlags().String("dir", "", "Layer directory (overrides store.dir)")
	rootCmd.PersistentFlags().String("store", "", "Store backend: memory, file or redis (overrides store.backend)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every authoring event")
}

// loadRuntime reads the config, applies command-line overrides and builds the engine.
func loadRuntime(cmd *cobra.Command) (*cli.Runtime, *config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Store.Dir = dir
	}
	if store, _ := cmd.Flags().GetString("store"); store != "" {
		cfg.Store.Backend = store
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	rt, err := cli.NewRuntime(cfg, debug)
	if err != nil {
		return nil, nil, err
	}
	return rt, cfg, nil
}
