package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var layersCmd = &cobra.Command{
	Use:   "layers",
	Short: "Manage stored layers",
}

var layersLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored layers",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ids, err := rt.Engine.Layers(cmd.Context())
		if err != nil {
			return fmt.Errorf("error listing layers: %w", err)
		}
		if len(ids) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No layers found.")
			return nil
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), "- "+id)
		}
		return nil
	},
}

var layersImportCmd = &cobra.Command{
	Use:   "import <layer-id> <file>",
	Short: "Import a layer or network document (YAML or JSON)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		rt, _, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.Engine.Import(cmd.Context(), args[0], data); err != nil {
			return fmt.Errorf("error importing %s: %w", args[1], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Layer '%s' imported.\n", args[0])
		return nil
	},
}

var layersExportCmd = &cobra.Command{
	Use:   "export <layer-id>",
	Short: "Print a stored layer document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		layer, err := rt.Engine.Export(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error loading layer '%s': %w", args[0], err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(layer)
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		return enc.Encode(layer)
	},
}

var layersRmCmd = &cobra.Command{
	Use:   "rm <layer-id>",
	Short: "Remove a stored layer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.Engine.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("error removing layer '%s': %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Layer '%s' removed.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(layersCmd)
	layersCmd.AddCommand(layersLsCmd, layersImportCmd, layersExportCmd, layersRmCmd)
	layersExportCmd.Flags().Bool("json", false, "Print JSON instead of YAML")
}
