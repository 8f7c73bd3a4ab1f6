package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <layer-id>",
	Short: "Export the shading network visualization",
	Long:  `Outputs a Mermaid diagram (graph LR) of the layer: prims, inherit arcs and resolved connections.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		output, err := rt.Engine.Graph(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error rendering graph: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
