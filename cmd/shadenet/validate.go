package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <layer-id>",
	Short: "Check a layer for consistency",
	Long:  `Reports missing inherit targets, dangling or non-port connections and shaders whose active implementation source has no record.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.Engine.Validate(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Layer is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
