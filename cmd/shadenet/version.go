package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/shadenet"
	"github.com/aretw0/shadenet/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of shadenet",
	Run: func(cmd *cobra.Command, args []string) {
		if banner, _ := cmd.Flags().GetBool("banner"); banner {
			tui.PrintBanner(cmd.OutOrStdout(), shadenet.Version)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "shadenet version %s\n", strings.TrimSpace(shadenet.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("banner", false, "Print the banner")
}
