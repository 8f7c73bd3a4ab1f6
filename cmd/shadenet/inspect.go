package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/shadenet/internal/presentation/tui"
	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/shade"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <layer-id> [prim-path]",
	Short: "Show the resolved view of a layer's shaders",
	Long: `Resolves every prim of the layer (or only prim-path): ports with their
composed connections, the active implementation source and sdrMetadata.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		var (
			summaries []shade.Summary
			doc       string
		)
		if len(args) == 2 {
			s, err := rt.Engine.Describe(cmd.Context(), args[0], domain.Path(args[1]))
			if err != nil {
				return err
			}
			summaries = append(summaries, s)
		} else {
			st, err := rt.Engine.Open(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("error inspecting layer '%s': %w", args[0], err)
			}
			doc = st.Doc()
			summaries = shade.DescribeStage(st)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summaries)
		}

		r := tui.NewRenderer(cmd.OutOrStdout())
		if raw, _ := cmd.Flags().GetBool("raw"); !raw {
			if md, err := tui.NewMarkdownRenderer(); err == nil {
				r.SetMarkdown(md)
			} else {
				rt.Logger.Debug("markdown rendering disabled", "err", err)
			}
		}
		r.Doc(doc)
		for _, s := range summaries {
			r.Summary(s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("json", false, "Print JSON summaries")
	inspectCmd.Flags().Bool("raw", false, "Print documentation without markdown rendering")
}
