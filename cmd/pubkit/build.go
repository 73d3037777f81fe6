package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/pubkit"
	"github.com/eringen/pubkit/views"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site into the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		opts := append([]pubkit.Option{pubkit.WithLogger(logger)}, draftOptions(cmd)...)
		cfg := siteCfg
		if out, _ := flags.GetString("out"); out != "" {
			cfg.OutputDir = out
		}

		res, err := pubkit.New(cfg, views.Default(), opts...).Build(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages from %d articles in %s\n",
			res.Pages, len(res.Articles), res.Elapsed.Round(time.Millisecond))
		return nil
	},
}

func init() {
	buildCmd.Flags().Bool("drafts", false, "include draft articles")
	buildCmd.Flags().StringP("out", "o", "", "output directory (overrides config)")
	rootCmd.AddCommand(buildCmd)
}

// draftOptions overrides the configured draft visibility only when --drafts
// was given explicitly.
func draftOptions(cmd *cobra.Command) []pubkit.Option {
	if !cmd.Flags().Changed("drafts") {
		return nil
	}
	drafts, _ := cmd.Flags().GetBool("drafts")
	return []pubkit.Option{pubkit.WithDrafts(drafts)}
}
