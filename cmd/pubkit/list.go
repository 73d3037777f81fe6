package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eringen/pubkit"
	"github.com/eringen/pubkit/views"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List published articles, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := append([]pubkit.Option{pubkit.WithLogger(logger)}, draftOptions(cmd)...)
		b := pubkit.New(siteCfg, views.Default(), opts...)
		articles, err := b.Published()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, a := range articles {
			mark := ""
			if a.Draft {
				mark = "(draft)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", pubkit.FormatDate(a.Date), a.Title, a.Link(), mark)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().Bool("drafts", false, "include draft articles")
	rootCmd.AddCommand(listCmd)
}
