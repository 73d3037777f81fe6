package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/pubkit"
	"github.com/eringen/pubkit/scaffold"
)

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a draft article",
	Example: `  pubkit new "Why alt text matters" --tags a11y,images
  pubkit new my-first-post`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		description, _ := flags.GetString("description")
		tags, _ := flags.GetStringSlice("tags")
		author, _ := flags.GetString("author")
		if author == "" {
			author = siteCfg.Author
		}

		dir := filepath.Join(siteCfg.ContentDir, pubkit.ArticlesCollection)
		path, err := scaffold.Article(dir, scaffold.ArticleData{
			Title:       strings.Join(args, " "),
			Description: description,
			Author:      author,
			Tags:        tags,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  created %s\n", path)
		return nil
	},
}

func init() {
	newCmd.Flags().StringP("description", "d", "", "article description")
	newCmd.Flags().StringSlice("tags", nil, "comma separated tags")
	newCmd.Flags().String("author", "", "author (default from config)")
	rootCmd.AddCommand(newCmd)
}
