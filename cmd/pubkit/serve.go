package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eringen/pubkit"
	"github.com/eringen/pubkit/views"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build, serve and rebuild the site on changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		drafts, _ := flags.GetBool("drafts")
		addr, _ := flags.GetString("addr")
		if addr == "" {
			addr = siteCfg.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		b := pubkit.New(siteCfg, views.Default(), pubkit.WithLogger(logger), pubkit.WithDrafts(drafts))
		return pubkit.NewServer(b).Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().Bool("drafts", true, "include draft articles")
	serveCmd.Flags().String("addr", "", "listen address (default from config, \":4321\")")
	rootCmd.AddCommand(serveCmd)
}
