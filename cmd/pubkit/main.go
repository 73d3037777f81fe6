// Command pubkit builds, serves and scaffolds a pubkit blog.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/pubkit"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile  string
	jsonLogs bool
	verbose  bool

	siteCfg pubkit.SiteConfig
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "pubkit",
	Short: "pubkit - a Markdown blog builder with Go and templ",
	Long: `pubkit reads Markdown articles with YAML or TOML front-matter from
<contentDir>/articles, validates them and renders a static site with
article, tag, sitemap and RSS pages into the output directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if logger, err = newLogger(jsonLogs, verbose); err != nil {
			return err
		}
		// A missing .env is normal outside local development.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("could not read .env", zap.Error(err))
		}
		siteCfg, err = pubkit.LoadConfig(cfgFile)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./site.yaml or ./site.toml)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "log as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pubkit version",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pubkit %s\n", version)
	},
}

func newLogger(asJSON, debug bool) (*zap.Logger, error) {
	var cfg zap.Config
	if asJSON {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
