package pubkit

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NavItem is one entry of the main navigation menu.
type NavItem struct {
	Label string `mapstructure:"label"`
	Href  string `mapstructure:"href"`
}

// Social holds optional social media handles.
type Social struct {
	GitHub   string `mapstructure:"github"`
	LinkedIn string `mapstructure:"linkedin"`
}

// SocialLink is a rendered social profile link.
type SocialLink struct {
	Label string
	Href  string
}

// Links returns profile URLs for the handles that are set, in a fixed order.
func (s Social) Links() []SocialLink {
	var links []SocialLink
	if s.GitHub != "" {
		links = append(links, SocialLink{Label: "GitHub", Href: "https://github.com/" + s.GitHub})
	}
	if s.LinkedIn != "" {
		links = append(links, SocialLink{Label: "LinkedIn", Href: "https://www.linkedin.com/in/" + s.LinkedIn})
	}
	return links
}

// SiteConfig holds all configuration for a pubkit site. It is built once at
// startup and passed by value; nothing mutates it afterwards.
type SiteConfig struct {
	Name        string    `mapstructure:"name"`        // Site name (footer, publisher)
	Title       string    `mapstructure:"title"`       // Homepage and meta title
	Description string    `mapstructure:"description"` // SEO and feed description
	URL         string    `mapstructure:"url"`         // Canonical URL
	Author      string    `mapstructure:"author"`
	Social      Social    `mapstructure:"social"`
	Nav         []NavItem `mapstructure:"nav"`

	ContentDir string `mapstructure:"contentDir"` // default "src/content"
	StaticDir  string `mapstructure:"staticDir"`  // default "public"
	OutputDir  string `mapstructure:"outputDir"`  // default "dist"
	Addr       string `mapstructure:"addr"`       // dev server, default ":4321"
	Dev        bool   `mapstructure:"dev"`        // include drafts
	CoverWidth int    `mapstructure:"coverWidth"` // default 1200
}

var defaultSite = SiteConfig{
	Name:        "access.today",
	Title:       "access.today",
	Description: "A blog about accessibility, technology, and inclusive design by Charles Hall.",
	URL:         "https://access.today",
	Author:      "Charles Hall",
	Social: Social{
		GitHub:   "github-username",
		LinkedIn: "linkedin-username",
	},
	Nav: []NavItem{
		{Label: "Home", Href: "/"},
		{Label: "Articles", Href: "/articles"},
	},
}

// DefaultSiteConfig returns a copy of the built-in site configuration with
// build settings defaulted.
func DefaultSiteConfig() SiteConfig {
	cfg := defaultSite
	cfg.Nav = slices.Clone(defaultSite.Nav)
	cfg.setDefaults()
	return cfg
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.Title == "" {
		c.Title = c.Name
	}
	if c.URL == "" {
		c.URL = "http://localhost:4321"
	}
	if c.ContentDir == "" {
		c.ContentDir = "src/content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.Addr == "" {
		c.Addr = ":4321"
	}
	if c.CoverWidth <= 0 {
		c.CoverWidth = 1200
	}
}

// LoadConfig layers the built-in defaults, the optional config file at path
// (or ./site.{yaml,toml} when path is empty), PUBKIT_* environment variables
// and PUBLIC_SITE_URL.
func LoadConfig(path string) (SiteConfig, error) {
	v := viper.New()

	def := DefaultSiteConfig()
	v.SetDefault("name", def.Name)
	v.SetDefault("title", def.Title)
	v.SetDefault("description", def.Description)
	v.SetDefault("url", def.URL)
	v.SetDefault("author", def.Author)
	v.SetDefault("social.github", def.Social.GitHub)
	v.SetDefault("social.linkedin", def.Social.LinkedIn)
	v.SetDefault("nav", navDefaults(def.Nav))
	v.SetDefault("contentDir", def.ContentDir)
	v.SetDefault("staticDir", def.StaticDir)
	v.SetDefault("outputDir", def.OutputDir)
	v.SetDefault("addr", def.Addr)
	v.SetDefault("dev", def.Dev)
	v.SetDefault("coverWidth", def.CoverWidth)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("site")
	}

	v.SetEnvPrefix("PUBKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return SiteConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if u := os.Getenv("PUBLIC_SITE_URL"); u != "" {
		cfg.URL = u
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	cfg.setDefaults()
	return cfg, nil
}

func navDefaults(nav []NavItem) []map[string]any {
	out := make([]map[string]any, 0, len(nav))
	for _, n := range nav {
		out = append(out, map[string]any{"label": n.Label, "href": n.Href})
	}
	return out
}

// Option configures additional Builder behavior.
type Option func(*Builder)

// WithLogger sets the structured logger used during builds and serving.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithDrafts overrides the configured development-mode draft visibility.
func WithDrafts(include bool) Option {
	return func(b *Builder) {
		b.Config.Dev = include
	}
}
