// Package pubkit builds a static blog from a collection of Markdown articles.
// It validates article front-matter, hides drafts outside development mode,
// orders articles newest first and renders pages, sitemap and feed.
//
// Users provide their own templ components via the ViewFuncs struct; the
// views package ships a default set.
package pubkit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"
)

// homeArticleLimit is how many recent articles the homepage lists.
const homeArticleLimit = 5

// ViewFuncs holds the templ components the builder renders pages with. This
// is the inversion-of-control mechanism that lets users own all templates.
type ViewFuncs struct {
	Home     func(site SiteConfig, recent []Article) templ.Component
	Articles func(site SiteConfig, articles []Article, tags []string) templ.Component
	Article  func(site SiteConfig, article Article, related []Article) templ.Component
	Tag      func(site SiteConfig, tag string, articles []Article) templ.Component
	NotFound func(site SiteConfig) templ.Component
}

func (v ViewFuncs) validate() error {
	if v.Home == nil || v.Articles == nil || v.Article == nil || v.Tag == nil || v.NotFound == nil {
		return errors.New("pubkit: every view func must be set")
	}
	return nil
}

// Builder turns the content directory into a rendered site in OutputDir.
type Builder struct {
	Config SiteConfig
	Views  ViewFuncs

	logger    *zap.Logger
	contentFS fs.FS
	cache     *ArticleCache
}

// Result summarizes a finished build.
type Result struct {
	Articles []Article // published listing, newest first
	Tags     []string
	Pages    int
	Elapsed  time.Duration
}

// New creates a Builder with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *Builder {
	cfg.setDefaults()

	b := &Builder{
		Config: cfg,
		Views:  views,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.contentFS == nil {
		b.contentFS = os.DirFS(b.Config.ContentDir)
	}
	return b
}

// WithContentFS reads content from fsys instead of Config.ContentDir.
func WithContentFS(fsys fs.FS) Option {
	return func(b *Builder) {
		b.contentFS = fsys
	}
}

// Published loads the articles collection and returns the listing pages are
// rendered from: drafts removed unless Config.Dev, newest first.
func (b *Builder) Published() ([]Article, error) {
	articles, err := loadArticles(b.contentFS, ArticlesCollection, b.cache)
	if err != nil {
		return nil, err
	}
	published := GetPublishedArticles(articles, b.Config.Dev)
	b.logger.Debug("articles loaded",
		zap.Int("total", len(articles)),
		zap.Int("published", len(published)),
		zap.Bool("drafts", b.Config.Dev))
	return published, nil
}

// Build cleans the output directory and writes the whole site into it. Any
// invalid article aborts the build before the output is touched.
func (b *Builder) Build(ctx context.Context) (Result, error) {
	start := time.Now()
	if err := b.Views.validate(); err != nil {
		return Result{}, err
	}

	articles, err := b.Published()
	if err != nil {
		return Result{}, fmt.Errorf("pubkit: load articles: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	out := b.Config.OutputDir
	if err := os.RemoveAll(out); err != nil {
		return Result{}, fmt.Errorf("pubkit: clean output: %w", err)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return Result{}, fmt.Errorf("pubkit: create output: %w", err)
	}

	if err := copyStatic(b.Config.StaticDir, out); err != nil {
		return Result{}, fmt.Errorf("pubkit: copy static: %w", err)
	}
	b.processCovers(articles)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	tags := ListTags(articles)
	pages, err := b.renderPages(ctx, articles, tags)
	if err != nil {
		return Result{}, fmt.Errorf("pubkit: render: %w", err)
	}

	if err := b.writeSitemap(articles, tags); err != nil {
		return Result{}, fmt.Errorf("pubkit: sitemap: %w", err)
	}
	if err := b.writeRSS(articles); err != nil {
		return Result{}, fmt.Errorf("pubkit: rss: %w", err)
	}
	if err := b.writeRobots(); err != nil {
		return Result{}, fmt.Errorf("pubkit: robots: %w", err)
	}

	res := Result{
		Articles: articles,
		Tags:     tags,
		Pages:    pages,
		Elapsed:  time.Since(start),
	}
	b.logger.Info("site built",
		zap.String("output", out),
		zap.Int("articles", len(articles)),
		zap.Int("pages", pages),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

type page struct {
	path string
	cmp  templ.Component
}

func (b *Builder) renderPages(ctx context.Context, articles []Article, tags []string) (int, error) {
	site := b.Config
	out := b.Config.OutputDir

	recent := articles
	if len(recent) > homeArticleLimit {
		recent = recent[:homeArticleLimit]
	}

	pages := []page{
		{filepath.Join(out, "index.html"), b.Views.Home(site, recent)},
		{filepath.Join(out, "articles", "index.html"), b.Views.Articles(site, articles, tags)},
		{filepath.Join(out, "404.html"), b.Views.NotFound(site)},
	}
	for _, a := range articles {
		pages = append(pages, page{
			filepath.Join(out, "articles", filepath.FromSlash(a.Slug), "index.html"),
			b.Views.Article(site, a, RelatedArticles(a, articles)),
		})
	}
	for _, tag := range tags {
		slug := Slugify(tag)
		if slug == "" {
			continue
		}
		pages = append(pages, page{
			filepath.Join(out, "tags", slug, "index.html"),
			b.Views.Tag(site, tag, FilterByTag(articles, tag)),
		})
	}

	for _, p := range pages {
		if err := RenderFile(ctx, p.path, p.cmp); err != nil {
			return 0, err
		}
		b.logger.Debug("page written", zap.String("path", p.path))
	}
	return len(pages), nil
}
