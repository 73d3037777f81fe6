package pubkit

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/eringen/pubkit/markdown"
)

// ArticlesCollection is the directory, relative to the content dir, that
// holds the article entries.
const ArticlesCollection = "articles"

// ErrNoFrontMatter is returned for content files without a front-matter block.
var ErrNoFrontMatter = errors.New("no front matter")

// ErrDuplicateSlug is returned when two entries resolve to the same page.
var ErrDuplicateSlug = errors.New("duplicate slug")

var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// LoadArticles reads every Markdown entry under dir in fsys, validates its
// front-matter and renders its body. The first invalid entry aborts the load
// with an error naming the file; schema failures wrap *SchemaValidationError.
func LoadArticles(fsys fs.FS, dir string) ([]Article, error) {
	return loadArticles(fsys, dir, nil)
}

func loadArticles(fsys fs.FS, dir string, cache *ArticleCache) ([]Article, error) {
	var articles []Article
	seen := make(map[string]struct{})
	owners := make(map[string]string) // slug -> file
	add := func(p string, a Article) error {
		if prev, ok := owners[a.Slug]; ok {
			return fmt.Errorf("%w %q: %s and %s", ErrDuplicateSlug, a.Slug, prev, p)
		}
		owners[a.Slug] = p
		articles = append(articles, a)
		return nil
	}
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// A site without an articles directory has no articles.
			if p == dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() || !isContentFile(d.Name()) {
			return nil
		}
		var info fs.FileInfo
		if cache != nil {
			if info, err = d.Info(); err != nil {
				return fmt.Errorf("stat %s: %w", p, err)
			}
			seen[p] = struct{}{}
			if a, ok := cache.get(p, info); ok {
				return add(p, a)
			}
		}
		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, dir), "/")
		a, err := ParseArticleFile(entryID(rel), src)
		if err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		if cache != nil {
			cache.put(p, info, a)
		}
		return add(p, a)
	})
	if err != nil {
		return nil, err
	}
	if cache != nil {
		cache.retain(seen)
	}
	if articles == nil {
		articles = []Article{}
	}
	return articles, nil
}

// ParseArticleFile splits src into front-matter and body, validates the
// front-matter and renders the body to HTML.
func ParseArticleFile(id string, src []byte) (Article, error) {
	var fm map[string]any
	body, err := frontmatter.MustParse(bytes.NewReader(src), &fm, frontMatterFormats...)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return Article{}, ErrNoFrontMatter
		}
		return Article{}, fmt.Errorf("parse front matter: %w", err)
	}
	a, err := ParseArticle(id, fm)
	if err != nil {
		return Article{}, err
	}
	if a.Slug == "" {
		a.Slug = slugFromID(id)
	}
	if a.Slug == "" {
		// File names in non-Latin scripts slugify to nothing.
		a.Slug = Slugify(a.Title)
	}
	if a.Slug == "" {
		return Article{}, invalid(id, "slug", "neither the file name nor the title yields a URL slug; set slug in the front matter")
	}
	a.Body = string(body)
	html, err := markdown.Render(body)
	if err != nil {
		return Article{}, fmt.Errorf("render markdown: %w", err)
	}
	a.HTML = html
	return a, nil
}

func isContentFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".mdx", ".markdown":
		return true
	}
	return false
}

func entryID(rel string) string {
	return strings.TrimSuffix(rel, path.Ext(rel))
}

// slugFromID slugifies each path segment of a collection ID, so
// "2024/Hello World" becomes "2024/hello-world".
func slugFromID(id string) string {
	segments := strings.Split(id, "/")
	out := segments[:0]
	for _, s := range segments {
		if slug := Slugify(s); slug != "" {
			out = append(out, slug)
		}
	}
	return strings.Join(out, "/")
}
