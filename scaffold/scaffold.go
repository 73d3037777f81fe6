// Package scaffold creates new article files from the embedded template.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/eringen/pubkit"
)

// Templates contains the scaffold template files. Files use Go text/template
// syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// ErrExists is returned when the target article file already exists.
var ErrExists = errors.New("article already exists")

// ArticleData describes the article to scaffold.
type ArticleData struct {
	Title       string
	Description string
	Author      string
	Tags        []string
	Date        time.Time
}

// frontMatter fixes the key order of the generated YAML.
type frontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Author      string   `yaml:"author,omitempty"`
	Draft       bool     `yaml:"draft"`
	Tags        []string `yaml:"tags"`
}

// Article writes a new draft article into dir and returns its path. The file
// name is the slug of the title. Existing files are never overwritten.
func Article(dir string, data ArticleData) (string, error) {
	title := ToTitle(data.Title)
	slug := pubkit.Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("title %q has no usable characters for a file name", data.Title)
	}
	if data.Date.IsZero() {
		data.Date = time.Now()
	}
	tags := data.Tags
	if tags == nil {
		tags = []string{}
	}

	fm, err := yaml.Marshal(frontMatter{
		Title:       title,
		Description: data.Description,
		Date:        data.Date.Format("2006-01-02"),
		Author:      data.Author,
		Draft:       true,
		Tags:        tags,
	})
	if err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}

	content, err := Templates.ReadFile("templates/article.md.tmpl")
	if err != nil {
		return "", err
	}
	tmpl, err := template.New("article").Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct {
		Title       string
		FrontMatter string
	}{title, string(fm)}); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, slug+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrExists, path)
		}
		return "", err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// ToTitle turns a slug-like name into title case; "my-first-post" becomes
// "My First Post". Text that already contains spaces is kept as written.
func ToTitle(s string) string {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, " \t") {
		return s
	}
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	return cases.Title(language.English).String(strings.Join(words, " "))
}
