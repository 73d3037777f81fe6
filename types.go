package pubkit

import "time"

// Article is a validated entry of the articles collection. The front-matter
// fields are filled by ParseArticle; ID, Slug, Body and HTML are set by the
// loader.
type Article struct {
	Title         string
	Description   string
	Date          time.Time
	Author        string
	Draft         bool
	CoverImage    string // optional, empty when absent
	CoverImageAlt string // optional, empty when absent
	Tags          []string

	ID   string // collection-relative path without extension, "/"-separated
	Slug string
	Body string // raw Markdown
	HTML string // rendered body
}

// Link returns the site-relative URL of the article page.
func (a Article) Link() string {
	return "/articles/" + a.Slug + "/"
}

// TagLink returns the site-relative URL of a tag page.
func TagLink(tag string) string {
	return "/tags/" + Slugify(tag) + "/"
}

// HasCover reports whether the article declares a cover image.
func (a Article) HasCover() bool {
	return a.CoverImage != ""
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	Path        string // site-relative, marks the current nav entry
	OGType      string // "website" or "article"
	Image       string // og:image, absolute
	JSONLD      string
}
