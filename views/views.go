// Package views holds the default page components used by the pubkit CLI.
// Each component is a templ.Component, so a site can replace any of them
// through pubkit.ViewFuncs.
package views

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/pubkit"
	"github.com/eringen/pubkit/markdown"
)

// Default returns the built-in view set.
func Default() pubkit.ViewFuncs {
	return pubkit.ViewFuncs{
		Home:     Home,
		Articles: ArticleList,
		Article:  ArticlePage,
		Tag:      TagPage,
		NotFound: NotFound,
	}
}

// Layout wraps body in the document shell: head metadata, skip link,
// navigation and footer.
func Layout(site pubkit.SiteConfig, meta pubkit.PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(meta.Title)
		h.raw(`</title>`)
		if meta.Description != "" {
			h.raw(`<meta name="description"`)
			h.attr("content", meta.Description)
			h.raw(`>`)
		}
		h.raw(`<meta name="author"`)
		h.attr("content", site.Author)
		h.raw(`><link rel="canonical"`)
		h.attr("href", meta.URL)
		h.raw(`><meta property="og:title"`)
		h.attr("content", meta.Title)
		h.raw(`><meta property="og:type"`)
		h.attr("content", meta.OGType)
		h.raw(`><meta property="og:url"`)
		h.attr("content", meta.URL)
		h.raw(`><meta property="og:site_name"`)
		h.attr("content", site.Name)
		h.raw(`>`)
		if meta.Description != "" {
			h.raw(`<meta property="og:description"`)
			h.attr("content", meta.Description)
			h.raw(`>`)
		}
		if meta.Image != "" {
			h.raw(`<meta property="og:image"`)
			h.attr("content", meta.Image)
			h.raw(`>`)
		}
		h.raw(`<link rel="sitemap" href="/sitemap-index.xml">`)
		h.raw(`<link rel="alternate" type="application/rss+xml"`)
		h.attr("title", site.Title)
		h.raw(` href="/rss.xml">`)
		if meta.JSONLD != "" {
			// json.Marshal escapes <, > and &, so the payload cannot close the tag.
			h.raw(`<script type="application/ld+json">` + meta.JSONLD + `</script>`)
		}
		h.raw(`</head><body>`)
		h.raw(`<a class="skip-link" href="#main">Skip to content</a>`)
		h.raw(`<header class="site-header"><a class="site-name" href="/">`)
		h.text(site.Name)
		h.raw(`</a><nav aria-label="Main"><ul>`)
		for _, item := range site.Nav {
			h.raw(`<li><a`)
			h.attr("href", item.Href)
			if navActive(item.Href, meta.Path) {
				h.raw(` aria-current="page"`)
			}
			h.raw(`>`)
			h.text(item.Label)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></nav></header><main id="main">`)
		h.component(ctx, body)
		h.raw(`</main><footer class="site-footer"><p>&copy; `)
		h.raw(strconv.Itoa(time.Now().Year()))
		h.raw(` `)
		h.text(site.Author)
		h.raw(`</p>`)
		if links := site.Social.Links(); len(links) > 0 {
			h.raw(`<ul class="social">`)
			for _, l := range links {
				h.raw(`<li><a rel="me"`)
				h.attr("href", l.Href)
				h.raw(`>`)
				h.text(l.Label)
				h.raw(`</a></li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</footer></body></html>`)
		return h.err
	})
}

// Home renders the homepage with the most recent articles.
func Home(site pubkit.SiteConfig, recent []pubkit.Article) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<section class="intro"><h1>`)
		h.text(site.Title)
		h.raw(`</h1><p>`)
		h.text(site.Description)
		h.raw(`</p></section><section aria-labelledby="recent"><h2 id="recent">Recent articles</h2>`)
		articleItems(h, recent)
		h.raw(`<p><a href="/articles/">All articles</a></p></section>`)
		return h.err
	})
	return Layout(site, homeMeta(site), body)
}

// ArticleList renders the full article index with the tag cloud.
func ArticleList(site pubkit.SiteConfig, articles []pubkit.Article, tags []string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<h1>Articles</h1>`)
		if len(tags) > 0 {
			h.raw(`<nav aria-label="Tags">`)
			tagList(h, tags)
			h.raw(`</nav>`)
		}
		articleItems(h, articles)
		return h.err
	})
	return Layout(site, listMeta(site), body)
}

// ArticlePage renders one article with its related articles.
func ArticlePage(site pubkit.SiteConfig, a pubkit.Article, related []pubkit.Article) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<article><header><h1>`)
		h.text(a.Title)
		h.raw(`</h1>`)
		if a.Draft {
			h.raw(`<p class="draft-badge">Draft</p>`)
		}
		h.raw(`<p class="lede">`)
		h.text(a.Description)
		h.raw(`</p><p class="byline">`)
		timeTag(h, a)
		h.raw(` &middot; `)
		h.text(a.Author)
		h.raw(`</p></header>`)
		if a.HasCover() {
			// An empty alt marks the cover as decorative.
			h.raw(`<img class="cover"`)
			h.attr("src", a.CoverImage)
			h.attr("alt", a.CoverImageAlt)
			h.raw(`>`)
		}
		h.raw(`<div class="prose">`)
		h.component(ctx, markdown.HTML(a.HTML))
		h.raw(`</div>`)
		if len(a.Tags) > 0 {
			h.raw(`<footer><h2 class="visually-hidden">Tags</h2>`)
			tagList(h, a.Tags)
			h.raw(`</footer>`)
		}
		h.raw(`</article>`)
		if len(related) > 0 {
			h.raw(`<aside aria-labelledby="related"><h2 id="related">Related articles</h2>`)
			articleItems(h, related)
			h.raw(`</aside>`)
		}
		return h.err
	})
	return Layout(site, articleMeta(site, a), body)
}

// TagPage renders the articles carrying tag.
func TagPage(site pubkit.SiteConfig, tag string, articles []pubkit.Article) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<h1>Tagged &ldquo;`)
		h.text(tag)
		h.raw(`&rdquo;</h1>`)
		articleItems(h, articles)
		h.raw(`<p><a href="/articles/">All articles</a></p>`)
		return h.err
	})
	return Layout(site, tagMeta(site, tag), body)
}

// NotFound renders the 404 page.
func NotFound(site pubkit.SiteConfig) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<h1>Page not found</h1><p>The page you are looking for does not exist. `)
		h.raw(`<a href="/">Go to the homepage</a>.</p>`)
		return h.err
	})
	return Layout(site, notFoundMeta(site), body)
}

func articleItems(h *html, articles []pubkit.Article) {
	if len(articles) == 0 {
		h.raw(`<p>No articles yet.</p>`)
		return
	}
	h.raw(`<ul class="article-list">`)
	for _, a := range articles {
		h.raw(`<li><h3><a`)
		h.attr("href", a.Link())
		h.raw(`>`)
		h.text(a.Title)
		h.raw(`</a></h3>`)
		timeTag(h, a)
		h.raw(`<p>`)
		h.text(a.Description)
		h.raw(`</p></li>`)
	}
	h.raw(`</ul>`)
}

func timeTag(h *html, a pubkit.Article) {
	h.raw(`<time`)
	h.attr("datetime", a.Date.Format("2006-01-02"))
	h.raw(`>`)
	h.text(pubkit.FormatDate(a.Date))
	h.raw(`</time>`)
}

func tagList(h *html, tags []string) {
	h.raw(`<ul class="tags">`)
	for _, t := range tags {
		// Tags without a slug get no page, so they are shown unlinked.
		if pubkit.Slugify(t) == "" {
			h.raw(`<li><span class="tag">`)
			h.text(t)
			h.raw(`</span></li>`)
			continue
		}
		h.raw(`<li><a class="tag"`)
		h.attr("href", pubkit.TagLink(t))
		h.raw(`>`)
		h.text(t)
		h.raw(`</a></li>`)
	}
	h.raw(`</ul>`)
}
