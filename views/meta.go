package views

import (
	"github.com/eringen/pubkit"
)

func homeMeta(site pubkit.SiteConfig) pubkit.PageMeta {
	return pubkit.PageMeta{
		Title:       site.Title,
		Description: site.Description,
		URL:         pubkit.BuildURL(site.URL),
		Path:        "/",
		OGType:      "website",
		JSONLD:      pubkit.WebsiteJsonLD(site),
	}
}

func listMeta(site pubkit.SiteConfig) pubkit.PageMeta {
	return pubkit.PageMeta{
		Title:       "Articles | " + site.Title,
		Description: site.Description,
		URL:         pubkit.BuildURL(site.URL, "articles"),
		Path:        "/articles/",
		OGType:      "website",
	}
}

func articleMeta(site pubkit.SiteConfig, a pubkit.Article) pubkit.PageMeta {
	meta := pubkit.PageMeta{
		Title:       a.Title + " | " + site.Title,
		Description: a.Description,
		URL:         pubkit.BuildURL(site.URL, "articles", a.Slug),
		Path:        a.Link(),
		OGType:      "article",
		JSONLD:      pubkit.ArticleJsonLD(a, site),
	}
	if a.HasCover() {
		meta.Image = pubkit.AbsoluteURL(site.URL, a.CoverImage)
	}
	return meta
}

func tagMeta(site pubkit.SiteConfig, tag string) pubkit.PageMeta {
	return pubkit.PageMeta{
		Title:       "Tagged “" + tag + "” | " + site.Title,
		Description: "Articles tagged " + tag + " on " + site.Title + ".",
		URL:         pubkit.BuildURL(site.URL, "tags", pubkit.Slugify(tag)),
		Path:        pubkit.TagLink(tag),
		OGType:      "website",
	}
}

func notFoundMeta(site pubkit.SiteConfig) pubkit.PageMeta {
	return pubkit.PageMeta{
		Title:  "Page not found | " + site.Title,
		URL:    pubkit.BuildURL(site.URL, "404"),
		Path:   "/404/",
		OGType: "website",
	}
}
