package pubkit

import (
	"encoding/xml"
	"os"
	"path/filepath"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapIndex struct {
	XMLName  xml.Name       `xml:"sitemapindex"`
	XMLNS    string         `xml:"xmlns,attr"`
	Sitemaps []sitemapEntry `xml:"sitemap"`
}

type sitemapEntry struct {
	Loc string `xml:"loc"`
}

// sitemapURLs lists every rendered page: home, article index, articles and
// tag pages.
func sitemapURLs(base string, articles []Article, tags []string) []sitemapURL {
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
		{Loc: BuildURL(base, "articles")},
	}
	for _, a := range articles {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "articles", a.Slug),
			LastMod: a.Date.Format("2006-01-02"),
		})
	}
	for _, t := range tags {
		if slug := Slugify(t); slug != "" {
			urls = append(urls, sitemapURL{Loc: BuildURL(base, "tags", slug)})
		}
	}
	return urls
}

// writeSitemap writes sitemap-0.xml and the sitemap-index.xml pointing at it.
func (b *Builder) writeSitemap(articles []Article, tags []string) error {
	base := b.Config.URL
	set := sitemapURLSet{
		XMLNS: sitemapNS,
		URLs:  sitemapURLs(base, articles, tags),
	}
	if err := writeXML(filepath.Join(b.Config.OutputDir, "sitemap-0.xml"), set); err != nil {
		return err
	}
	index := sitemapIndex{
		XMLNS:    sitemapNS,
		Sitemaps: []sitemapEntry{{Loc: base + "/sitemap-0.xml"}},
	}
	return writeXML(filepath.Join(b.Config.OutputDir, "sitemap-index.xml"), index)
}

func writeXML(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(xml.Header); err != nil {
		return err
	}
	if err := xml.NewEncoder(f).Encode(v); err != nil {
		return err
	}
	return f.Close()
}

// writeRobots writes a robots.txt referencing the sitemap, unless the static
// directory already supplied one.
func (b *Builder) writeRobots() error {
	path := filepath.Join(b.Config.OutputDir, "robots.txt")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	body := "User-agent: *\nAllow: /\n\nSitemap: " + b.Config.URL + "/sitemap-index.xml\n"
	return os.WriteFile(path, []byte(body), 0o644)
}
