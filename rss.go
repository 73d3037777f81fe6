package pubkit

import (
	"encoding/xml"
	"path/filepath"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Author      string   `xml:"author,omitempty"`
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
}

func (b *Builder) feed(articles []Article) rssXML {
	base := b.Config.URL
	items := make([]rssItem, 0, len(articles))
	for _, a := range articles {
		articleURL := BuildURL(base, "articles", a.Slug)
		items = append(items, rssItem{
			Title:       a.Title,
			Link:        articleURL,
			Description: a.Description,
			Author:      a.Author,
			Categories:  a.Tags,
			PubDate:     a.Date.Format(time.RFC1123Z),
			GUID:        articleURL,
		})
	}
	return rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       b.Config.Title,
			Link:        BuildURL(base),
			Description: b.Config.Description,
			Items:       items,
		},
	}
}

func (b *Builder) writeRSS(articles []Article) error {
	return writeXML(filepath.Join(b.Config.OutputDir, "rss.xml"), b.feed(articles))
}
