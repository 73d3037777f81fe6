package pubkit

import (
	"regexp"
	"slices"
	"sort"
	"strings"
)

// RE2's \s is ASCII only. These classes also match \v, the Unicode space
// separators and U+FEFF, U+2028, U+2029.
var (
	reSlugStrip    = regexp.MustCompile(`[^\w\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}-]`)
	reSlugSeparate = regexp.MustCompile(`[\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}_-]+`)
)

// Slugify converts text to a URL-safe slug: lower-case ASCII letters, digits
// and single hyphens, never leading or trailing. Characters outside that set
// are dropped, so non-Latin text can produce an empty slug.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = reSlugStrip.ReplaceAllString(s, "")
	s = reSlugSeparate.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SortArticlesByDate returns a new slice with the articles ordered newest
// first. Articles sharing a date keep their input order. The input slice is
// not modified.
func SortArticlesByDate(articles []Article) []Article {
	sorted := slices.Clone(articles)
	if sorted == nil {
		sorted = []Article{}
	}
	slices.SortStableFunc(sorted, func(a, b Article) int {
		return b.Date.Compare(a.Date)
	})
	return sorted
}

// FilterDrafts returns a new slice without draft articles. When includeDrafts
// is true every article is kept; callers pass the site's development-mode
// flag here.
func FilterDrafts(articles []Article, includeDrafts bool) []Article {
	if includeDrafts {
		out := make([]Article, len(articles))
		copy(out, articles)
		return out
	}
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if !a.Draft {
			out = append(out, a)
		}
	}
	return out
}

// GetPublishedArticles filters drafts (unless includeDrafts) and sorts the
// remainder newest first.
func GetPublishedArticles(articles []Article, includeDrafts bool) []Article {
	return SortArticlesByDate(FilterDrafts(articles, includeDrafts))
}

// ListTags returns a sorted, deduplicated slice of lower-cased tags.
func ListTags(articles []Article) []string {
	set := make(map[string]struct{})
	for _, a := range articles {
		for _, t := range a.Tags {
			if tag := normalizeTag(t); tag != "" {
				set[tag] = struct{}{}
			}
		}
	}
	result := make([]string, 0, len(set))
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result
}

// FilterByTag returns the articles carrying tag, compared case-insensitively.
// An empty tag returns a copy of all articles.
func FilterByTag(articles []Article, tag string) []Article {
	normalized := normalizeTag(tag)
	if normalized == "" {
		return slices.Clone(articles)
	}
	var filtered []Article
	for _, a := range articles {
		for _, t := range a.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, a)
				break
			}
		}
	}
	return filtered
}

// RelatedArticles finds articles that share at least one tag with current.
func RelatedArticles(current Article, articles []Article) []Article {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		if tag := normalizeTag(t); tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []Article
	for _, a := range articles {
		if a.Slug == current.Slug {
			continue
		}
		for _, t := range a.Tags {
			if _, ok := tagSet[normalizeTag(t)]; ok {
				related = append(related, a)
				break
			}
		}
	}
	return related
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
