package pubkit

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func article(slug, date string, draft bool, tags ...string) Article {
	if tags == nil {
		tags = []string{}
	}
	return Article{
		Title:       slug,
		Description: slug + " description",
		Date:        day(date),
		Author:      DefaultAuthor,
		Draft:       draft,
		Tags:        tags,
		ID:          slug,
		Slug:        slug,
	}
}

func slugs(articles []Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.Slug
	}
	return out
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello, World! 2024", "hello-world-2024"},
		{"Why Alt Text Matters", "why-alt-text-matters"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"snake_case_title", "snake-case-title"},
		{"multiple---hyphens", "multiple-hyphens"},
		{"-edge-", "edge"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
		{"a\vb", "a-b"},
		{"a\u00a0b", "a-b"},
		{"em\u2003space", "em-space"},
		{"ideographic\u3000space", "ideographic-space"},
		{"\ufeffbom", "bom"},
		{"line\u2028sep", "line-sep"},
		{"Café au lait", "caf-au-lait"},
		{"日本語", ""},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugifyProperties(t *testing.T) {
	charset := regexp.MustCompile(`^[a-z0-9-]*$`)
	inputs := []string{
		"Hello, World! 2024",
		"A  B\t\tC",
		"__init__",
		"--x--y--",
		"ÀÉÎÕÜ mixed Case",
		"emoji 🎉 party",
		"100% pure",
		"a/b/c",
	}
	for _, in := range inputs {
		got := Slugify(in)
		assert.Regexp(t, charset, got, "charset for %q", in)
		assert.NotContains(t, got, "--", "consecutive hyphens for %q", in)
		if got != "" {
			assert.NotEqual(t, byte('-'), got[0], "leading hyphen for %q", in)
			assert.NotEqual(t, byte('-'), got[len(got)-1], "trailing hyphen for %q", in)
		}
		assert.Equal(t, got, Slugify(got), "idempotence for %q", in)
	}
}

func TestSortArticlesByDate(t *testing.T) {
	input := []Article{
		article("old", "2023-01-01", false),
		article("new", "2024-06-01", false),
		article("mid", "2023-09-15", false),
	}
	original := slugs(input)

	sorted := SortArticlesByDate(input)

	assert.Equal(t, []string{"new", "mid", "old"}, slugs(sorted))
	assert.Equal(t, original, slugs(input), "input must not be reordered")
	for i := 1; i < len(sorted); i++ {
		assert.False(t, sorted[i].Date.After(sorted[i-1].Date))
	}
}

func TestSortArticlesByDateIsStable(t *testing.T) {
	input := []Article{
		article("a", "2024-01-01", false),
		article("b", "2024-03-01", false),
		article("c", "2024-01-01", false),
		article("d", "2024-03-01", false),
		article("e", "2024-01-01", false),
	}
	sorted := SortArticlesByDate(input)
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, slugs(sorted))
}

func TestSortArticlesByDateKeepsElements(t *testing.T) {
	input := []Article{
		article("x", "2022-05-05", true),
		article("y", "2025-05-05", false),
		article("z", "2024-05-05", false),
	}
	sorted := SortArticlesByDate(input)
	require.Len(t, sorted, len(input))
	assert.ElementsMatch(t, slugs(input), slugs(sorted))

	sorted[0].Title = "changed"
	assert.NotEqual(t, "changed", input[1].Title, "result must not alias the input")
}

func TestSortArticlesByDateEmpty(t *testing.T) {
	assert.Equal(t, []Article{}, SortArticlesByDate(nil))
	assert.Equal(t, []Article{}, SortArticlesByDate([]Article{}))
}

func TestFilterDrafts(t *testing.T) {
	input := []Article{
		article("one", "2024-01-01", false),
		article("two", "2024-01-02", true),
		article("three", "2024-01-03", false),
		article("four", "2024-01-04", true),
	}

	t.Run("production", func(t *testing.T) {
		got := FilterDrafts(input, false)
		assert.Equal(t, []string{"one", "three"}, slugs(got))
		for _, a := range got {
			assert.False(t, a.Draft)
		}
	})

	t.Run("development", func(t *testing.T) {
		got := FilterDrafts(input, true)
		assert.Equal(t, slugs(input), slugs(got))
		got[0].Title = "changed"
		assert.Equal(t, "one", input[0].Title, "result must be a new slice")
	})

	t.Run("no drafts", func(t *testing.T) {
		clean := []Article{article("a", "2024-01-01", false), article("b", "2024-01-02", false)}
		assert.Equal(t, slugs(clean), slugs(FilterDrafts(clean, false)))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, FilterDrafts(nil, false))
		assert.NotNil(t, FilterDrafts(nil, false))
	})
}

func TestGetPublishedArticles(t *testing.T) {
	input := []Article{
		article("draft-new", "2025-01-01", true),
		article("old", "2023-01-01", false),
		article("new", "2024-01-01", false),
	}

	for _, includeDrafts := range []bool{false, true} {
		got := GetPublishedArticles(input, includeDrafts)
		want := SortArticlesByDate(FilterDrafts(input, includeDrafts))
		assert.Equal(t, want, got, "includeDrafts=%v", includeDrafts)
	}

	assert.Equal(t, []string{"new", "old"}, slugs(GetPublishedArticles(input, false)))
	assert.Equal(t, []string{"draft-new", "new", "old"}, slugs(GetPublishedArticles(input, true)))
}

func TestListTags(t *testing.T) {
	input := []Article{
		article("a", "2024-01-01", false, "Go", "web"),
		article("b", "2024-01-02", false, "go", " A11y "),
		article("c", "2024-01-03", false, ""),
	}
	assert.Equal(t, []string{"a11y", "go", "web"}, ListTags(input))
	assert.Equal(t, []string{}, ListTags(nil))
}

func TestFilterByTag(t *testing.T) {
	input := []Article{
		article("a", "2024-01-01", false, "Go"),
		article("b", "2024-01-02", false, "web"),
		article("c", "2024-01-03", false, "go", "web"),
	}
	assert.Equal(t, []string{"a", "c"}, slugs(FilterByTag(input, "GO")))
	assert.Empty(t, FilterByTag(input, "rust"))
	assert.Equal(t, slugs(input), slugs(FilterByTag(input, "")))
}

func TestRelatedArticles(t *testing.T) {
	current := article("current", "2024-01-01", false, "a11y", "html")
	all := []Article{
		current,
		article("shares-one", "2024-01-02", false, "HTML"),
		article("unrelated", "2024-01-03", false, "go"),
		article("shares-both", "2024-01-04", false, "a11y", "html"),
	}
	assert.Equal(t, []string{"shares-one", "shares-both"}, slugs(RelatedArticles(current, all)))
	assert.Empty(t, RelatedArticles(article("lonely", "2024-01-01", false), all))
}

func TestSortArticlesByDateExample(t *testing.T) {
	input := []Article{
		article("a", "2024-01-01", false),
		article("b", "2024-06-01", false),
		article("c", "2023-12-01", false),
	}
	var got []string
	for _, a := range SortArticlesByDate(input) {
		got = append(got, a.Date.Format("2006-01-02"))
	}
	assert.Equal(t, []string{"2024-06-01", "2024-01-01", "2023-12-01"}, got)
}
