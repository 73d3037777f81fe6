package pubkit

import (
	"errors"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() map[string]any {
	return map[string]any{
		"title":       "Why alt text matters",
		"description": "Images need text alternatives.",
		"date":        "2024-01-15",
	}
}

func TestParseArticleDefaults(t *testing.T) {
	a, err := ParseArticle("why-alt-text", validRecord())
	require.NoError(t, err)

	assert.Equal(t, "Why alt text matters", a.Title)
	assert.Equal(t, "Images need text alternatives.", a.Description)
	assert.Equal(t, day("2024-01-15"), a.Date)
	assert.Equal(t, "Anonymous", a.Author)
	assert.False(t, a.Draft)
	assert.NotNil(t, a.Tags)
	assert.Empty(t, a.Tags)
	assert.Empty(t, a.CoverImage)
	assert.Empty(t, a.CoverImageAlt)
	assert.Equal(t, "why-alt-text", a.ID)
}

func TestParseArticleAllFields(t *testing.T) {
	fm := validRecord()
	fm["author"] = "Charles Hall"
	fm["draft"] = true
	fm["coverImage"] = "/images/cover.jpg"
	fm["coverImageAlt"] = "A screen reader in use"
	fm["tags"] = []any{"a11y", "images", "a11y"}
	fm["slug"] = "custom"
	fm["layout"] = "ignored"

	a, err := ParseArticle("x", fm)
	require.NoError(t, err)
	assert.Equal(t, "Charles Hall", a.Author)
	assert.True(t, a.Draft)
	assert.Equal(t, "/images/cover.jpg", a.CoverImage)
	assert.Equal(t, "A screen reader in use", a.CoverImageAlt)
	assert.Equal(t, []string{"a11y", "images", "a11y"}, a.Tags)
	assert.Equal(t, "custom", a.Slug)
}

func TestParseArticleMissingRequired(t *testing.T) {
	for _, field := range []string{"title", "description", "date"} {
		t.Run(field, func(t *testing.T) {
			fm := validRecord()
			delete(fm, field)

			_, err := ParseArticle("entry", fm)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSchemaValidation))

			var verr *SchemaValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, field, verr.Field)
			assert.Equal(t, "entry", verr.Entry)
			assert.Contains(t, err.Error(), field)
		})
	}
}

func TestParseArticleNullIsAbsent(t *testing.T) {
	fm := validRecord()
	fm["author"] = nil
	fm["tags"] = nil
	a, err := ParseArticle("x", fm)
	require.NoError(t, err)
	assert.Equal(t, DefaultAuthor, a.Author)
	assert.Equal(t, []string{}, a.Tags)

	fm["title"] = nil
	_, err = ParseArticle("x", fm)
	var verr *SchemaValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
}

func TestParseArticleEmptyStringsAccepted(t *testing.T) {
	fm := validRecord()
	fm["title"] = ""
	fm["description"] = ""
	a, err := ParseArticle("x", fm)
	require.NoError(t, err)
	assert.Empty(t, a.Title)
}

func TestParseArticleTypeErrors(t *testing.T) {
	tests := []struct {
		field string
		value any
	}{
		{"title", 42},
		{"description", true},
		{"date", "not a date"},
		{"date", 20240115},
		{"author", []any{"a"}},
		{"draft", "yes"},
		{"coverImage", 1.5},
		{"coverImageAlt", false},
		{"tags", "a11y"},
		{"tags", []any{"ok", 3}},
		{"slug", 7},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			fm := validRecord()
			fm[tt.field] = tt.value
			_, err := ParseArticle("entry", fm)
			var verr *SchemaValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.NotEmpty(t, verr.Reason)
		})
	}
}

func TestParseArticleTypeErrorBeforeMissingField(t *testing.T) {
	fm := validRecord()
	delete(fm, "title")
	fm["draft"] = "no"
	_, err := ParseArticle("entry", fm)
	var verr *SchemaValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "draft", verr.Field)
}

func TestParseArticleDates(t *testing.T) {
	want := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		value any
		want  time.Time
	}{
		{"date string", "2024-01-15", want},
		{"rfc3339", "2024-01-15T10:30:00Z", want.Add(10*time.Hour + 30*time.Minute)},
		{"local datetime", "2024-01-15T10:30:00", want.Add(10*time.Hour + 30*time.Minute)},
		{"space separated", "2024-01-15 10:30:00", want.Add(10*time.Hour + 30*time.Minute)},
		{"time value", want, want},
		{"toml date", toml.LocalDate{Year: 2024, Month: 1, Day: 15}, want},
		{"toml datetime", toml.LocalDateTime{
			LocalDate: toml.LocalDate{Year: 2024, Month: 1, Day: 15},
			LocalTime: toml.LocalTime{Hour: 10, Minute: 30},
		}, want.Add(10*time.Hour + 30*time.Minute)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm := validRecord()
			fm["date"] = tt.value
			a, err := ParseArticle("x", fm)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(a.Date), "got %v, want %v", a.Date, tt.want)
		})
	}
}

func TestParseArticleTagsCopied(t *testing.T) {
	tags := []string{"a", "b"}
	fm := validRecord()
	fm["tags"] = tags
	a, err := ParseArticle("x", fm)
	require.NoError(t, err)
	a.Tags[0] = "changed"
	assert.Equal(t, "a", tags[0])
}
