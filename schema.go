package pubkit

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// DefaultAuthor is used when an article does not name its author.
const DefaultAuthor = "Anonymous"

// ErrSchemaValidation matches every *SchemaValidationError under errors.Is.
var ErrSchemaValidation = errors.New("schema validation failed")

// SchemaValidationError reports an article record that does not satisfy the
// Article schema. Entry is the record identity (its collection ID) and Field
// the front-matter key that failed.
type SchemaValidationError struct {
	Entry  string
	Field  string
	Reason string
}

func (e *SchemaValidationError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("invalid article: field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid article %q: field %q: %s", e.Entry, e.Field, e.Reason)
}

// Is lets callers test with errors.Is(err, ErrSchemaValidation).
func (e *SchemaValidationError) Is(target error) bool {
	return target == ErrSchemaValidation
}

// dateLayouts are tried in order for string dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// frontMatter is the decoded shape of an article record before defaults are
// applied. Pointers distinguish "absent" from the zero value.
type frontMatter struct {
	Title         *string    `json:"title" validate:"required"`
	Description   *string    `json:"description" validate:"required"`
	Date          *time.Time `json:"date" validate:"required"`
	Author        *string    `json:"author"`
	Draft         *bool      `json:"draft"`
	CoverImage    *string    `json:"coverImage"`
	CoverImageAlt *string    `json:"coverImageAlt"`
	Tags          []string   `json:"tags"`
	Slug          *string    `json:"slug"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseArticle validates a raw front-matter record and returns the Article it
// describes. id identifies the record in errors. Absent optional fields get
// their defaults: author "Anonymous", draft false, no tags. Keys outside the
// schema are ignored and a null value counts as absent.
func ParseArticle(id string, fm map[string]any) (Article, error) {
	var raw frontMatter
	var err error

	if raw.Title, err = stringField(fm, "title"); err != nil {
		return Article{}, invalid(id, "title", err.Error())
	}
	if raw.Description, err = stringField(fm, "description"); err != nil {
		return Article{}, invalid(id, "description", err.Error())
	}
	if v, ok := lookup(fm, "date"); ok {
		d, err := coerceDate(v)
		if err != nil {
			return Article{}, invalid(id, "date", err.Error())
		}
		raw.Date = &d
	}
	if raw.Author, err = stringField(fm, "author"); err != nil {
		return Article{}, invalid(id, "author", err.Error())
	}
	if v, ok := lookup(fm, "draft"); ok {
		b, isBool := v.(bool)
		if !isBool {
			return Article{}, invalid(id, "draft", fmt.Sprintf("expected boolean, got %s", typeName(v)))
		}
		raw.Draft = &b
	}
	if raw.CoverImage, err = stringField(fm, "coverImage"); err != nil {
		return Article{}, invalid(id, "coverImage", err.Error())
	}
	if raw.CoverImageAlt, err = stringField(fm, "coverImageAlt"); err != nil {
		return Article{}, invalid(id, "coverImageAlt", err.Error())
	}
	if raw.Tags, err = stringSliceField(fm, "tags"); err != nil {
		return Article{}, invalid(id, "tags", err.Error())
	}
	if raw.Slug, err = stringField(fm, "slug"); err != nil {
		return Article{}, invalid(id, "slug", err.Error())
	}

	if err := validate.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Article{}, invalid(id, verrs[0].Field(), fieldReason(verrs[0]))
		}
		return Article{}, err
	}

	a := Article{
		Title:       *raw.Title,
		Description: *raw.Description,
		Date:        *raw.Date,
		Author:      DefaultAuthor,
		Tags:        []string{},
		ID:          id,
	}
	if raw.Author != nil {
		a.Author = *raw.Author
	}
	if raw.Draft != nil {
		a.Draft = *raw.Draft
	}
	if raw.CoverImage != nil {
		a.CoverImage = *raw.CoverImage
	}
	if raw.CoverImageAlt != nil {
		a.CoverImageAlt = *raw.CoverImageAlt
	}
	if raw.Tags != nil {
		a.Tags = raw.Tags
	}
	if raw.Slug != nil {
		// Each segment is slugified, so "." and ".." cannot leave the
		// articles directory.
		if a.Slug = slugFromID(*raw.Slug); a.Slug == "" {
			return Article{}, invalid(id, "slug", fmt.Sprintf("%q has no URL-safe characters", *raw.Slug))
		}
	}
	return a, nil
}

func invalid(id, field, reason string) *SchemaValidationError {
	return &SchemaValidationError{Entry: id, Field: field, Reason: reason}
}

func fieldReason(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "required"
	default:
		return fmt.Sprintf("failed %q check", e.Tag())
	}
}

func lookup(fm map[string]any, key string) (any, bool) {
	v, ok := fm[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func stringField(fm map[string]any, key string) (*string, error) {
	v, ok := lookup(fm, key)
	if !ok {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %s", typeName(v))
	}
	return &s, nil
}

func stringSliceField(fm map[string]any, key string) ([]string, error) {
	v, ok := lookup(fm, key)
	if !ok {
		return nil, nil
	}
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d: expected string, got %s", i, typeName(item))
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected array of strings, got %s", typeName(v))
	}
}

func coerceDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case toml.LocalDate:
		return d.AsTime(time.UTC), nil
	case toml.LocalDateTime:
		return d.AsTime(time.UTC), nil
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("invalid date %q", d)
	default:
		return time.Time{}, fmt.Errorf("expected date, got %s", typeName(v))
	}
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
