package drops

import (
	"slices"
	"strings"
)

// Article wraps a blog article attribute bag.
type Article struct {
	attrs Attributes
	image *Image
}

// NewArticle wraps attrs. A nil bag yields a nil Article.
func NewArticle(attrs Attributes) *Article {
	if attrs == nil {
		return nil
	}
	return &Article{attrs: attrs, image: NewImage(attrs.Map("image"))}
}

var articleFields = newAccessors(
	accessor[*Article]{"id", func(a *Article) any { return a.attrs.value("id") }},
	accessor[*Article]{"title", func(a *Article) any { return a.Title() }},
	accessor[*Article]{"handle", func(a *Article) any { return a.attrs.String("handle") }},
	accessor[*Article]{"content", func(a *Article) any { return a.Content() }},
	accessor[*Article]{"excerpt", func(a *Article) any { return a.attrs.String("excerpt") }},
	accessor[*Article]{"excerpt_or_content", func(a *Article) any { return a.ExcerptOrContent() }},
	accessor[*Article]{"author", func(a *Article) any { return a.Author() }},
	accessor[*Article]{"published_at", func(a *Article) any { return a.attrs.String("published_at") }},
	accessor[*Article]{"created_at", func(a *Article) any { return a.attrs.String("published_at") }},
	accessor[*Article]{"url", func(a *Article) any { return a.attrs.String("url") }},
	accessor[*Article]{"tags", func(a *Article) any { return a.Tags() }},
	accessor[*Article]{"image", func(a *Article) any { return imageOrNil(a.image) }},
	accessor[*Article]{"comments_count", func(*Article) any { return 0 }},
	accessor[*Article]{"comments_enabled", func(*Article) any { return false }},
	accessor[*Article]{"user", func(a *Article) any { return a.User() }},
)

func (a *Article) Title() string   { return a.attrs.String("title") }
func (a *Article) Content() string { return a.attrs.String("content") }
func (a *Article) Author() string  { return a.attrs.String("author") }
func (a *Article) Tags() []string  { return a.attrs.Strings("tags") }

func (a *Article) ExcerptOrContent() string {
	if excerpt := a.attrs.String("excerpt"); excerpt != "" {
		return excerpt
	}
	return a.Content()
}

// HasTag reports whether tag is one of the article's tags.
func (a *Article) HasTag(tag string) bool {
	return slices.Contains(a.Tags(), tag)
}

// User splits the author name into first and last name.
func (a *Article) User() map[string]any {
	first, last, _ := strings.Cut(a.Author(), " ")
	return map[string]any{
		"first_name": first,
		"last_name":  last,
		"bio":        "",
	}
}

func (a *Article) Get(name string) (any, bool) { return articleFields.get(a, name) }
func (a *Article) Raw(name string) (any, bool) { return a.attrs.Lookup(name) }
func (a *Article) RawKeys() []string           { return a.attrs.Keys() }
func (a *Article) Fields() []string            { return articleFields.fields() }

func (a *Article) String() string { return a.Title() }
