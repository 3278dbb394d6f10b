package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/validation"
	"github.com/spec-kit/blog-service/pkg/optional"
	util "github.com/spec-kit/blog-service/pkg/util/errorutil"
)

// BlogPostCreate is the payload for creating a post. Closed schema; author_id
// is carried opaquely and not checked against the user store.
type BlogPostCreate struct {
	Title       string
	Slug        string
	Excerpt     *string
	Content     string
	IsPublished bool
	AuthorID    uuid.UUID
}

var postCreateFields = []string{"title", "slug", "excerpt", "content", "is_published", "author_id"}

// ParseBlogPostCreate decodes and validates a create payload.
func ParseBlogPostCreate(data []byte) (*BlogPostCreate, error) {
	b, bad := parseBody(data)
	if bad != nil {
		return nil, util.NewValidationError(*bad)
	}
	details := b.extras(postCreateFields...)
	out := &BlogPostCreate{}

	if title, ok := b.requireString("title", &details); ok {
		if d := validation.Title(bodyLoc("title"), title); d != nil {
			details = append(details, *d)
		} else {
			out.Title = title
		}
	}
	if slug, ok := b.requireString("slug", &details); ok {
		if d := validation.Slug(bodyLoc("slug"), slug); d != nil {
			details = append(details, *d)
		} else {
			out.Slug = slug
		}
	}
	if v := b.optionalString("excerpt", &details); v != nil {
		if d := validation.Excerpt(bodyLoc("excerpt"), *v); d != nil {
			details = append(details, *d)
		} else {
			out.Excerpt = v
		}
	}
	if content, ok := b.requireString("content", &details); ok {
		if d := validation.Content(bodyLoc("content"), content); d != nil {
			details = append(details, *d)
		} else {
			out.Content = content
		}
	}
	out.IsPublished = b.boolOr("is_published", false, &details)
	if id, ok := b.requireUUID("author_id", &details); ok {
		out.AuthorID = id
	}

	if len(details) > 0 {
		return nil, util.NewValidationError(details...)
	}
	return out, nil
}

// BlogPostUpdate is the tri-stated partial-update payload for posts.
type BlogPostUpdate struct {
	Title       optional.Optional[string]
	Slug        optional.Optional[string]
	Excerpt     optional.Optional[string]
	Content     optional.Optional[string]
	IsPublished optional.Optional[bool]
	AuthorID    optional.Optional[uuid.UUID]
}

var postUpdateFields = []string{"title", "slug", "excerpt", "content", "is_published", "author_id"}

// ParseBlogPostUpdate decodes and validates an update payload. Rules run only
// on fields present with a non-null value; the slug rule runs but no slug
// uniqueness re-check happens anywhere on the update path.
func ParseBlogPostUpdate(data []byte) (*BlogPostUpdate, error) {
	b, bad := parseBody(data)
	if bad != nil {
		return nil, util.NewValidationError(*bad)
	}
	details := b.extras(postUpdateFields...)
	out := &BlogPostUpdate{}

	stringField := func(field string, rule func([]any, string) *util.Detail) optional.Optional[string] {
		v := b.triString(field, &details)
		if s, ok := v.Get(); ok {
			if d := rule(bodyLoc(field), s); d != nil {
				details = append(details, *d)
				return optional.Optional[string]{}
			}
		}
		return v
	}

	out.Title = stringField("title", validation.Title)
	out.Slug = stringField("slug", validation.Slug)
	out.Excerpt = stringField("excerpt", validation.Excerpt)
	out.Content = stringField("content", validation.Content)
	out.IsPublished = b.triBool("is_published", &details)
	out.AuthorID = b.triUUID("author_id", &details)

	if len(details) > 0 {
		return nil, util.NewValidationError(details...)
	}
	return out, nil
}

// BlogPostRead is the outward representation of a post.
type BlogPostRead struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     *string   `json:"excerpt"`
	Content     string    `json:"content"`
	IsPublished bool      `json:"is_published"`
	AuthorID    uuid.UUID `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewBlogPostRead maps a stored record to its read representation.
func NewBlogPostRead(p domain.BlogPost) BlogPostRead {
	return BlogPostRead{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		IsPublished: p.IsPublished,
		AuthorID:    p.AuthorID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
