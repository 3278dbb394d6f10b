package domain

import (
	"time"

	"github.com/google/uuid"
)

// BlogPost is the stored record for a post. Slug is the natural key used to
// detect duplicate creation attempts. AuthorID is carried opaquely and not
// checked against the user store.
type BlogPost struct {
	ID          uuid.UUID
	Title       string
	Slug        string
	Excerpt     *string
	Content     string
	IsPublished bool
	AuthorID    uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
