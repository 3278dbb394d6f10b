package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/store"
	util "github.com/spec-kit/blog-service/pkg/util/errorutil"
)

// PostService coordinates blog post workflows over the in-memory store.
type PostService struct {
	posts *store.Store[domain.BlogPost]
	now   func() time.Time
}

// NewPostService constructs the service. The clock defaults to UTC now.
func NewPostService(posts *store.Store[domain.BlogPost]) *PostService {
	return &PostService{posts: posts, now: func() time.Time { return time.Now().UTC() }}
}

// Create applies the idempotent create policy keyed on slug: an existing post
// with the same slug is returned with created=false and the incoming payload
// is discarded. A minted record gets created_at == updated_at.
func (s *PostService) Create(in *dto.BlogPostCreate) (domain.BlogPost, bool) {
	return s.posts.GetOrInsert(
		func(p domain.BlogPost) bool { return p.Slug == in.Slug },
		func() (uuid.UUID, domain.BlogPost) {
			id := uuid.New()
			now := s.now()
			return id, domain.BlogPost{
				ID:          id,
				Title:       in.Title,
				Slug:        in.Slug,
				Excerpt:     in.Excerpt,
				Content:     in.Content,
				IsPublished: in.IsPublished,
				AuthorID:    in.AuthorID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
		},
	)
}

// Get returns a post by id.
func (s *PostService) Get(id uuid.UUID) (domain.BlogPost, error) {
	post, ok := s.posts.Get(id)
	if !ok {
		return domain.BlogPost{}, util.NewNotFound("Blog post")
	}
	return post, nil
}

// List returns a slice of the current snapshot in insertion order.
func (s *PostService) List(skip, limit int) []domain.BlogPost {
	return paginate(s.posts.List(), skip, limit)
}

// Update merges present non-null fields into the stored record and refreshes
// updated_at iff at least one field applied. The slug is mutable here with no
// uniqueness re-check: duplicate slugs after update are accepted.
func (s *PostService) Update(id uuid.UUID, in *dto.BlogPostUpdate) (domain.BlogPost, error) {
	post, ok := s.posts.Mutate(id, func(p *domain.BlogPost) {
		changed := 0
		if v, ok := in.Title.Get(); ok {
			p.Title = v
			changed++
		}
		if v, ok := in.Slug.Get(); ok {
			p.Slug = v
			changed++
		}
		if v, ok := in.Excerpt.Get(); ok {
			p.Excerpt = &v
			changed++
		}
		if v, ok := in.Content.Get(); ok {
			p.Content = v
			changed++
		}
		if v, ok := in.IsPublished.Get(); ok {
			p.IsPublished = v
			changed++
		}
		if v, ok := in.AuthorID.Get(); ok {
			p.AuthorID = v
			changed++
		}
		if changed > 0 {
			p.UpdatedAt = s.now()
		}
	})
	if !ok {
		return domain.BlogPost{}, util.NewNotFound("Blog post")
	}
	return post, nil
}

// Delete removes a post permanently.
func (s *PostService) Delete(id uuid.UUID) error {
	if !s.posts.Delete(id) {
		return util.NewNotFound("Blog post")
	}
	return nil
}
