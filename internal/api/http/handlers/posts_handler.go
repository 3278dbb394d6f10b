package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/service"
)

// PostsHandler exposes the blog post CRUD endpoints.
type PostsHandler struct {
	posts *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(posts *service.PostService) *PostsHandler {
	return &PostsHandler{posts: posts}
}

// Create handles POST /posts/. Creation is idempotent by slug: a duplicate
// attempt returns the existing record with 200 instead of 201.
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	payload, err := dto.ParseBlogPostCreate(c.Body())
	if err != nil {
		return err
	}

	post, created := h.posts.Create(payload)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(dto.NewBlogPostRead(post))
}

// List handles GET /posts/ behind the strict query guard.
func (h *PostsHandler) List(c *fiber.Ctx) error {
	skip, limit, err := parseListParams(c)
	if err != nil {
		return err
	}

	posts := h.posts.List(skip, limit)
	out := make([]dto.BlogPostRead, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.NewBlogPostRead(p))
	}
	return c.JSON(out)
}

// Get handles GET /posts/{post_id}.
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	id, err := parsePathID(c, "post_id")
	if err != nil {
		return err
	}

	post, err := h.posts.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBlogPostRead(post))
}

// Update handles PATCH /posts/{post_id}.
func (h *PostsHandler) Update(c *fiber.Ctx) error {
	id, err := parsePathID(c, "post_id")
	if err != nil {
		return err
	}

	payload, err := dto.ParseBlogPostUpdate(c.Body())
	if err != nil {
		return err
	}

	post, err := h.posts.Update(id, payload)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBlogPostRead(post))
}

// Delete handles DELETE /posts/{post_id}.
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	id, err := parsePathID(c, "post_id")
	if err != nil {
		return err
	}

	if err := h.posts.Delete(id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
