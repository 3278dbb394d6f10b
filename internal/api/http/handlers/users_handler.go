package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/service"
)

// UsersHandler exposes the user CRUD endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Create handles POST /users/. Creation is idempotent by email: a duplicate
// attempt returns the existing record with 200 instead of 201.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	payload, err := dto.ParseUserCreate(c.Body())
	if err != nil {
		return err
	}

	user, created, err := h.users.Create(payload)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(dto.NewUserRead(user))
}

// List handles GET /users/ behind the strict query guard.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	skip, limit, err := parseListParams(c)
	if err != nil {
		return err
	}

	users := h.users.List(skip, limit)
	out := make([]dto.UserRead, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserRead(u))
	}
	return c.JSON(out)
}

// Get handles GET /users/{user_id}.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := parsePathID(c, "user_id")
	if err != nil {
		return err
	}

	user, err := h.users.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserRead(user))
}

// Update handles PATCH /users/{user_id}.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := parsePathID(c, "user_id")
	if err != nil {
		return err
	}

	payload, err := dto.ParseUserUpdate(c.Body())
	if err != nil {
		return err
	}

	user, err := h.users.Update(id, payload)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserRead(user))
}

// Delete handles DELETE /users/{user_id}.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := parsePathID(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.users.Delete(id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
