package service

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/store"
	util "github.com/spec-kit/blog-service/pkg/util/errorutil"
)

// UserService coordinates user workflows over the in-memory store.
type UserService struct {
	users      *store.Store[domain.User]
	bcryptCost int
}

// NewUserService constructs the service.
func NewUserService(users *store.Store[domain.User], bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// Create applies the idempotent create policy: if a user with the same email
// already exists, that record is returned with created=false and the rest of
// the payload is discarded. Otherwise a new record is minted with defaults
// role=USER and is_active=true.
func (s *UserService) Create(in *dto.UserCreate) (domain.User, bool, error) {
	// Single unwrap point for the password secret.
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password.Reveal()), s.bcryptCost)
	if err != nil {
		return domain.User{}, false, util.NewInternalError(err)
	}

	user, created := s.users.GetOrInsert(
		func(u domain.User) bool { return u.Email == in.Email },
		func() (uuid.UUID, domain.User) {
			id := uuid.New()
			return id, domain.User{
				ID:           id,
				Email:        in.Email,
				PasswordHash: string(hash),
				Role:         domain.UserRoleUser,
				IsActive:     true,
				FirstName:    in.FirstName,
				LastName:     in.LastName,
			}
		},
	)
	return user, created, nil
}

// Get returns a user by id.
func (s *UserService) Get(id uuid.UUID) (domain.User, error) {
	user, ok := s.users.Get(id)
	if !ok {
		return domain.User{}, util.NewNotFound("User")
	}
	return user, nil
}

// List returns a slice of the current snapshot in insertion order.
func (s *UserService) List(skip, limit int) []domain.User {
	return paginate(s.users.List(), skip, limit)
}

// Update merges present non-null fields into the stored record. Null never
// overwrites, and no email uniqueness re-check happens here: an update may
// introduce a duplicate email.
func (s *UserService) Update(id uuid.UUID, in *dto.UserUpdate) (domain.User, error) {
	var hash string
	if pw, ok := in.Password.Get(); ok {
		h, err := bcrypt.GenerateFromPassword([]byte(pw.Reveal()), s.bcryptCost)
		if err != nil {
			return domain.User{}, util.NewInternalError(err)
		}
		hash = string(h)
	}

	user, ok := s.users.Mutate(id, func(u *domain.User) {
		if v, ok := in.Email.Get(); ok {
			u.Email = v
		}
		if hash != "" {
			u.PasswordHash = hash
		}
		if v, ok := in.Role.Get(); ok {
			u.Role = v
		}
		if v, ok := in.IsActive.Get(); ok {
			u.IsActive = v
		}
		if v, ok := in.FirstName.Get(); ok {
			u.FirstName = &v
		}
		if v, ok := in.LastName.Get(); ok {
			u.LastName = &v
		}
	})
	if !ok {
		return domain.User{}, util.NewNotFound("User")
	}
	return user, nil
}

// Delete removes a user permanently.
func (s *UserService) Delete(id uuid.UUID) error {
	if !s.users.Delete(id) {
		return util.NewNotFound("User")
	}
	return nil
}
