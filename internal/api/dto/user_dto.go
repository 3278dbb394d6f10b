package dto

import (
	"github.com/google/uuid"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/validation"
	"github.com/spec-kit/blog-service/pkg/optional"
	util "github.com/spec-kit/blog-service/pkg/util/errorutil"
)

// UserCreate is the payload for registering a user. The schema is closed:
// unknown fields are rejected. Role and is_active are not accepted here, they
// arrive via defaults.
type UserCreate struct {
	Email     string
	Password  domain.Secret
	FirstName *string
	LastName  *string
}

var userCreateFields = []string{"email", "password", "first_name", "last_name"}

// ParseUserCreate decodes and validates a create payload, collecting every
// violation into one validation error.
func ParseUserCreate(data []byte) (*UserCreate, error) {
	b, bad := parseBody(data)
	if bad != nil {
		return nil, util.NewValidationError(*bad)
	}
	details := b.extras(userCreateFields...)
	out := &UserCreate{}

	if email, ok := b.requireString("email", &details); ok {
		if d := validation.Email(bodyLoc("email"), email); d != nil {
			details = append(details, *d)
		} else {
			out.Email = email
		}
	}
	if pw, ok := b.requireString("password", &details); ok {
		if d := validation.Password(bodyLoc("password"), pw); d != nil {
			details = append(details, *d)
		} else {
			out.Password = domain.NewSecret(pw)
		}
	}
	if v := b.optionalString("first_name", &details); v != nil {
		if d := validation.PersonName(bodyLoc("first_name"), *v); d != nil {
			details = append(details, *d)
		} else {
			out.FirstName = v
		}
	}
	if v := b.optionalString("last_name", &details); v != nil {
		if d := validation.PersonName(bodyLoc("last_name"), *v); d != nil {
			details = append(details, *d)
		} else {
			out.LastName = v
		}
	}

	if len(details) > 0 {
		return nil, util.NewValidationError(details...)
	}
	return out, nil
}

// UserUpdate is the partial-update payload: every field is tri-stated so the
// merge can distinguish absent from explicit null.
type UserUpdate struct {
	Email     optional.Optional[string]
	Password  optional.Optional[domain.Secret]
	Role      optional.Optional[domain.UserRole]
	IsActive  optional.Optional[bool]
	FirstName optional.Optional[string]
	LastName  optional.Optional[string]
}

var userUpdateFields = []string{"email", "password", "role", "is_active", "first_name", "last_name"}

// ParseUserUpdate decodes and validates an update payload. Rules run only on
// fields that are present with a non-null value.
func ParseUserUpdate(data []byte) (*UserUpdate, error) {
	b, bad := parseBody(data)
	if bad != nil {
		return nil, util.NewValidationError(*bad)
	}
	details := b.extras(userUpdateFields...)
	out := &UserUpdate{}

	email := b.triString("email", &details)
	if v, ok := email.Get(); ok {
		if d := validation.Email(bodyLoc("email"), v); d != nil {
			details = append(details, *d)
		} else {
			out.Email = email
		}
	} else {
		out.Email = email
	}

	if pw := b.triString("password", &details); pw.IsNull() {
		out.Password = optional.Null[domain.Secret]()
	} else if v, ok := pw.Get(); ok {
		if d := validation.Password(bodyLoc("password"), v); d != nil {
			details = append(details, *d)
		} else {
			out.Password = optional.Of(domain.NewSecret(v))
		}
	}

	if role := b.triString("role", &details); role.IsNull() {
		out.Role = optional.Null[domain.UserRole]()
	} else if v, ok := role.Get(); ok {
		if d := validation.Role(bodyLoc("role"), v); d != nil {
			details = append(details, *d)
		} else {
			out.Role = optional.Of(domain.UserRole(v))
		}
	}

	out.IsActive = b.triBool("is_active", &details)

	first := b.triString("first_name", &details)
	if v, ok := first.Get(); ok {
		if d := validation.PersonName(bodyLoc("first_name"), v); d != nil {
			details = append(details, *d)
		} else {
			out.FirstName = first
		}
	} else {
		out.FirstName = first
	}

	last := b.triString("last_name", &details)
	if v, ok := last.Get(); ok {
		if d := validation.PersonName(bodyLoc("last_name"), v); d != nil {
			details = append(details, *d)
		} else {
			out.LastName = last
		}
	} else {
		out.LastName = last
	}

	if len(details) > 0 {
		return nil, util.NewValidationError(details...)
	}
	return out, nil
}

// UserRead is the outward representation of a user. The password is omitted
// from the type entirely, so it can never serialize.
type UserRead struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
}

// NewUserRead maps a stored record to its read representation.
func NewUserRead(u domain.User) UserRead {
	return UserRead{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
