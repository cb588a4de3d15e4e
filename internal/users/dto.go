package users

import (
	"time"

	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/enums"
)

// UserDTO is the outward account shape. The password hash never leaves
// the repository layer.
type UserDTO struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Phone     *string    `json:"phone,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Avatar    *string    `json:"avatar,omitempty"`
	Role      enums.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
}

// UpdateUserInput carries a partial profile edit. Nil fields keep their
// stored value.
type UpdateUserInput struct {
	ID     int64
	Name   *string
	Phone  *string
	Email  *string
	Avatar *string
	Role   *enums.Role
}

// Filter narrows account queries.
type Filter struct {
	Username string
	Name     string
	Role     *enums.Role
}

// ToDTO converts the stored row to its outward shape.
func ToDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		Phone:     user.Phone,
		Email:     user.Email,
		Avatar:    user.Avatar,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
