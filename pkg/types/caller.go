package types

import "github.com/Sum1ght/schand/pkg/enums"

// Caller is the resolved identity of the user issuing the current request.
// Services receive it explicitly; nothing reads ambient auth state.
type Caller struct {
	ID   int64
	Role enums.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == enums.RoleAdmin
}
