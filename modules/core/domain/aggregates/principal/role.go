package principal

import "errors"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleEditor Role = "editor"
)

func NewRole(r string) (Role, error) {
	role := Role(r)
	if !role.IsValid() {
		return "", errors.New("invalid role")
	}
	return role, nil
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleEditor:
		return true
	}
	return false
}
