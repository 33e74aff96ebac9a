package model

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleEmployee:
		return RoleEmployee, true
	case RoleClient:
		return RoleClient, true
	default:
		return "", false
	}
}

// Principal is the identity carried inside access and refresh tokens.
// It is a value type; handlers receive a copy and never mutate the claim.
type Principal struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsEmployee() bool {
	return p.Role == RoleEmployee
}

func (p Principal) IsClient() bool {
	return p.Role == RoleClient
}

func (p Principal) HasRole(roles ...Role) bool {
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}
