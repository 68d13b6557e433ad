package model

import "strings"

type Role string

const (
	RoleMember Role = "Member"
	RoleAdmin  Role = "Admin"
)

// ParseRole maps a claim value to a Role. Anything that is not an admin role
// is treated as a regular member.
func ParseRole(raw string) Role {
	if strings.EqualFold(strings.TrimSpace(raw), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleMember
}

// Principal is the authenticated caller of a request.
type Principal struct {
	SubjectID   string `json:"subjectId"`
	Role        Role   `json:"role"`
	DisplayName string `json:"displayName"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
