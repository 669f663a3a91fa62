package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Role enumerates the user roles issued by the backend.
type Role int

const (
	RoleUnknown   Role = 0
	RoleApplicant Role = 1
	RoleAdmin     Role = 2
)

// String returns the display name of the role.
func (r Role) String() string {
	switch r {
	case RoleApplicant:
		return "Applicant"
	case RoleAdmin:
		return "Admin"
	default:
		return "Unknown"
	}
}

// UnmarshalJSON accepts both the numeric (1/2) and named ("Applicant"/"Admin") forms.
func (r *Role) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*r = ParseRole(name)
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		*r = RoleUnknown
		return nil
	}
	switch Role(n) {
	case RoleApplicant, RoleAdmin:
		*r = Role(n)
	default:
		*r = RoleUnknown
	}
	return nil
}

// MarshalJSON emits the numeric form used on the wire.
func (r Role) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(r))), nil
}

// ParseRole maps a role name or number to a Role.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "applicant", "1":
		return RoleApplicant
	case "admin", "2":
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

// Identity is the verified session owner for a single request.
type Identity struct {
	UserID    int    `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"userRole"`
}

// FullName joins first and last name.
func (i *Identity) FullName() string {
	if i == nil {
		return ""
	}
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// IsAdmin reports whether the identity holds the Admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
