package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_UnmarshalJSON(t *testing.T) {
	tests := map[string]Role{
		`1`:           RoleApplicant,
		`2`:           RoleAdmin,
		`"Admin"`:     RoleAdmin,
		`"applicant"`: RoleApplicant,
		`3`:           RoleUnknown,
		`"root"`:      RoleUnknown,
		`null`:        RoleUnknown,
	}
	for raw, want := range tests {
		var r Role
		require.NoError(t, json.Unmarshal([]byte(raw), &r), raw)
		assert.Equal(t, want, r, raw)
	}
}

func TestIdentity(t *testing.T) {
	var id Identity
	require.NoError(t, json.Unmarshal([]byte(`{"userId":4,"email":"a@b.c","firstName":"Ada","lastName":"Lovelace","userRole":2}`), &id))

	assert.Equal(t, "Ada Lovelace", id.FullName())
	assert.True(t, id.IsAdmin())
	assert.Equal(t, "Admin", id.Role.String())

	var missing *Identity
	assert.False(t, missing.IsAdmin())
	assert.Empty(t, missing.FullName())
}

func TestJobRole_Status(t *testing.T) {
	tests := map[JobRoleStatus]struct {
		accepting bool
		closed    bool
	}{
		"":                  {accepting: true},
		JobRoleStatusOpen:   {accepting: true},
		JobRoleStatusClosed: {closed: true},
		"Archived":          {},
	}
	for status, want := range tests {
		role := JobRole{Status: status}
		assert.Equal(t, want.accepting, role.AcceptingApplications(), "status %q", status)
		assert.Equal(t, want.closed, role.IsClosed(), "status %q", status)
	}
}
