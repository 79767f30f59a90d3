package principal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanAccessOrganization_AdminIsUnrestricted(t *testing.T) {
	p := Principal{SubjectID: "1", Role: RoleAdmin}
	require.True(t, p.CanAccessOrganization("Noordzee Rederij"))
	require.True(t, p.CanAccessOrganization(""))
}

func TestCanAccessOrganization_PrimaryAndMemberships(t *testing.T) {
	p := Principal{
		SubjectID:           "2",
		Role:                RoleUser,
		PrimaryOrganization: "Alpha",
		Organizations:       []string{"Beta", "Gamma"},
	}
	require.True(t, p.CanAccessOrganization("Alpha"))
	require.True(t, p.CanAccessOrganization("Beta"))
	require.True(t, p.CanAccessOrganization("Gamma"))
	require.False(t, p.CanAccessOrganization("Delta"))
}

func TestCanAccessOrganization_NoOrganizations(t *testing.T) {
	p := Principal{SubjectID: "3", Role: RoleEditor}
	require.False(t, p.CanAccessOrganization("Alpha"))
	require.False(t, p.HasOrganizations())
}

func TestMemberships_DeduplicatesPrimary(t *testing.T) {
	p := Principal{
		Role:                RoleUser,
		PrimaryOrganization: "Alpha",
		Organizations:       []string{"Alpha", "Beta"},
	}
	require.Equal(t, []string{"Alpha", "Beta"}, p.Memberships())
}

func TestNewRole(t *testing.T) {
	for _, valid := range []string{"admin", "user", "editor"} {
		role, err := NewRole(valid)
		require.NoError(t, err)
		require.True(t, role.IsValid())
	}
	_, err := NewRole("superuser")
	require.Error(t, err)
}

func TestParseScope(t *testing.T) {
	_, ok := ParseScope("")
	require.False(t, ok)

	scope, ok := ParseScope("all")
	require.True(t, ok)
	require.Equal(t, ScopeAllMemberships, scope.Kind())

	scope, ok = ParseScope("Alpha")
	require.True(t, ok)
	require.Equal(t, ScopeOrganization, scope.Kind())
	require.Equal(t, "Alpha", scope.Organization())
}
