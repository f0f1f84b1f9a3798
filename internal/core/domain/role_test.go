package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoles_EachMapsToExactlyOneDashboard(t *testing.T) {
	seen := make(map[string]Role)
	for _, r := range Roles() {
		path, ok := r.DashboardPath()
		require.True(t, ok, "role %s has no dashboard", r)
		require.NotEmpty(t, path)

		if other, dup := seen[path]; dup {
			t.Fatalf("roles %s and %s share dashboard %s", r, other, path)
		}
		seen[path] = r
	}
	assert.Len(t, seen, 6)
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		tag     string
		want    Role
		wantErr bool
	}{
		{tag: "Admin", want: RoleAdmin},
		{tag: "Doctor", want: RoleDoctor},
		{tag: "Nurse", want: RoleNurse},
		{tag: "Receptionist", want: RoleReceptionist},
		{tag: "Cashier", want: RoleCashier},
		{tag: "Patient", want: RolePatient},
		{tag: "", wantErr: true},
		{tag: "patient", wantErr: true},
		{tag: "Janitor", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseRole(tt.tag)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrRoleUndefined)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNavigation(t *testing.T) {
	for _, r := range Roles() {
		items := Navigation(r)
		require.NotEmpty(t, items, "role %s has no navigation", r)

		dash, _ := r.DashboardPath()
		assert.Equal(t, dash, items[0].Href, "first nav item of %s should be its dashboard", r)
	}

	assert.Nil(t, Navigation(Role("Janitor")))
}

func TestNavigation_ReturnsCopy(t *testing.T) {
	items := Navigation(RoleNurse)
	items[0].Label = "changed"

	assert.Equal(t, "Dashboard", Navigation(RoleNurse)[0].Label)
}

func TestParseVisitDate(t *testing.T) {
	d, err := ParseVisitDate("2024-07-15")
	require.NoError(t, err)
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, "UTC", d.Location().String())

	_, err = ParseVisitDate("15/07/2024")
	assert.ErrorIs(t, err, ErrInvalidVisitDate)
}

func TestProfile_IsPatient(t *testing.T) {
	assert.True(t, (&Profile{Role: "Patient"}).IsPatient())
	assert.False(t, (&Profile{Role: "Doctor"}).IsPatient())
	assert.False(t, (*Profile)(nil).IsPatient())
}
