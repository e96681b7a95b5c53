package identity

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"patient", RolePatient, true},
		{"donor", RoleDonor, true},
		{"hospital", RoleHospitalAdmin, true},
		{"doctor", RoleDoctor, true},
		{"Donor", RoleDonor, true},
		{" doctor ", RoleDoctor, true},
		{"admin", "", false},
		{"", "", false},
		{"nurse", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseRole(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRolePublic(t *testing.T) {
	if RoleHospitalAdmin.Public() != "hospital" {
		t.Errorf("expected hospital, got %s", RoleHospitalAdmin.Public())
	}
	if RoleDonor.Public() != "donor" {
		t.Errorf("expected donor, got %s", RoleDonor.Public())
	}
}

func TestUserPublic_OmitsSensitiveFields(t *testing.T) {
	u := &User{Name: "Asha", Email: "asha@example.com", PasswordHash: "hash", Role: RolePatient}
	pub := u.Public()
	if pub.Name != "Asha" || pub.Email != "asha@example.com" {
		t.Errorf("unexpected public user: %+v", pub)
	}
	if pub.Role != "patient" {
		t.Errorf("expected lowercase role, got %s", pub.Role)
	}
}
