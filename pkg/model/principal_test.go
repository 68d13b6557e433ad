package model

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
	}{
		{"Admin", RoleAdmin},
		{"admin", RoleAdmin},
		{" ADMIN ", RoleAdmin},
		{"Member", RoleMember},
		{"", RoleMember},
		{"superuser", RoleMember},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ParseRole(tt.raw); got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPrincipal_IsAdmin(t *testing.T) {
	if !(Principal{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin principal should be admin")
	}
	if (Principal{Role: RoleMember}).IsAdmin() {
		t.Error("member principal should not be admin")
	}
}
