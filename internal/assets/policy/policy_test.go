package policy

import (
	"smartoffice/pkg/model"
	"testing"
)

var (
	admin  = model.Principal{SubjectID: "admin-1", Role: model.RoleAdmin, DisplayName: "Ada Admin"}
	member = func(id string) model.Principal {
		return model.Principal{SubjectID: id, Role: model.RoleMember, DisplayName: id}
	}
)

func TestCanRelease(t *testing.T) {
	tests := []struct {
		name      string
		principal model.Principal
		bookedBy  string
		want      bool
	}{
		{"member on manual hold", member("u3"), model.ManualHolder, false},
		{"member on empty holder", member("u3"), "", false},
		{"member named like the sentinel", member(model.ManualHolder), model.ManualHolder, false},
		{"admin on manual hold", admin, model.ManualHolder, true},
		{"admin on empty holder", admin, "", true},
		{"holder releases own booking", member("u1"), "u1", true},
		{"other member", member("u4"), "u1", false},
		{"admin on someone else's booking", admin, "u1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := &model.Asset{IsAvailable: false, BookedBy: tt.bookedBy}
			if got := CanRelease(tt.principal, asset); got != tt.want {
				t.Errorf("CanRelease() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsManualHold(t *testing.T) {
	if !IsManualHold(&model.Asset{BookedBy: model.ManualHolder}) {
		t.Error("sentinel holder should be a manual hold")
	}
	if !IsManualHold(&model.Asset{}) {
		t.Error("missing holder should be a manual hold")
	}
	if IsManualHold(&model.Asset{BookedBy: "u1"}) {
		t.Error("real holder should not be a manual hold")
	}
}

func TestReleaseHolderGuard(t *testing.T) {
	if got := ReleaseHolderGuard(admin); got != "" {
		t.Errorf("admin guard = %q, want empty", got)
	}
	if got := ReleaseHolderGuard(member("u1")); got != "u1" {
		t.Errorf("member guard = %q, want u1", got)
	}
}

func TestCanManageCatalog(t *testing.T) {
	if !CanManageCatalog(admin) {
		t.Error("admin should manage catalog")
	}
	if CanManageCatalog(member("u1")) {
		t.Error("member should not manage catalog")
	}
}

func TestCanHold(t *testing.T) {
	tests := []struct {
		name      string
		principal model.Principal
		want      bool
	}{
		{"member", member("u1"), true},
		{"admin", admin, true},
		{"manual hold marker", member(model.ManualHolder), false},
		{"empty subject", member(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanHold(tt.principal); got != tt.want {
				t.Errorf("CanHold() = %v, want %v", got, tt.want)
			}
		})
	}
}
