package repository

import (
	"errors"
	assetserrors "smartoffice/internal/assets/errors"
	"smartoffice/pkg/model"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilter(t *testing.T) {
	available := false

	tests := []struct {
		name   string
		filter model.AssetFilter
		want   bson.M
	}{
		{"empty", model.AssetFilter{}, bson.M{}},
		{"type only", model.AssetFilter{Type: "Desk"}, bson.M{fieldType: "Desk"}},
		{"availability only", model.AssetFilter{Available: &available}, bson.M{fieldIsAvailable: false}},
		{"both", model.AssetFilter{Type: "Room", Available: &available}, bson.M{fieldType: "Room", fieldIsAvailable: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildFilter(tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("buildFilter() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("buildFilter()[%s] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestSetOrUnset(t *testing.T) {
	set, unset := bson.M{}, bson.M{}

	setOrUnset(set, unset, fieldBookedBy, "u1")
	setOrUnset(set, unset, fieldBookedByFullName, "")

	if set[fieldBookedBy] != "u1" {
		t.Errorf("expected booked_by to be set, got %v", set)
	}
	if _, ok := unset[fieldBookedByFullName]; !ok {
		t.Errorf("expected booked_by_full_name to be unset, got %v", unset)
	}
	if _, ok := set[fieldBookedByFullName]; ok {
		t.Error("empty value must not be written")
	}
}

func TestReplaceFilter(t *testing.T) {
	objectID, _ := parseObjectID("507f1f77bcf86cd799439011")

	held := replaceFilter(objectID, false, "u1")
	if held[fieldID] != objectID || held[fieldIsAvailable] != false || held[fieldBookedBy] != "u1" {
		t.Errorf("held filter = %v", held)
	}

	available := replaceFilter(objectID, true, "")
	if available[fieldIsAvailable] != true {
		t.Errorf("available filter = %v", available)
	}
	cond, ok := available[fieldBookedBy].(bson.M)
	if !ok {
		t.Fatalf("empty holder must match missing booked_by, got %v", available[fieldBookedBy])
	}
	in, ok := cond["$in"].(bson.A)
	if !ok || len(in) != 2 || in[0] != nil || in[1] != "" {
		t.Errorf("booked_by condition = %v", cond)
	}
}

func TestParseObjectID(t *testing.T) {
	if _, err := parseObjectID("507f1f77bcf86cd799439011"); err != nil {
		t.Errorf("valid ObjectID rejected: %v", err)
	}
	if _, err := parseObjectID("a1"); !errors.Is(err, assetserrors.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}
