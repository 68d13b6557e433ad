package validator

import (
	"errors"
	"smartoffice/pkg/logger"
	"smartoffice/pkg/model"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	v := NewAssetValidator(logger.Discard())

	tests := []struct {
		name      string
		asset     model.Asset
		wantErr   bool
		wantField string
	}{
		{
			name:  "valid available asset",
			asset: model.Asset{Name: "Desk 1", Type: "Desk", IsAvailable: true},
		},
		{
			name:  "valid held asset",
			asset: model.Asset{Name: "Desk 1", Type: "Desk", IsAvailable: false, BookedBy: "u1", BookedByFullName: "User One"},
		},
		{
			name:      "missing name",
			asset:     model.Asset{Type: "Desk", IsAvailable: true},
			wantErr:   true,
			wantField: "Name",
		},
		{
			name:      "missing type",
			asset:     model.Asset{Name: "Desk", IsAvailable: true},
			wantErr:   true,
			wantField: "Type",
		},
		{
			name:      "name too long",
			asset:     model.Asset{Name: strings.Repeat("x", 101), Type: "Desk", IsAvailable: true},
			wantErr:   true,
			wantField: "Name",
		},
		{
			name:      "description too long",
			asset:     model.Asset{Name: "Desk", Type: "Desk", Description: strings.Repeat("x", 1001), IsAvailable: true},
			wantErr:   true,
			wantField: "Description",
		},
		{
			name:      "holder on available asset",
			asset:     model.Asset{Name: "Desk", Type: "Desk", IsAvailable: true, BookedBy: "u1"},
			wantErr:   true,
			wantField: "BookedBy",
		},
		{
			name:      "held asset without holder",
			asset:     model.Asset{Name: "Desk", Type: "Desk", IsAvailable: false, BookedByFullName: "Someone"},
			wantErr:   true,
			wantField: "BookedBy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.asset)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}

			var validationErrs ValidationErrors
			if !errors.As(err, &validationErrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			found := false
			for _, e := range validationErrs {
				if e.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %s, got %v", tt.wantField, validationErrs)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "Name", Message: "Name is required"},
		{Field: "Type", Message: "Type is required"},
	}
	want := "validation failed: 2 error(s): [Name: Name is required; Type: Type is required]"
	if got := errs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if (ValidationErrors{}).Error() != "" {
		t.Error("empty ValidationErrors should render as empty string")
	}
}
