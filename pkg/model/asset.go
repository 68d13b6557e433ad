package model

import "time"

// ManualHolder marks an asset held administratively with no real holder
// principal behind it.
const ManualHolder = "manual"

type Asset struct {
	ID               string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name             string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Type             string    `json:"type" bson:"type" validate:"required,min=1,max=50"`
	Description      string    `json:"description" bson:"description" validate:"max=1000"`
	IsAvailable      bool      `json:"isAvailable" bson:"is_available"`
	BookedBy         string    `json:"bookedBy,omitempty" bson:"booked_by,omitempty" validate:"max=128"`
	BookedByFullName string    `json:"bookedByFullName,omitempty" bson:"booked_by_full_name,omitempty" validate:"max=200"`
	CreatedAt        time.Time `json:"createdAt" bson:"created_at"`
}

// AssetUpdate is the caller's requested state for an asset. Nil fields keep
// the stored value; a nil IsAvailable means the availability is unchanged.
type AssetUpdate struct {
	Name             *string `json:"name,omitempty"`
	Type             *string `json:"type,omitempty"`
	Description      *string `json:"description,omitempty"`
	IsAvailable      *bool   `json:"isAvailable,omitempty"`
	BookedBy         *string `json:"bookedBy,omitempty"`
	BookedByFullName *string `json:"bookedByFullName,omitempty"`
}

type AssetFilter struct {
	Type      string
	Available *bool
}

type AssetTypeStats struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	InUse     int64 `json:"inUse"`
}

type AssetStats struct {
	Total     int64                     `json:"total"`
	Available int64                     `json:"available"`
	InUse     int64                     `json:"inUse"`
	ByType    map[string]AssetTypeStats `json:"byType"`
}

// IsHeld reports whether the asset is currently booked.
func (a *Asset) IsHeld() bool {
	return !a.IsAvailable
}

// ClearHolder drops the booking fields.
func (a *Asset) ClearHolder() {
	a.BookedBy = ""
	a.BookedByFullName = ""
}

// AssetCreate is the body accepted when adding an asset to the catalog.
// IsAvailable defaults to true when omitted.
type AssetCreate struct {
	Name             string `json:"name"`
	Type             string `json:"type"`
	Description      string `json:"description"`
	IsAvailable      *bool  `json:"isAvailable,omitempty"`
	BookedBy         string `json:"bookedBy,omitempty"`
	BookedByFullName string `json:"bookedByFullName,omitempty"`
}

func (c *AssetCreate) ToAsset() *Asset {
	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}
	return &Asset{
		Name:             c.Name,
		Type:             c.Type,
		Description:      c.Description,
		IsAvailable:      available,
		BookedBy:         c.BookedBy,
		BookedByFullName: c.BookedByFullName,
	}
}
