// Package policy holds the authorization rules for asset operations. The
// functions are pure: they only look at the principal and the asset they are
// given and never touch storage.
package policy

import "smartoffice/pkg/model"

// IsManualHold reports whether a held asset has no real holder principal.
func IsManualHold(asset *model.Asset) bool {
	return asset.BookedBy == "" || asset.BookedBy == model.ManualHolder
}

// CanRelease decides whether principal may attempt to release asset. The
// answer is based on a snapshot and may be stale; the store re-checks the
// holder at write time.
func CanRelease(principal model.Principal, asset *model.Asset) bool {
	if IsManualHold(asset) {
		return principal.IsAdmin()
	}
	return principal.IsAdmin() || asset.BookedBy == principal.SubjectID
}

// ReleaseHolderGuard returns the holder the store must still see at write
// time. Admins release unconditionally.
func ReleaseHolderGuard(principal model.Principal) string {
	if principal.IsAdmin() {
		return ""
	}
	return principal.SubjectID
}

// CanHold reports whether principal may become an asset's holder. The manual
// hold marker is never a real holder.
func CanHold(principal model.Principal) bool {
	return principal.SubjectID != "" && principal.SubjectID != model.ManualHolder
}

// CanManageCatalog gates asset creation and deletion.
func CanManageCatalog(principal model.Principal) bool {
	return principal.IsAdmin()
}
