package errors

import "errors"

var (
	ErrNotFound = errors.New("asset not found")

	ErrInvalidID = errors.New("invalid asset ID format")
)

const (
	MsgAlreadyBooked  = "Asset was already booked by another user"
	MsgStateChanged   = "Asset state changed. Please refresh."
	MsgManualRelease  = "Only an admin can release a manually booked asset"
	MsgNotHolder      = "Only the current holder or an admin can release this asset"
	MsgAdminOnly      = "Only an admin can manage the asset catalog"
	MsgReservedHolder = "This subject can not hold assets"
)
