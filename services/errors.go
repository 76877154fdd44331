package services

import "errors"

// Error taxonomy for the approval/booking workflow. Controllers map these to
// HTTP status codes at the boundary; the messages sent to clients live there.
var (
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyProcessed = errors.New("request already processed")
	ErrUnauthorized     = errors.New("caller does not own this resource")
	ErrForbidden        = errors.New("caller may not perform this action")
	ErrConflict         = errors.New("resource is already taken")
	ErrInvalidState     = errors.New("invalid state for this transition")
	ErrInvalidAction    = errors.New("invalid action")
	ErrAlreadyEnrolled  = errors.New("user already enrolled")
	ErrDuplicatePending = errors.New("pending request already exists")
	ErrUnknownSlot      = errors.New("unknown time slot label")
)
