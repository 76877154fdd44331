package models

// Role is the access level mirrored from the identity provider metadata.
type Role string

const (
	RoleStudent  Role = "student"
	RoleEducator Role = "educator"
	RoleAdmin    Role = "admin"
)

// EnrollmentStatus is the lifecycle of a manual payment enrollment request.
// A request is mutated exactly once: pending -> approved or pending -> rejected.
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

// BookingStatus is the lifecycle of a consultation booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingDeclined  BookingStatus = "declined"
	BookingCompleted BookingStatus = "completed"
)

// PaymentVerification tracks manual review of a booking's payment proof.
type PaymentVerification string

const (
	PaymentPending  PaymentVerification = "pending"
	PaymentVerified PaymentVerification = "verified"
	PaymentFailed   PaymentVerification = "failed"
)

// PurchaseStatus is the state of a ledger record.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseCompleted PurchaseStatus = "completed"
	PurchaseFailed    PurchaseStatus = "failed"
)
