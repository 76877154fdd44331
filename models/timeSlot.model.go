package models

import "time"

// TimeSlot marks one half-hour calendar slot as occupied, either by an
// educator block or by a booking reference. The compound unique index is
// what makes concurrent reservations of the same slot collide.
type TimeSlot struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	EducatorID  string    `gorm:"not null;default:'single-educator'" json:"educatorId"`
	Date        time.Time `gorm:"not null;uniqueIndex:idx_date_slot" json:"date"`
	TimeSlot    string    `gorm:"not null;uniqueIndex:idx_date_slot" json:"timeSlot"`
	IsBlocked   bool      `gorm:"default:false" json:"isBlocked"`
	BlockReason string    `json:"blockReason,omitempty"`
	BookingID   *string   `json:"bookingId,omitempty"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
