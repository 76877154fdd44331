package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is a consultation session request against the single educator's
// slot calendar. Website visitors book without an account, so StudentID may
// be nil and contact/customer fields carry their details instead.
type Booking struct {
	ID           string        `gorm:"primaryKey" json:"_id"`
	StudentID    *string       `gorm:"index" json:"studentId,omitempty"`
	EducatorID   string        `gorm:"not null;index:idx_educator_status" json:"educatorId"`
	ServiceType  string        `gorm:"not null" json:"serviceType"`
	SelectedDate time.Time     `gorm:"not null;index" json:"selectedDate"`
	SelectedTime string        `gorm:"not null" json:"selectedTime"`
	Duration     string        `json:"duration"`
	Amount       float64       `gorm:"not null" json:"amount"`
	Status       BookingStatus `gorm:"default:'pending';index:idx_educator_status" json:"status"`

	// Payment proof
	TransactionID string              `gorm:"not null" json:"transactionId"`
	ScreenshotURL string              `json:"screenshotUrl,omitempty"`
	PaymentStatus PaymentVerification `gorm:"default:'pending'" json:"paymentStatus"`

	// Contact details
	WhatsappNumber       string `json:"whatsappNumber,omitempty"`
	Email                string `json:"email,omitempty"`
	AddedToWhatsAppGroup bool   `gorm:"default:false" json:"addedToWhatsAppGroup"`

	// Website booking customer info
	CustomerName string     `json:"customerName,omitempty"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	PlaceOfBirth string     `json:"placeOfBirth,omitempty"`
	TimeOfBirth  string     `json:"timeOfBirth,omitempty"`

	IsWebsiteBooking bool   `gorm:"default:false" json:"isWebsiteBooking"`
	IsRead           bool   `gorm:"default:false" json:"isRead"`
	Notes            string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
