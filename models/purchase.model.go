package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purchase is an append-only ledger record. It is created completed when a
// manual enrollment is approved, or pending when a card checkout starts;
// only the gateway callback may flip the status afterwards.
type Purchase struct {
	ID              string         `gorm:"primaryKey" json:"_id"`
	UserID          string         `gorm:"not null;index" json:"userId"`
	CourseID        string         `gorm:"not null;index" json:"courseId"`
	Amount          float64        `gorm:"not null" json:"amount"`
	Status          PurchaseStatus `gorm:"default:'pending';index" json:"status"`
	PaymentMethod   string         `json:"paymentMethod"`
	TransactionID   string         `json:"transactionId,omitempty"`
	StripeSessionID string         `json:"-"`

	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
