package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PendingEnrollment is a student's claim of having paid for a course outside
// the system (bank transfer proof). At most one pending row may exist per
// (user, course) pair; the row is processed exactly once.
type PendingEnrollment struct {
	ID                string           `gorm:"primaryKey" json:"_id"`
	UserID            string           `gorm:"not null;index" json:"userId"`
	CourseID          string           `gorm:"not null;index" json:"courseId"`
	PaymentScreenshot string           `gorm:"not null" json:"paymentScreenshot"`
	TransactionID     string           `gorm:"not null" json:"transactionId"`
	Status            EnrollmentStatus `gorm:"default:'pending';index" json:"status"`
	SubmittedAt       time.Time        `json:"submittedAt"`
	ProcessedAt       *time.Time       `json:"processedAt,omitempty"`
	ProcessedBy       string           `json:"processedBy,omitempty"`
	RejectionReason   string           `json:"rejectionReason,omitempty"`

	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *PendingEnrollment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.SubmittedAt.IsZero() {
		p.SubmittedAt = time.Now()
	}
	return nil
}
