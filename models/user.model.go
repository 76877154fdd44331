package models

import (
	"time"
)

// User mirrors an identity-provider account. The primary key is the
// externally issued id, so rows are created/updated/deleted by lifecycle
// webhooks rather than local signup.
type User struct {
	ID              string   `gorm:"primaryKey" json:"_id"`
	Name            string   `gorm:"default:''" json:"name"`
	Email           string   `gorm:"not null;index" json:"email"`
	ImageUrl        string   `gorm:"default:''" json:"imageUrl"`
	Role            Role     `gorm:"default:'student'" json:"role"`
	EnrolledCourses []Course `gorm:"many2many:course_enrollments;" json:"enrolledCourses,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
