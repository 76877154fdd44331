package models

import (
	"time"

	"gorm.io/datatypes"
)

// CourseProgress stores per-lecture completion as a jagged boolean matrix
// (chapters x lectures) serialized to JSON.
type CourseProgress struct {
	ID       uint           `gorm:"primaryKey" json:"-"`
	UserID   string         `gorm:"not null;uniqueIndex:idx_user_course_progress" json:"userId"`
	CourseID string         `gorm:"not null;uniqueIndex:idx_user_course_progress" json:"courseId"`
	Progress datatypes.JSON `json:"chaptersProgress"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
