package services

import (
	"fmt"
	"strings"
	"testing"

	"lms/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache DSN keeps the schema visible across pooled
	// connections; the name isolates tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseRating{},
		&models.PendingEnrollment{},
		&models.Booking{},
		&models.TimeSlot{},
		&models.Purchase{},
		&models.CourseProgress{},
	)
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string, role models.Role) models.User {
	t.Helper()
	user := models.User{
		ID:    id,
		Name:  "Test " + id,
		Email: id + "@example.com",
		Role:  role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, educatorID string, price float64) models.Course {
	t.Helper()
	course := models.Course{
		CourseTitle: "Vedic Astrology Basics",
		Price:       price,
		IsPublished: true,
		EducatorID:  educatorID,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func seedPending(t *testing.T, db *gorm.DB, userID, courseID string) models.PendingEnrollment {
	t.Helper()
	pending := models.PendingEnrollment{
		UserID:            userID,
		CourseID:          courseID,
		PaymentScreenshot: "https://img.example.com/proof.png",
		TransactionID:     "TXN-123",
		Status:            models.EnrollmentPending,
	}
	require.NoError(t, db.Create(&pending).Error)
	return pending
}
