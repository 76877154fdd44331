package services

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPurchase(t *testing.T, db *gorm.DB, userID, courseID string, amount float64) models.Purchase {
	t.Helper()
	purchase := models.Purchase{
		UserID:        userID,
		CourseID:      courseID,
		Amount:        amount,
		Status:        models.PurchasePending,
		PaymentMethod: "stripe",
	}
	require.NoError(t, db.Create(&purchase).Error)
	return purchase
}

func TestCompletePurchase(t *testing.T) {
	db := openTestDB(t)
	educator := seedUser(t, db, "edu_1", models.RoleEducator)
	student := seedUser(t, db, "user_1", models.RoleStudent)
	course := seedCourse(t, db, educator.ID, 499)
	purchase := seedPurchase(t, db, student.ID, course.ID, 449.1)

	require.NoError(t, CompletePurchase(db, purchase.ID))

	var updated models.Purchase
	require.NoError(t, db.First(&updated, "id = ?", purchase.ID).Error)
	assert.Equal(t, models.PurchaseCompleted, updated.Status)

	enrolled, err := IsEnrolled(db, student.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestCompletePurchaseIdempotent(t *testing.T) {
	db := openTestDB(t)
	educator := seedUser(t, db, "edu_1", models.RoleEducator)
	student := seedUser(t, db, "user_1", models.RoleStudent)
	course := seedCourse(t, db, educator.ID, 499)
	purchase := seedPurchase(t, db, student.ID, course.ID, 499)

	// Webhook redelivery: the second call is a clean no-op
	require.NoError(t, CompletePurchase(db, purchase.ID))
	require.NoError(t, CompletePurchase(db, purchase.ID))

	var withCourses models.User
	require.NoError(t, db.Preload("EnrolledCourses").First(&withCourses, "id = ?", student.ID).Error)
	assert.Len(t, withCourses.EnrolledCourses, 1)
}

func TestCompletePurchaseErrors(t *testing.T) {
	db := openTestDB(t)
	educator := seedUser(t, db, "edu_1", models.RoleEducator)
	student := seedUser(t, db, "user_1", models.RoleStudent)
	course := seedCourse(t, db, educator.ID, 499)

	assert.ErrorIs(t, CompletePurchase(db, "missing-id"), ErrNotFound)

	// A failed purchase cannot be completed afterwards
	purchase := seedPurchase(t, db, student.ID, course.ID, 499)
	require.NoError(t, FailPurchase(db, purchase.ID))
	assert.ErrorIs(t, CompletePurchase(db, purchase.ID), ErrInvalidState)
}

func TestFailPurchase(t *testing.T) {
	db := openTestDB(t)
	educator := seedUser(t, db, "edu_1", models.RoleEducator)
	student := seedUser(t, db, "user_1", models.RoleStudent)
	course := seedCourse(t, db, educator.ID, 499)
	purchase := seedPurchase(t, db, student.ID, course.ID, 499)

	require.NoError(t, FailPurchase(db, purchase.ID))

	var updated models.Purchase
	require.NoError(t, db.First(&updated, "id = ?", purchase.ID).Error)
	assert.Equal(t, models.PurchaseFailed, updated.Status)

	// No enrollment materializes from a failed payment
	enrolled, err := IsEnrolled(db, student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	// Repeating the failure callback finds nothing pending
	assert.ErrorIs(t, FailPurchase(db, purchase.ID), ErrInvalidState)
}
