package services

import (
	"testing"
	"time"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEnrollmentApprove(t *testing.T) {
	db := openTestDB(t)
	educator := seedUser(t, db, "edu_1", models.RoleEducator)
	student := seedUser(t, db, "user_1", models.RoleStudent)
	course := seedCourse(t, db, educator.ID, 499)
	pending := seedPending(t, db, student.ID, course.ID)

	err := ProcessEnrollment(db, educator.ID, false, pending.ID, ActionApprove, "")
	require.NoError(t, err)

	var processed models.PendingEnrollment
	require.NoError(t, db.First(&processed, "id = ?", pending.ID).Error)
	assert.Equal(t, models.EnrollmentApproved, processed.Status)
	assert.Equal(t, educator.ID, processed.ProcessedBy)
	require.NotNil(t, processed.ProcessedAt)
	assert.WithinDuration(t, time.Now(), *processed.ProcessedAt, time.Minute)

	// Cross-reference exists in both directions
	enrolled, err := IsEnrolled(db, student.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	var withCourses models.User
	require.NoError(t, db.Preload("EnrolledCourses").First(&withCourses, "id = ?", student.ID).Error)
	require.Len(t, withCourses.EnrolledCourses, 1)
	assert.Equal(t, course.ID, withCourses.EnrolledCourses[0].ID)

	var withStudents models.Course
	require.NoError(t, db.Preload("EnrolledStudents").First(&withStudents, "id = ?", course.ID).Error)
	require.Len(t, withStudents.EnrolledStudents, 1)
	assert.Equal(t, student.ID, withStudents.EnrolledStudents[0].ID)

	// Exactly one completed Purchase at the course price
	var purchases []models.Purchase
	require.NoError(t, db.Find(&purchases).Error)
	require.Len(t, purchases, 1)
	assert.Equal(t, models.PurchaseCompleted, purchases[0].Status)
	assert.Equal(t, course.Price, purchases[0].Amount)
	assert.Equal(t, pending.TransactionID, purchases[0].TransactionID)
}

func TestProcessEnrollmentReject(t *testing.T) {
	db := openTestDB(t)
	educator := seedUser(t, db, "edu_1", models.RoleEducator)
	student := seedUser(t, db, "user_1", models.RoleStudent)
	course := seedCourse(t, db, educator.ID, 499)
	pending := seedPending(t, db, student.ID, course.ID)

	err := ProcessEnrollment(db, educator.ID, false, pending.ID, ActionReject, "")
	require.NoError(t, err)

	var processed models.PendingEnrollment
	require.NoError(t, db.First(&processed, "id = ?", pending.ID).Error)
	assert.Equal(t, models.EnrollmentRejected, processed.Status)
	assert.Equal(t, "No reason provided", processed.RejectionReason)

	// No side effects on rejection
	enrolled, err := IsEnrolled(db, student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	var count int64
	require.NoError(t, db.Model(&models.Purchase{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProcessEnrollmentTerminal(t *testing.T) {
	db := openTestDB(t)
	educator := seedUser(t, db, "edu_1", models.RoleEducator)
	student := seedUser(t, db, "user_1", models.RoleStudent)
	course := seedCourse(t, db, educator.ID, 499)
	pending := seedPending(t, db, student.ID, course.ID)

	require.NoError(t, ProcessEnrollment(db, educator.ID, false, pending.ID, ActionApprove, ""))

	// Second transition of any kind must fail and mutate nothing further
	for _, action := range []string{ActionApprove, ActionReject} {
		err := ProcessEnrollment(db, educator.ID, false, pending.ID, action, "late")
		assert.ErrorIs(t, err, ErrAlreadyProcessed)
	}

	var purchases int64
	require.NoError(t, db.Model(&models.Purchase{}).Count(&purchases).Error)
	assert.EqualValues(t, 1, purchases)

	var processed models.PendingEnrollment
	require.NoError(t, db.First(&processed, "id = ?", pending.ID).Error)
	assert.Equal(t, models.EnrollmentApproved, processed.Status)
	assert.Empty(t, processed.RejectionReason)
}

func TestProcessEnrollmentOwnership(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "edu_owner", models.RoleEducator)
	other := seedUser(t, db, "edu_other", models.RoleEducator)
	admin := seedUser(t, db, "admin_1", models.RoleAdmin)
	student := seedUser(t, db, "user_1", models.RoleStudent)
	course := seedCourse(t, db, owner.ID, 499)
	pending := seedPending(t, db, student.ID, course.ID)

	// An educator who does not own the course is rejected
	err := ProcessEnrollment(db, other.ID, false, pending.ID, ActionApprove, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	var untouched models.PendingEnrollment
	require.NoError(t, db.First(&untouched, "id = ?", pending.ID).Error)
	assert.Equal(t, models.EnrollmentPending, untouched.Status)

	// A platform admin bypasses the ownership check
	require.NoError(t, ProcessEnrollment(db, admin.ID, true, pending.ID, ActionApprove, ""))
}

func TestProcessEnrollmentErrors(t *testing.T) {
	db := openTestDB(t)
	educator := seedUser(t, db, "edu_1", models.RoleEducator)
	student := seedUser(t, db, "user_1", models.RoleStudent)
	course := seedCourse(t, db, educator.ID, 499)
	pending := seedPending(t, db, student.ID, course.ID)

	assert.ErrorIs(t, ProcessEnrollment(db, educator.ID, false, "missing-id", ActionApprove, ""), ErrNotFound)
	assert.ErrorIs(t, ProcessEnrollment(db, educator.ID, false, pending.ID, "archive", ""), ErrInvalidAction)
}

func TestSubmitEnrollment(t *testing.T) {
	db := openTestDB(t)
	educator := seedUser(t, db, "edu_1", models.RoleEducator)
	student := seedUser(t, db, "user_1", models.RoleStudent)
	course := seedCourse(t, db, educator.ID, 499)

	pending, err := SubmitEnrollment(db, student.ID, course.ID, "https://img.example.com/p.png", " TXN-9 ")
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentPending, pending.Status)
	assert.Equal(t, "TXN-9", pending.TransactionID)

	// A second claim while one is pending is refused
	_, err = SubmitEnrollment(db, student.ID, course.ID, "https://img.example.com/p2.png", "TXN-10")
	assert.ErrorIs(t, err, ErrDuplicatePending)

	// After rejection a fresh claim is allowed again
	require.NoError(t, ProcessEnrollment(db, educator.ID, false, pending.ID, ActionReject, "blurry screenshot"))
	_, err = SubmitEnrollment(db, student.ID, course.ID, "https://img.example.com/p3.png", "TXN-11")
	require.NoError(t, err)

	// Unknown course and unknown user are NotFound
	_, err = SubmitEnrollment(db, student.ID, "missing-course", "url", "TXN")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = SubmitEnrollment(db, "missing-user", course.ID, "url", "TXN")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitEnrollmentAlreadyEnrolled(t *testing.T) {
	db := openTestDB(t)
	educator := seedUser(t, db, "edu_1", models.RoleEducator)
	student := seedUser(t, db, "user_1", models.RoleStudent)
	course := seedCourse(t, db, educator.ID, 499)
	pending := seedPending(t, db, student.ID, course.ID)

	require.NoError(t, ProcessEnrollment(db, educator.ID, false, pending.ID, ActionApprove, ""))

	_, err := SubmitEnrollment(db, student.ID, course.ID, "url", "TXN")
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestLatestEnrollmentPicksNewest(t *testing.T) {
	db := openTestDB(t)
	educator := seedUser(t, db, "edu_1", models.RoleEducator)
	student := seedUser(t, db, "user_1", models.RoleStudent)
	course := seedCourse(t, db, educator.ID, 499)

	first := seedPending(t, db, student.ID, course.ID)
	require.NoError(t, ProcessEnrollment(db, educator.ID, false, first.ID, ActionReject, "wrong amount"))

	second := models.PendingEnrollment{
		UserID:            student.ID,
		CourseID:          course.ID,
		PaymentScreenshot: "https://img.example.com/retry.png",
		TransactionID:     "TXN-456",
	}
	// Force a strictly later creation time; sqlite timestamps are coarse.
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, db.Create(&second).Error)

	latest, err := LatestEnrollment(db, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	_, err = LatestEnrollment(db, student.ID, "missing-course")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveRejected(t *testing.T) {
	db := openTestDB(t)
	educator := seedUser(t, db, "edu_1", models.RoleEducator)
	student := seedUser(t, db, "user_1", models.RoleStudent)
	stranger := seedUser(t, db, "user_2", models.RoleStudent)
	course := seedCourse(t, db, educator.ID, 499)
	pending := seedPending(t, db, student.ID, course.ID)

	// Still pending: even the owner may not delete it
	assert.ErrorIs(t, RemoveRejected(db, student.ID, pending.ID), ErrInvalidState)

	require.NoError(t, ProcessEnrollment(db, educator.ID, false, pending.ID, ActionReject, ""))

	// Rejected but not the owner
	assert.ErrorIs(t, RemoveRejected(db, stranger.ID, pending.ID), ErrForbidden)

	// Owner removes the rejected request
	require.NoError(t, RemoveRejected(db, student.ID, pending.ID))
	assert.ErrorIs(t, RemoveRejected(db, student.ID, pending.ID), ErrNotFound)
}

func TestListEnrollmentsByStatus(t *testing.T) {
	db := openTestDB(t)
	educator := seedUser(t, db, "edu_1", models.RoleEducator)
	rival := seedUser(t, db, "edu_2", models.RoleEducator)
	student := seedUser(t, db, "user_1", models.RoleStudent)
	mine := seedCourse(t, db, educator.ID, 499)
	theirs := seedCourse(t, db, rival.ID, 999)

	seedPending(t, db, student.ID, mine.ID)
	seedPending(t, db, student.ID, theirs.ID)

	// Educator sees only their own course's queue
	list, total, err := ListEnrollmentsByStatus(db, educator.ID, models.EnrollmentPending, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].CourseID)

	// Admin scope sees everything
	_, total, err = ListEnrollmentsByStatus(db, "", models.EnrollmentPending, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}
