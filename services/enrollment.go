package services

import (
	"errors"
	"strings"
	"time"

	"lms/models"

	"gorm.io/gorm"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// IsEnrolled reports whether the cross-reference between user and course
// already exists.
func IsEnrolled(db *gorm.DB, userID, courseID string) (bool, error) {
	var count int64
	err := db.Table("course_enrollments").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// SubmitEnrollment records a manual payment claim awaiting review. The
// screenshot must already be uploaded; only its URL is stored.
func SubmitEnrollment(db *gorm.DB, userID, courseID, screenshotURL, transactionID string) (*models.PendingEnrollment, error) {
	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// One pending claim per (user, course) at a time.
	var existing models.PendingEnrollment
	err := db.Where("user_id = ? AND course_id = ? AND status = ?",
		userID, courseID, models.EnrollmentPending).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicatePending
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrolled, err := IsEnrolled(db, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	pending := models.PendingEnrollment{
		UserID:            userID,
		CourseID:          courseID,
		PaymentScreenshot: screenshotURL,
		TransactionID:     strings.TrimSpace(transactionID),
		Status:            models.EnrollmentPending,
	}
	if err := db.Create(&pending).Error; err != nil {
		return nil, err
	}
	return &pending, nil
}

// ProcessEnrollment applies the single terminal transition to a pending
// request. Approval materializes the cross-reference and the completed
// Purchase ledger row in the same transaction as the status flip, and the
// flip itself is a conditional update on status = pending, so two concurrent
// approvals produce exactly one Purchase — the loser sees AlreadyProcessed.
func ProcessEnrollment(db *gorm.DB, actorID string, isAdmin bool, enrollmentID, action, reason string) error {
	if action != ActionApprove && action != ActionReject {
		return ErrInvalidAction
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var pending models.PendingEnrollment
		if err := tx.First(&pending, "id = ?", enrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var course models.Course
		if err := tx.First(&course, "id = ?", pending.CourseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Educators may only process requests against their own courses.
		if !isAdmin && course.EducatorID != actorID {
			return ErrUnauthorized
		}

		if pending.Status != models.EnrollmentPending {
			return ErrAlreadyProcessed
		}

		now := time.Now()
		updates := map[string]interface{}{
			"processed_at": now,
			"processed_by": actorID,
		}
		if action == ActionApprove {
			updates["status"] = models.EnrollmentApproved
		} else {
			updates["status"] = models.EnrollmentRejected
			if strings.TrimSpace(reason) == "" {
				reason = "No reason provided"
			}
			updates["rejection_reason"] = reason
		}

		res := tx.Model(&models.PendingEnrollment{}).
			Where("id = ? AND status = ?", pending.ID, models.EnrollmentPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		if action == ActionReject {
			return nil
		}

		var user models.User
		if err := tx.First(&user, "id = ?", pending.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Model(&user).Association("EnrolledCourses").Append(&course); err != nil {
			return err
		}

		purchase := models.Purchase{
			UserID:        pending.UserID,
			CourseID:      pending.CourseID,
			Amount:        course.Price,
			Status:        models.PurchaseCompleted,
			PaymentMethod: "qr_code",
			TransactionID: pending.TransactionID,
		}
		return tx.Create(&purchase).Error
	})
}

// LatestEnrollment returns the most recently created request for the
// (user, course) pair.
func LatestEnrollment(db *gorm.DB, userID, courseID string) (*models.PendingEnrollment, error) {
	var pending models.PendingEnrollment
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("created_at desc").First(&pending).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pending, nil
}

// ListUserEnrollments lists all of a user's requests, newest first.
func ListUserEnrollments(db *gorm.DB, userID string) ([]models.PendingEnrollment, error) {
	var enrollments []models.PendingEnrollment
	err := db.Where("user_id = ?", userID).
		Preload("Course").
		Order("created_at desc").
		Find(&enrollments).Error
	return enrollments, err
}

// RemoveRejected deletes a request, but only when the caller owns it and the
// request sits in the terminal rejected state.
func RemoveRejected(db *gorm.DB, userID, enrollmentID string) error {
	var pending models.PendingEnrollment
	if err := db.First(&pending, "id = ?", enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if pending.UserID != userID {
		return ErrForbidden
	}
	if pending.Status != models.EnrollmentRejected {
		return ErrInvalidState
	}
	return db.Delete(&pending).Error
}

// ListEnrollmentsByStatus pages through requests in the given status. With a
// non-empty educatorID only requests against that educator's courses are
// returned; admins pass an empty id to see everything.
func ListEnrollmentsByStatus(db *gorm.DB, educatorID string, status models.EnrollmentStatus, page, limit int) ([]models.PendingEnrollment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := db.Model(&models.PendingEnrollment{}).Where("status = ?", status)
	if educatorID != "" {
		var courseIDs []string
		if err := db.Model(&models.Course{}).
			Where("educator_id = ?", educatorID).
			Pluck("id", &courseIDs).Error; err != nil {
			return nil, 0, err
		}
		query = query.Where("course_id IN ?", courseIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var enrollments []models.PendingEnrollment
	err := query.
		Preload("User").
		Preload("Course").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&enrollments).Error
	return enrollments, total, err
}
