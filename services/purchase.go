package services

import (
	"errors"

	"lms/models"

	"gorm.io/gorm"
)

// CompletePurchase finalizes a card payment: flips the ledger row to
// completed and materializes the same cross-reference a manual approval
// would. Idempotent against webhook redelivery — the status flip is a
// conditional update, and an already-completed purchase is a no-op.
func CompletePurchase(db *gorm.DB, purchaseID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var purchase models.Purchase
		if err := tx.First(&purchase, "id = ?", purchaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if purchase.Status == models.PurchaseCompleted {
			return nil
		}

		res := tx.Model(&models.Purchase{}).
			Where("id = ? AND status = ?", purchase.ID, models.PurchasePending).
			Update("status", models.PurchaseCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidState
		}

		var user models.User
		if err := tx.First(&user, "id = ?", purchase.UserID).Error; err != nil {
			return err
		}
		var course models.Course
		if err := tx.First(&course, "id = ?", purchase.CourseID).Error; err != nil {
			return err
		}

		return tx.Model(&user).Association("EnrolledCourses").Append(&course)
	})
}

// FailPurchase marks a pending ledger row failed after a gateway failure
// callback.
func FailPurchase(db *gorm.DB, purchaseID string) error {
	res := db.Model(&models.Purchase{}).
		Where("id = ? AND status = ?", purchaseID, models.PurchasePending).
		Update("status", models.PurchaseFailed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidState
	}
	return nil
}
