package services

import (
	"errors"
	"time"

	"lms/models"

	"gorm.io/gorm"
)

const (
	BookingActionAccept  = "accept"
	BookingActionDecline = "decline"
)

// WebsiteBookingInput carries a visitor's consultation request.
type WebsiteBookingInput struct {
	ServiceType    string
	SelectedDate   time.Time
	SelectedTime   string
	Duration       string
	Amount         float64
	TransactionID  string
	WhatsappNumber string
	Email          string
	CustomerName   string
	ScreenshotURL  string
}

// CreateWebsiteBooking records an unauthenticated consultation request and
// reserves its slot. Booking row and slot row are written in one
// transaction; if the slot is taken in between, the unique index rejects the
// reservation and the whole booking rolls back with ErrConflict.
func CreateWebsiteBooking(db *gorm.DB, educatorID string, in WebsiteBookingInput) (*models.Booking, error) {
	if !IsCanonicalSlot(in.SelectedTime) {
		return nil, ErrUnknownSlot
	}

	occupied, err := SlotOccupied(db, in.SelectedDate, in.SelectedTime)
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, ErrConflict
	}

	booking := models.Booking{
		EducatorID:       educatorID,
		ServiceType:      in.ServiceType,
		SelectedDate:     DateOnly(in.SelectedDate),
		SelectedTime:     in.SelectedTime,
		Duration:         in.Duration,
		Amount:           in.Amount,
		Status:           models.BookingPending,
		TransactionID:    in.TransactionID,
		ScreenshotURL:    in.ScreenshotURL,
		PaymentStatus:    models.PaymentPending,
		WhatsappNumber:   in.WhatsappNumber,
		Email:            in.Email,
		CustomerName:     in.CustomerName,
		IsWebsiteBooking: true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return ReserveSlot(tx, educatorID, in.SelectedDate, in.SelectedTime, booking.ID)
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ProcessBooking accepts or declines a pending consultation request.
// Accepting marks the payment proof verified; declining records the notes
// and frees the reserved slot so it reappears in availability.
func ProcessBooking(db *gorm.DB, educatorID, bookingID, action, notes string) error {
	if action != BookingActionAccept && action != BookingActionDecline {
		return ErrInvalidAction
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		err := tx.Where("id = ? AND educator_id = ?", bookingID, educatorID).First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if booking.Status != models.BookingPending {
			return ErrAlreadyProcessed
		}

		var updates map[string]interface{}
		if action == BookingActionAccept {
			updates = map[string]interface{}{
				"status":         models.BookingAccepted,
				"payment_status": models.PaymentVerified,
			}
		} else {
			if notes == "" {
				notes = "Booking declined by educator"
			}
			updates = map[string]interface{}{
				"status": models.BookingDeclined,
				"notes":  notes,
			}
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, models.BookingPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		if action == BookingActionDecline {
			return tx.
				Where("date = ? AND time_slot = ? AND booking_id = ?",
					booking.SelectedDate, booking.SelectedTime, booking.ID).
				Delete(&models.TimeSlot{}).Error
		}
		return nil
	})
}

// ListPendingBookings returns the educator's unprocessed requests, newest
// first.
func ListPendingBookings(db *gorm.DB, educatorID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.
		Where("educator_id = ? AND status = ?", educatorID, models.BookingPending).
		Order("created_at desc").
		Find(&bookings).Error
	return bookings, err
}
