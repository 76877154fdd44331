package services

import (
	"errors"
	"time"

	"lms/models"

	"gorm.io/gorm"
)

// CanonicalSlots is the fixed daily template: 19 half-hour labels from
// 10:00 AM to 07:00 PM. Order matters; availability results preserve it.
var CanonicalSlots = []string{
	"10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"12:00 PM", "12:30 PM", "01:00 PM", "01:30 PM",
	"02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM",
	"04:00 PM", "04:30 PM", "05:00 PM", "05:30 PM",
	"06:00 PM", "06:30 PM", "07:00 PM",
}

// IsCanonicalSlot reports whether the label belongs to the daily template.
func IsCanonicalSlot(label string) bool {
	for _, s := range CanonicalSlots {
		if s == label {
			return true
		}
	}
	return false
}

// DateOnly truncates a timestamp to local midnight. Slot dates are stored
// normalized through this, and day windows are computed from it. Day
// boundaries are server-local time throughout.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayWindow(date time.Time) (time.Time, time.Time) {
	start := DateOnly(date)
	return start, start.AddDate(0, 0, 1)
}

// AvailableSlots returns the template labels still open on the given date,
// in template order, together with the occupied labels. A label is occupied
// if a slot row blocks or reserves it, or an active booking (pending or
// accepted) targets it; a slot hit by both counts once.
func AvailableSlots(db *gorm.DB, date time.Time) (available, occupied []string, err error) {
	start, end := dayWindow(date)

	var slotRows []models.TimeSlot
	if err = db.
		Where("date >= ? AND date < ?", start, end).
		Where("is_blocked = ? OR booking_id IS NOT NULL", true).
		Find(&slotRows).Error; err != nil {
		return nil, nil, err
	}

	var bookings []models.Booking
	if err = db.
		Where("selected_date >= ? AND selected_date < ?", start, end).
		Where("status IN ?", []models.BookingStatus{models.BookingPending, models.BookingAccepted}).
		Find(&bookings).Error; err != nil {
		return nil, nil, err
	}

	taken := make(map[string]bool, len(slotRows)+len(bookings))
	for _, row := range slotRows {
		taken[row.TimeSlot] = true
	}
	for _, b := range bookings {
		taken[b.SelectedTime] = true
	}

	available = make([]string, 0, len(CanonicalSlots))
	occupied = make([]string, 0, len(taken))
	for _, label := range CanonicalSlots {
		if taken[label] {
			occupied = append(occupied, label)
		} else {
			available = append(available, label)
		}
	}
	return available, occupied, nil
}

// ManageTimeSlot blocks or unblocks one (date, label) slot.
//
// Blocking fails with ErrConflict when a booking already occupies the slot.
// The block is applied as create-then-conditional-update so a concurrent
// reservation loses exactly one way: either our insert hits the unique index
// and the fallback update refuses rows that carry a booking id, or the
// reservation's insert collides with ours.
//
// Unblocking deletes the blocked row and is a no-op when none exists.
func ManageTimeSlot(db *gorm.DB, educatorID string, date time.Time, label string, blocked bool, reason string) error {
	if !IsCanonicalSlot(label) {
		return ErrUnknownSlot
	}
	day := DateOnly(date)

	if !blocked {
		return db.
			Where("date = ? AND time_slot = ? AND is_blocked = ?", day, label, true).
			Delete(&models.TimeSlot{}).Error
	}

	if reason == "" {
		reason = "Blocked by educator"
	}

	var existing models.TimeSlot
	err := db.Where("date = ? AND time_slot = ?", day, label).First(&existing).Error
	switch {
	case err == nil:
		if existing.BookingID != nil {
			return ErrConflict
		}
		res := db.Model(&models.TimeSlot{}).
			Where("id = ? AND booking_id IS NULL", existing.ID).
			Updates(map[string]interface{}{"is_blocked": true, "block_reason": reason})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// A reservation slipped in between the read and the update.
			return ErrConflict
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		slot := models.TimeSlot{
			EducatorID:  educatorID,
			Date:        day,
			TimeSlot:    label,
			IsBlocked:   true,
			BlockReason: reason,
		}
		if err := db.Create(&slot).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return err
		}
		return nil
	default:
		return err
	}
}

// ReserveSlot inserts the slot row that ties a booking to its (date, label).
// Intended to run inside the booking transaction; a duplicate-key collision
// means someone else took the slot first.
func ReserveSlot(tx *gorm.DB, educatorID string, date time.Time, label, bookingID string) error {
	slot := models.TimeSlot{
		EducatorID: educatorID,
		Date:       DateOnly(date),
		TimeSlot:   label,
		BookingID:  &bookingID,
	}
	if err := tx.Create(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// SlotOccupied reports whether a blocked or reserved slot row exists for the
// given (date, label).
func SlotOccupied(db *gorm.DB, date time.Time, label string) (bool, error) {
	start, end := dayWindow(date)
	var count int64
	err := db.Model(&models.TimeSlot{}).
		Where("date >= ? AND date < ? AND time_slot = ?", start, end, label).
		Where("is_blocked = ? OR booking_id IS NOT NULL", true).
		Count(&count).Error
	return count > 0, err
}

// EducatorSchedule lists slot rows, optionally bounded to [startDate, endDate],
// with booking details attached.
func EducatorSchedule(db *gorm.DB, educatorID string, startDate, endDate *time.Time) ([]models.TimeSlot, error) {
	query := db.Where("educator_id = ?", educatorID)
	if startDate != nil && endDate != nil {
		query = query.Where("date >= ? AND date <= ?", DateOnly(*startDate), DateOnly(*endDate))
	}

	var slots []models.TimeSlot
	err := query.Preload("Booking").Order("date asc, time_slot asc").Find(&slots).Error
	return slots, err
}
