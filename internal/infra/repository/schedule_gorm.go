package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/health-first/health-first-server/internal/domain/schedule"
	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Provider / Patient
// --------------------------------------------------

func (r *ScheduleGormRepository) GetProviderByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Provider, error) {

	var provider models.Provider
	if err := r.db.WithContext(ctx).First(&provider, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	return &provider, nil
}

func (r *ScheduleGormRepository) GetPatientByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Patient, error) {

	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	return &patient, nil
}

// --------------------------------------------------
// Availability (create / conflict)
// --------------------------------------------------

func (r *ScheduleGormRepository) SaveAvailabilityBatch(
	ctx context.Context,
	records []models.AvailabilityRecord,
	slots []models.AppointmentSlot,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(records) > 0 {
			if err := tx.Create(&records).Error; err != nil {
				return err
			}
		}
		if len(slots) > 0 {
			if err := tx.CreateInBatches(&slots, 200).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AssertNoAvailabilityOverlap checks the provider's existing records on
// the given date. Times are zero-padded "15:04" strings, so the SQL
// range predicate compares correctly. Boundaries are half-open: a
// window starting exactly when another ends is fine.
func (r *ScheduleGormRepository) AssertNoAvailabilityOverlap(
	ctx context.Context,
	providerID uuid.UUID,
	date string,
	startTime string,
	endTime string,
	excludeID *uuid.UUID,
) error {

	q := r.db.WithContext(ctx).
		Model(&models.AvailabilityRecord{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"provider_id = ? AND availability_date = ? AND is_active = true AND start_time < ? AND end_time > ?",
			providerID,
			date,
			endTime,
			startTime,
		)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return httperr.ErrBusiness(httperr.CodeOverlap)
	}
	return nil
}

// --------------------------------------------------
// Availability (read / change)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetAvailability(
	ctx context.Context,
	id uuid.UUID,
) (*models.AvailabilityRecord, error) {

	var rec models.AvailabilityRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	return &rec, nil
}

func (r *ScheduleGormRepository) ListProviderAvailability(
	ctx context.Context,
	providerID uuid.UUID,
	startDate string,
	endDate string,
) ([]models.AvailabilityRecord, error) {

	q := r.db.WithContext(ctx).
		Preload("Slots").
		Where("provider_id = ?", providerID)

	if startDate != "" {
		q = q.Where("availability_date >= ?", startDate)
	}
	if endDate != "" {
		q = q.Where("availability_date <= ?", endDate)
	}

	var recs []models.AvailabilityRecord
	if err := q.
		Order("availability_date ASC, start_time ASC").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *ScheduleGormRepository) UpdateAvailability(
	ctx context.Context,
	rec *models.AvailabilityRecord,
) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *ScheduleGormRepository) DeleteAvailability(
	ctx context.Context,
	rec *models.AvailabilityRecord,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("availability_id = ?", rec.ID).
			Delete(&models.AppointmentSlot{}).Error; err != nil {
			return err
		}
		return tx.Delete(rec).Error
	})
}

func (r *ScheduleGormRepository) HasBookedSlots(
	ctx context.Context,
	availabilityID uuid.UUID,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AppointmentSlot{}).
		Where("availability_id = ? AND is_booked = true", availabilityID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ScheduleGormRepository) ReplaceSlots(
	ctx context.Context,
	availabilityID uuid.UUID,
	slots []models.AppointmentSlot,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("availability_id = ? AND is_booked = false", availabilityID).
			Delete(&models.AppointmentSlot{}).Error; err != nil {
			return err
		}
		if len(slots) > 0 {
			if err := tx.CreateInBatches(&slots, 200).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// --------------------------------------------------
// Slot search
// --------------------------------------------------

func (r *ScheduleGormRepository) availableSlots(ctx context.Context, start, end time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Provider").
		Preload("Availability").
		Where(
			"is_booked = false AND is_active = true AND start_at >= ? AND start_at < ?",
			start,
			end,
		).
		Order("start_at ASC")
}

func (r *ScheduleGormRepository) ListAvailableSlots(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.AppointmentSlot, error) {

	var slots []models.AppointmentSlot
	if err := r.availableSlots(ctx, start, end).Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *ScheduleGormRepository) ListAvailableSlotsByProviders(
	ctx context.Context,
	providerIDs []uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.AppointmentSlot, error) {

	var slots []models.AppointmentSlot
	if err := r.availableSlots(ctx, start, end).
		Where("provider_id IN ?", providerIDs).
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *ScheduleGormRepository) ListAvailableSlotsByType(
	ctx context.Context,
	appointmentType string,
	start time.Time,
	end time.Time,
) ([]models.AppointmentSlot, error) {

	var slots []models.AppointmentSlot
	if err := r.availableSlots(ctx, start, end).
		Where("appointment_type = ?", appointmentType).
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *ScheduleGormRepository) ListAvailableSlotsByPrice(
	ctx context.Context,
	minPrice *float64,
	maxPrice *float64,
	start time.Time,
	end time.Time,
) ([]models.AppointmentSlot, error) {

	q := r.availableSlots(ctx, start, end)
	if minPrice != nil {
		q = q.Where("price >= ?", *minPrice)
	}
	if maxPrice != nil {
		q = q.Where("price <= ?", *maxPrice)
	}

	var slots []models.AppointmentSlot
	if err := q.Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

// BookSlot claims a slot inside a transaction. The slot row is locked
// so two patients racing for the same slot serialize; the loser sees
// is_booked = true and gets SLOT_NOT_AVAILABLE.
func (r *ScheduleGormRepository) BookSlot(
	ctx context.Context,
	slotID uuid.UUID,
	patientID uuid.UUID,
	expectProvider *uuid.UUID,
	reason string,
	now time.Time,
) (*models.AppointmentSlot, error) {

	var booked *models.AppointmentSlot

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot models.AppointmentSlot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness(httperr.CodeNotFound)
			}
			return err
		}

		if err := tx.
			First(&slot.Availability, "id = ?", slot.AvailabilityID).Error; err != nil {
			return err
		}

		// Patient double-booking check, half-open intervals.
		var conflicts int64
		if err := tx.
			Model(&models.AppointmentSlot{}).
			Where(
				"patient_id = ? AND is_booked = true AND start_at < ? AND end_at > ?",
				patientID,
				slot.EndAt,
				slot.StartAt,
			).
			Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		if err := domain.Book(&slot, patientID, expectProvider, reason, now); err != nil {
			return err
		}

		if err := tx.Save(&slot).Error; err != nil {
			return err
		}

		booked = &slot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booked, nil
}

func (r *ScheduleGormRepository) CancelSlotBooking(
	ctx context.Context,
	slotID uuid.UUID,
	patientID uuid.UUID,
	reason string,
	now time.Time,
) (*models.AppointmentSlot, error) {

	var cancelled *models.AppointmentSlot

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot models.AppointmentSlot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness(httperr.CodeNotFound)
			}
			return err
		}

		if err := domain.CancelBooking(&slot, patientID, reason, now); err != nil {
			return err
		}

		if err := tx.Save(&slot).Error; err != nil {
			return err
		}

		cancelled = &slot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (r *ScheduleGormRepository) ListPatientAppointments(
	ctx context.Context,
	patientID uuid.UUID,
	startDate *time.Time,
	endDate *time.Time,
	page int,
	size int,
) ([]models.AppointmentSlot, int64, error) {

	base := r.db.WithContext(ctx).
		Model(&models.AppointmentSlot{}).
		Where("patient_id = ? AND is_booked = true", patientID)

	if startDate != nil {
		base = base.Where("start_at >= ?", *startDate)
	}
	if endDate != nil {
		base = base.Where("start_at < ?", *endDate)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var slots []models.AppointmentSlot
	if err := base.
		Preload("Provider").
		Preload("Availability").
		Order("start_at ASC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&slots).Error; err != nil {
		return nil, 0, err
	}
	return slots, total, nil
}

func (r *ScheduleGormRepository) ListProviderAppointments(
	ctx context.Context,
	providerID uuid.UUID,
	startDate *time.Time,
	endDate *time.Time,
	page int,
	size int,
) ([]models.AppointmentSlot, int64, error) {

	base := r.db.WithContext(ctx).
		Model(&models.AppointmentSlot{}).
		Where("provider_id = ? AND is_booked = true", providerID)

	if startDate != nil {
		base = base.Where("start_at >= ?", *startDate)
	}
	if endDate != nil {
		base = base.Where("start_at < ?", *endDate)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var slots []models.AppointmentSlot
	if err := base.
		Preload("Patient").
		Preload("Availability").
		Order("start_at ASC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&slots).Error; err != nil {
		return nil, 0, err
	}
	return slots, total, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
