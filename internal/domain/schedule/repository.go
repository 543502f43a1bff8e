package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/health-first/health-first-server/internal/models"
)

type Repository interface {
	// -------- Provider / Patient --------
	GetProviderByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Provider, error)

	GetPatientByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Patient, error)

	// -------- Availability (create / conflict) --------
	SaveAvailabilityBatch(
		ctx context.Context,
		records []models.AvailabilityRecord,
		slots []models.AppointmentSlot,
	) error

	AssertNoAvailabilityOverlap(
		ctx context.Context,
		providerID uuid.UUID,
		date string,
		startTime string,
		endTime string,
		excludeID *uuid.UUID,
	) error

	// -------- Availability (read / change) --------
	GetAvailability(
		ctx context.Context,
		id uuid.UUID,
	) (*models.AvailabilityRecord, error)

	ListProviderAvailability(
		ctx context.Context,
		providerID uuid.UUID,
		startDate string,
		endDate string,
	) ([]models.AvailabilityRecord, error)

	UpdateAvailability(
		ctx context.Context,
		rec *models.AvailabilityRecord,
	) error

	DeleteAvailability(
		ctx context.Context,
		rec *models.AvailabilityRecord,
	) error

	HasBookedSlots(
		ctx context.Context,
		availabilityID uuid.UUID,
	) (bool, error)

	ReplaceSlots(
		ctx context.Context,
		availabilityID uuid.UUID,
		slots []models.AppointmentSlot,
	) error

	// -------- Slot search --------
	ListAvailableSlots(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.AppointmentSlot, error)

	ListAvailableSlotsByProviders(
		ctx context.Context,
		providerIDs []uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.AppointmentSlot, error)

	ListAvailableSlotsByType(
		ctx context.Context,
		appointmentType string,
		start time.Time,
		end time.Time,
	) ([]models.AppointmentSlot, error)

	ListAvailableSlotsByPrice(
		ctx context.Context,
		minPrice *float64,
		maxPrice *float64,
		start time.Time,
		end time.Time,
	) ([]models.AppointmentSlot, error)

	// -------- Booking --------
	BookSlot(
		ctx context.Context,
		slotID uuid.UUID,
		patientID uuid.UUID,
		expectProvider *uuid.UUID,
		reason string,
		now time.Time,
	) (*models.AppointmentSlot, error)

	CancelSlotBooking(
		ctx context.Context,
		slotID uuid.UUID,
		patientID uuid.UUID,
		reason string,
		now time.Time,
	) (*models.AppointmentSlot, error)

	ListPatientAppointments(
		ctx context.Context,
		patientID uuid.UUID,
		startDate *time.Time,
		endDate *time.Time,
		page int,
		size int,
	) ([]models.AppointmentSlot, int64, error)

	ListProviderAppointments(
		ctx context.Context,
		providerID uuid.UUID,
		startDate *time.Time,
		endDate *time.Time,
		page int,
		size int,
	) ([]models.AppointmentSlot, int64, error)
}
