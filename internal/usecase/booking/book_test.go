package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/health-first/health-first-server/internal/audit"
	domain "github.com/health-first/health-first-server/internal/domain/schedule"
	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/models"
)

// fakeRepo mimics the transactional booking path in memory: it holds
// the patient's existing bookings for conflict checks and applies the
// same domain rules the real repository does.
type fakeRepo struct {
	domain.Repository

	patient  *models.Patient
	slots    map[uuid.UUID]*models.AppointmentSlot
	existing []models.AppointmentSlot // patient's booked slots
}

func newFakeRepo(patient *models.Patient) *fakeRepo {
	return &fakeRepo{
		patient: patient,
		slots:   map[uuid.UUID]*models.AppointmentSlot{},
	}
}

func (f *fakeRepo) GetPatientByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	if f.patient == nil || f.patient.ID != id {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return f.patient, nil
}

func (f *fakeRepo) BookSlot(ctx context.Context, slotID, patientID uuid.UUID, expectProvider *uuid.UUID, reason string, now time.Time) (*models.AppointmentSlot, error) {
	slot, ok := f.slots[slotID]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	for _, booked := range f.existing {
		if booked.PatientID != nil && *booked.PatientID == patientID &&
			domain.Overlaps(slot.StartAt, slot.EndAt, booked.StartAt, booked.EndAt) {
			return nil, httperr.ErrBusiness(httperr.CodeTimeConflict)
		}
	}

	if err := domain.Book(slot, patientID, expectProvider, reason, now); err != nil {
		return nil, err
	}
	return slot, nil
}

func (f *fakeRepo) CancelSlotBooking(ctx context.Context, slotID, patientID uuid.UUID, reason string, now time.Time) (*models.AppointmentSlot, error) {
	slot, ok := f.slots[slotID]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	if err := domain.CancelBooking(slot, patientID, reason, now); err != nil {
		return nil, err
	}
	return slot, nil
}

func activePatient() *models.Patient {
	return &models.Patient{ID: uuid.New(), IsActive: true}
}

func futureSlot() *models.AppointmentSlot {
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Minute)
	return &models.AppointmentSlot{
		ID:              uuid.New(),
		ProviderID:      uuid.New(),
		StartAt:         start,
		EndAt:           start.Add(30 * time.Minute),
		AppointmentType: "CONSULTATION",
		IsActive:        true,
	}
}

func TestBookSlot(t *testing.T) {
	patient := activePatient()
	repo := newFakeRepo(patient)
	slot := futureSlot()
	repo.slots[slot.ID] = slot

	uc := NewBook(repo, new(audit.Dispatcher))

	out, err := uc.Execute(context.Background(), BookInput{
		SlotID:    slot.ID,
		PatientID: patient.ID,
		Reason:    "annual checkup",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !out.IsBooked || out.PatientID == nil || *out.PatientID != patient.ID {
		t.Fatal("slot not booked for patient")
	}
	if !out.BookingConfirmed {
		t.Fatal("expected auto-confirmation")
	}
}

func TestBookSlotInactivePatient(t *testing.T) {
	patient := activePatient()
	patient.IsActive = false
	repo := newFakeRepo(patient)
	slot := futureSlot()
	repo.slots[slot.ID] = slot

	uc := NewBook(repo, new(audit.Dispatcher))

	_, err := uc.Execute(context.Background(), BookInput{SlotID: slot.ID, PatientID: patient.ID})
	if !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestBookSlotAlreadyTaken(t *testing.T) {
	patient := activePatient()
	repo := newFakeRepo(patient)
	slot := futureSlot()
	slot.IsBooked = true
	repo.slots[slot.ID] = slot

	uc := NewBook(repo, new(audit.Dispatcher))

	_, err := uc.Execute(context.Background(), BookInput{SlotID: slot.ID, PatientID: patient.ID})
	if !httperr.IsBusiness(err, httperr.CodeSlotNotAvailable) {
		t.Fatalf("expected SLOT_NOT_AVAILABLE, got %v", err)
	}
}

func TestBookSlotPatientConflict(t *testing.T) {
	patient := activePatient()
	repo := newFakeRepo(patient)
	slot := futureSlot()
	repo.slots[slot.ID] = slot

	// Patient already holds an overlapping appointment elsewhere.
	clash := *slot
	clash.ID = uuid.New()
	clash.IsBooked = true
	clash.PatientID = &patient.ID
	repo.existing = []models.AppointmentSlot{clash}

	uc := NewBook(repo, new(audit.Dispatcher))

	_, err := uc.Execute(context.Background(), BookInput{SlotID: slot.ID, PatientID: patient.ID})
	if !httperr.IsBusiness(err, httperr.CodeTimeConflict) {
		t.Fatalf("expected TIME_CONFLICT, got %v", err)
	}
}

func TestBookSlotBackToBackAllowed(t *testing.T) {
	patient := activePatient()
	repo := newFakeRepo(patient)
	slot := futureSlot()
	repo.slots[slot.ID] = slot

	// Existing booking ends exactly when the new slot starts.
	prev := futureSlot()
	prev.StartAt = slot.StartAt.Add(-30 * time.Minute)
	prev.EndAt = slot.StartAt
	prev.IsBooked = true
	prev.PatientID = &patient.ID
	repo.existing = []models.AppointmentSlot{*prev}

	uc := NewBook(repo, new(audit.Dispatcher))

	if _, err := uc.Execute(context.Background(), BookInput{SlotID: slot.ID, PatientID: patient.ID}); err != nil {
		t.Fatalf("back-to-back booking must be allowed: %v", err)
	}
}

func TestBookSlotProviderMismatch(t *testing.T) {
	patient := activePatient()
	repo := newFakeRepo(patient)
	slot := futureSlot()
	repo.slots[slot.ID] = slot
	other := uuid.New()

	uc := NewBook(repo, new(audit.Dispatcher))

	_, err := uc.Execute(context.Background(), BookInput{
		SlotID:     slot.ID,
		PatientID:  patient.ID,
		ProviderID: &other,
	})
	if !httperr.IsBusiness(err, httperr.CodeSlotNotAvailable) {
		t.Fatalf("expected SLOT_NOT_AVAILABLE, got %v", err)
	}
}

func TestCancelBooking(t *testing.T) {
	patient := activePatient()
	repo := newFakeRepo(patient)
	slot := futureSlot()
	slot.IsBooked = true
	slot.PatientID = &patient.ID
	repo.slots[slot.ID] = slot

	uc := NewCancel(repo, new(audit.Dispatcher))

	out, err := uc.Execute(context.Background(), slot.ID, patient.ID, "schedule conflict")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.IsBooked {
		t.Fatal("slot should be released")
	}
}

func TestCancelBookingNotOwner(t *testing.T) {
	patient := activePatient()
	repo := newFakeRepo(patient)
	slot := futureSlot()
	slot.IsBooked = true
	owner := uuid.New()
	slot.PatientID = &owner
	repo.slots[slot.ID] = slot

	uc := NewCancel(repo, new(audit.Dispatcher))

	_, err := uc.Execute(context.Background(), slot.ID, patient.ID, "")
	if !httperr.IsBusiness(err, httperr.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
