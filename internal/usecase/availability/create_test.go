package availability

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/health-first/health-first-server/internal/audit"
	domain "github.com/health-first/health-first-server/internal/domain/schedule"
	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/models"
)

// fakeRepo stubs only what each test exercises; untouched methods come
// from the embedded interface and panic if reached.
type fakeRepo struct {
	domain.Repository

	provider *models.Provider
	patient  *models.Patient

	overlap bool
	booked  bool

	savedRecords []models.AvailabilityRecord
	savedSlots   []models.AppointmentSlot

	record   *models.AvailabilityRecord
	deleted  bool
	replaced []models.AppointmentSlot
}

func (f *fakeRepo) GetProviderByID(ctx context.Context, id uuid.UUID) (*models.Provider, error) {
	if f.provider == nil || f.provider.ID != id {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return f.provider, nil
}

func (f *fakeRepo) AssertNoAvailabilityOverlap(ctx context.Context, providerID uuid.UUID, date, startTime, endTime string, excludeID *uuid.UUID) error {
	if f.overlap {
		return httperr.ErrBusiness(httperr.CodeOverlap)
	}
	return nil
}

func (f *fakeRepo) SaveAvailabilityBatch(ctx context.Context, records []models.AvailabilityRecord, slots []models.AppointmentSlot) error {
	f.savedRecords = records
	f.savedSlots = slots
	return nil
}

func (f *fakeRepo) GetAvailability(ctx context.Context, id uuid.UUID) (*models.AvailabilityRecord, error) {
	if f.record == nil || f.record.ID != id {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return f.record, nil
}

func (f *fakeRepo) HasBookedSlots(ctx context.Context, availabilityID uuid.UUID) (bool, error) {
	return f.booked, nil
}

func (f *fakeRepo) UpdateAvailability(ctx context.Context, rec *models.AvailabilityRecord) error {
	f.record = rec
	return nil
}

func (f *fakeRepo) DeleteAvailability(ctx context.Context, rec *models.AvailabilityRecord) error {
	f.deleted = true
	return nil
}

func (f *fakeRepo) ReplaceSlots(ctx context.Context, availabilityID uuid.UUID, slots []models.AppointmentSlot) error {
	f.replaced = slots
	return nil
}

func activeProvider() *models.Provider {
	return &models.Provider{
		ID:       uuid.New(),
		IsActive: true,
	}
}

func baseCreateInput(providerID uuid.UUID) CreateInput {
	return CreateInput{
		ProviderID:          providerID,
		Date:                "2030-03-18",
		StartTime:           "08:00",
		EndTime:             "16:00",
		SlotDurationMinutes: 30,
		AppointmentType:     "CONSULTATION",
		Timezone:            "UTC",
	}
}

func TestCreateSingleDay(t *testing.T) {
	provider := activeProvider()
	repo := &fakeRepo{provider: provider}
	uc := NewCreate(repo, new(audit.Dispatcher))

	out, err := uc.Execute(context.Background(), baseCreateInput(provider.ID))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(out.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out.Records))
	}
	if out.SlotsCreated != 16 {
		t.Fatalf("expected 16 slots for 8h/30m, got %d", out.SlotsCreated)
	}
	if len(repo.savedSlots) != 16 {
		t.Fatalf("slots not persisted: %d", len(repo.savedSlots))
	}
	if repo.savedRecords[0].RecurrencePattern != string(domain.RecurrenceNone) {
		t.Fatalf("pattern = %q", repo.savedRecords[0].RecurrencePattern)
	}
}

func TestCreateRecurringDaily(t *testing.T) {
	provider := activeProvider()
	repo := &fakeRepo{provider: provider}
	uc := NewCreate(repo, new(audit.Dispatcher))

	in := baseCreateInput(provider.ID)
	in.RecurrencePattern = "DAILY"
	in.RecurrenceEndDate = "2030-03-24"

	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(out.Records) != 7 {
		t.Fatalf("expected 7 daily records, got %d", len(out.Records))
	}
	if out.SlotsCreated != 7*16 {
		t.Fatalf("expected %d slots, got %d", 7*16, out.SlotsCreated)
	}
	for _, rec := range repo.savedRecords {
		if rec.RecurrenceEndDate != "2030-03-24" {
			t.Fatalf("recurrence end not stamped on instance: %q", rec.RecurrenceEndDate)
		}
	}
}

func TestCreateCustomWithoutWeekdays(t *testing.T) {
	provider := activeProvider()
	repo := &fakeRepo{provider: provider}
	uc := NewCreate(repo, new(audit.Dispatcher))

	in := baseCreateInput(provider.ID)
	in.RecurrencePattern = "CUSTOM"

	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestCreateOverlapRejected(t *testing.T) {
	provider := activeProvider()
	repo := &fakeRepo{provider: provider, overlap: true}
	uc := NewCreate(repo, new(audit.Dispatcher))

	if _, err := uc.Execute(context.Background(), baseCreateInput(provider.ID)); !httperr.IsBusiness(err, httperr.CodeOverlap) {
		t.Fatalf("expected OVERLAP_ERROR, got %v", err)
	}
	if repo.savedRecords != nil {
		t.Fatal("nothing should persist on overlap")
	}
}

func TestCreateRejectsPastDate(t *testing.T) {
	provider := activeProvider()
	repo := &fakeRepo{provider: provider}
	uc := NewCreate(repo, new(audit.Dispatcher))

	in := baseCreateInput(provider.ID)
	in.Date = "2020-01-01"

	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestCreateRejectsInvertedWindow(t *testing.T) {
	provider := activeProvider()
	repo := &fakeRepo{provider: provider}
	uc := NewCreate(repo, new(audit.Dispatcher))

	in := baseCreateInput(provider.ID)
	in.StartTime = "16:00"
	in.EndTime = "08:00"

	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	provider := activeProvider()
	repo := &fakeRepo{provider: provider}
	uc := NewCreate(repo, new(audit.Dispatcher))

	in := baseCreateInput(provider.ID)
	in.AppointmentType = "HAIRCUT"

	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestCreateInactiveProvider(t *testing.T) {
	provider := activeProvider()
	provider.IsActive = false
	repo := &fakeRepo{provider: provider}
	uc := NewCreate(repo, new(audit.Dispatcher))

	if _, err := uc.Execute(context.Background(), baseCreateInput(provider.ID)); !httperr.IsBusiness(err, httperr.CodeOwnership) {
		t.Fatalf("expected OWNERSHIP_ERROR, got %v", err)
	}
}
