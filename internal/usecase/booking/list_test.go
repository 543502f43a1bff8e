package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/models"
)

// listFakeRepo records the window and paging the usecase resolved.
type listFakeRepo struct {
	fakeRepo

	gotStart *time.Time
	gotEnd   *time.Time
	gotPage  int
	gotSize  int
}

func (f *listFakeRepo) ListPatientAppointments(ctx context.Context, patientID uuid.UUID, startDate, endDate *time.Time, page, size int) ([]models.AppointmentSlot, int64, error) {
	f.gotStart, f.gotEnd = startDate, endDate
	f.gotPage, f.gotSize = page, size
	return nil, 0, nil
}

func (f *listFakeRepo) ListProviderAppointments(ctx context.Context, providerID uuid.UUID, startDate, endDate *time.Time, page, size int) ([]models.AppointmentSlot, int64, error) {
	f.gotStart, f.gotEnd = startDate, endDate
	f.gotPage, f.gotSize = page, size
	return nil, 0, nil
}

func TestListUpcomingBoundsFromNow(t *testing.T) {
	repo := &listFakeRepo{}
	uc := NewList(repo)

	before := time.Now().UTC()
	if _, err := uc.ForPatient(context.Background(), uuid.New(), ListInput{Status: StatusUpcoming}); err != nil {
		t.Fatalf("ForPatient: %v", err)
	}
	after := time.Now().UTC()

	if repo.gotStart == nil || repo.gotStart.Before(before) || repo.gotStart.After(after) {
		t.Fatalf("upcoming must lower-bound at now, got %v", repo.gotStart)
	}
	if repo.gotEnd != nil {
		t.Fatal("upcoming must not set an upper bound")
	}
}

func TestListPastBoundsAtNow(t *testing.T) {
	repo := &listFakeRepo{}
	uc := NewList(repo)

	if _, err := uc.ForProvider(context.Background(), uuid.New(), ListInput{Status: StatusPast}); err != nil {
		t.Fatalf("ForProvider: %v", err)
	}
	if repo.gotEnd == nil {
		t.Fatal("past must upper-bound at now")
	}
	if repo.gotStart != nil {
		t.Fatal("past must not set a lower bound")
	}
}

func TestListInvalidStatus(t *testing.T) {
	uc := NewList(&listFakeRepo{})

	_, err := uc.ForPatient(context.Background(), uuid.New(), ListInput{Status: "cancelled"})
	if !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestListPagingDefaults(t *testing.T) {
	repo := &listFakeRepo{}
	uc := NewList(repo)

	if _, err := uc.ForPatient(context.Background(), uuid.New(), ListInput{Page: -1, Size: 9999}); err != nil {
		t.Fatalf("ForPatient: %v", err)
	}
	if repo.gotPage != 1 {
		t.Fatalf("page must clamp to 1, got %d", repo.gotPage)
	}
	if repo.gotSize != maxPageSize {
		t.Fatalf("size must clamp to %d, got %d", maxPageSize, repo.gotSize)
	}
}

func TestListInvertedWindow(t *testing.T) {
	uc := NewList(&listFakeRepo{})

	start := time.Now().UTC().Add(48 * time.Hour)
	end := start.Add(-24 * time.Hour)

	_, err := uc.ForProvider(context.Background(), uuid.New(), ListInput{StartDate: &start, EndDate: &end})
	if !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}
