package availability

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/health-first/health-first-server/internal/domain/schedule"
	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/models"
)

type List struct {
	repo domain.Repository
}

func NewList(repo domain.Repository) *List {
	return &List{repo: repo}
}

// Execute returns the provider's availability records in the date
// range, slots included, ordered by date then start time.
func (uc *List) Execute(
	ctx context.Context,
	providerID uuid.UUID,
	startDate string,
	endDate string,
) ([]models.AvailabilityRecord, error) {

	if _, err := uc.repo.GetProviderByID(ctx, providerID); err != nil {
		return nil, err
	}

	if startDate != "" {
		if _, err := domain.ParseDate(startDate); err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
	}
	if endDate != "" {
		if _, err := domain.ParseDate(endDate); err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
	}
	if startDate != "" && endDate != "" && endDate < startDate {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	return uc.repo.ListProviderAvailability(ctx, providerID, startDate, endDate)
}
