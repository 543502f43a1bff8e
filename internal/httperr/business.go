package httperr

import "errors"

// Stable error codes surfaced in API responses.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeOwnership        = "OWNERSHIP_ERROR"
	CodeOverlap          = "OVERLAP_ERROR"
	CodeBookedSlots      = "BOOKED_SLOTS_ERROR"
	CodeSlotNotAvailable = "SLOT_NOT_AVAILABLE"
	CodeTimeConflict     = "TIME_CONFLICT"
	CodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInternal         = "INTERNAL_ERROR"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code from a business error, or "" when err
// is not one.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
