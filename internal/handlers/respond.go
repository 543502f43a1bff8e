package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/health-first/health-first-server/internal/httperr"
)

// writeError maps a usecase error onto the HTTP surface. Non-business
// errors are logged and hidden behind INTERNAL_ERROR.
func writeError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case httperr.CodeValidation:
		httperr.BadRequest(c, code, "request validation failed")
	case httperr.CodeNotFound:
		httperr.NotFound(c, code, "resource not found")
	case httperr.CodeOwnership:
		httperr.Forbidden(c, code, "resource belongs to another account")
	case httperr.CodeOverlap:
		httperr.Conflict(c, code, "availability overlaps an existing window")
	case httperr.CodeBookedSlots:
		httperr.Conflict(c, code, "operation blocked by booked appointments")
	case httperr.CodeSlotNotAvailable:
		httperr.Conflict(c, code, "slot is no longer available")
	case httperr.CodeTimeConflict:
		httperr.Conflict(c, code, "you already have an appointment in this time range")
	case httperr.CodeUnauthorized:
		httperr.Unauthorized(c, code, "authentication required")
	case httperr.CodeRateLimited:
		httperr.TooManyRequests(c, code, "too many attempts, try again later")
	default:
		log.Println("internal error:", err)
		httperr.Internal(c, httperr.CodeInternal, "something went wrong, please try again later")
	}
}
