package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/health-first/health-first-server/internal/domain/schedule"
	"github.com/health-first/health-first-server/internal/email"
	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/httpresp"
	"github.com/health-first/health-first-server/internal/middleware"
	"github.com/health-first/health-first-server/internal/token"
	"github.com/health-first/health-first-server/internal/usecase/booking"
)

type AppointmentHandler struct {
	book   *booking.Book
	cancel *booking.Cancel
	list   *booking.List
	mailer email.Sender
}

func NewAppointmentHandler(book *booking.Book, cancel *booking.Cancel, list *booking.List, mailer email.Sender) *AppointmentHandler {
	return &AppointmentHandler{book: book, cancel: cancel, list: list, mailer: mailer}
}

// --------- Requests ---------

type BookAppointmentRequest struct {
	SlotID     uuid.UUID  `json:"slot_id" binding:"required"`
	ProviderID *uuid.UUID `json:"provider_id"`
	Reason     string     `json:"reason" binding:"max=500"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	slot, err := h.book.Execute(c.Request.Context(), booking.BookInput{
		SlotID:     req.SlotID,
		PatientID:  middleware.UserID(c),
		ProviderID: req.ProviderID,
		Reason:     req.Reason,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if addr := c.GetString(middleware.ContextEmail); addr != "" {
		email.BookingConfirmation(h.mailer, addr, slot.Provider.FullName(), slot.StartAt.Format(time.RFC1123))
	}

	status := "pending_confirmation"
	if slot.BookingConfirmed {
		status = "confirmed"
	}

	httpresp.Created(c, "Appointment booked", gin.H{
		"slot_id":       slot.ID,
		"provider_id":   slot.ProviderID,
		"provider_name": slot.Provider.FullName(),
		"start_at":      slot.StartAt,
		"end_at":        slot.EndAt,
		"status":        status,
	})
}

// List branches on the caller's account type: patients see their own
// bookings, providers their incoming schedule.
func (h *AppointmentHandler) List(c *gin.Context) {
	in := booking.ListInput{Status: c.Query("status")}

	var err error
	if in.Page, err = queryInt(c, "page"); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "page must be an integer")
		return
	}
	if in.Size, err = queryInt(c, "size"); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "size must be an integer")
		return
	}

	userType := c.GetString(middleware.ContextUserType)
	userID := middleware.UserID(c)

	if in.StartDate, err = queryDate(c, "start_date"); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "start_date must be YYYY-MM-DD")
		return
	}
	if in.EndDate, err = queryDate(c, "end_date"); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "end_date must be YYYY-MM-DD")
		return
	}

	var out *booking.ListOutput
	if userType == token.UserProvider {
		out, err = h.list.ForProvider(c.Request.Context(), userID, in)
	} else {
		out, err = h.list.ForPatient(c.Request.Context(), userID, in)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, "", gin.H{
		"appointments": out.Appointments,
		"total":        out.Total,
		"page":         out.Page,
		"size":         out.Size,
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid slot id")
		return
	}

	var req CancelAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, httperr.CodeValidation, err.Error())
			return
		}
	}

	slot, err := h.cancel.Execute(c.Request.Context(), slotID, middleware.UserID(c), req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, "Appointment cancelled", gin.H{
		"slot_id":  slot.ID,
		"start_at": slot.StartAt,
	})
}

// --------- Helpers ---------

func queryDate(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
