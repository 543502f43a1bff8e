package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/health-first/health-first-server/internal/domain/schedule"
	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/httpresp"
	"github.com/health-first/health-first-server/internal/middleware"
	"github.com/health-first/health-first-server/internal/models"
	"github.com/health-first/health-first-server/internal/usecase/availability"
)

type AvailabilityHandler struct {
	create *availability.Create
	list   *availability.List
	update *availability.Update
	remove *availability.Delete
}

func NewAvailabilityHandler(
	create *availability.Create,
	list *availability.List,
	update *availability.Update,
	remove *availability.Delete,
) *AvailabilityHandler {
	return &AvailabilityHandler{create: create, list: list, update: update, remove: remove}
}

// --------- Requests ---------

type CreateAvailabilityRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`

	SlotDurationMinutes int    `json:"slot_duration_minutes"`
	BufferTimeMinutes   int    `json:"buffer_time_minutes"`
	AppointmentType     string `json:"appointment_type"`
	Timezone            string `json:"timezone"`

	Price       *float64 `json:"price"`
	Location    string   `json:"location"`
	Description string   `json:"description"`

	RecurrencePattern    string `json:"recurrence_pattern"`
	RecurrenceEndDate    string `json:"recurrence_end_date"`
	RecurrenceDaysOfWeek []int  `json:"recurrence_days_of_week"`

	MaxConsecutiveSlots int `json:"max_consecutive_slots"`

	Preferences models.SchedulingPreferences `json:"preferences"`
}

type UpdateAvailabilityRequest struct {
	StartTime           *string `json:"start_time"`
	EndTime             *string `json:"end_time"`
	SlotDurationMinutes *int    `json:"slot_duration_minutes"`
	BufferTimeMinutes   *int    `json:"buffer_time_minutes"`

	AppointmentType *string  `json:"appointment_type"`
	Price           *float64 `json:"price"`
	Location        *string  `json:"location"`
	Description     *string  `json:"description"`
	IsActive        *bool    `json:"is_active"`

	Preferences *models.SchedulingPreferences `json:"preferences"`

	RegenerateSlots bool `json:"regenerate_slots"`
}

// --------- Handlers ---------

func (h *AvailabilityHandler) Create(c *gin.Context) {
	var req CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	out, err := h.create.Execute(c.Request.Context(), availability.CreateInput{
		ProviderID:           middleware.UserID(c),
		Date:                 req.Date,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		SlotDurationMinutes:  req.SlotDurationMinutes,
		BufferTimeMinutes:    req.BufferTimeMinutes,
		AppointmentType:      req.AppointmentType,
		Timezone:             req.Timezone,
		Price:                req.Price,
		Location:             req.Location,
		Description:          req.Description,
		RecurrencePattern:    req.RecurrencePattern,
		RecurrenceEndDate:    req.RecurrenceEndDate,
		RecurrenceDaysOfWeek: req.RecurrenceDaysOfWeek,
		MaxConsecutiveSlots:  req.MaxConsecutiveSlots,
		Preferences:          req.Preferences,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, "Availability created", gin.H{
		"availability_id": out.Records[0].ID,
		"dates_created":   len(out.Records),
		"slots_created":   out.SlotsCreated,
	})
}

// List is public: patients browse a provider's calendar through it.
func (h *AvailabilityHandler) List(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("providerId"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid provider id")
		return
	}

	records, err := h.list.Execute(
		c.Request.Context(),
		providerID,
		c.Query("start_date"),
		c.Query("end_date"),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, "", records)
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	availabilityID, err := uuid.Parse(c.Param("availabilityId"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid availability id")
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	rec, err := h.update.Execute(c.Request.Context(), availability.UpdateInput{
		ProviderID:          middleware.UserID(c),
		AvailabilityID:      availabilityID,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
		BufferTimeMinutes:   req.BufferTimeMinutes,
		AppointmentType:     req.AppointmentType,
		Price:               req.Price,
		Location:            req.Location,
		Description:         req.Description,
		IsActive:            req.IsActive,
		Preferences:         req.Preferences,
		RegenerateSlots:     req.RegenerateSlots,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, "Availability updated", rec)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	availabilityID, err := uuid.Parse(c.Param("availabilityId"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid availability id")
		return
	}

	deleteRecurring := c.Query("delete_recurring") == "true"

	err = h.remove.Execute(
		c.Request.Context(),
		middleware.UserID(c),
		availabilityID,
		deleteRecurring,
		c.Query("reason"),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, "Availability deleted", nil)
}

// AppointmentTypes lists the bookable appointment kinds with display
// labels for client pickers.
func (h *AvailabilityHandler) AppointmentTypes(c *gin.Context) {
	types := domain.AppointmentTypes()

	out := make([]gin.H, 0, len(types))
	for _, t := range types {
		out = append(out, gin.H{
			"code":         string(t),
			"display_name": t.DisplayName(),
		})
	}

	httpresp.List(c, "", out)
}
