package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/httpresp"
	"github.com/health-first/health-first-server/internal/models"
	"github.com/health-first/health-first-server/internal/usecase/search"
)

type SearchHandler struct {
	search *search.Search
}

func NewSearchHandler(s *search.Search) *SearchHandler {
	return &SearchHandler{search: s}
}

// --------- Requests ---------

type SearchRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`

	PreferredStartTime string `json:"preferred_start_time"`
	PreferredEndTime   string `json:"preferred_end_time"`

	ProviderIDs     []uuid.UUID `json:"provider_ids"`
	Specialization  string      `json:"specialization"`
	Location        string      `json:"location"`
	AppointmentType string      `json:"appointment_type"`

	MinSlotDurationMinutes int `json:"min_slot_duration_minutes"`
	MaxSlotDurationMinutes int `json:"max_slot_duration_minutes"`

	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`

	SortBy     string `json:"sort_by"`
	Ascending  *bool  `json:"ascending"`
	MaxResults int    `json:"max_results"`
}

// --------- Responses ---------

type SlotResult struct {
	ID              uuid.UUID `json:"id"`
	ProviderID      uuid.UUID `json:"provider_id"`
	ProviderName    string    `json:"provider_name,omitempty"`
	Specialization  string    `json:"specialization,omitempty"`
	StartAt         string    `json:"start_at"`
	EndAt           string    `json:"end_at"`
	AppointmentType string    `json:"appointment_type"`
	Price           *float64  `json:"price,omitempty"`
	Location        string    `json:"location,omitempty"`
}

func toSlotResult(s *models.AppointmentSlot) SlotResult {
	return SlotResult{
		ID:              s.ID,
		ProviderID:      s.ProviderID,
		ProviderName:    s.Provider.FullName(),
		Specialization:  s.Provider.Specialization,
		StartAt:         s.StartAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		EndAt:           s.EndAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		AppointmentType: s.AppointmentType,
		Price:           s.Price,
		Location:        s.Location,
	}
}

// --------- Handlers ---------

// SearchPost is the full-criteria search for clients that build a JSON
// request body.
func (h *SearchHandler) SearchPost(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}
	h.run(c, req)
}

// SearchGet maps query parameters onto the same search. Provider IDs
// come comma-separated.
func (h *SearchHandler) SearchGet(c *gin.Context) {
	req := SearchRequest{
		StartDate:          c.Query("start_date"),
		EndDate:            c.Query("end_date"),
		PreferredStartTime: c.Query("preferred_start_time"),
		PreferredEndTime:   c.Query("preferred_end_time"),
		Specialization:     c.Query("specialization"),
		Location:           c.Query("location"),
		AppointmentType:    c.Query("appointment_type"),
		SortBy:             c.Query("sort_by"),
	}
	if req.StartDate == "" || req.EndDate == "" {
		httperr.BadRequest(c, httperr.CodeValidation, "start_date and end_date are required")
		return
	}

	if raw := c.Query("provider_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				httperr.BadRequest(c, httperr.CodeValidation, "invalid provider id: "+part)
				return
			}
			req.ProviderIDs = append(req.ProviderIDs, id)
		}
	}

	var err error
	if req.MinSlotDurationMinutes, err = queryInt(c, "min_slot_duration"); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "min_slot_duration must be an integer")
		return
	}
	if req.MaxSlotDurationMinutes, err = queryInt(c, "max_slot_duration"); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "max_slot_duration must be an integer")
		return
	}
	if req.MaxResults, err = queryInt(c, "max_results"); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "max_results must be an integer")
		return
	}
	if req.MinPrice, err = queryFloat(c, "min_price"); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "min_price must be a number")
		return
	}
	if req.MaxPrice, err = queryFloat(c, "max_price"); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "max_price must be a number")
		return
	}
	if raw := c.Query("ascending"); raw != "" {
		asc := raw == "true"
		req.Ascending = &asc
	}

	h.run(c, req)
}

func (h *SearchHandler) run(c *gin.Context, req SearchRequest) {
	out, err := h.search.Execute(c.Request.Context(), search.Input{
		StartDate:              req.StartDate,
		EndDate:                req.EndDate,
		PreferredStartTime:     req.PreferredStartTime,
		PreferredEndTime:       req.PreferredEndTime,
		ProviderIDs:            req.ProviderIDs,
		Specialization:         req.Specialization,
		Location:               req.Location,
		AppointmentType:        req.AppointmentType,
		MinSlotDurationMinutes: req.MinSlotDurationMinutes,
		MaxSlotDurationMinutes: req.MaxSlotDurationMinutes,
		MinPrice:               req.MinPrice,
		MaxPrice:               req.MaxPrice,
		SortBy:                 req.SortBy,
		Ascending:              req.Ascending,
		MaxResults:             req.MaxResults,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	results := make([]SlotResult, 0, len(out.Slots))
	for i := range out.Slots {
		results = append(results, toSlotResult(&out.Slots[i]))
	}

	httpresp.OK(c, "", gin.H{
		"slots":    results,
		"total":    out.Total,
		"has_more": out.HasMore,
	})
}

// --------- Helpers ---------

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func queryFloat(c *gin.Context, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
