package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/health-first/health-first-server/internal/httperr"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ===============================
// Recurrence Pattern
// ===============================

type RecurrencePattern string

const (
	RecurrenceNone     RecurrencePattern = "NONE"
	RecurrenceDaily    RecurrencePattern = "DAILY"
	RecurrenceWeekly   RecurrencePattern = "WEEKLY"
	RecurrenceMonthly  RecurrencePattern = "MONTHLY"
	RecurrenceWeekdays RecurrencePattern = "WEEKDAYS"
	RecurrenceWeekends RecurrencePattern = "WEEKENDS"
	RecurrenceCustom   RecurrencePattern = "CUSTOM"
)

func ParseRecurrencePattern(s string) (RecurrencePattern, error) {
	if s == "" {
		return RecurrenceNone, nil
	}
	p := RecurrencePattern(strings.ToUpper(s))
	switch p {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly,
		RecurrenceWeekdays, RecurrenceWeekends, RecurrenceCustom:
		return p, nil
	}
	return "", httperr.ErrBusiness(httperr.CodeValidation)
}

// ===============================
// Appointment Type
// ===============================

type AppointmentType string

const (
	TypeConsultation           AppointmentType = "CONSULTATION"
	TypeFollowUp               AppointmentType = "FOLLOW_UP"
	TypeRoutineCheckup         AppointmentType = "ROUTINE_CHECKUP"
	TypeSpecialistConsultation AppointmentType = "SPECIALIST_CONSULTATION"
	TypeEmergency              AppointmentType = "EMERGENCY"
	TypeTelemedicine           AppointmentType = "TELEMEDICINE"
	TypeSurgicalConsultation   AppointmentType = "SURGICAL_CONSULTATION"
	TypeDiagnostic             AppointmentType = "DIAGNOSTIC"
	TypePreventiveCare         AppointmentType = "PREVENTIVE_CARE"
	TypeTherapySession         AppointmentType = "THERAPY_SESSION"
)

var appointmentTypeNames = map[AppointmentType]string{
	TypeConsultation:           "Consultation",
	TypeFollowUp:               "Follow-up",
	TypeRoutineCheckup:         "Routine Checkup",
	TypeSpecialistConsultation: "Specialist Consultation",
	TypeEmergency:              "Emergency",
	TypeTelemedicine:           "Telemedicine",
	TypeSurgicalConsultation:   "Surgical Consultation",
	TypeDiagnostic:             "Diagnostic",
	TypePreventiveCare:         "Preventive Care",
	TypeTherapySession:         "Therapy Session",
}

// AppointmentTypes lists every supported type in a stable order.
func AppointmentTypes() []AppointmentType {
	return []AppointmentType{
		TypeConsultation,
		TypeFollowUp,
		TypeRoutineCheckup,
		TypeSpecialistConsultation,
		TypeEmergency,
		TypeTelemedicine,
		TypeSurgicalConsultation,
		TypeDiagnostic,
		TypePreventiveCare,
		TypeTherapySession,
	}
}

func (t AppointmentType) DisplayName() string {
	if name, ok := appointmentTypeNames[t]; ok {
		return name
	}
	return string(t)
}

func ParseAppointmentType(s string) (AppointmentType, error) {
	t := AppointmentType(strings.ToUpper(s))
	if _, ok := appointmentTypeNames[t]; !ok {
		return "", httperr.ErrBusiness(httperr.CodeValidation)
	}
	return t, nil
}

// ===============================
// Date / time helpers
// ===============================

// ISOWeekday maps Go's Sunday-based weekday to ISO 8601 (1=Monday..7=Sunday).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func ParseClock(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}

// ParseWeekdays parses a comma-separated list of ISO weekday numbers,
// e.g. "1,3,5". Order is preserved and duplicates are kept.
func ParseWeekdays(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 || n > 7 {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
		days = append(days, n)
	}
	return days, nil
}

func FormatWeekdays(days []int) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}
