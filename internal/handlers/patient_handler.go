package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/health-first/health-first-server/internal/email"
	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/httpresp"
	"github.com/health-first/health-first-server/internal/models"
	"github.com/health-first/health-first-server/internal/validators"
)

const minPatientAge = 13

type PatientHandler struct {
	db     *gorm.DB
	mailer email.Sender
}

func NewPatientHandler(db *gorm.DB, mailer email.Sender) *PatientHandler {
	return &PatientHandler{db: db, mailer: mailer}
}

// --------- Requests ---------

type EmergencyContactRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type InsuranceRequest struct {
	Provider     string `json:"provider"`
	PolicyNumber string `json:"policy_number"`
}

type RegisterPatientRequest struct {
	FirstName string `json:"first_name" binding:"required,min=2,max=50"`
	LastName  string `json:"last_name" binding:"required,min=2,max=50"`

	Email           string `json:"email" binding:"required,email"`
	PhoneNumber     string `json:"phone_number" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`

	DateOfBirth string `json:"date_of_birth" binding:"required"` // "2006-01-02"
	Gender      string `json:"gender" binding:"required"`

	Address          AddressRequest           `json:"address" binding:"required"`
	EmergencyContact *EmergencyContactRequest `json:"emergency_contact"`
	Insurance        *InsuranceRequest        `json:"insurance"`

	MedicalHistory []string `json:"medical_history"`
}

// --------- Handlers ---------

func (h *PatientHandler) Register(c *gin.Context) {
	var req RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	if req.Password != req.ConfirmPassword {
		httperr.BadRequest(c, httperr.CodeValidation, "passwords do not match")
		return
	}
	if !validators.IsPasswordStrong(req.Password) {
		httperr.BadRequest(c, httperr.CodeValidation, "password must be 8+ characters with upper, lower, digit and special")
		return
	}
	if !validators.IsPhoneValid(req.PhoneNumber) {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid phone number")
		return
	}
	if !validators.IsZipValid(req.Address.Zip) {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid zip code")
		return
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "date_of_birth must be YYYY-MM-DD")
		return
	}
	if age := yearsSince(dob, time.Now()); age < minPatientAge {
		httperr.BadRequest(c, httperr.CodeValidation, "patients must be at least 13 years old")
		return
	}

	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(emailAddr) {
		httperr.BadRequest(c, httperr.CodeValidation, "email domain does not accept mail")
		return
	}

	var count int64
	h.db.Model(&models.Patient{}).
		Where("email = ? OR phone_number = ?", emailAddr, req.PhoneNumber).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, httperr.CodeValidation, "email or phone already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, httperr.CodeInternal, "failed to process registration")
		return
	}

	patient := models.Patient{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        emailAddr,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hashed),
		DateOfBirth:  req.DateOfBirth,
		Gender:       req.Gender,
		Address:      models.PatientAddress(req.Address),
		IsActive:     true,
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = models.EmergencyContact(*req.EmergencyContact)
	}
	if req.Insurance != nil {
		patient.Insurance = models.InsuranceInfo(*req.Insurance)
	}
	patient.MedicalHistory = sanitizeHistory(req.MedicalHistory)

	if err := h.db.Create(&patient).Error; err != nil {
		httperr.Internal(c, httperr.CodeInternal, "failed to create patient")
		return
	}

	email.WelcomePatient(h.mailer, patient.Email, patient.FirstName)

	httpresp.Created(c, "Patient registered successfully.", gin.H{
		"id":           patient.ID,
		"email":        MaskEmail(patient.Email),
		"phone_number": MaskPhone(patient.PhoneNumber),
	})
}

func (h *PatientHandler) CheckEmail(c *gin.Context) {
	h.checkUnique(c, "email", strings.ToLower(c.Query("email")))
}

func (h *PatientHandler) CheckPhone(c *gin.Context) {
	h.checkUnique(c, "phone_number", c.Query("phone"))
}

func (h *PatientHandler) checkUnique(c *gin.Context, column, value string) {
	if value == "" {
		httperr.BadRequest(c, httperr.CodeValidation, "missing query value")
		return
	}

	var count int64
	h.db.Model(&models.Patient{}).Where(column+" = ?", value).Count(&count)

	httpresp.OK(c, "", gin.H{"available": count == 0})
}

// --------- Helpers ---------

func yearsSince(from, now time.Time) int {
	years := now.Year() - from.Year()
	anniversary := from.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// sanitizeHistory trims entries, drops empties and clips each
// condition to 200 characters.
func sanitizeHistory(entries []string) string {
	var kept []string
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if len(e) > 200 {
			e = e[:200]
		}
		kept = append(kept, e)
	}
	return strings.Join(kept, "\n")
}

// MaskEmail keeps the first character and the domain.
func MaskEmail(addr string) string {
	at := strings.Index(addr, "@")
	if at <= 1 {
		return addr
	}
	return addr[:1] + strings.Repeat("*", at-1) + addr[at:]
}

// MaskPhone keeps the last four digits.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
