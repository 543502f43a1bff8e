package handlers

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/health-first/health-first-server/internal/email"
	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/httpresp"
	"github.com/health-first/health-first-server/internal/models"
	"github.com/health-first/health-first-server/internal/validators"
)

type ProviderHandler struct {
	db     *gorm.DB
	mailer email.Sender
}

func NewProviderHandler(db *gorm.DB, mailer email.Sender) *ProviderHandler {
	return &ProviderHandler{db: db, mailer: mailer}
}

// --------- Requests ---------

type AddressRequest struct {
	Street string `json:"street" binding:"required"`
	City   string `json:"city" binding:"required"`
	State  string `json:"state" binding:"required"`
	Zip    string `json:"zip" binding:"required"`
}

type RegisterProviderRequest struct {
	FirstName string `json:"first_name" binding:"required,min=2,max=50"`
	LastName  string `json:"last_name" binding:"required,min=2,max=50"`

	Email           string `json:"email" binding:"required,email"`
	PhoneNumber     string `json:"phone_number" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`

	Specialization    string `json:"specialization" binding:"required"`
	LicenseNumber     string `json:"license_number" binding:"required"`
	YearsOfExperience int    `json:"years_of_experience" binding:"min=0,max=50"`

	ClinicAddress AddressRequest `json:"clinic_address" binding:"required"`
}

var licenseRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// --------- Handlers ---------

func (h *ProviderHandler) Register(c *gin.Context) {
	var req RegisterProviderRequest
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
	if !validators.IsZipValid(req.ClinicAddress.Zip) {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid zip code")
		return
	}
	if !validators.IsSpecializationValid(req.Specialization) {
		httperr.BadRequest(c, httperr.CodeValidation, "unknown specialization")
		return
	}
	if !licenseRe.MatchString(req.LicenseNumber) {
		httperr.BadRequest(c, httperr.CodeValidation, "license number must be alphanumeric")
		return
	}

	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(emailAddr) {
		httperr.BadRequest(c, httperr.CodeValidation, "email domain does not accept mail")
		return
	}

	var count int64
	h.db.Model(&models.Provider{}).
		Where("email = ? OR phone_number = ? OR license_number = ?", emailAddr, req.PhoneNumber, req.LicenseNumber).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, httperr.CodeValidation, "email, phone or license already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, httperr.CodeInternal, "failed to process registration")
		return
	}

	provider := models.Provider{
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Email:              emailAddr,
		PhoneNumber:        req.PhoneNumber,
		PasswordHash:       string(hashed),
		Specialization:     req.Specialization,
		LicenseNumber:      strings.ToUpper(req.LicenseNumber),
		YearsOfExperience:  req.YearsOfExperience,
		ClinicAddress:      models.ClinicAddress(req.ClinicAddress),
		VerificationStatus: models.VerificationPending,
		IsActive:           true,
	}

	if err := h.db.Create(&provider).Error; err != nil {
		httperr.Internal(c, httperr.CodeInternal, "failed to create provider")
		return
	}

	email.WelcomeProvider(h.mailer, provider.Email, provider.FirstName)

	httpresp.Created(c, "Provider registered successfully. Verification pending.", gin.H{
		"id":                  provider.ID,
		"email":               provider.Email,
		"verification_status": provider.VerificationStatus,
	})
}

func (h *ProviderHandler) Specializations(c *gin.Context) {
	httpresp.List(c, "", validators.Specializations)
}

// List returns active, verified providers for patient-facing pickers.
func (h *ProviderHandler) List(c *gin.Context) {
	q := h.db.Where("is_active = true")

	if spec := c.Query("specialization"); spec != "" {
		q = q.Where("specialization = ?", spec)
	}

	var providers []models.Provider
	if err := q.Order("last_name ASC, first_name ASC").Find(&providers).Error; err != nil {
		httperr.Internal(c, httperr.CodeInternal, "failed to list providers")
		return
	}
	httpresp.List(c, "", providers)
}

func (h *ProviderHandler) CheckEmail(c *gin.Context) {
	h.checkUnique(c, "email", strings.ToLower(c.Query("email")))
}

func (h *ProviderHandler) CheckPhone(c *gin.Context) {
	h.checkUnique(c, "phone_number", c.Query("phone"))
}

func (h *ProviderHandler) CheckLicense(c *gin.Context) {
	h.checkUnique(c, "license_number", strings.ToUpper(c.Query("license")))
}

func (h *ProviderHandler) checkUnique(c *gin.Context, column, value string) {
	if value == "" {
		httperr.BadRequest(c, httperr.CodeValidation, "missing query value")
		return
	}

	var count int64
	h.db.Model(&models.Provider{}).Where(column+" = ?", value).Count(&count)

	httpresp.OK(c, "", gin.H{"available": count == 0})
}
