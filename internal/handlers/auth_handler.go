package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/health-first/health-first-server/internal/config"
	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/httpresp"
	"github.com/health-first/health-first-server/internal/middleware"
	"github.com/health-first/health-first-server/internal/models"
	"github.com/health-first/health-first-server/internal/token"
)

type AuthHandler struct {
	db      *gorm.DB
	cfg     *config.Config
	issuer  *token.Issuer
	refresh *token.RefreshStore
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, issuer *token.Issuer, refresh *token.RefreshStore) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, issuer: issuer, refresh: refresh}
}

// --------- Requests ---------

type LoginRequest struct {
	// Email or phone number.
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// --------- Handlers ---------

// Login authenticates either account type by email or phone. Providers
// are tried first; the response carries an explicit user_type tag.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	identifier := strings.ToLower(strings.TrimSpace(req.Identifier))
	now := time.Now().UTC()

	var provider models.Provider
	err := h.db.Where("email = ? OR phone_number = ?", identifier, req.Identifier).
		First(&provider).Error
	if err == nil {
		h.loginProvider(c, &provider, req, now)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Internal(c, httperr.CodeInternal, "login failed")
		return
	}

	var patient models.Patient
	err = h.db.Where("email = ? OR phone_number = ?", identifier, req.Identifier).
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, httperr.CodeUnauthorized, "invalid credentials")
			return
		}
		httperr.Internal(c, httperr.CodeInternal, "login failed")
		return
	}

	h.loginPatient(c, &patient, req, now)
}

func (h *AuthHandler) loginProvider(c *gin.Context, p *models.Provider, req LoginRequest, now time.Time) {
	if !p.IsActive {
		httperr.Unauthorized(c, httperr.CodeUnauthorized, "account is deactivated")
		return
	}
	if p.IsAccountLocked(now) {
		httperr.Unauthorized(c, httperr.CodeUnauthorized, "account temporarily locked, try again later")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)) != nil {
		h.recordProviderFailure(p, now)
		httperr.Unauthorized(c, httperr.CodeUnauthorized, "invalid credentials")
		return
	}

	p.FailedLoginAttempts = 0
	p.AccountLockedUntil = nil
	p.LastSuccessfulLogin = &now
	h.db.Save(p)

	access, expires, err := h.issuer.Issue(p.ID, token.UserProvider, p.Email, now)
	if err != nil {
		httperr.Internal(c, httperr.CodeInternal, "failed to issue token")
		return
	}

	data := gin.H{
		"access_token": access,
		"expires_at":   expires,
		"user_type":    token.UserProvider,
		"user": gin.H{
			"id":                  p.ID,
			"name":                p.FullName(),
			"email":               p.Email,
			"specialization":      p.Specialization,
			"verification_status": p.VerificationStatus,
		},
	}

	if req.RememberMe {
		raw, err := h.refresh.Issue(c.Request.Context(), p.ID, c.Request.UserAgent(), c.ClientIP(), now)
		if err != nil {
			httperr.Internal(c, httperr.CodeInternal, "failed to issue refresh token")
			return
		}
		data["refresh_token"] = raw
	}

	httpresp.OK(c, "Login successful", data)
}

func (h *AuthHandler) loginPatient(c *gin.Context, p *models.Patient, req LoginRequest, now time.Time) {
	if !p.IsActive {
		httperr.Unauthorized(c, httperr.CodeUnauthorized, "account is deactivated")
		return
	}
	if p.IsAccountLocked(now) {
		httperr.Unauthorized(c, httperr.CodeUnauthorized, "account temporarily locked, try again later")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)) != nil {
		h.recordPatientFailure(p, now)
		httperr.Unauthorized(c, httperr.CodeUnauthorized, "invalid credentials")
		return
	}

	p.FailedLoginAttempts = 0
	p.AccountLockedUntil = nil
	p.LastSuccessfulLogin = &now
	h.db.Save(p)

	access, expires, err := h.issuer.Issue(p.ID, token.UserPatient, p.Email, now)
	if err != nil {
		httperr.Internal(c, httperr.CodeInternal, "failed to issue token")
		return
	}

	httpresp.OK(c, "Login successful", gin.H{
		"access_token": access,
		"expires_at":   expires,
		"user_type":    token.UserPatient,
		"user": gin.H{
			"id":    p.ID,
			"name":  p.FullName(),
			"email": MaskEmail(p.Email),
		},
	})
}

func (h *AuthHandler) recordProviderFailure(p *models.Provider, now time.Time) {
	p.FailedLoginAttempts++
	if p.FailedLoginAttempts >= h.cfg.LockoutThreshold {
		until := now.Add(h.cfg.LockoutDuration)
		p.AccountLockedUntil = &until
		p.FailedLoginAttempts = 0
	}
	h.db.Save(p)
}

func (h *AuthHandler) recordPatientFailure(p *models.Patient, now time.Time) {
	p.FailedLoginAttempts++
	if p.FailedLoginAttempts >= h.cfg.LockoutThreshold {
		until := now.Add(h.cfg.LockoutDuration)
		p.AccountLockedUntil = &until
		p.FailedLoginAttempts = 0
	}
	h.db.Save(p)
}

// Refresh rotates a provider refresh token and issues a new access
// token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	now := time.Now().UTC()

	providerID, next, err := h.refresh.Rotate(c.Request.Context(), req.RefreshToken, c.Request.UserAgent(), c.ClientIP(), now)
	if err != nil {
		writeError(c, err)
		return
	}

	var provider models.Provider
	if err := h.db.First(&provider, "id = ?", providerID).Error; err != nil {
		httperr.Unauthorized(c, httperr.CodeUnauthorized, "account no longer exists")
		return
	}

	access, expires, err := h.issuer.Issue(provider.ID, token.UserProvider, provider.Email, now)
	if err != nil {
		httperr.Internal(c, httperr.CodeInternal, "failed to issue token")
		return
	}

	httpresp.OK(c, "Token refreshed", gin.H{
		"access_token":  access,
		"expires_at":    expires,
		"refresh_token": next,
	})
}

// Logout revokes one refresh token. Idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	if err := h.refresh.Revoke(c.Request.Context(), req.RefreshToken, time.Now().UTC()); err != nil {
		httperr.Internal(c, httperr.CodeInternal, "logout failed")
		return
	}
	httpresp.OK(c, "Logged out", nil)
}

// LogoutAll revokes every refresh token of the authenticated provider.
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID := middleware.UserID(c)

	if err := h.refresh.RevokeAll(c.Request.Context(), userID, time.Now().UTC()); err != nil {
		httperr.Internal(c, httperr.CodeInternal, "logout failed")
		return
	}
	httpresp.OK(c, "All sessions revoked", nil)
}
