package token

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/models"
)

// RefreshStore persists refresh tokens hashed; the raw value exists
// only in the response that issued it.
type RefreshStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewRefreshStore(db *gorm.DB, ttl time.Duration) *RefreshStore {
	return &RefreshStore{db: db, ttl: ttl}
}

func hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func newRawToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Issue creates and stores a fresh token for the provider. Returns the
// raw token to hand to the client.
func (s *RefreshStore) Issue(ctx context.Context, providerID uuid.UUID, userAgent, ip string, now time.Time) (string, error) {
	raw, err := newRawToken()
	if err != nil {
		return "", err
	}

	rec := models.RefreshToken{
		ProviderID: providerID,
		TokenHash:  hash(raw),
		ExpiresAt:  now.Add(s.ttl),
		UserAgent:  userAgent,
		IPAddress:  ip,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", err
	}
	return raw, nil
}

// Rotate validates the presented token, revokes it, and issues a
// replacement. A reused (already revoked) token is rejected.
func (s *RefreshStore) Rotate(ctx context.Context, raw, userAgent, ip string, now time.Time) (uuid.UUID, string, error) {
	var rec models.RefreshToken
	if err := s.db.WithContext(ctx).
		First(&rec, "token_hash = ?", hash(raw)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, "", httperr.ErrBusiness(httperr.CodeUnauthorized)
		}
		return uuid.Nil, "", err
	}

	if !rec.IsValid(now) {
		return uuid.Nil, "", httperr.ErrBusiness(httperr.CodeUnauthorized)
	}

	rec.Revoked = true
	rec.LastUsedAt = &now
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return uuid.Nil, "", err
	}

	next, err := s.Issue(ctx, rec.ProviderID, userAgent, ip, now)
	if err != nil {
		return uuid.Nil, "", err
	}
	return rec.ProviderID, next, nil
}

// Revoke invalidates a single token. Unknown tokens are ignored so
// logout is idempotent.
func (s *RefreshStore) Revoke(ctx context.Context, raw string, now time.Time) error {
	return s.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash(raw)).
		Updates(map[string]any{"revoked": true, "last_used_at": now}).Error
}

// RevokeAll invalidates every live token the provider holds.
func (s *RefreshStore) RevokeAll(ctx context.Context, providerID uuid.UUID, now time.Time) error {
	return s.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("provider_id = ? AND revoked = false", providerID).
		Updates(map[string]any{"revoked": true, "last_used_at": now}).Error
}
