package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/health-first/health-first-server/internal/httperr"
)

// User types carried in the token's "userType" claim.
const (
	UserProvider = "PROVIDER"
	UserPatient  = "PATIENT"
)

type Claims struct {
	UserID   uuid.UUID
	UserType string
	Email    string
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

func (i *Issuer) Issue(userID uuid.UUID, userType, email string, now time.Time) (string, time.Time, error) {
	expires := now.Add(i.ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      userID.String(),
		"userType": userType,
		"email":    email,
		"iat":      now.Unix(),
		"exp":      expires.Unix(),
	})

	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return i.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}
	userType, _ := claims["userType"].(string)
	if userType != UserProvider && userType != UserPatient {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}
	email, _ := claims["email"].(string)

	return &Claims{UserID: userID, UserType: userType, Email: email}, nil
}
