// Package auth issues and verifies session tokens and hashes account
// passwords.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/Augustwise/fullstack-task-manager/internal/errors"
	model "github.com/Augustwise/fullstack-task-manager/internal/models"
)

// SessionTTL is fixed; sessions are never refreshed.
const SessionTTL = time.Hour

// Claims is the signed payload of a session token.
type Claims struct {
	AccountID string `json:"id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// Session is the verified identity carried by a request.
type Session struct {
	AccountID string
	Email     string
	IssuedAt  time.Time
}

// SessionManager signs and verifies stateless HS256 session tokens. There is
// no server-side session table, so a token stays valid until it expires.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    SessionTTL,
		now:    time.Now,
	}
}

// WithClock returns a copy of m that reads time from now.
func (m *SessionManager) WithClock(now func() time.Time) *SessionManager {
	cp := *m
	cp.now = now
	return &cp
}

func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

func (m *SessionManager) Issue(account *model.Account) (string, error) {
	issuedAt := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		AccountID: account.ID,
		Email:     account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
	})

	return token.SignedString(m.secret)
}

// Verify checks signature, algorithm and expiry. Every failure is reported
// as ErrInvalidSession.
func (m *SessionManager) Verify(tokenString string) (*Session, error) {
	if tokenString == "" {
		return nil, apperrors.ErrInvalidSession
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid || claims.AccountID == "" {
		return nil, apperrors.ErrInvalidSession
	}

	session := &Session{
		AccountID: claims.AccountID,
		Email:     claims.Email,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}

	return session, nil
}
