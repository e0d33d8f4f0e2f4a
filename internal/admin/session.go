package admin

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrInvalidToken      = errors.New("invalid token")
	ErrSessionRevoked    = errors.New("session revoked")
)

// Claims are the JWT claims carried by an admin session token.
type Claims struct {
	SessionID uuid.UUID `json:"session_id"`
	jwt.RegisteredClaims
}

// Sessions turns gate decisions into bearer tokens for the admin routes.
// A rejected credential is a normal outcome, not an internal error. Logout
// revokes the session and discards any product draft staged under it.
type Sessions struct {
	auth      Authenticator
	jwtSecret string
	ttl       time.Duration

	mu      sync.Mutex
	revoked map[uuid.UUID]time.Time
	drafts  map[uuid.UUID]*Draft
}

// Draft is in-progress admin form state for one session: the product being
// edited or created, before it is saved.
type Draft struct {
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Price       string     `json:"price"`
	Unit        string     `json:"unit"`
	Image       string     `json:"image"`
	Description string     `json:"description"`
	Origin      string     `json:"origin"`
	InStock     bool       `json:"in_stock"`
}

// NewSessions creates a session service over the given authenticator.
func NewSessions(auth Authenticator, jwtSecret string, ttl time.Duration) *Sessions {
	return &Sessions{
		auth:      auth,
		jwtSecret: jwtSecret,
		ttl:       ttl,
		revoked:   make(map[uuid.UUID]time.Time),
		drafts:    make(map[uuid.UUID]*Draft),
	}
}

// Login checks the candidate against the gate and, on success, issues a
// signed session token.
func (s *Sessions) Login(candidate string) (string, error) {
	if !s.auth.Authenticate(candidate) {
		return "", ErrInvalidCredential
	}

	now := time.Now()
	claims := &Claims{
		SessionID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Logout revokes the session and resets its staged draft.
func (s *Sessions) Logout(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[sessionID] = time.Now()
	delete(s.drafts, sessionID)

	// Drop revocations older than the token TTL; their tokens have expired
	// on their own by then.
	cutoff := time.Now().Add(-s.ttl)
	for id, at := range s.revoked {
		if at.Before(cutoff) {
			delete(s.revoked, id)
		}
	}
}

// ValidateToken parses and verifies a session token and rejects revoked
// sessions.
func (s *Sessions) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.SessionID]
	s.mu.Unlock()
	if revoked {
		return nil, ErrSessionRevoked
	}

	return claims, nil
}

// SetDraft stages form state for the session, replacing any previous draft.
func (s *Sessions) SetDraft(sessionID uuid.UUID, draft *Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[sessionID] = draft
}

// Draft returns the staged draft for the session, or nil when there is none.
func (s *Sessions) Draft(sessionID uuid.UUID) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[sessionID]
}

// ClearDraft discards the session's staged draft without ending the session.
func (s *Sessions) ClearDraft(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
}
