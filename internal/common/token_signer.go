package common

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignedSession is the identity recovered from a session token
type SignedSession struct {
	UserID      string
	DisplayName string
	SessionID   string
	ExpiresAt   time.Time
}

// TokenSignerService signs and validates the HMAC session tokens clients
// present on every authenticated call
type TokenSignerService struct {
	secretKey []byte
}

// NewTokenSignerService creates a new token signer service
func NewTokenSignerService(secretKey []byte) *TokenSignerService {
	return &TokenSignerService{
		secretKey: secretKey,
	}
}

// SignSessionToken generates a signed token for an established session
func (s *TokenSignerService) SignSessionToken(userID, displayName, sessionID string, ttl time.Duration) (string, error) {
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"user_id":      userID,
		"display_name": displayName,
		"sid":          sessionID,
		"exp":          expiresAt.Unix(),
		"iat":          time.Now().Unix(),
	}

	// Sign with HMAC
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a session token and extracts its identity
func (s *TokenSignerService) ValidateToken(tokenString string) (*SignedSession, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, _ := (*claims)["user_id"].(string)
	displayName, _ := (*claims)["display_name"].(string)
	sessionID, _ := (*claims)["sid"].(string)
	if userID == "" {
		return nil, errors.New("token missing user_id claim")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errors.New("token missing expiry")
	}

	return &SignedSession{
		UserID:      userID,
		DisplayName: displayName,
		SessionID:   sessionID,
		ExpiresAt:   exp.Time,
	}, nil
}
