package jwttoken

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	id "govos/pkg/domain"
	dErrors "govos/pkg/domain-errors"
	"govos/pkg/platform/middleware/requesttime"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenClaims are carried by the bearer token handed out when a
// game session is created. A token grants access to exactly one session.
type SessionTokenClaims struct {
	SessionID string `json:"sid"`
	Env       string `json:"env,omitempty"`
	jwt.RegisteredClaims
}

// JWTService handles session token creation and validation.
type JWTService struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
	env        string
}

func NewJWTService(signingKey string, issuer string, tokenTTL time.Duration) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
	}
}

// SetEnv annotates issued tokens with an environment string (e.g. "dev").
func (s *JWTService) SetEnv(env string) {
	s.env = env
}

// GenerateSessionToken signs a token for sessionID. Issue and expiry times
// come from the request-scoped clock.
func (s *JWTService) GenerateSessionToken(ctx context.Context, sessionID id.SessionID) (string, error) {
	if sessionID.IsNil() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "session id required")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "generate token id")
	}
	now := requesttime.Now(ctx)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionTokenClaims{
		SessionID: sessionID.String(),
		Env:       s.env,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        hex.EncodeToString(b),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "sign session token")
	}
	return signed, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*SessionTokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionTokenClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*SessionTokenClaims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if _, err := id.ParseSessionID(claims.SessionID); err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token subject")
	}
	return claims, nil
}
