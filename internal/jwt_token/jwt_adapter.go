package jwttoken

import (
	"govos/internal/platform/middleware"
)

func ToMiddlewareClaims(claims *SessionTokenClaims) *middleware.SessionClaims {
	return &middleware.SessionClaims{
		SessionID: claims.SessionID,
		JTI:       claims.ID,
	}
}

// JWTServiceAdapter lets the auth middleware validate tokens without
// depending on the jwt claim types.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.SessionClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims), nil
}
