package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockSessionTokenValidator struct {
	mock.Mock
}

func (m *MockSessionTokenValidator) ValidateToken(tokenString string) (*SessionClaims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*SessionClaims)
	return claims, args.Error(1)
}

type RequireSessionSuite struct {
	suite.Suite
	validator *MockSessionTokenValidator
	granted   string
	reached   bool
}

func TestRequireSessionSuite(t *testing.T) {
	suite.Run(t, new(RequireSessionSuite))
}

func (s *RequireSessionSuite) SetupTest() {
	s.validator = new(MockSessionTokenValidator)
	s.granted = ""
	s.reached = false
}

func (s *RequireSessionSuite) TearDownTest() {
	s.validator.AssertExpectations(s.T())
}

func (s *RequireSessionSuite) open(authorization string) *httptest.ResponseRecorder {
	desk := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.reached = true
		s.granted = GetSessionID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/sessions/abc/mail", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	RequireSession(s.validator, slog.Default())(desk).ServeHTTP(w, req)
	return w
}

func (s *RequireSessionSuite) TestClerkTokenGrantsSession() {
	s.validator.On("ValidateToken", "clerk-token").Return(&SessionClaims{SessionID: "desk-7", JTI: "j1"}, nil)

	w := s.open("Bearer clerk-token")

	s.Equal(http.StatusOK, w.Code)
	s.True(s.reached)
	s.Equal("desk-7", s.granted)
}

func (s *RequireSessionSuite) TestExpiredTokenIsRejected() {
	s.validator.On("ValidateToken", "stale").Return(nil, errors.New("token is expired"))

	w := s.open("Bearer stale")

	s.False(s.reached)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("application/json", w.Header().Get("Content-Type"))
	s.JSONEq(`{"error":"unauthorized","error_description":"Invalid or expired token"}`, w.Body.String())
}

func (s *RequireSessionSuite) TestHeaderShapes() {
	for _, header := range []string{"", "clerk-token", "Basic Y2xlcms6cHc=", "bearer clerk-token", "Bearer "} {
		s.Run(header, func() {
			s.reached = false
			w := s.open(header)

			s.False(s.reached)
			s.Equal(http.StatusUnauthorized, w.Code)
			s.JSONEq(`{"error":"unauthorized","error_description":"Missing or invalid Authorization header"}`, w.Body.String())
		})
	}
}

func TestGetSessionID(t *testing.T) {
	assert.Empty(t, GetSessionID(context.Background()))
	assert.Equal(t, "desk-1", GetSessionID(WithSessionID(context.Background(), "desk-1")))
	assert.Empty(t, GetSessionID(context.WithValue(context.Background(), contextKeySessionID{}, 42)))
}
