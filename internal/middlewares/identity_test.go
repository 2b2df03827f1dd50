package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestIdentityMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name            string
		mockSetup       func(m *MockSubjectExtractor)
		expectedSubject string
		expectedOK      bool
	}{
		{
			name: "NoToken",
			mockSetup: func(m *MockSubjectExtractor) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("no token"))
			},
			expectedSubject: "",
			expectedOK:      false,
		},
		{
			name: "InvalidToken",
			mockSetup: func(m *MockSubjectExtractor) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				m.EXPECT().GetSubject(gomock.Any(), "sometoken").
					Return("", errors.New("invalid token"))
			},
			expectedSubject: "",
			expectedOK:      false,
		},
		{
			name: "ValidToken",
			mockSetup: func(m *MockSubjectExtractor) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				m.EXPECT().GetSubject(gomock.Any(), "validtoken").
					Return("user-1", nil)
			},
			expectedSubject: "user-1",
			expectedOK:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockExtractor := NewMockSubjectExtractor(ctrl)
			tt.mockSetup(mockExtractor)

			// The middleware never rejects; it only decorates the context.
			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				sub, ok := SubjectFromContext(r.Context())
				assert.Equal(t, tt.expectedOK, ok)
				assert.Equal(t, tt.expectedSubject, sub)
				w.WriteHeader(http.StatusOK)
			})

			handler := IdentityMiddleware(mockExtractor)(nextHandler)

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.True(t, nextCalled)
			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestSubjectFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	sub, ok := SubjectFromContext(req.Context())
	assert.False(t, ok)
	assert.Empty(t, sub)
}
