package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

func encodeBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewBufferString(s)
	}
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(v))
	return &buf
}

func TestLoginHandler(t *testing.T) {
	admin := models.Session{
		State: models.StateAuthenticated,
		User:  &models.User{ID: "1", Email: "root@example.com", Role: models.RoleAdmin},
		Token: "tok",
	}

	tests := []struct {
		name               string
		requestBody        any
		setupMocks         func(m *MockLoginer)
		expectedStatusCode int
		expectedRedirect   string
		expectedError      string
	}{
		{
			name:        "successful admin login",
			requestBody: models.LoginRequest{Email: "root@example.com", Password: "secret", Role: "admin"},
			setupMocks: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), models.LoginRequest{Email: "root@example.com", Password: "secret", Role: "admin"}).
					Return(admin, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedRedirect:   "/admin",
		},
		{
			name:               "invalid request body",
			requestBody:        "invalid-json",
			setupMocks:         func(m *MockLoginer) {},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "invalid request body",
		},
		{
			name:        "invalid credentials",
			requestBody: models.LoginRequest{Email: "root@example.com", Password: "wrong"},
			setupMocks: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.Session{},
					&models.Error{Kind: models.KindBackend, Op: "login", Status: http.StatusUnauthorized, Message: "Invalid credentials"})
			},
			expectedStatusCode: http.StatusUnauthorized,
			expectedError:      "Invalid credentials",
		},
		{
			name:        "backend down",
			requestBody: models.LoginRequest{Email: "root@example.com", Password: "secret"},
			setupMocks: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.Session{},
					&models.Error{Kind: models.KindNetwork, Op: "login", Message: "Unable to connect to the API server"})
			},
			expectedStatusCode: http.StatusBadGateway,
			expectedError:      "Unable to connect to the API server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockLoginer(ctrl)
			tt.setupMocks(svc)

			req := httptest.NewRequest(http.MethodPost, "/login", encodeBody(t, tt.requestBody))
			rr := httptest.NewRecorder()
			NewLoginHandler(svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
				return
			}
			assert.Equal(t, tt.expectedRedirect, body["redirect"])
			session := body["session"].(map[string]any)
			assert.Equal(t, "authenticated", session["state"])
			assert.NotContains(t, session, "token")
		})
	}
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name               string
		requestBody        any
		setupMocks         func(m *MockRegisterer)
		expectedStatusCode int
		expectedKey        string
	}{
		{
			name:        "created",
			requestBody: models.RegisterRequest{Name: "John", Email: "john@example.com", Password: "secret1", ConfirmPassword: "secret1"},
			setupMocks: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).
					Return(&models.RegisterResponse{Message: "Account created", AccountNumber: "1234567890"}, nil)
			},
			expectedStatusCode: http.StatusCreated,
			expectedKey:        "accountNumber",
		},
		{
			name:               "invalid request body",
			requestBody:        "{",
			setupMocks:         func(m *MockRegisterer) {},
			expectedStatusCode: http.StatusBadRequest,
			expectedKey:        "error",
		},
		{
			name:        "password mismatch",
			requestBody: models.RegisterRequest{Name: "John", Email: "john@example.com", Password: "secret1", ConfirmPassword: "secret2"},
			setupMocks: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).
					Return(nil, models.NewValidationError("register", "confirmPassword", models.ErrPasswordMismatch))
			},
			expectedStatusCode: http.StatusBadRequest,
			expectedKey:        "field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockRegisterer(ctrl)
			tt.setupMocks(svc)

			rr := httptest.NewRecorder()
			NewRegisterHandler(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/register", encodeBody(t, tt.requestBody)))

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
			var body map[string]any
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Contains(t, body, tt.expectedKey)
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockLogouter(ctrl)
	svc.EXPECT().Logout(gomock.Any()).Return(nil)

	rr := httptest.NewRecorder()
	NewLogoutHandler(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Logged out"}`, rr.Body.String())

	svc.EXPECT().Logout(gomock.Any()).Return(errors.New("disk error"))
	rr = httptest.NewRecorder()
	NewLogoutHandler(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSessionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockSessionGetter(ctrl)
	svc.EXPECT().Current().Return(models.Session{})

	rr := httptest.NewRecorder()
	NewSessionHandler(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/session", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"state":"unauthenticated"}`, rr.Body.String())
}
