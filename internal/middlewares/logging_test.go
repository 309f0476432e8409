package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		target         string
		incomingID     string
		handlerStatus  int
		handlerBody    string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "dashboard load",
			method:         http.MethodGet,
			target:         "/dashboard",
			handlerStatus:  http.StatusOK,
			handlerBody:    `{"busy":false}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"busy":false}`,
		},
		{
			name:           "backend unreachable",
			method:         http.MethodPost,
			target:         "/dashboard/deposit",
			handlerStatus:  http.StatusBadGateway,
			handlerBody:    `{"kind":"network"}`,
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"kind":"network"}`,
		},
		{
			name:           "incoming request id kept",
			method:         http.MethodPost,
			target:         "/dashboard/leave",
			incomingID:     "req-42",
			handlerStatus:  http.StatusNoContent,
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ctxID string
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxID = RequestIDFromContext(r.Context())
				w.WriteHeader(tt.handlerStatus)
				_, _ = w.Write([]byte(tt.handlerBody))
			})

			handler := LoggingMiddleware(nextHandler)

			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.incomingID != "" {
				req.Header.Set("X-Request-ID", tt.incomingID)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			bodyBytes, _ := io.ReadAll(rr.Body)
			assert.Equal(t, tt.expectedBody, string(bodyBytes))

			reqID := rr.Header().Get("X-Request-ID")
			assert.NotEmpty(t, reqID)
			assert.Equal(t, reqID, ctxID)
			if tt.incomingID != "" {
				assert.Equal(t, tt.incomingID, reqID)
			}
		})
	}
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	assert.Empty(t, RequestIDFromContext(req.Context()))
}
