package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

func TestDepositHandler(t *testing.T) {
	balance := models.Money(600000)

	tests := []struct {
		name               string
		requestBody        string
		setupMocks         func(m *MockDepositor)
		expectedStatusCode int
		expectedKey        string
		expectedValue      any
	}{
		{
			name:        "successful deposit",
			requestBody: `{"amount": 1000}`,
			setupMocks: func(m *MockDepositor) {
				m.EXPECT().Deposit(gomock.Any(), "1000").Return(&models.ActionResult{
					Transaction: models.Transaction{ID: "d-1", Kind: models.TransactionDeposit, Amount: 100000},
					Balance:     &balance,
				}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedKey:        "message",
			expectedValue:      "1000.00 has been deposited to your account.",
		},
		{
			name:        "amount as string",
			requestBody: `{"amount": "12,50"}`,
			setupMocks: func(m *MockDepositor) {
				m.EXPECT().Deposit(gomock.Any(), "12,50").Return(&models.ActionResult{
					Transaction: models.Transaction{Kind: models.TransactionDeposit, Amount: 1250},
				}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedKey:        "message",
			expectedValue:      "12.50 has been deposited to your account.",
		},
		{
			name:               "invalid request body",
			requestBody:        `invalid-json`,
			setupMocks:         func(m *MockDepositor) {},
			expectedStatusCode: http.StatusBadRequest,
			expectedKey:        "error",
			expectedValue:      "invalid request body",
		},
		{
			name:        "invalid amount",
			requestBody: `{"amount": "0"}`,
			setupMocks: func(m *MockDepositor) {
				m.EXPECT().Deposit(gomock.Any(), "0").Return(nil, models.NewValidationError("deposit", "amount", models.ErrInvalidAmount))
			},
			expectedStatusCode: http.StatusBadRequest,
			expectedKey:        "field",
			expectedValue:      "amount",
		},
		{
			name:        "action in flight",
			requestBody: `{"amount": "5"}`,
			setupMocks: func(m *MockDepositor) {
				m.EXPECT().Deposit(gomock.Any(), "5").Return(nil, models.NewValidationError("deposit", "", models.ErrActionInFlight))
			},
			expectedStatusCode: http.StatusConflict,
			expectedKey:        "kind",
			expectedValue:      "validation",
		},
		{
			name:        "timeout",
			requestBody: `{"amount": "5"}`,
			setupMocks: func(m *MockDepositor) {
				m.EXPECT().Deposit(gomock.Any(), "5").Return(nil, &models.Error{Kind: models.KindTimeout, Op: "deposit", Message: "Request timed out."})
			},
			expectedStatusCode: http.StatusGatewayTimeout,
			expectedKey:        "kind",
			expectedValue:      "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockDepositor(ctrl)
			tt.setupMocks(svc)

			rr := httptest.NewRecorder()
			NewDepositHandler(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/dashboard/deposit", encodeBody(t, tt.requestBody)))

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
			var body map[string]any
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.expectedValue, body[tt.expectedKey])
		})
	}
}

func TestWithdrawHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	balance := models.Money(580000)
	svc := NewMockWithdrawer(ctrl)
	svc.EXPECT().Withdraw(gomock.Any(), "200").Return(&models.ActionResult{
		Transaction: models.Transaction{ID: "w-1", Kind: models.TransactionWithdrawal, Amount: 20000},
		Balance:     &balance,
	}, nil)
	svc.EXPECT().Withdraw(gomock.Any(), "10000").Return(nil, models.NewValidationError("withdraw", "amount", models.ErrInsufficientFunds))

	rr := httptest.NewRecorder()
	NewWithdrawHandler(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/dashboard/withdraw", encodeBody(t, `{"amount":"200"}`)))
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.ActionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotNil(t, resp.Balance)
	assert.Equal(t, "5800.00", resp.Balance.String())
	assert.Equal(t, "200.00 has been withdrawn from your account.", resp.Message)

	rr = httptest.NewRecorder()
	NewWithdrawHandler(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/dashboard/withdraw", encodeBody(t, `{"amount":10000}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
	assert.Equal(t, "insufficient funds", errResp.Error)
}

func TestTransferHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockTransferer(ctrl)
	svc.EXPECT().Transfer(gomock.Any(), "5550001112", "25").Return(&models.ActionResult{
		Transaction: models.Transaction{ID: "t-1", Kind: models.TransactionTransfer, Amount: 2500},
	}, nil)

	rr := httptest.NewRecorder()
	NewTransferHandler(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/dashboard/transfer",
		encodeBody(t, `{"receiverId": 5550001112, "amount": "25"}`)))
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.ActionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "25.00 has been transferred to account 5550001112.", resp.Message)
	assert.Nil(t, resp.Balance)
}
