package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/services"
)

// Depositor defines the deposit action.
type Depositor interface {
	Deposit(ctx context.Context, amountInput string) (*models.ActionResult, error)
}

// Withdrawer defines the withdraw action.
type Withdrawer interface {
	Withdraw(ctx context.Context, amountInput string) (*models.ActionResult, error)
}

// Transferer defines the transfer action.
type Transferer interface {
	Transfer(ctx context.Context, receiverID, amountInput string) (*models.ActionResult, error)
}

// NewDepositHandler returns an HTTP handler for deposits.
// @Summary Deposit funds
// @Description Validate the amount, deposit it and apply the result to the dashboard
// @Tags dashboard
// @Accept json
// @Produce json
// @Param request body models.AmountRequest true "Deposit Request"
// @Success 200 {object} models.ActionResponse "Deposit applied"
// @Failure 400 {object} models.ErrorResponse "Invalid amount"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 409 {object} models.ErrorResponse "Another action in progress"
// @Failure 502 {object} models.ErrorResponse "Backend unreachable or malformed answer"
// @Failure 504 {object} models.ErrorResponse "Backend timed out"
// @Router /dashboard/deposit [post]
func NewDepositHandler(svc Depositor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AmountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "deposit", err)
			return
		}

		res, err := svc.Deposit(r.Context(), req.Amount.String())
		if err != nil {
			writeError(w, "deposit", err)
			return
		}
		writeAction(w, res, "")
	}
}

// NewWithdrawHandler returns an HTTP handler for withdrawals.
// @Summary Withdraw funds
// @Description Validate the amount against the known balance, withdraw it and apply the result to the dashboard
// @Tags dashboard
// @Accept json
// @Produce json
// @Param request body models.AmountRequest true "Withdraw Request"
// @Success 200 {object} models.ActionResponse "Withdrawal applied"
// @Failure 400 {object} models.ErrorResponse "Invalid amount or insufficient funds"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 409 {object} models.ErrorResponse "Another action in progress"
// @Failure 502 {object} models.ErrorResponse "Backend unreachable or malformed answer"
// @Failure 504 {object} models.ErrorResponse "Backend timed out"
// @Router /dashboard/withdraw [post]
func NewWithdrawHandler(svc Withdrawer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AmountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "withdraw", err)
			return
		}

		res, err := svc.Withdraw(r.Context(), req.Amount.String())
		if err != nil {
			writeError(w, "withdraw", err)
			return
		}
		writeAction(w, res, "")
	}
}

// NewTransferHandler returns an HTTP handler for transfers.
// @Summary Transfer funds
// @Description Validate receiver and amount, transfer and apply the result to the dashboard
// @Tags dashboard
// @Accept json
// @Produce json
// @Param request body models.TransferRequest true "Transfer Request"
// @Success 200 {object} models.ActionResponse "Transfer applied"
// @Failure 400 {object} models.ErrorResponse "Invalid receiver, amount or insufficient funds"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 409 {object} models.ErrorResponse "Another action in progress"
// @Failure 502 {object} models.ErrorResponse "Backend unreachable or malformed answer"
// @Failure 504 {object} models.ErrorResponse "Backend timed out"
// @Router /dashboard/transfer [post]
func NewTransferHandler(svc Transferer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "transfer", err)
			return
		}

		res, err := svc.Transfer(r.Context(), req.ReceiverID.String(), req.Amount.String())
		if err != nil {
			writeError(w, "transfer", err)
			return
		}
		writeAction(w, res, req.ReceiverID.String())
	}
}

func writeAction(w http.ResponseWriter, res *models.ActionResult, receiver string) {
	txn := res.Transaction
	writeJSON(w, http.StatusOK, models.ActionResponse{
		Message:     services.ActionMessage(txn.Kind, txn.Amount, receiver),
		Balance:     res.Balance,
		Transaction: txn,
	})
}
