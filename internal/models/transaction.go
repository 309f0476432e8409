package models

import (
	"strings"
	"time"
)

// TransactionKind is the type of a transaction.
type TransactionKind string

const (
	TransactionDeposit    TransactionKind = "Deposit"
	TransactionWithdrawal TransactionKind = "Withdrawal"
	TransactionTransfer   TransactionKind = "Transfer"
)

// ParseTransactionKind accepts the spellings the backend and the forms use.
func ParseTransactionKind(s string) (TransactionKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return TransactionDeposit, true
	case "withdrawal", "withdraw":
		return TransactionWithdrawal, true
	case "transfer":
		return TransactionTransfer, true
	default:
		return "", false
	}
}

// AccountRef points at the sender or receiver of a transfer.
type AccountRef struct {
	ID            string `json:"id,omitempty"`
	AccountNumber string `json:"accountNumber"`
}

// Matches reports whether r names the same account as other. Empty fields
// never match.
func (r *AccountRef) Matches(other AccountRef) bool {
	if r == nil {
		return false
	}
	if r.AccountNumber != "" && r.AccountNumber == other.AccountNumber {
		return true
	}
	return r.ID != "" && r.ID == other.ID
}

// Transaction is an immutable record in the account history.
// swagger:model Transaction
type Transaction struct {
	ID          string          `json:"id"`
	Kind        TransactionKind `json:"transactionType" swaggertype:"string" example:"Deposit"`
	Amount      Money           `json:"amount" swaggertype:"number" example:"1000.00"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
	Sender      *AccountRef     `json:"sender,omitempty"`
	Receiver    *AccountRef     `json:"receiver,omitempty"`
	// BalanceAfter is the running balance once this transaction was applied
	// locally; nil for fetched history.
	BalanceAfter *Money `json:"balanceAfter,omitempty" swaggertype:"number" example:"5800.00"`
}

// SignedAmount returns the amount as seen by viewer: deposits are positive,
// withdrawals negative, and transfers negative for the sender and positive
// only for the receiver. Refs match the viewer by account number or id.
func (t Transaction) SignedAmount(viewer AccountRef) Money {
	switch t.Kind {
	case TransactionDeposit:
		return t.Amount
	case TransactionTransfer:
		if t.Receiver.Matches(viewer) && !t.Sender.Matches(viewer) {
			return t.Amount
		}
		return -t.Amount
	default:
		return -t.Amount
	}
}

// Delta is the balance change a successful action of this kind applies to
// the acting account.
func (k TransactionKind) Delta(amount Money) Money {
	if k == TransactionDeposit {
		return amount
	}
	return -amount
}
