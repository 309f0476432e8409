package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

// AccountWriter submits mutating actions to the backend.
type AccountWriter interface {
	Deposit(ctx context.Context, accountNumber string, amount models.Money) (*models.Transaction, error)
	Withdraw(ctx context.Context, accountNumber string, amount models.Money) (*models.Transaction, error)
	Transfer(ctx context.Context, senderID, receiverID string, amount models.Money) (*models.Transaction, error)
}

// ActivityPublisher receives every reconciled action.
type ActivityPublisher interface {
	Publish(ctx context.Context, event models.ActivityEvent) error
}

// ActionOption configures an ActionCoordinator.
type ActionOption func(*ActionCoordinator)

// WithPublisher sets the activity publisher.
func WithPublisher(p ActivityPublisher) ActionOption {
	return func(c *ActionCoordinator) { c.publisher = p }
}

// WithActionClock overrides time.Now for synthesized timestamps.
func WithActionClock(now func() time.Time) ActionOption {
	return func(c *ActionCoordinator) { c.now = now }
}

// ActionCoordinator validates, submits and reconciles deposits, withdrawals
// and transfers. At most one action per account is in flight.
type ActionCoordinator struct {
	writer    AccountWriter
	vm        *AccountViewModel
	publisher ActivityPublisher
	now       func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewActionCoordinator creates a new ActionCoordinator.
func NewActionCoordinator(writer AccountWriter, vm *AccountViewModel, opts ...ActionOption) *ActionCoordinator {
	c := &ActionCoordinator{
		writer:   writer,
		vm:       vm,
		now:      time.Now,
		inflight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Deposit adds the amount typed in amountInput to the account.
func (c *ActionCoordinator) Deposit(ctx context.Context, amountInput string) (*models.ActionResult, error) {
	return c.run(ctx, models.TransactionDeposit, amountInput, "")
}

// Withdraw takes the amount typed in amountInput from the account.
func (c *ActionCoordinator) Withdraw(ctx context.Context, amountInput string) (*models.ActionResult, error) {
	return c.run(ctx, models.TransactionWithdrawal, amountInput, "")
}

// Transfer moves the amount typed in amountInput to receiverID.
func (c *ActionCoordinator) Transfer(ctx context.Context, receiverID, amountInput string) (*models.ActionResult, error) {
	return c.run(ctx, models.TransactionTransfer, amountInput, receiverID)
}

// Busy reports whether an action is in flight for account.
func (c *ActionCoordinator) Busy(account string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inflight[account]
	return ok
}

func (c *ActionCoordinator) run(ctx context.Context, kind models.TransactionKind, amountInput, receiver string) (*models.ActionResult, error) {
	op := opName(kind)

	account, epoch, ok := c.vm.target()
	if !ok {
		return nil, models.NewValidationError(op, "", models.ErrNotAuthenticated)
	}
	c.vm.SetDraft(kind, amountInput, receiver)

	amount, err := models.ParseAmount(amountInput)
	if err != nil {
		return nil, models.NewValidationError(op, "amount", err)
	}
	receiver = strings.TrimSpace(receiver)
	if kind == models.TransactionTransfer {
		if receiver == "" {
			return nil, models.NewValidationError(op, "receiverId", models.ErrReceiverRequired)
		}
		if receiver == account {
			return nil, models.NewValidationError(op, "receiverId", models.ErrSelfTransfer)
		}
	}

	if !c.acquire(account) {
		logger.Log.Warnw("action rejected, another one is in flight", "op", op, "account", account)
		return nil, models.NewValidationError(op, "", models.ErrActionInFlight)
	}
	defer c.release(account)

	// Checked after acquiring so the balance reflects any action that just
	// finished.
	if kind != models.TransactionDeposit {
		balance, known := c.vm.Balance()
		if !known {
			return nil, models.NewValidationError(op, "amount", models.ErrBalanceUnknown)
		}
		if amount > balance {
			return nil, models.NewValidationError(op, "amount", models.ErrInsufficientFunds)
		}
	}

	var resp *models.Transaction
	switch kind {
	case models.TransactionDeposit:
		resp, err = c.writer.Deposit(ctx, account, amount)
	case models.TransactionWithdrawal:
		resp, err = c.writer.Withdraw(ctx, account, amount)
	case models.TransactionTransfer:
		resp, err = c.writer.Transfer(ctx, account, receiver, amount)
	}
	if err != nil {
		logger.Log.Errorw("action failed", "op", op, "account", account, "amount", amount, "error", err)
		return nil, err
	}

	txn, err := c.reconcile(op, kind, amount, account, receiver, resp)
	if err != nil {
		logger.Log.Errorw("action response rejected", "op", op, "account", account, "error", err)
		return nil, err
	}

	balance, applied := c.vm.applyAction(epoch, txn, kind.Delta(amount))
	if !applied {
		logger.Log.Infow("action completed after the dashboard was left, result dropped", "op", op, "account", account, "transaction_id", txn.ID)
		return &models.ActionResult{Transaction: txn, Discarded: true}, nil
	}

	if balance != nil {
		after := *balance
		txn.BalanceAfter = &after
	}

	logger.Log.Infow("action completed", "op", op, "account", account, "amount", amount, "transaction_id", txn.ID)
	c.publish(ctx, account, txn, balance)
	return &models.ActionResult{Transaction: txn, Balance: balance}, nil
}

// reconcile completes the backend record with what was requested. A record
// that contradicts the request fails closed.
func (c *ActionCoordinator) reconcile(op string, kind models.TransactionKind, amount models.Money, account, receiver string, resp *models.Transaction) (models.Transaction, error) {
	if resp == nil {
		return models.Transaction{}, &models.Error{Kind: models.KindResponseShape, Op: op, Message: "response carries no transaction"}
	}
	txn := *resp
	if txn.Kind != "" && txn.Kind != kind {
		msg := fmt.Sprintf("response reports a %s, expected a %s", txn.Kind, kind)
		return txn, &models.Error{Kind: models.KindResponseShape, Op: op, Message: msg}
	}
	if txn.Amount != 0 && txn.Amount != amount {
		msg := fmt.Sprintf("response reports amount %s, expected %s", txn.Amount, amount)
		return txn, &models.Error{Kind: models.KindResponseShape, Op: op, Message: msg}
	}

	txn.Kind = kind
	txn.Amount = amount
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.Timestamp.IsZero() {
		txn.Timestamp = c.now()
	}
	if kind == models.TransactionTransfer {
		if txn.Sender == nil {
			txn.Sender = &models.AccountRef{AccountNumber: account}
		}
		if txn.Receiver == nil {
			txn.Receiver = &models.AccountRef{AccountNumber: receiver}
		}
	}
	if txn.Description == "" {
		txn.Description = describe(kind, receiver)
	}
	return txn, nil
}

func (c *ActionCoordinator) publish(ctx context.Context, account string, txn models.Transaction, balance *models.Money) {
	if c.publisher == nil {
		logger.Log.Warnw("activity publisher not configured, skipping publishing", "transaction_id", txn.ID)
		return
	}
	event := models.ActivityEvent{
		EventID:       uuid.NewString(),
		AccountNumber: account,
		Transaction:   txn,
		Balance:       balance,
		OccurredAt:    c.now(),
	}
	if err := c.publisher.Publish(ctx, event); err != nil {
		logger.Log.Errorw("failed to publish activity event", "transaction_id", txn.ID, "error", err)
	}
}

func (c *ActionCoordinator) acquire(account string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[account]; busy {
		return false
	}
	c.inflight[account] = struct{}{}
	return true
}

func (c *ActionCoordinator) release(account string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, account)
}

func opName(kind models.TransactionKind) string {
	switch kind {
	case models.TransactionDeposit:
		return "deposit"
	case models.TransactionWithdrawal:
		return "withdraw"
	default:
		return "transfer"
	}
}

func describe(kind models.TransactionKind, receiver string) string {
	switch kind {
	case models.TransactionDeposit:
		return "Deposit"
	case models.TransactionWithdrawal:
		return "Withdrawal"
	default:
		return "Transfer to " + receiver
	}
}

// ActionMessage is the confirmation shown after a successful action.
func ActionMessage(kind models.TransactionKind, amount models.Money, receiver string) string {
	switch kind {
	case models.TransactionDeposit:
		return fmt.Sprintf("%s has been deposited to your account.", amount)
	case models.TransactionWithdrawal:
		return fmt.Sprintf("%s has been withdrawn from your account.", amount)
	default:
		return fmt.Sprintf("%s has been transferred to account %s.", amount, receiver)
	}
}
