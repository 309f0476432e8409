package services

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

// AccountReader fetches the three independent parts of the dashboard.
type AccountReader interface {
	GetAccountDetails(ctx context.Context, accountNumber string) (*models.AccountDetails, error)
	GetBalance(ctx context.Context, accountNumber string) (models.Money, error)
	GetTransactions(ctx context.Context, accountNumber string) ([]models.Transaction, error)
}

// AccountViewModel caches what the user dashboard shows for one account.
//
// The epoch changes whenever the dashboard is left or switched to another
// account; results tagged with an older epoch are dropped. The load
// generation does the same for superseded loads.
type AccountViewModel struct {
	mu sync.Mutex

	user    *models.User
	open    bool
	epoch   uint64
	loadGen uint64

	details      *models.AccountDetails
	balance      *models.Money
	transactions []models.Transaction
	form         models.ActionForm
	failures     map[models.LoadPart]error
}

// NewAccountViewModel creates a closed view-model.
func NewAccountViewModel() *AccountViewModel {
	return &AccountViewModel{}
}

// Open binds the view-model to user's account. Reopening the same account
// keeps the cache; another account starts empty.
func (vm *AccountViewModel) Open(user models.User) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.open && vm.user != nil && vm.user.AccountNumber == user.AccountNumber {
		vm.user = &user
		return
	}
	vm.resetLocked()
	vm.user = &user
	vm.open = true
}

// Close leaves the dashboard: cached data is dropped and results of work
// still in flight are discarded.
func (vm *AccountViewModel) Close() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.resetLocked()
	vm.user = nil
	vm.open = false
}

func (vm *AccountViewModel) resetLocked() {
	vm.epoch++
	vm.loadGen++
	vm.details = nil
	vm.balance = nil
	vm.transactions = nil
	vm.form = models.ActionForm{}
	vm.failures = nil
}

// IsOpen reports whether the view-model is bound to an account.
func (vm *AccountViewModel) IsOpen() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.open
}

// Snapshot renders the current state.
func (vm *AccountViewModel) Snapshot() models.DashboardView {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	view := models.DashboardView{
		Form:         vm.form,
		Transactions: make([]models.TransactionView, 0, len(vm.transactions)),
	}
	if vm.user != nil {
		u := *vm.user
		view.User = &u
	}
	if vm.details != nil {
		d := *vm.details
		view.Details = &d
	}
	if vm.balance != nil {
		b := *vm.balance
		view.Balance = &b
	}
	var viewer models.AccountRef
	if vm.user != nil {
		viewer = models.AccountRef{ID: vm.user.ID, AccountNumber: vm.user.AccountNumber}
	}
	for _, t := range vm.transactions {
		view.Transactions = append(view.Transactions, models.TransactionView{
			Transaction:  t,
			SignedAmount: t.SignedAmount(viewer),
		})
	}
	if len(vm.failures) > 0 {
		view.Failures = make(map[models.LoadPart]string, len(vm.failures))
		for part, err := range vm.failures {
			view.Failures[part] = err.Error()
		}
	}
	return view
}

// Balance returns the last known balance.
func (vm *AccountViewModel) Balance() (models.Money, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.balance == nil {
		return 0, false
	}
	return *vm.balance, true
}

// SetDraft stores what the user typed into one of the action forms.
func (vm *AccountViewModel) SetDraft(kind models.TransactionKind, amount, receiver string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	switch kind {
	case models.TransactionDeposit:
		vm.form.DepositAmount = amount
	case models.TransactionWithdrawal:
		vm.form.WithdrawAmount = amount
	case models.TransactionTransfer:
		vm.form.TransferAmount = amount
		vm.form.ReceiverID = receiver
	}
}

// target returns the bound account and the current epoch.
func (vm *AccountViewModel) target() (string, uint64, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if !vm.open || vm.user == nil {
		return "", 0, false
	}
	return vm.user.AccountNumber, vm.epoch, true
}

func (vm *AccountViewModel) beginLoad() (account string, epoch, gen uint64, ok bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if !vm.open || vm.user == nil {
		return "", 0, 0, false
	}
	vm.loadGen++
	return vm.user.AccountNumber, vm.epoch, vm.loadGen, true
}

func (vm *AccountViewModel) currentLocked(epoch, gen uint64) bool {
	return vm.open && vm.epoch == epoch && vm.loadGen == gen
}

// applyPart stores one load outcome. A failed part keeps its cached value.
func (vm *AccountViewModel) applyPart(epoch, gen uint64, part models.LoadPart, value any, err error) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if !vm.currentLocked(epoch, gen) {
		return false
	}
	if err != nil {
		if vm.failures == nil {
			vm.failures = make(map[models.LoadPart]error)
		}
		vm.failures[part] = err
		return true
	}
	delete(vm.failures, part)
	switch v := value.(type) {
	case *models.AccountDetails:
		vm.details = v
	case models.Money:
		vm.balance = &v
	case []models.Transaction:
		vm.transactions = v
	}
	return true
}

// applyAction applies a reconciled action: the balance moves by delta, txn
// is prepended with the running balance and the form of the action is cleared. Loads still in flight
// are superseded so they cannot overwrite the new balance.
func (vm *AccountViewModel) applyAction(epoch uint64, txn models.Transaction, delta models.Money) (*models.Money, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if !vm.open || vm.epoch != epoch {
		return nil, false
	}
	vm.loadGen++

	var balance *models.Money
	if vm.balance != nil {
		b := *vm.balance + delta
		vm.balance = &b
		balance = &b
		after := b
		txn.BalanceAfter = &after
	}
	vm.transactions = append([]models.Transaction{txn}, vm.transactions...)

	switch txn.Kind {
	case models.TransactionDeposit:
		vm.form.DepositAmount = ""
	case models.TransactionWithdrawal:
		vm.form.WithdrawAmount = ""
	case models.TransactionTransfer:
		vm.form.TransferAmount = ""
		vm.form.ReceiverID = ""
	}
	return balance, true
}

// AccountService loads the dashboard of the account bound to the view-model.
type AccountService struct {
	reader AccountReader
	vm     *AccountViewModel
}

// NewAccountService creates a new AccountService.
func NewAccountService(reader AccountReader, vm *AccountViewModel) *AccountService {
	return &AccountService{reader: reader, vm: vm}
}

// Load fetches details, balance and transactions concurrently. Each outcome
// is applied as soon as it arrives; a failed part is reported in Failures and
// does not affect the others. No part is retried.
func (s *AccountService) Load(ctx context.Context) (*models.LoadResult, error) {
	account, epoch, gen, ok := s.vm.beginLoad()
	if !ok {
		return nil, models.NewValidationError("load", "", models.ErrNotAuthenticated)
	}

	res := &models.LoadResult{}
	var mu sync.Mutex
	discarded := false

	record := func(part models.LoadPart, value any, err error) {
		if err != nil {
			logger.Log.Errorw("dashboard part failed to load", "account", account, "part", part, "error", err)
		}
		applied := s.vm.applyPart(epoch, gen, part, value, err)

		mu.Lock()
		defer mu.Unlock()
		if !applied {
			discarded = true
		}
		if err != nil {
			if res.Failures == nil {
				res.Failures = make(map[models.LoadPart]error)
			}
			res.Failures[part] = err
		}
	}

	var g errgroup.Group
	g.Go(func() error {
		details, err := s.reader.GetAccountDetails(ctx, account)
		if err == nil {
			mu.Lock()
			res.Details = details
			mu.Unlock()
		}
		record(models.PartDetails, details, err)
		return nil
	})
	g.Go(func() error {
		balance, err := s.reader.GetBalance(ctx, account)
		if err == nil {
			mu.Lock()
			res.Balance = &balance
			mu.Unlock()
		}
		record(models.PartBalance, balance, err)
		return nil
	})
	g.Go(func() error {
		txns, err := s.reader.GetTransactions(ctx, account)
		if err == nil {
			mu.Lock()
			res.Transactions = txns
			mu.Unlock()
		}
		record(models.PartTransactions, txns, err)
		return nil
	})
	_ = g.Wait()

	res.Discarded = discarded
	if discarded {
		logger.Log.Infow("dashboard load superseded, results dropped", "account", account)
	} else if res.Partial() {
		logger.Log.Warnw("dashboard loaded partially", "account", account, "failed", len(res.Failures))
	}
	return res, nil
}
