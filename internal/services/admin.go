package services

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

// AdminReader fetches the admin listings.
type AdminReader interface {
	ListUsers(ctx context.Context) ([]models.AdminUser, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
}

// SessionReader exposes the current session.
type SessionReader interface {
	Current() models.Session
}

// AdminService loads the admin dashboard.
type AdminService struct {
	reader   AdminReader
	sessions SessionReader
}

// NewAdminService creates a new AdminService.
func NewAdminService(reader AdminReader, sessions SessionReader) *AdminService {
	return &AdminService{reader: reader, sessions: sessions}
}

// Load fetches users and transactions concurrently. Either listing may fail
// without hiding the other one.
func (s *AdminService) Load(ctx context.Context) (*models.AdminView, error) {
	session := s.sessions.Current()
	if !session.Authenticated() {
		return nil, models.NewValidationError("admin", "", models.ErrNotAuthenticated)
	}
	if !session.HasRole(models.RoleAdmin) {
		logger.Log.Warnw("admin dashboard refused", "email", session.User.Email, "role", session.User.Role)
		return nil, models.NewValidationError("admin", "", models.ErrForbidden)
	}

	view := &models.AdminView{
		Users:        []models.AdminUser{},
		Transactions: []models.Transaction{},
	}
	var mu sync.Mutex
	fail := func(part models.LoadPart, err error) {
		logger.Log.Errorw("admin listing failed to load", "part", part, "error", err)
		mu.Lock()
		defer mu.Unlock()
		if view.Failures == nil {
			view.Failures = make(map[models.LoadPart]string)
		}
		view.Failures[part] = err.Error()
	}

	var g errgroup.Group
	g.Go(func() error {
		users, err := s.reader.ListUsers(ctx)
		if err != nil {
			fail(models.PartUsers, err)
			return nil
		}
		mu.Lock()
		view.Users = users
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		txns, err := s.reader.ListTransactions(ctx)
		if err != nil {
			fail(models.PartTransactions, err)
			return nil
		}
		mu.Lock()
		view.Transactions = txns
		mu.Unlock()
		return nil
	})
	_ = g.Wait()

	return view, nil
}
