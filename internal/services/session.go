package services

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

// KeyValueStore is the persisted client state.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Authenticator calls the backend login endpoints.
type Authenticator interface {
	Login(ctx context.Context, role models.Role, email, password string) (*models.LoginResult, error)
}

// TokenValidator checks a stored token before it is trusted.
type TokenValidator interface {
	Validate(ctx context.Context, token string) error
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// SessionService owns the session state machine:
// unauthenticated -> authenticating -> authenticated -> unauthenticated.
// Every transition is persisted and announced to subscribers.
type SessionService struct {
	store     KeyValueStore
	auth      Authenticator
	validator TokenValidator

	mu      sync.Mutex
	session models.Session
	seq     uint64 // bumped by logins and logouts; a login whose seq moved on is stale

	subMu   sync.Mutex
	subs    map[int]func(models.Session)
	nextSub int
}

// NewSessionService creates an unauthenticated SessionService. Call Init to
// restore a persisted session.
func NewSessionService(store KeyValueStore, auth Authenticator, validator TokenValidator) *SessionService {
	return &SessionService{
		store:     store,
		auth:      auth,
		validator: validator,
		subs:      make(map[int]func(models.Session)),
	}
}

// Init restores the session from storage. A partial or corrupt record, or an
// expired token, is cleared and leaves the store unauthenticated.
func (s *SessionService) Init(ctx context.Context) (models.Session, error) {
	s.mu.Lock()
	snap, err := s.restoreLocked(ctx)
	s.mu.Unlock()

	s.notify(snap)
	return snap, err
}

func (s *SessionService) restoreLocked(ctx context.Context) (models.Session, error) {
	s.session = models.Session{State: models.StateUnauthenticated}

	token, hasToken, err := s.store.Get(ctx, models.TokenStorageKey)
	if err != nil {
		logger.Log.Errorw("failed to read stored token", "error", err)
		return s.snapshotLocked(), err
	}
	raw, hasUser, err := s.store.Get(ctx, models.UserStorageKey)
	if err != nil {
		logger.Log.Errorw("failed to read stored user", "error", err)
		return s.snapshotLocked(), err
	}
	if !hasToken && !hasUser {
		return s.snapshotLocked(), nil
	}

	user, reason := decodeStoredUser(token, raw, hasToken, hasUser)
	if reason == "" && s.validator != nil {
		if err := s.validator.Validate(ctx, token); err != nil {
			reason = err.Error()
		}
	}
	if reason != "" {
		logger.Log.Warnw("discarding stored session", "reason", reason)
		if err := s.clearLocked(ctx); err != nil {
			return s.snapshotLocked(), err
		}
		return s.snapshotLocked(), nil
	}

	s.session = models.Session{State: models.StateAuthenticated, User: user, Token: token}
	logger.Log.Infow("session restored", "email", user.Email, "role", user.Role)
	return s.snapshotLocked(), nil
}

func decodeStoredUser(token, raw string, hasToken, hasUser bool) (*models.User, string) {
	if !hasToken || strings.TrimSpace(token) == "" {
		return nil, "token missing"
	}
	if !hasUser {
		return nil, "user missing"
	}
	var stored struct {
		models.User
		Role string `json:"role"`
	}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, "user record is not valid JSON"
	}
	role, err := models.ParseRole(stored.Role)
	if err != nil {
		return nil, err.Error()
	}
	user := stored.User
	user.Role = role
	if err := checkIdentity(user); err != nil {
		return nil, err.Error()
	}
	return &user, ""
}

func checkIdentity(u models.User) error {
	if u.Role == models.RoleUser && strings.TrimSpace(u.AccountNumber) == "" {
		return errors.New("user record has no account number")
	}
	if u.ID == "" && u.Email == "" && u.AccountNumber == "" {
		return errors.New("user record has no identity")
	}
	return nil
}

// Login authenticates through the portal named by req.Role. A role reported
// by the backend wins over the requested one; without it the portal decides.
func (s *SessionService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	email := strings.TrimSpace(req.Email)
	role, err := validateLogin(email, req.Password, req.Role)
	if err != nil {
		return s.Current(), err
	}

	s.mu.Lock()
	if s.session.State == models.StateAuthenticating {
		s.mu.Unlock()
		return s.Current(), models.NewValidationError("login", "", models.ErrLoginInProgress)
	}
	if s.session.State == models.StateAuthenticated {
		if err := s.clearLocked(ctx); err != nil {
			s.mu.Unlock()
			return s.Current(), err
		}
	}
	s.seq++
	seq := s.seq
	s.session = models.Session{State: models.StateAuthenticating}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	res, err := s.auth.Login(ctx, role, email, req.Password)
	if err == nil {
		if res.User.Role == "" {
			res.User.Role = role
		}
		err = checkIdentity(res.User)
		if err != nil {
			err = &models.Error{Kind: models.KindResponseShape, Op: "login", Message: err.Error(), Err: err}
		}
	}

	s.mu.Lock()
	if s.seq != seq {
		s.mu.Unlock()
		logger.Log.Warnw("login result dropped, session changed meanwhile", "email", email)
		return s.Current(), &models.Error{Kind: models.KindValidation, Op: "login", Message: models.ErrLoginCanceled.Error(), Err: models.ErrLoginCanceled}
	}
	if err != nil {
		s.session = models.Session{State: models.StateUnauthenticated}
		snap = s.snapshotLocked()
		s.mu.Unlock()
		logger.Log.Errorw("login failed", "email", email, "role", role, "error", err)
		s.notify(snap)
		return snap, err
	}

	if err := s.persistLocked(ctx, res); err != nil {
		s.session = models.Session{State: models.StateUnauthenticated}
		snap = s.snapshotLocked()
		s.mu.Unlock()
		s.notify(snap)
		return snap, err
	}

	user := res.User
	s.session = models.Session{State: models.StateAuthenticated, User: &user, Token: res.Token}
	snap = s.snapshotLocked()
	s.mu.Unlock()

	logger.Log.Infow("user logged in", "email", user.Email, "role", user.Role)
	s.notify(snap)
	return snap, nil
}

func validateLogin(email, password, role string) (models.Role, error) {
	switch {
	case email == "":
		return "", models.NewValidationError("login", "email", models.ErrEmailRequired)
	case !emailPattern.MatchString(email):
		return "", models.NewValidationError("login", "email", models.ErrInvalidEmail)
	case password == "":
		return "", models.NewValidationError("login", "password", models.ErrPasswordRequired)
	}
	r, err := models.ParseRole(role)
	if err != nil {
		return "", models.NewValidationError("login", "role", err)
	}
	return r, nil
}

func (s *SessionService) persistLocked(ctx context.Context, res *models.LoginResult) error {
	data, err := json.Marshal(res.User)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, models.TokenStorageKey, res.Token); err != nil {
		logger.Log.Errorw("failed to persist token", "error", err)
		s.discardLocked(ctx)
		return err
	}
	if err := s.store.Set(ctx, models.UserStorageKey, string(data)); err != nil {
		logger.Log.Errorw("failed to persist user", "error", err)
		s.discardLocked(ctx)
		return err
	}
	return nil
}

// Logout clears the session and its persisted record. A login still in
// flight is abandoned.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	wasAuthenticated := s.session.Authenticated()
	err := s.clearLocked(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if wasAuthenticated {
		logger.Log.Infow("user logged out")
	}
	s.notify(snap)
	return err
}

// CheckExpiry logs out an authenticated session whose token no longer
// validates. It reports whether a logout happened.
func (s *SessionService) CheckExpiry(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if !s.session.Authenticated() || s.validator == nil {
		s.mu.Unlock()
		return false, nil
	}
	reason := s.validator.Validate(ctx, s.session.Token)
	if reason == nil {
		s.mu.Unlock()
		return false, nil
	}
	logger.Log.Infow("session token expired, logging out", "email", s.session.User.Email, "reason", reason)
	s.seq++
	err := s.clearLocked(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return true, err
}

// Current returns a snapshot of the session.
func (s *SessionService) Current() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for every transition. The returned function
// unregisters it.
func (s *SessionService) Subscribe(fn func(models.Session)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Close drops all subscribers.
func (s *SessionService) Close() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = make(map[int]func(models.Session))
}

// clearLocked deletes the persisted record and resets the state. The state
// is reset even when storage fails.
func (s *SessionService) clearLocked(ctx context.Context) error {
	s.session = models.Session{State: models.StateUnauthenticated}
	if err := s.store.Delete(ctx, models.TokenStorageKey, models.UserStorageKey); err != nil {
		logger.Log.Errorw("failed to clear stored session", "error", err)
		return err
	}
	return nil
}

func (s *SessionService) discardLocked(ctx context.Context) {
	if err := s.store.Delete(ctx, models.TokenStorageKey, models.UserStorageKey); err != nil {
		logger.Log.Errorw("failed to roll back partial session record", "error", err)
	}
}

func (s *SessionService) snapshotLocked() models.Session {
	snap := s.session
	if snap.User != nil {
		u := *snap.User
		snap.User = &u
	}
	return snap
}

func (s *SessionService) notify(snap models.Session) {
	s.subMu.Lock()
	fns := make([]func(models.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
