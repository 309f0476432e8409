package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

// Loginer defines the interface that the session service must implement.
type Loginer interface {
	Login(ctx context.Context, req models.LoginRequest) (models.Session, error)
}

// Logouter ends the session.
type Logouter interface {
	Logout(ctx context.Context) error
}

// SessionGetter returns the current session.
type SessionGetter interface {
	Current() models.Session
}

// Registerer creates accounts.
type Registerer interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)
}

// NewLoginHandler returns an HTTP handler for user and admin login.
// @Summary Log in
// @Description Authenticate through the user or admin portal and persist the session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.LoginResponse "Session and the route to open"
// @Failure 400 {object} models.ErrorResponse "Invalid form"
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Failure 409 {object} models.ErrorResponse "Login already in progress"
// @Failure 502 {object} models.ErrorResponse "Backend unreachable or malformed answer"
// @Failure 504 {object} models.ErrorResponse "Backend timed out"
// @Router /login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "login", err)
			return
		}

		session, err := svc.Login(r.Context(), req)
		if err != nil {
			writeError(w, "login", err)
			return
		}

		writeJSON(w, http.StatusOK, models.LoginResponse{
			Session:  session,
			Redirect: session.User.Role.HomeRoute(),
		})
	}
}

// NewRegisterHandler returns an HTTP handler for account registration.
// @Summary Register
// @Description Validate the sign-up form and create the account on the backend. No session is created.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.RegisterResponse "Account created"
// @Failure 400 {object} models.ErrorResponse "Invalid form"
// @Failure 409 {object} models.ErrorResponse "Account already exists"
// @Failure 502 {object} models.ErrorResponse "Backend unreachable or malformed answer"
// @Failure 504 {object} models.ErrorResponse "Backend timed out"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "register", err)
			return
		}

		resp, err := svc.Register(r.Context(), req)
		if err != nil {
			writeError(w, "register", err)
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}

// NewLogoutHandler returns an HTTP handler that ends the session.
// @Summary Log out
// @Description Clear the session and its persisted record
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.MessageResponse "Logged out"
// @Failure 500 {object} models.ErrorResponse "Storage failure"
// @Router /logout [post]
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context()); err != nil {
			writeError(w, "logout", err)
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
	}
}

// NewSessionHandler returns an HTTP handler that reports the session.
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} models.Session "Session snapshot"
// @Router /session [get]
func NewSessionHandler(svc SessionGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Current())
	}
}
