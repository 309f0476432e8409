package services

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

// Registrar calls the backend registration endpoint.
type Registrar interface {
	Register(ctx context.Context, reg models.Registration) (*models.RegisterResult, error)
}

// RegistrationService validates sign-up forms and submits them. It never
// creates a session.
type RegistrationService struct {
	registrar Registrar
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(registrar Registrar) *RegistrationService {
	return &RegistrationService{registrar: registrar}
}

// Register validates req and creates the account on the backend.
func (s *RegistrationService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	reg, err := ValidateRegistration(req)
	if err != nil {
		return nil, err
	}

	res, err := s.registrar.Register(ctx, reg)
	if err != nil {
		logger.Log.Errorw("registration failed", "email", reg.Email, "error", err)
		return nil, err
	}

	logger.Log.Infow("account registered", "email", reg.Email, "account", reg.AccountNumber)
	return &models.RegisterResponse{
		Message:       res.Message,
		User:          res.User,
		AccountNumber: reg.AccountNumber,
	}, nil
}

// ValidateRegistration checks the form and fills defaults: an empty account
// number gets a random 10-digit one and an empty balance means zero.
func ValidateRegistration(req models.RegisterRequest) (models.Registration, error) {
	const op = "register"

	reg := models.Registration{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AccountNumber:   strings.TrimSpace(req.AccountNumber),
	}

	switch {
	case reg.Name == "":
		return reg, models.NewValidationError(op, "name", models.ErrNameRequired)
	case reg.Email == "":
		return reg, models.NewValidationError(op, "email", models.ErrEmailRequired)
	case !emailPattern.MatchString(reg.Email):
		return reg, models.NewValidationError(op, "email", models.ErrInvalidEmail)
	case reg.Password == "":
		return reg, models.NewValidationError(op, "password", models.ErrPasswordRequired)
	case len(reg.Password) < 6:
		return reg, models.NewValidationError(op, "password", models.ErrPasswordTooShort)
	case reg.Password != reg.ConfirmPassword:
		return reg, models.NewValidationError(op, "confirmPassword", models.ErrPasswordMismatch)
	}

	if reg.AccountNumber == "" {
		reg.AccountNumber = GenerateAccountNumber()
	}

	balance, err := parseStartingBalance(req.Balance.String())
	if err != nil {
		return reg, models.NewValidationError(op, "balance", models.ErrInvalidBalance)
	}
	reg.Balance = balance
	return reg, nil
}

// GenerateAccountNumber returns a random 10-digit account number.
func GenerateAccountNumber() string {
	return strconv.FormatInt(1_000_000_000+rand.Int64N(9_000_000_000), 10)
}

func parseStartingBalance(s string) (models.Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	m, err := models.ParseAmount(s)
	if err == nil {
		return m, nil
	}
	// ParseAmount rejects zero, which is a valid starting balance.
	if strings.Trim(s, "0.,") == "" && strings.ContainsRune(s, '0') {
		return 0, nil
	}
	return 0, err
}
