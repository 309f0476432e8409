package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

const (
	// DefaultTimeout bounds every backend request.
	DefaultTimeout = 5 * time.Second
	// DefaultRegisterPath is the registration endpoint of the backend.
	DefaultRegisterPath = "/users/register"

	maxBodySize = 4 << 20
)

// TokenReader reads the persisted bearer token.
type TokenReader interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// Gateway is the REST facade of the banking backend. Every failure is
// returned as *models.Error with its kind set.
type Gateway struct {
	baseURL      string
	registerPath string
	timeout      time.Duration
	client       *http.Client
	tokens       TokenReader
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *Gateway) { g.client = c }
}

// WithRegisterPath overrides DefaultRegisterPath, e.g. "/auth/register".
func WithRegisterPath(p string) GatewayOption {
	return func(g *Gateway) {
		if p != "" {
			g.registerPath = "/" + strings.TrimLeft(p, "/")
		}
	}
}

// WithTokenReader sets where the bearer token is read from.
func WithTokenReader(r TokenReader) GatewayOption {
	return func(g *Gateway) { g.tokens = r }
}

// NewGateway creates a Gateway for the API rooted at baseURL,
// e.g. http://localhost:8080/api.
func NewGateway(baseURL string, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		registerPath: DefaultRegisterPath,
		timeout:      DefaultTimeout,
		client:       &http.Client{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Login calls auth/login or auth/admin/login depending on the portal role.
func (g *Gateway) Login(ctx context.Context, role models.Role, email, password string) (*models.LoginResult, error) {
	path := "/auth/login"
	if role == models.RoleAdmin {
		path = "/auth/admin/login"
	}

	var resp loginResponseDTO
	body := map[string]string{"email": email, "password": password}
	if err := g.do(ctx, "login", http.MethodPost, path, nil, body, &resp); err != nil {
		return nil, err
	}
	if resp.failed() {
		return nil, &models.Error{Kind: models.KindBackend, Op: "login", Message: resp.messageOr("login failed")}
	}

	user := resp.userDTO
	if resp.User != nil {
		user = *resp.User
	}
	if strings.TrimSpace(resp.Token) == "" {
		return nil, shapeError("login", "response carries no token", nil)
	}
	u, err := user.toModel(role)
	if err != nil {
		return nil, shapeError("login", "malformed user record", err)
	}
	if u.Email == "" {
		u.Email = email
	}
	return &models.LoginResult{Token: resp.Token, User: u}, nil
}

// Register creates a user on the backend.
func (g *Gateway) Register(ctx context.Context, reg models.Registration) (*models.RegisterResult, error) {
	var resp registerResponseDTO
	if err := g.do(ctx, "register", http.MethodPost, g.registerPath, nil, reg, &resp); err != nil {
		return nil, err
	}
	if resp.failed() {
		return nil, &models.Error{Kind: models.KindBackend, Op: "register", Message: resp.messageOr("registration failed")}
	}

	out := &models.RegisterResult{Message: resp.messageOr("Account created")}
	user := resp.userDTO
	if resp.User != nil {
		user = *resp.User
	}
	if user.Email != "" || user.AccountNumber != "" {
		u, err := user.toModel(models.RoleUser)
		if err != nil {
			return nil, shapeError("register", "malformed user record", err)
		}
		out.User = &u
	}
	return out, nil
}

// GetAccountDetails fetches accounts/{accountNumber}.
func (g *Gateway) GetAccountDetails(ctx context.Context, accountNumber string) (*models.AccountDetails, error) {
	var resp accountDetailsDTO
	if err := g.do(ctx, "account details", http.MethodGet, "/accounts/"+url.PathEscape(accountNumber), nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.AccountNumber == "" {
		return nil, shapeError("account details", "response carries no account number", nil)
	}
	return &models.AccountDetails{
		AccountNumber: resp.AccountNumber.String(),
		AccountType:   resp.AccountType,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt,
	}, nil
}

// GetBalance fetches accounts/{accountNumber}/balance. The backend answers
// with a bare number or with {"balance": n}.
func (g *Gateway) GetBalance(ctx context.Context, accountNumber string) (models.Money, error) {
	var raw json.RawMessage
	if err := g.do(ctx, "balance", http.MethodGet, "/accounts/"+url.PathEscape(accountNumber)+"/balance", nil, nil, &raw); err != nil {
		return 0, err
	}

	var bare models.Money
	if err := json.Unmarshal(raw, &bare); err == nil && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return bare, nil
	}
	var wrapped struct {
		Balance *models.Money `json:"balance"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil || wrapped.Balance == nil {
		return 0, shapeError("balance", "response carries no balance", err)
	}
	return *wrapped.Balance, nil
}

// GetTransactions fetches transactions/account/{accountNumber}.
func (g *Gateway) GetTransactions(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	var raw json.RawMessage
	if err := g.do(ctx, "transactions", http.MethodGet, "/transactions/account/"+url.PathEscape(accountNumber), nil, nil, &raw); err != nil {
		return nil, err
	}
	return decodeTransactionList("transactions", raw, "transactions")
}

// Deposit calls transactions/deposit/{accountNumber}. The returned record
// may be incomplete; the caller reconciles it with local data.
func (g *Gateway) Deposit(ctx context.Context, accountNumber string, amount models.Money) (*models.Transaction, error) {
	query := url.Values{"amount": {amount.String()}}
	body := map[string]models.Money{"amount": amount}
	return g.action(ctx, "deposit", "/transactions/deposit/"+url.PathEscape(accountNumber), query, body)
}

// Withdraw calls transactions/withdraw/{accountNumber}.
func (g *Gateway) Withdraw(ctx context.Context, accountNumber string, amount models.Money) (*models.Transaction, error) {
	query := url.Values{"amount": {amount.String()}}
	body := map[string]models.Money{"amount": amount}
	return g.action(ctx, "withdraw", "/transactions/withdraw/"+url.PathEscape(accountNumber), query, body)
}

// Transfer calls transactions/transfer.
func (g *Gateway) Transfer(ctx context.Context, senderID, receiverID string, amount models.Money) (*models.Transaction, error) {
	query := url.Values{
		"senderId":   {senderID},
		"receiverId": {receiverID},
		"amount":     {amount.String()},
	}
	body := struct {
		SenderID   string       `json:"senderId"`
		ReceiverID string       `json:"receiverId"`
		Amount     models.Money `json:"amount"`
	}{senderID, receiverID, amount}
	return g.action(ctx, "transfer", "/transactions/transfer", query, body)
}

func (g *Gateway) action(ctx context.Context, op, path string, query url.Values, body any) (*models.Transaction, error) {
	var raw json.RawMessage
	if err := g.do(ctx, op, http.MethodPost, path, query, body, &raw); err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return nil, shapeError(op, "response is not a transaction object", nil)
	}
	var dto transactionDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, shapeError(op, "response is not a transaction object", err)
	}
	txn, err := dto.toModel(false)
	if err != nil {
		return nil, shapeError(op, "malformed transaction", err)
	}
	return &txn, nil
}

// ListUsers fetches admin/users.
func (g *Gateway) ListUsers(ctx context.Context) ([]models.AdminUser, error) {
	var raw json.RawMessage
	if err := g.do(ctx, "admin users", http.MethodGet, "/admin/users", nil, nil, &raw); err != nil {
		return nil, err
	}
	var dtos []userDTO
	if err := decodeList(raw, "users", &dtos); err != nil {
		return nil, shapeError("admin users", "response is not a user list", err)
	}
	users := make([]models.AdminUser, 0, len(dtos))
	for _, d := range dtos {
		u, err := d.toModel(models.RoleUser)
		if err != nil {
			return nil, shapeError("admin users", "malformed user record", err)
		}
		var balance models.Money
		if d.Balance != nil {
			balance = *d.Balance
		}
		users = append(users, models.AdminUser{
			ID:            u.ID,
			Name:          u.Name,
			Email:         u.Email,
			AccountNumber: u.AccountNumber,
			Balance:       balance,
			Role:          u.Role,
		})
	}
	return users, nil
}

// ListTransactions fetches admin/transactions.
func (g *Gateway) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	var raw json.RawMessage
	if err := g.do(ctx, "admin transactions", http.MethodGet, "/admin/transactions", nil, nil, &raw); err != nil {
		return nil, err
	}
	return decodeTransactionList("admin transactions", raw, "transactions")
}

func (g *Gateway) token(ctx context.Context) string {
	if g.tokens == nil {
		return ""
	}
	token, ok, err := g.tokens.Get(ctx, models.TokenStorageKey)
	if err != nil {
		logger.Log.Warnw("failed to read stored token, sending request without it", "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

func (g *Gateway) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	endpoint := g.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := g.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		e := g.transportError(op, err)
		logger.Log.Errorw("backend request failed", "op", op, "method", method, "path", path, "kind", e.Kind, "error", err)
		return e
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		e := g.transportError(op, err)
		logger.Log.Errorw("failed to read backend response", "op", op, "path", path, "kind", e.Kind, "error", err)
		return e
	}

	logger.Log.Debugw("backend request",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := backendError(op, resp.StatusCode, data)
		logger.Log.Warnw("backend rejected request", "op", op, "path", path, "status", resp.StatusCode, "message", e.Message)
		return e
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return shapeError(op, "empty response body", nil)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return shapeError(op, "malformed response body", err)
	}
	return nil
}

func (g *Gateway) transportError(op string, err error) *models.Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &models.Error{
			Kind:    models.KindTimeout,
			Op:      op,
			Message: "Request timed out. Please check your network connection and try again.",
			Err:     err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &models.Error{Kind: models.KindNetwork, Op: op, Message: "request canceled", Err: err}
	}
	return &models.Error{
		Kind:    models.KindNetwork,
		Op:      op,
		Message: fmt.Sprintf("Unable to connect to the API server at %s. Please ensure the server is running.", g.baseURL),
		Err:     err,
	}
}

func backendError(op string, status int, body []byte) *models.Error {
	var payload statusDTO
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.messageOr("")
	}
	if msg == "" {
		msg = "API request failed: " + http.StatusText(status)
	}
	return &models.Error{Kind: models.KindBackend, Op: op, Status: status, Message: msg}
}

func shapeError(op, msg string, err error) *models.Error {
	logger.Log.Errorw("unexpected backend response", "op", op, "reason", msg, "error", err)
	return &models.Error{Kind: models.KindResponseShape, Op: op, Message: msg, Err: err}
}
