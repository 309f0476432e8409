package facades

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

// The backend contract is loose: several shapes are seen for the same
// endpoint, so decoding accepts the known variants and rejects the rest.

type statusDTO struct {
	Status  json.RawMessage `json:"status"`
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

func (s statusDTO) failed() bool {
	if s.Success != nil && !*s.Success {
		return true
	}
	raw := bytes.TrimSpace(s.Status)
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	var str string
	if json.Unmarshal(raw, &str) == nil {
		switch strings.ToLower(strings.TrimSpace(str)) {
		case "error", "fail", "failed", "failure", "unauthorized":
			return true
		}
		return false
	}
	var b bool
	if json.Unmarshal(raw, &b) == nil {
		return !b
	}
	var n float64
	if json.Unmarshal(raw, &n) == nil {
		return n >= 400
	}
	return false
}

func (s statusDTO) messageOr(def string) string {
	if s.Message != "" {
		return s.Message
	}
	var str string
	if len(s.Error) > 0 && json.Unmarshal(s.Error, &str) == nil && str != "" {
		return str
	}
	return def
}

type userDTO struct {
	ID            models.FlexString `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	AccountNumber models.FlexString `json:"accountNumber"`
	Balance       *models.Money     `json:"balance"`
	Role          string            `json:"role"`
}

// toModel converts the record; fallback is the role used when the backend
// sends none.
func (d userDTO) toModel(fallback models.Role) (models.User, error) {
	role := fallback
	if strings.TrimSpace(d.Role) != "" {
		r, err := models.ParseRole(d.Role)
		if err != nil {
			return models.User{}, fmt.Errorf("role %q: %w", d.Role, err)
		}
		role = r
	}
	return models.User{
		ID:            d.ID.String(),
		Name:          d.Name,
		Email:         d.Email,
		AccountNumber: d.AccountNumber.String(),
		Role:          role,
	}, nil
}

type loginResponseDTO struct {
	statusDTO
	Token string   `json:"token"`
	User  *userDTO `json:"user"`
	userDTO
}

type registerResponseDTO struct {
	statusDTO
	User *userDTO `json:"user"`
	userDTO
}

type accountDetailsDTO struct {
	AccountNumber models.FlexString `json:"accountNumber"`
	AccountType   string            `json:"accountType"`
	Status        string            `json:"status"`
	CreatedAt     string            `json:"createdAt"`
}

type accountRefDTO struct {
	ID            models.FlexString `json:"id"`
	AccountNumber models.FlexString `json:"accountNumber"`
}

func (d *accountRefDTO) toModel() *models.AccountRef {
	if d == nil || (d.ID == "" && d.AccountNumber == "") {
		return nil
	}
	return &models.AccountRef{ID: d.ID.String(), AccountNumber: d.AccountNumber.String()}
}

type transactionDTO struct {
	ID              models.FlexString `json:"id"`
	TransactionID   models.FlexString `json:"transactionId"`
	TransactionType string            `json:"transactionType"`
	Type            string            `json:"type"`
	Amount          *models.Money     `json:"amount"`
	Description     string            `json:"description"`
	Timestamp       string            `json:"timestamp"`
	Date            string            `json:"date"`
	CreatedAt       string            `json:"createdAt"`
	Sender          *accountRefDTO    `json:"sender"`
	Receiver        *accountRefDTO    `json:"receiver"`
}

// toModel converts the record. In strict mode (history listings) kind and
// amount are required; action responses may omit them and get completed by
// the caller.
func (d transactionDTO) toModel(strict bool) (models.Transaction, error) {
	var txn models.Transaction

	txn.ID = d.ID.String()
	if txn.ID == "" {
		txn.ID = d.TransactionID.String()
	}

	kind := d.TransactionType
	if kind == "" {
		kind = d.Type
	}
	switch {
	case kind != "":
		k, ok := models.ParseTransactionKind(kind)
		if !ok {
			return txn, fmt.Errorf("unknown transaction type %q", kind)
		}
		txn.Kind = k
	case strict:
		return txn, errors.New("transaction type missing")
	}

	switch {
	case d.Amount != nil:
		if *d.Amount <= 0 {
			return txn, fmt.Errorf("amount %s is not positive", d.Amount)
		}
		txn.Amount = *d.Amount
	case strict:
		return txn, errors.New("amount missing")
	}

	ts, err := parseTimestamp(firstNonEmpty(d.Timestamp, d.Date, d.CreatedAt))
	if err != nil {
		return txn, err
	}
	txn.Timestamp = ts
	txn.Description = d.Description
	txn.Sender = d.Sender.toModel()
	txn.Receiver = d.Receiver.toModel()
	return txn, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// decodeList accepts a bare JSON array, an object wrapping the array under
// key, or null (empty list).
func decodeList(raw json.RawMessage, key string, out any) error {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		return nil
	case bytes.HasPrefix(trimmed, []byte("[")):
		return json.Unmarshal(trimmed, out)
	case bytes.HasPrefix(trimmed, []byte("{")):
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return err
		}
		inner, ok := wrapper[key]
		if !ok {
			return fmt.Errorf("object has no %q field", key)
		}
		return decodeList(inner, key, out)
	default:
		return errors.New("not a list")
	}
}

func decodeTransactionList(op string, raw json.RawMessage, key string) ([]models.Transaction, error) {
	var dtos []transactionDTO
	if err := decodeList(raw, key, &dtos); err != nil {
		return nil, shapeError(op, "response is not a transaction list", err)
	}
	txns := make([]models.Transaction, 0, len(dtos))
	for _, d := range dtos {
		txn, err := d.toModel(true)
		if err != nil {
			return nil, shapeError(op, "malformed transaction", err)
		}
		txns = append(txns, txn)
	}
	// newest first; undated entries sort after all dated ones, in backend order
	slices.SortStableFunc(txns, func(a, b models.Transaction) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return txns, nil
}
