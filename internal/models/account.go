package models

// AccountDetails is the account metadata returned by the backend.
// swagger:model AccountDetails
type AccountDetails struct {
	AccountNumber string `json:"accountNumber" example:"1234567890"`
	AccountType   string `json:"accountType,omitempty" example:"Savings"`
	Status        string `json:"status,omitempty" example:"Active"`
	CreatedAt     string `json:"createdAt,omitempty" example:"2024-01-01"`
}

// LoadPart names one of the independent dashboard fetches.
type LoadPart string

const (
	PartDetails      LoadPart = "details"
	PartBalance      LoadPart = "balance"
	PartTransactions LoadPart = "transactions"
	PartUsers        LoadPart = "users"
)

// LoadResult aggregates the outcome of a dashboard load. Parts that failed
// are listed in Failures; the others carry fresh values.
type LoadResult struct {
	Details      *AccountDetails
	Balance      *Money
	Transactions []Transaction
	Failures     map[LoadPart]error
	// Discarded is set when the view-model was closed or reloaded before the
	// fetches settled; nothing was applied.
	Discarded bool
}

// Partial reports whether at least one part failed.
func (r *LoadResult) Partial() bool {
	return len(r.Failures) > 0
}
