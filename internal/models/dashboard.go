package models

// TransactionView is a transaction with the sign applied for the viewer.
type TransactionView struct {
	Transaction
	SignedAmount Money `json:"signedAmount" swaggertype:"number" example:"-200.00"`
}

// DashboardView is the state rendered by the user dashboard.
// swagger:model DashboardView
type DashboardView struct {
	User         *User             `json:"user,omitempty"`
	Details      *AccountDetails   `json:"details,omitempty"`
	Balance      *Money            `json:"balance,omitempty" swaggertype:"number" example:"5000.00"`
	Transactions []TransactionView `json:"transactions"`
	Form         ActionForm        `json:"form"`
	Busy         bool              `json:"busy"`
	// Failures maps a failed part to its error message.
	Failures map[LoadPart]string `json:"failures,omitempty"`
}
