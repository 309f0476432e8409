package models

// ActionForm holds the draft inputs of the dashboard action forms.
// A field is cleared once its action succeeds.
// swagger:model ActionForm
type ActionForm struct {
	DepositAmount  string `json:"depositAmount"`
	WithdrawAmount string `json:"withdrawAmount"`
	TransferAmount string `json:"transferAmount"`
	ReceiverID     string `json:"receiverId"`
}

// AmountRequest represents the JSON body for deposit and withdraw
// swagger:model AmountRequest
type AmountRequest struct {
	// Amount as typed into the form
	// required: true
	// example: 100.00
	Amount FlexString `json:"amount" swaggertype:"string"`
}

// TransferRequest represents the JSON body for a transfer
// swagger:model TransferRequest
type TransferRequest struct {
	// Receiver account
	// required: true
	// example: 9876543210
	ReceiverID FlexString `json:"receiverId" swaggertype:"string"`

	// Amount as typed into the form
	// required: true
	// example: 250.00
	Amount FlexString `json:"amount" swaggertype:"string"`
}

// ActionResult is the reconciled outcome of a successful action.
type ActionResult struct {
	Transaction Transaction
	// Balance after the optimistic update; nil when the balance was never loaded.
	Balance *Money
	// Discarded is set when the dashboard was left while the call was in
	// flight; the view-model was not touched.
	Discarded bool
}

// ActionResponse represents a successful action
// swagger:model ActionResponse
type ActionResponse struct {
	// Success message
	// example: 1000.00 has been deposited to your account.
	Message string `json:"message"`

	// Balance after the action
	Balance *Money `json:"balance,omitempty" swaggertype:"number" example:"6000.00"`

	// Transaction prepended to the history
	Transaction Transaction `json:"transaction"`
}
