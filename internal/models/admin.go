package models

// AdminUser is one row of the admin user listing.
// swagger:model AdminUser
type AdminUser struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	AccountNumber string `json:"accountNumber"`
	Balance       Money  `json:"balance" swaggertype:"number"`
	Role          Role   `json:"role" swaggertype:"string"`
}

// AdminView is the state rendered by the admin dashboard.
// swagger:model AdminView
type AdminView struct {
	Users        []AdminUser         `json:"users"`
	Transactions []Transaction       `json:"transactions"`
	Failures     map[LoadPart]string `json:"failures,omitempty"`
}
