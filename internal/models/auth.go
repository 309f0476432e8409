package models

// LoginRequest represents the JSON body for login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`

	// Portal to log in through: user or admin
	// example: user
	Role string `json:"role,omitempty"`
}

// LoginResult is what a successful login returns from the backend.
type LoginResult struct {
	Token string
	User  User
}

// LoginResponse represents a successful login
// swagger:model LoginResponse
type LoginResponse struct {
	// Session after login
	Session Session `json:"session"`

	// Route the session should open
	// example: /dashboard
	Redirect string `json:"redirect"`
}

// RegisterRequest represents the JSON body for registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Full name
	// required: true
	// example: John Doe
	Name string `json:"name"`

	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`

	// Password confirmation
	// required: true
	// example: secret123
	ConfirmPassword string `json:"confirmPassword"`

	// Account number, generated when empty
	// example: 1234567890
	AccountNumber string `json:"accountNumber"`

	// Starting balance
	// example: 1000
	Balance FlexString `json:"balance" swaggertype:"string"`
}

// Registration is a validated registration form sent to the backend.
type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AccountNumber   string `json:"accountNumber"`
	Balance         Money  `json:"balance"`
}

// RegisterResult is what a successful registration returns from the backend.
type RegisterResult struct {
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
}

// RegisterResponse represents a successful registration
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Success message
	// example: Account created
	Message string `json:"message"`

	// Created user when the backend echoes it
	User *User `json:"user,omitempty"`

	// Account number used for the registration
	// example: 1234567890
	AccountNumber string `json:"accountNumber"`
}
