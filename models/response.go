package models

type RegisterResponse struct {
	ID       int    `json:"id" example:"1"`
	Fullname string `json:"fullname" example:"John Doe"`
	Username string `json:"username" example:"john_doe"`
	Email    string `json:"email" example:"john@example.com"`
}

type LoginResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type GetTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total" example:"100"`
}

// CreateTransactionResponse returns the new transaction together with the
// bank whose running balance it changed.
type CreateTransactionResponse struct {
	Transaction Transaction `json:"transaction"`
	Bank        Bank        `json:"bank"`
}

// UpdateTransactionResponse carries the one or two banks an amendment
// touched (two when the transaction moved between banks).
type UpdateTransactionResponse struct {
	Transaction Transaction `json:"transaction"`
	Banks       []Bank      `json:"banks"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Transaction deleted successfully"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"error"`
}

type RootResponse struct {
	AppName string `json:"app_name" example:"FLOO API"`
	Version string `json:"version" example:"1.0.0"`
	Status  string `json:"status" example:"running"`
}
