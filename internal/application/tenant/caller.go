package tenant

// Caller identidad del usuario autenticado tal como viene en el token.
type Caller struct {
	UserID    string
	CompanyID string // empresa de origen
	Access    string
}
