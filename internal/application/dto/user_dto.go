package dto

import "time"

// CreateUserRequest alta de usuario; la contraseña temporal la genera el caso de uso.
type CreateUserRequest struct {
	FirstName     string `json:"first_name" validate:"required,max=100"`
	MiddleName    string `json:"middle_name" validate:"omitempty,max=100"`
	LastName      string `json:"last_name" validate:"omitempty,max=100"`
	Email         string `json:"email" validate:"required,email"`
	BusinessUnit  string `json:"business_unit" validate:"omitempty,max=100"`
	AccessLevel   string `json:"access_level" validate:"omitempty,max=50"`
	ContactNumber string `json:"contact_number" validate:"omitempty,max=30"`
	Location      string `json:"location" validate:"omitempty,max=200"`
}

// UpdateUserRequest campos opcionales a modificar.
type UpdateUserRequest struct {
	FirstName     *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	MiddleName    *string `json:"middle_name" validate:"omitempty,max=100"`
	LastName      *string `json:"last_name" validate:"omitempty,max=100"`
	Email         *string `json:"email" validate:"omitempty,email"`
	BusinessUnit  *string `json:"business_unit" validate:"omitempty,max=100"`
	AccessLevel   *string `json:"access_level" validate:"omitempty,max=50"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=30"`
	Location      *string `json:"location" validate:"omitempty,max=200"`
}

// UserResponse salida de un usuario (sin credenciales).
type UserResponse struct {
	ID                      string    `json:"id"`
	CompanyID               string    `json:"company_id"`
	EmployeeNumber          int       `json:"employee_number"`
	FirstName               string    `json:"first_name"`
	MiddleName              string    `json:"middle_name,omitempty"`
	LastName                string    `json:"last_name,omitempty"`
	FullName                string    `json:"full_name"`
	Email                   string    `json:"email"`
	BusinessUnit            string    `json:"business_unit,omitempty"`
	AccessLevel             string    `json:"access_level"`
	ContactNumber           string    `json:"contact_number,omitempty"`
	Location                string    `json:"location,omitempty"`
	IsActive                bool      `json:"is_active"`
	IsFirstLogin            bool      `json:"is_first_login"`
	IsResetPasswordRequired bool      `json:"is_reset_password_required"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// BulkRowError error de una fila de la importación masiva (Row 1-based, cabecera = 1).
type BulkRowError struct {
	Row     int    `json:"row"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message"`
}

// BulkImportResult resultado de la importación; cada fila es independiente.
type BulkImportResult struct {
	CreatedCount int            `json:"created_count"`
	SkippedCount int            `json:"skipped_count"`
	Errors       []BulkRowError `json:"errors"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token y usuario.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	MustReset bool         `json:"must_reset"`
	User      UserResponse `json:"user"`
}

// ResetPasswordRequest cambio de contraseña del usuario autenticado.
type ResetPasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}
