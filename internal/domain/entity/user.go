package entity

import (
	"strings"
	"time"
)

// Niveles de acceso convencionales (el campo es texto libre).
const (
	AccessLevelEmployee  = "employee"
	AccessLevelSuperUser = "superUser"
)

// User pertenece a una sola Company; EmployeeNumber es único dentro de ella.
type User struct {
	ID                      string
	CompanyID               string
	EmployeeNumber          int
	FirstName               string
	MiddleName              string
	LastName                string
	Email                   string
	PasswordHash            string // bcrypt
	BusinessUnit            string
	AccessLevel             string
	ContactNumber           string
	Location                string
	IsActive                bool
	IsFirstLogin            bool
	IsResetPasswordRequired bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsSuperUser compara el nivel de acceso sin distinguir mayúsculas.
func (u *User) IsSuperUser() bool {
	return IsSuperUserAccess(u.AccessLevel)
}

// FullName nombre para listados.
func (u *User) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.FirstName, u.MiddleName, u.LastName} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// IsSuperUserAccess indica si un nivel de acceso textual es "superUser".
func IsSuperUserAccess(level string) bool {
	return strings.EqualFold(strings.TrimSpace(level), AccessLevelSuperUser)
}
