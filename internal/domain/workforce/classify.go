package workforce

import (
	"strings"

	"golang.org/x/text/cases"
)

// UnknownKey clave para filas sin unidad organizativa.
const UnknownKey = "Unknown"

var folder = cases.Fold()

// OrgKey clave de unión entre datasets: trim + case folding Unicode.
// Se aplica igual en ambos lados antes de comparar departamentos.
type OrgKey string

// NewOrgKey normaliza una unidad organizativa; vacía = UnknownKey.
func NewOrgKey(raw string) OrgKey {
	s := strings.TrimSpace(raw)
	if s == "" {
		s = UnknownKey
	}
	return OrgKey(folder.String(s))
}

// Label devuelve la etiqueta visible para una clave: la primera forma original vista.
func Label(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return UnknownKey
	}
	return s
}

// Matches compara dos textos con la normalización de OrgKey.
func Matches(a, b string) bool {
	return NewOrgKey(a) == NewOrgKey(b)
}

func contains(s, sub string) bool {
	return strings.Contains(folder.String(s), folder.String(sub))
}

func equals(s, want string) bool {
	return folder.String(strings.TrimSpace(s)) == folder.String(want)
}

// IsTemporary estado contiene "temporary".
func IsTemporary(status string) bool {
	return contains(status, "temporary")
}

// IsMale / IsFemale comparación exacta sin mayúsculas.
func IsMale(gender string) bool   { return equals(gender, "male") }
func IsFemale(gender string) bool { return equals(gender, "female") }

// IsNewHire tipo de acción "New Hire" o "Hire Employee".
func IsNewHire(actionType string) bool {
	return equals(actionType, "New Hire") || equals(actionType, "Hire Employee")
}

// IsTransfer tipo de acción que contiene "Promotion" o es "Lateral Move".
func IsTransfer(actionType string) bool {
	return contains(actionType, "Promotion") || equals(actionType, "Lateral Move")
}

// IsVoluntary acción "Voluntary" o motivo con "Resignation" / "Retirement".
// No es excluyente con IsInvoluntary.
func IsVoluntary(action, reason string) bool {
	return equals(action, "Voluntary") || contains(reason, "Resignation") || contains(reason, "Retirement")
}

// IsInvoluntary acción "Involuntary" o motivo con "Termination" / "Retrenchment".
func IsInvoluntary(action, reason string) bool {
	return equals(action, "Involuntary") || contains(reason, "Termination") || contains(reason, "Retrenchment")
}
