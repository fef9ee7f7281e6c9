package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Row fila de un snapshot: mapa genérico, el esquema de los snapshots históricos no es fijo.
type Row map[string]any

// field campo lógico con sus nombres candidatos en orden de prioridad.
type field struct {
	name string
	keys []string
}

// newField genera las variantes PascalCase, camelCase y snake_case de cada alias.
func newField(aliases ...string) field {
	var keys []string
	seen := map[string]bool{}
	for _, a := range aliases {
		for _, k := range []string{a, lowerFirst(a), snake(a)} {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return field{name: aliases[0], keys: keys}
}

// Tabla de campos lógicos.
var (
	fDepartment = newField("Department", "DepartmentName", "OrganizationalUnit", "OrganizationalKey", "Unit", "Group")

	fHeadcount           = newField("Headcount", "HeadCount", "TotalCount", "Total", "Count")
	fHeadcountPercentage = newField("HeadcountPercentage", "PermanentPercentage")
	fTempPercentage      = newField("TempPercentage", "TemporaryPercentage")
	fTempCount           = newField("TempCount", "TemporaryCount")
	fMaleCount           = newField("MaleCount", "Male", "MaleHeadcount")
	fFemaleCount         = newField("FemaleCount", "Female", "FemaleHeadcount")
	fMalePercentage      = newField("MalePercentage")
	fFemalePercentage    = newField("FemalePercentage")
	fAverageAge          = newField("AverageAge", "AvgAge")
	fAverageTenure       = newField("AverageTenure", "AvgTenure")

	fNewHireTotal   = newField("NewHireTotal", "NewHires", "NewHireCount")
	fNewHireMale    = newField("NewHireMale", "NewHireMaleCount")
	fNewHireFemale  = newField("NewHireFemale", "NewHireFemaleCount")
	fTransferTotal  = newField("TransferTotal", "Transfers", "TransferCount")
	fTransferMale   = newField("TransferMale", "TransferMaleCount")
	fTransferFemale = newField("TransferFemale", "TransferFemaleCount")

	fVoluntaryTotal    = newField("VoluntaryTotalCount", "VoluntaryTotal", "VoluntaryCount")
	fVoluntaryMale     = newField("VoluntaryMaleCount", "VoluntaryMale")
	fVoluntaryFemale   = newField("VoluntaryFemaleCount", "VoluntaryFemale")
	fInvoluntaryTotal  = newField("InvoluntaryTotalCount", "InvoluntaryTotal", "InvoluntaryCount")
	fInvoluntaryMale   = newField("InvoluntaryMaleCount", "InvoluntaryMale")
	fInvoluntaryFemale = newField("InvoluntaryFemaleCount", "InvoluntaryFemale")
)

// lookup devuelve el primer valor no nulo según la prioridad del campo. Si ninguna variante
// coincide exactamente, compara ignorando mayúsculas y guiones bajos contra el nombre canónico.
func (r Row) lookup(f field) (any, bool) {
	for _, k := range f.keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	want := normalizeKey(f.name)
	for k, v := range r {
		if v != nil && normalizeKey(k) == want {
			return v, true
		}
	}
	return nil, false
}

// String valor textual del campo.
func (r Row) String(f field) string {
	v, ok := r.lookup(f)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Decimal valor numérico del campo; acepta json.Number, float, int y texto ("12.5", "12.5%").
func (r Row) Decimal(f field) (decimal.Decimal, bool) {
	v, ok := r.lookup(f)
	if !ok {
		return decimal.Zero, false
	}
	return toDecimal(v)
}

// Int valor entero del campo (trunca decimales); 0 si falta o no es numérico.
func (r Row) Int(f field) int {
	d, ok := r.Decimal(f)
	if !ok {
		return 0
	}
	return int(d.IntPart())
}

// Has indica si el campo existe con un valor numérico.
func (r Row) Has(f field) bool {
	_, ok := r.Decimal(f)
	return ok
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(t), true
	case float32:
		return decimal.NewFromFloat32(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(t), "%")
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		return d, err == nil
	case bool:
		return decimal.Zero, false
	default:
		return decimal.Zero, false
	}
}

// ParseRows interpreta un payload como lista de filas. Vacío = sin filas.
// Los números se conservan como json.Number para no perder precisión.
func ParseRows(payload string) ([]Row, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" || payload == "null" {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewBufferString(payload))
	dec.UseNumber()
	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(raw))
	for _, m := range raw {
		if m != nil {
			rows = append(rows, Row(m))
		}
	}
	return rows, nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))
}
