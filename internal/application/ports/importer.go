package ports

import (
	"io"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
)

// WorkforceImporter adaptador de importación: convierte una hoja de cálculo en filas tipadas
// con un mapeo fijo de columnas. El caso de uso no interpreta celdas.
type WorkforceImporter interface {
	ReadHeadcount(r io.Reader) ([]*entity.HeadcountRow, error)
	ReadNHT(r io.Reader) ([]*entity.NHTRow, error)
	ReadTerms(r io.Reader) ([]*entity.TermsRow, error)
	ReadEmployees(r io.Reader) ([]*entity.EmployeeRecord, error)
	// ReadUserSheet devuelve la primera hoja como filas de texto (cabecera incluida).
	ReadUserSheet(r io.Reader) ([][]string, error)
}
