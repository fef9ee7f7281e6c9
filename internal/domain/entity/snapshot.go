package entity

import "time"

// AnalysisSnapshot captura de un período (year, month). Los tres payloads son JSON opaco y opcional.
// Se crea al guardar y nunca se actualiza.
type AnalysisSnapshot struct {
	ID            string
	Year          int
	Month         int
	HeadcountJSON string
	NHTJSON       string
	TermsJSON     string
	IsFinal       bool
	CreatedAt     time.Time
}
