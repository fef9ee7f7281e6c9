package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta con solo un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// TargetQuery empresa destino opcional; acepta subCompanyId y sub_company_id.
type TargetQuery struct {
	SubCompanyID      string `query:"subCompanyId"`
	SubCompanyIDSnake string `query:"sub_company_id"`
}

// Requested devuelve el id solicitado, vacío si no se indicó.
func (q TargetQuery) Requested() string {
	if q.SubCompanyID != "" {
		return q.SubCompanyID
	}
	return q.SubCompanyIDSnake
}
