package ports

import "context"

// Notifier define el puerto de salida para el envío de correos.
// Los casos de uso registran y descartan sus errores: una notificación fallida nunca
// hace fallar la operación que la disparó.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
