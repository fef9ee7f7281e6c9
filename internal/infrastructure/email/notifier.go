package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/workforce-analytics-api/internal/application/ports"
)

// Config servidor SMTP. Host vacío = solo se registra en el log.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// NewNotifier elige el adaptador según la configuración.
func NewNotifier(cfg Config) ports.Notifier {
	if cfg.Host == "" {
		log.Warn().Msg("SMTP_HOST vacío: los correos solo se registran en el log")
		return &LogNotifier{}
	}
	return NewSMTPNotifier(cfg)
}

// SMTPNotifier envía correos HTML con gomail.
type SMTPNotifier struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

var _ ports.Notifier = (*SMTPNotifier)(nil)

// NewSMTPNotifier construye el notificador SMTP.
func NewSMTPNotifier(cfg Config) *SMTPNotifier {
	return &SMTPNotifier{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

// Send abre una conexión por mensaje; el volumen es bajo (altas y cambios de contraseña).
func (n *SMTPNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.dialer.DialAndSend(n.message(to, subject, htmlBody)); err != nil {
		return fmt.Errorf("smtp: enviar a %s: %w", to, err)
	}
	log.Debug().Str("to", to).Str("subject", subject).Msg("correo enviado")
	return nil
}

func (n *SMTPNotifier) message(to, subject, htmlBody string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.from, n.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return m
}

// LogNotifier registra el correo en lugar de enviarlo (desarrollo).
type LogNotifier struct{}

var _ ports.Notifier = (*LogNotifier)(nil)

func (LogNotifier) Send(_ context.Context, to, subject, _ string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("correo (no enviado: SMTP sin configurar)")
	return nil
}
