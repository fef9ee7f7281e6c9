// Package mail arma los correos transaccionales y los entrega sin propagar fallos.
package mail

import (
	"bytes"
	"context"
	"html/template"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/workforce-analytics-api/internal/application/ports"
)

// Message correo listo para enviar.
type Message struct {
	To      string
	Subject string
	HTML    string
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<p>Hi {{.Name}},</p>
<p>An account has been created for you at <strong>{{.Company}}</strong>.</p>
<p>Email: {{.Email}}<br>Temporary password: <code>{{.Password}}</code></p>
<p>You will be asked to change it on your first sign in: <a href="{{.SigninURL}}">{{.SigninURL}}</a></p>`))

var passwordChangedTmpl = template.Must(template.New("password").Parse(`<p>Hi {{.Name}},</p>
<p>Your password was changed. If this was not you, contact your administrator.</p>
<p><a href="{{.SigninURL}}">{{.SigninURL}}</a></p>`))

// Welcome correo de bienvenida con la contraseña temporal.
func Welcome(to, name, company, tempPassword, signinURL string) (Message, error) {
	var buf bytes.Buffer
	err := welcomeTmpl.Execute(&buf, map[string]string{
		"Name": name, "Company": company, "Email": to, "Password": tempPassword, "SigninURL": signinURL,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Welcome to " + company, HTML: buf.String()}, nil
}

// PasswordChanged aviso de cambio de contraseña.
func PasswordChanged(to, name, signinURL string) (Message, error) {
	var buf bytes.Buffer
	if err := passwordChangedTmpl.Execute(&buf, map[string]string{"Name": name, "SigninURL": signinURL}); err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Your password was changed", HTML: buf.String()}, nil
}

// Deliver envía el mensaje; un error solo se registra.
func Deliver(ctx context.Context, n ports.Notifier, op string, msg Message, buildErr error) {
	if buildErr == nil && n != nil {
		buildErr = n.Send(ctx, msg.To, msg.Subject, msg.HTML)
	}
	if buildErr != nil {
		log.Warn().Err(buildErr).Str("op", op).Str("to", msg.To).Msg("notificación no enviada")
	}
}
