// Package service holds supporting services used by the handlers:
// outbound mail, upload storage and background cleanup
package service

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

type Mail struct {
	To       string
	Subject  string
	Template string
	Context  map[string]string
}

// MailSender is the outbound mail collaborator. Tests swap in a fake
type MailSender interface {
	Send(m *Mail) error
}

var mailTemplates = map[string]*template.Template{
	"reset": template.Must(template.New("reset").Parse(
		`<p>Parece que olvidaste tu contraseña. Usa el siguiente enlace para crear una nueva:</p>
<p><a href="{{.reset_url}}">Reestablecer contraseña</a></p>
<p>Este enlace expira en 1 hora.</p>`)),
}

type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewMailer() *Mailer {
	return &Mailer{
		host: viper.GetString("mail.host"),
		port: viper.GetInt("mail.port"),
		user: viper.GetString("mail.user"),
		pass: viper.GetString("mail.password"),
		from: viper.GetString("mail.sender_address"),
	}
}

func (m *Mailer) Send(msg *Mail) error {
	tmpl, ok := mailTemplates[msg.Template]
	if !ok {
		return fmt.Errorf("unknown mail template %q", msg.Template)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, msg.Context); err != nil {
		return fmt.Errorf("failed to render mail template, %w", err)
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", body.String())

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)

	return d.DialAndSend(gm)
}
