package mailer

import (
	"bytes"
	"fmt"
	htmpl "html/template"
)

// User-facing email copy is Portuguese, matching the product's locale.

const confirmEmailSubject = "Confirmação de cadastro - GameDex"

const confirmEmailHTML = `<html>
<body>
    <p>Olá{{if .Name}}, {{.Name}}{{end}},</p>
    <p>Bem-vindo ao GameDex! Clique no link abaixo para confirmar seu cadastro:</p>
    <p><a href="{{.Link}}">Confirmar cadastro</a></p>
    <p>O link expira em {{.ExpiresIn}}.</p>
    <p>Se você não criou esta conta, ignore este e-mail.</p>
    <p>Atenciosamente,<br>Equipe GameDex</p>
</body>
</html>`

const resetPasswordSubject = "Redefinição de senha - GameDex"

const resetPasswordHTML = `<html>
<body>
    <p>Olá,</p>
    <p>Você solicitou a redefinição de sua senha. Clique no link abaixo para redefinir sua senha:</p>
    <p><a href="{{.Link}}">Redefinir senha</a></p>
    <p>O link expira em {{.ExpiresIn}}.</p>
    <p>Se você não solicitou a redefinição de senha, ignore este e-mail.</p>
    <p>Atenciosamente,<br>Equipe GameDex</p>
</body>
</html>`

var templates = map[string]struct {
	subject string
	html    *htmpl.Template
}{
	TemplateConfirmEmail: {
		subject: confirmEmailSubject,
		html:    htmpl.Must(htmpl.New(TemplateConfirmEmail).Parse(confirmEmailHTML)),
	},
	TemplateResetPassword: {
		subject: resetPasswordSubject,
		html:    htmpl.Must(htmpl.New(TemplateResetPassword).Parse(resetPasswordHTML)),
	},
}

// Render produces the subject and HTML body for a queued email job.
func Render(job EmailJob) (subject, html string, err error) {
	t, ok := templates[job.Template]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", job.Template)
	}
	data := struct {
		Name      string
		Link      string
		ExpiresIn string
	}{
		Name:      job.Data["name"],
		Link:      job.Data["link"],
		ExpiresIn: job.Data["expires_in"],
	}
	var buf bytes.Buffer
	if err := t.html.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return t.subject, buf.String(), nil
}
