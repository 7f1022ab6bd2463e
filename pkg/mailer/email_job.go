package mailer

// Template names understood by the email worker.
const (
	TemplateConfirmEmail  = "confirm_email"
	TemplateResetPassword = "reset_password"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Template selects one of the templates above; Data feeds its placeholders.
type EmailJob struct {
	To       string            `json:"to"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data,omitempty"`
}
