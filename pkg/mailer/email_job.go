package mailer

import (
	"fmt"

	"github.com/oksasatya/go-credential-service/pkg/mailer/templates"
)

// TemplateWelcome names the post-registration email.
const TemplateWelcome = templates.Welcome

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (+Data) or Subject with Text/HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// NewWelcomeJob builds the job enqueued after a user registers.
func NewWelcomeJob(to, name, appName string) EmailJob {
	return EmailJob{
		To:       to,
		Template: TemplateWelcome,
		Data: map[string]any{
			"Name":    name,
			"Email":   to,
			"AppName": appName,
		},
	}
}

// EnsureRecipient fills Data["Email"] from To when a template expects it.
func EnsureRecipient(job *EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
}

// Resolve renders the job into subject, text and html.
func (j EmailJob) Resolve() (subject, text, html string, err error) {
	if j.Template == "" {
		if j.Subject == "" || (j.Text == "" && j.HTML == "") {
			return "", "", "", fmt.Errorf("email job for %q has neither template nor body", j.To)
		}
		return j.Subject, j.Text, j.HTML, nil
	}
	return templates.Render(j.Template, j.Data)
}
