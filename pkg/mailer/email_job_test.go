package mailer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWelcomeJob(t *testing.T) {
	job := NewWelcomeJob("test@email.com", "test_name", "Recipes")

	assert.Equal(t, "test@email.com", job.To)
	assert.Equal(t, TemplateWelcome, job.Template)
	assert.Equal(t, "test_name", job.Data["Name"])

	b, err := json.Marshal(job)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "subject")
}

func TestEmailJob_ResolveTemplate(t *testing.T) {
	subject, text, html, err := NewWelcomeJob("test@email.com", "test_name", "Recipes").Resolve()
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Recipes", subject)
	assert.Contains(t, text, "test_name")
	assert.NotEmpty(t, html)
}

func TestEmailJob_ResolveRaw(t *testing.T) {
	subject, text, html, err := EmailJob{To: "a@b.com", Subject: "Hi", Text: "body"}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "Hi", subject)
	assert.Equal(t, "body", text)
	assert.Empty(t, html)

	_, _, _, err = EmailJob{To: "a@b.com", Subject: "Hi"}.Resolve()
	assert.Error(t, err)
}

func TestEnsureRecipient(t *testing.T) {
	job := EmailJob{To: "a@b.com", Template: TemplateWelcome}
	EnsureRecipient(&job)
	assert.Equal(t, "a@b.com", job.Data["Email"])

	job = EmailJob{To: "a@b.com", Data: map[string]any{"Email": "keep@b.com"}}
	EnsureRecipient(&job)
	assert.Equal(t, "keep@b.com", job.Data["Email"])
}
