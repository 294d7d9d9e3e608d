package email

import (
	"testing"

	"eventmanagement/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_RegistrationConfirmation(t *testing.T) {
	renderer := NewTemplateRenderer()

	data := &domain.RegistrationConfirmationEmailData{
		Email:      "alice@example.com",
		Username:   "alice",
		EventTitle: "GopherCon",
		EventDate:  "May 20, 2026 18:00",
		Location:   "Berlin",
	}

	subject, htmlBody, textBody, err := renderer.Render("registration_confirmation", data)
	require.NoError(t, err)
	assert.NotEmpty(t, subject)
	assert.Contains(t, subject, "GopherCon")
	assert.Contains(t, htmlBody, "alice")
	assert.Contains(t, htmlBody, "Berlin")
	assert.Contains(t, textBody, "GopherCon")
	assert.Contains(t, textBody, "May 20, 2026 18:00")
}

func TestTemplateRenderer_unknownTemplate(t *testing.T) {
	renderer := NewTemplateRenderer()
	_, _, _, err := renderer.Render("no_such_template", nil)
	require.Error(t, err)
}
