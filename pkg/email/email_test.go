package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/Jidetireni/gym-manager/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ExpiryReminder(t *testing.T) {
	e, err := New(&config.Config{IsDev: true})
	require.NoError(t, err)

	tests := []struct {
		name string
		data ExpiryReminderData
		want string
	}{
		{
			name: "upcoming",
			data: ExpiryReminderData{GymName: "Iron Den", Name: "Jane", Tier: "WARNING", EndDate: "2024-06-16", DaysLeft: 6},
			want: "expires in <strong>6 days</strong>, on 2024-06-16",
		},
		{
			name: "one day",
			data: ExpiryReminderData{Name: "Jane", Tier: "URGENT", EndDate: "2024-06-11", DaysLeft: 1},
			want: "<strong>1 day</strong>",
		},
		{
			name: "today",
			data: ExpiryReminderData{Name: "Jane", Tier: "URGENT", EndDate: "2024-06-10"},
			want: "expires <strong>today</strong>",
		},
		{
			name: "expired",
			data: ExpiryReminderData{Name: "Jane", Tier: "EXPIRED", EndDate: "2024-06-01", DaysLeft: -9, Expired: true},
			want: "expired on <strong>2024-06-01</strong>",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body, err := e.Render(EmailTemplateTypeExpiryReminder, tc.data)
			require.NoError(t, err)
			assert.Contains(t, body, tc.want)
			assert.Contains(t, body, "Hello Jane,")
		})
	}

	_, err = e.Render("missing", nil)
	assert.Error(t, err)
}

func TestSend_DevWritesMessage(t *testing.T) {
	e, err := New(&config.Config{IsDev: true})
	require.NoError(t, err)

	var out bytes.Buffer
	e.Out = &out

	require.NoError(t, e.Send(context.Background(), &SendEmailInput{
		To:      "jane@example.com",
		Subject: "Membership reminder",
		Body:    "<p>hi</p>",
	}))

	assert.Contains(t, out.String(), "--- Email to be sent to jane@example.com ---")
	assert.Contains(t, out.String(), "Subject: Membership reminder")
}

func TestSend_RequiresSender(t *testing.T) {
	e, err := New(&config.Config{})
	require.NoError(t, err)

	err = e.Send(context.Background(), &SendEmailInput{To: "jane@example.com"})
	assert.ErrorContains(t, err, "EMAIL_FROM")
}
