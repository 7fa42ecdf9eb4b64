package reminders

import (
	"context"
	"errors"
	"testing"

	"github.com/Jidetireni/gym-manager/internal/config"
	"github.com/Jidetireni/gym-manager/internal/dto"
	"github.com/Jidetireni/gym-manager/internal/membership"
	"github.com/Jidetireni/gym-manager/pkg/email"
	"github.com/Jidetireni/gym-manager/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAlerts struct {
	alerts *dto.ExpiryAlerts
	err    error
}

func (s stubAlerts) ExpiryAlerts(context.Context) (*dto.ExpiryAlerts, error) {
	return s.alerts, s.err
}

type recordingSender struct {
	sent    []*email.SendEmailInput
	failFor string
}

func (r *recordingSender) Render(name email.EmailTemplateType, data any) (string, error) {
	d := data.(email.ExpiryReminderData)
	return string(name) + ":" + d.Name + ":" + d.Tier, nil
}

func (r *recordingSender) Send(_ context.Context, input *email.SendEmailInput) error {
	if input.To == r.failFor {
		return errors.New("mailbox unavailable")
	}
	r.sent = append(r.sent, input)
	return nil
}

func TestSend(t *testing.T) {
	alerts := &dto.ExpiryAlerts{Rows: []dto.AlertRow{
		{MemberID: 1, Name: "Bob", Email: "bob@example.com", EndDate: "2024-06-09", DaysLeft: -1, Tier: membership.ExpiryExpired},
		{MemberID: 2, Name: "Alice", EndDate: "2024-06-12", DaysLeft: 2, Tier: membership.ExpiryUrgent},
		{MemberID: 3, Name: "Dan", Email: "dan@example.com", EndDate: "2024-06-17", DaysLeft: 7, Tier: membership.ExpiryWarning},
		{MemberID: 4, Name: "Eve", Email: "eve@example.com", EndDate: "2024-06-16", DaysLeft: 6, Tier: membership.ExpiryWarning},
	}}
	sender := &recordingSender{failFor: "eve@example.com"}
	cfg := &config.Config{Gym: config.GymConfig{Name: "Iron Den"}}

	result, err := New(cfg, stubAlerts{alerts: alerts}, sender, logger.Nop()).Send(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	_, err = uuid.Parse(result.RunID)
	assert.NoError(t, err)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "bob@example.com", sender.sent[0].To)
	assert.Equal(t, "Iron Den: your membership has expired", sender.sent[0].Subject)
	assert.Equal(t, "expiry_reminder:Bob:EXPIRED", sender.sent[0].Body)
	assert.Equal(t, "Iron Den: your membership expires on 2024-06-17", sender.sent[1].Subject)
}

func TestSend_AlertError(t *testing.T) {
	boom := errors.New("db closed")
	_, err := New(&config.Config{}, stubAlerts{err: boom}, &recordingSender{}, logger.Nop()).Send(context.Background())
	assert.ErrorIs(t, err, boom)
}
