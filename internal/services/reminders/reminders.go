package reminders

import (
	"context"
	"fmt"

	"github.com/Jidetireni/gym-manager/internal/config"
	"github.com/Jidetireni/gym-manager/internal/dto"
	"github.com/Jidetireni/gym-manager/internal/membership"
	"github.com/Jidetireni/gym-manager/pkg/email"
	"github.com/Jidetireni/gym-manager/pkg/logger"
	"github.com/google/uuid"
)

var (
	_ Sender = (*email.Email)(nil)
)

type AlertSource interface {
	ExpiryAlerts(ctx context.Context) (*dto.ExpiryAlerts, error)
}

type Sender interface {
	Render(name email.EmailTemplateType, data any) (string, error)
	Send(ctx context.Context, input *email.SendEmailInput) error
}

type Result struct {
	RunID   string `json:"run_id"`
	Sent    int    `json:"sent"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

type Reminder struct {
	Config *config.Config
	Alerts AlertSource
	Sender Sender
	Logger *logger.Logger
}

func New(cfg *config.Config, alerts AlertSource, sender Sender, log *logger.Logger) *Reminder {
	return &Reminder{
		Config: cfg,
		Alerts: alerts,
		Sender: sender,
		Logger: log,
	}
}

// Send mails every member in the expiry alert set that has an e-mail address.
// A failed delivery is logged and counted; it does not stop the run.
func (r *Reminder) Send(ctx context.Context) (*Result, error) {
	alerts, err := r.Alerts.ExpiryAlerts(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	log := r.Logger.With().Str("run_id", result.RunID).Logger()

	for _, row := range alerts.Rows {
		if row.Email == "" {
			result.Skipped++
			log.Debug().Int64("member_id", row.MemberID).Msg("no email address, reminder skipped")
			continue
		}

		body, err := r.Sender.Render(email.EmailTemplateTypeExpiryReminder, email.ExpiryReminderData{
			GymName:  r.Config.Gym.Name,
			Name:     row.Name,
			Tier:     string(row.Tier),
			EndDate:  row.EndDate,
			DaysLeft: row.DaysLeft,
			Expired:  row.Tier == membership.ExpiryExpired,
		})
		if err != nil {
			return result, fmt.Errorf("render reminder: %w", err)
		}

		err = r.Sender.Send(ctx, &email.SendEmailInput{
			To:      row.Email,
			Subject: subject(r.Config.Gym.Name, row),
			Body:    body,
		})
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failed++
			log.Error().Err(err).Int64("member_id", row.MemberID).Msg("reminder not delivered")
			continue
		}

		result.Sent++
		log.Info().Int64("member_id", row.MemberID).Str("tier", string(row.Tier)).Msg("reminder sent")
	}

	log.Info().Int("sent", result.Sent).Int("skipped", result.Skipped).Int("failed", result.Failed).Msg("reminder run finished")

	return result, nil
}

func subject(gymName string, row dto.AlertRow) string {
	if row.Tier == membership.ExpiryExpired {
		return fmt.Sprintf("%s: your membership has expired", gymName)
	}
	return fmt.Sprintf("%s: your membership expires on %s", gymName, row.EndDate)
}
