package email

type EmailTemplateType string

const (
	EmailTemplateTypeExpiryReminder EmailTemplateType = "expiry_reminder"
)

type SendEmailInput struct {
	To      string
	Subject string
	Body    string
}

// ExpiryReminderData feeds the expiry_reminder template.
type ExpiryReminderData struct {
	GymName  string
	Name     string
	Tier     string
	EndDate  string
	DaysLeft int
	Expired  bool
}
