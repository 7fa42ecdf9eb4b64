package membership

import "time"

type ExpiryState string

const (
	ExpiryActive  ExpiryState = "ACTIVE"
	ExpiryExpired ExpiryState = "EXPIRED"
	ExpiryUrgent  ExpiryState = "URGENT"
	ExpiryWarning ExpiryState = "WARNING"
)

const (
	UrgentDays  = 3
	WarningDays = 7
)

// ClassifyExpiry is the only place the alert thresholds live.
func ClassifyExpiry(endDate, today time.Time) (ExpiryState, int) {
	daysLeft := DaysBetween(today, endDate)
	switch {
	case daysLeft < 0:
		return ExpiryExpired, daysLeft
	case daysLeft <= UrgentDays:
		return ExpiryUrgent, daysLeft
	case daysLeft <= WarningDays:
		return ExpiryWarning, daysLeft
	default:
		return ExpiryActive, daysLeft
	}
}

// Alerting reports whether the state belongs in the expiry alert set.
func (s ExpiryState) Alerting() bool {
	return s == ExpiryExpired || s == ExpiryUrgent || s == ExpiryWarning
}

func RetentionRate(active, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(active) / float64(total) * 100
}

// AverageDailyVisitsWindow is a fixed denominator, not the number of days with visits.
const AverageDailyVisitsWindow = 30

func AverageDailyVisits(visitsInWindow int) float64 {
	return float64(visitsInWindow) / AverageDailyVisitsWindow
}
