// Package membership holds the date and classification rules shared by every
// part of the gym manager. Nothing here touches storage.
package membership

import "time"

type Type string

const (
	TypeDaily      Type = "Daily"
	TypeMonthly    Type = "Monthly"
	TypeQuarterly  Type = "Quarterly"
	TypeHalfYearly Type = "Half-yearly"
	TypeYearly     Type = "Yearly"
)

var Types = []Type{TypeDaily, TypeMonthly, TypeQuarterly, TypeHalfYearly, TypeYearly}

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

const (
	PaymentCash         = "Cash"
	PaymentMPesa        = "M-Pesa"
	PaymentBankTransfer = "Bank Transfer"
	PaymentCard         = "Card"
	PaymentNone         = "None"
)

// PaymentMethods are the methods accepted for fees and renewals.
var PaymentMethods = []string{PaymentCash, PaymentMPesa, PaymentBankTransfer, PaymentCard}

// EndDate returns start plus the duration of t. Unknown types last one month.
func EndDate(start time.Time, t Type) time.Time {
	start = DateOnly(start)
	switch t {
	case TypeDaily:
		return start.AddDate(0, 0, 1)
	case TypeMonthly:
		return addMonths(start, 1)
	case TypeQuarterly:
		return addMonths(start, 3)
	case TypeHalfYearly:
		return addMonths(start, 6)
	case TypeYearly:
		return addMonths(start, 12)
	default:
		return addMonths(start, 1)
	}
}

// RenewalEndDate extends from whichever is later, today or the current end date.
// An unset current end date renews from today.
func RenewalEndDate(currentEnd time.Time, today time.Time, t Type) time.Time {
	anchor := DateOnly(today)
	if !currentEnd.IsZero() && DateOnly(currentEnd).After(anchor) {
		anchor = DateOnly(currentEnd)
	}
	return EndDate(anchor, t)
}

// addMonths clamps to the last day of the target month, so Jan 31 + 1 month is
// Feb 28 (or 29), never Mar 2.
func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// DateOnly drops the clock and location, keeping the calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween is the calendar-day difference to - from.
func DaysBetween(from, to time.Time) int {
	return int((DateOnly(to).Unix() - DateOnly(from).Unix()) / 86400)
}
