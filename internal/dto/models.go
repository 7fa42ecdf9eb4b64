package dto

import (
	"github.com/Jidetireni/gym-manager/internal/membership"
	"github.com/shopspring/decimal"
)

// Amounts arrive as text, the way a form field hands them over; services parse them.

type MemberInput struct {
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone"`
	Email          string `json:"email" validate:"omitempty,email"`
	Address        string `json:"address"`
	MembershipType string `json:"membership_type"`
	StartDate      string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate        string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	AmountPaid     string `json:"amount_paid" validate:"required"`
	PaymentMethod  string `json:"payment_method" validate:"omitempty,oneof=Cash M-Pesa 'Bank Transfer' Card"`
	Status         string `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

type RenewMembershipInput struct {
	MembershipType string `json:"membership_type"`
	Amount         string `json:"amount" validate:"required"`
	PaymentMethod  string `json:"payment_method" validate:"omitempty,oneof=Cash M-Pesa 'Bank Transfer' Card"`
}

type RecordVisitInput struct {
	MemberID      int64  `json:"member_id" validate:"required,gt=0"`
	PaymentAmount string `json:"payment_amount"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=None Cash M-Pesa 'Bank Transfer' Card"`
	Notes         string `json:"notes"`
}

type PaymentHistoryInput struct {
	DateFrom string `json:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo   string `json:"date_to" validate:"required,datetime=2006-01-02"`
}

type MemberStatusFilter string

const (
	MemberFilterAll      MemberStatusFilter = "all"
	MemberFilterActive   MemberStatusFilter = "active"
	MemberFilterExpired  MemberStatusFilter = "expired"
	MemberFilterExpiring MemberStatusFilter = "expiring"
)

type MemberFilter struct {
	Status MemberStatusFilter `json:"status" validate:"omitempty,oneof=all active expired expiring"`
	Search string             `json:"search"`
}

type Member struct {
	ID               int64                  `json:"id"`
	Name             string                 `json:"name"`
	Phone            string                 `json:"phone"`
	Email            string                 `json:"email"`
	Address          string                 `json:"address"`
	MembershipType   string                 `json:"membership_type"`
	StartDate        string                 `json:"start_date"`
	EndDate          string                 `json:"end_date"`
	AmountPaid       decimal.Decimal        `json:"amount_paid"`
	PaymentMethod    string                 `json:"payment_method"`
	Status           string                 `json:"status"`
	RegistrationDate string                 `json:"registration_date"`
	Expiry           membership.ExpiryState `json:"expiry"`
	DaysLeft         *int                   `json:"days_left,omitempty"`
}

type MemberSummary struct {
	ID             int64                  `json:"id"`
	Name           string                 `json:"name"`
	Phone          string                 `json:"phone"`
	Email          string                 `json:"email"`
	MembershipType string                 `json:"membership_type"`
	StartDate      string                 `json:"start_date"`
	EndDate        string                 `json:"end_date"`
	Status         string                 `json:"status"`
	Expiry         membership.ExpiryState `json:"expiry"`
	DaysLeft       *int                   `json:"days_left,omitempty"`
}

type MemberOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Visit struct {
	ID            int64           `json:"id"`
	MemberID      int64           `json:"member_id"`
	MemberName    string          `json:"member_name,omitempty"`
	VisitDate     string          `json:"visit_date"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
}

type MethodTotal struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

type DashboardMetrics struct {
	TotalMembers       int             `json:"total_members"`
	ActiveMembers      int             `json:"active_members"`
	ExpiringThisWeek   int             `json:"expiring_this_week"`
	ExpiredMembers     int             `json:"expired_members"`
	TodayRevenue       decimal.Decimal `json:"today_revenue"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	MonthRevenue       decimal.Decimal `json:"month_revenue"`
	TodayVisits        int             `json:"today_visits"`
	AverageDailyVisits float64         `json:"average_daily_visits"`
	RetentionRate      float64         `json:"retention_rate"`
	TodayByMethod      []MethodTotal   `json:"today_by_method"`
}

type AlertRow struct {
	MemberID int64                  `json:"member_id"`
	Name     string                 `json:"name"`
	Phone    string                 `json:"phone"`
	Email    string                 `json:"email"`
	EndDate  string                 `json:"end_date"`
	DaysLeft int                    `json:"days_left"`
	Tier     membership.ExpiryState `json:"tier"`
}

type ExpiryAlerts struct {
	Rows    []AlertRow `json:"rows"`
	Expired int        `json:"expired"`
	Urgent  int        `json:"urgent"`
	Warning int        `json:"warning"`
}

type PaymentType string

const (
	PaymentTypeVisit      PaymentType = "Visit Payment"
	PaymentTypeMembership PaymentType = "Membership Fee"
)

type PaymentRow struct {
	Date          string          `json:"date"`
	MemberName    string          `json:"member_name"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Type          PaymentType     `json:"type"`
	Notes         string          `json:"notes"`
}

type ActivityType string

const (
	ActivityVisit        ActivityType = "Visit"
	ActivityRegistration ActivityType = "Registration"
)

type Activity struct {
	Type          ActivityType    `json:"type"`
	MemberName    string          `json:"member_name"`
	Timestamp     string          `json:"timestamp"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
}

type MemberReport struct {
	Member                Member          `json:"member"`
	InitialPayment        decimal.Decimal `json:"initial_payment"`
	AdditionalPayments    decimal.Decimal `json:"additional_payments"`
	TotalPaid             decimal.Decimal `json:"total_paid"`
	DaysSinceRegistration int             `json:"days_since_registration"`
	TotalVisits           int             `json:"total_visits"`
	VisitsWithPayment     int             `json:"visits_with_payment"`
	DaysUntilExpiry       *int            `json:"days_until_expiry,omitempty"`
	DaysOverdue           *int            `json:"days_overdue,omitempty"`
	Visits                []Visit         `json:"visits"`
	GeneratedAt           string          `json:"generated_at"`
}
