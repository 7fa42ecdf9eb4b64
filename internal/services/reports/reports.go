package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Jidetireni/gym-manager/internal/config"
	"github.com/Jidetireni/gym-manager/internal/dto"
	"github.com/Jidetireni/gym-manager/internal/helpers"
	"github.com/Jidetireni/gym-manager/internal/membership"
	"github.com/Jidetireni/gym-manager/internal/repository"
	svc "github.com/Jidetireni/gym-manager/internal/services"
	"github.com/Jidetireni/gym-manager/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	MaxReportVisits     = 20
	RecentActivityLimit = 10
)

var (
	_ MemberRepository = (*repository.MemberRepository)(nil)
	_ VisitRepository  = (*repository.VisitRepository)(nil)
)

type MemberRepository interface {
	Get(ctx context.Context, filter repository.MemberRepositoryFilter, tx *sqlx.Tx) (*repository.Member, error)
	List(ctx context.Context, filter repository.MemberRepositoryFilter, opts repository.QueryOptions) ([]repository.Member, error)
	Count(ctx context.Context, filter repository.MemberRepositoryFilter) (int, error)
	SumAmountPaid(ctx context.Context, filter repository.MemberRepositoryFilter) (repository.Amount, error)
	ListRegistrations(ctx context.Context, filter repository.MemberRepositoryFilter) ([]repository.PaymentEntry, error)
}

type VisitRepository interface {
	List(ctx context.Context, filter repository.VisitRepositoryFilter, opts repository.QueryOptions) ([]repository.PopulatedVisit, error)
	CountAll(ctx context.Context, filter repository.VisitRepositoryFilter) (int, error)
	SumPayments(ctx context.Context, filter repository.VisitRepositoryFilter) (repository.Amount, error)
	SumByMethod(ctx context.Context, filter repository.VisitRepositoryFilter) ([]repository.MethodTotal, error)
	ListPayments(ctx context.Context, filter repository.VisitRepositoryFilter) ([]repository.PaymentEntry, error)
}

type Validator interface {
	Struct(dst any) error
}

// Report computes every read-only metric from storage on each call.
type Report struct {
	Config           *config.Config
	Validator        Validator
	MemberRepository MemberRepository
	VisitRepository  VisitRepository
	Logger           *logger.Logger
	Now              func() time.Time
}

func New(cfg *config.Config, validator Validator, memberRepo MemberRepository, visitRepo VisitRepository, log *logger.Logger) *Report {
	return &Report{
		Config:           cfg,
		Validator:        validator,
		MemberRepository: memberRepo,
		VisitRepository:  visitRepo,
		Logger:           log,
		Now:              time.Now,
	}
}

// dayWindow is the half-open text range [from, before) covering whole days.
func dayWindow(from, before time.Time) (*string, *string) {
	return lo.ToPtr(helpers.FormatDate(from)), lo.ToPtr(helpers.FormatDate(before))
}

func (r *Report) Dashboard(ctx context.Context) (*dto.DashboardMetrics, error) {
	today := membership.DateOnly(r.Now())
	todayFrom, todayBefore := dayWindow(today, today.AddDate(0, 0, 1))
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthFrom, monthBefore := dayWindow(monthStart, monthStart.AddDate(0, 1, 0))
	active := lo.ToPtr(string(membership.StatusActive))

	total, err := r.MemberRepository.Count(ctx, repository.MemberRepositoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}

	activeCount, err := r.MemberRepository.Count(ctx, repository.MemberRepositoryFilter{Status: active})
	if err != nil {
		return nil, fmt.Errorf("count active members: %w", err)
	}

	expiring, err := r.MemberRepository.Count(ctx, repository.MemberRepositoryFilter{
		Status:      active,
		EndDateFrom: todayFrom,
		EndDateTo:   lo.ToPtr(helpers.FormatDate(today.AddDate(0, 0, membership.WarningDays))),
	})
	if err != nil {
		return nil, fmt.Errorf("count expiring members: %w", err)
	}

	expired, err := r.MemberRepository.Count(ctx, repository.MemberRepositoryFilter{
		Status:        active,
		EndDateBefore: todayFrom,
	})
	if err != nil {
		return nil, fmt.Errorf("count expired members: %w", err)
	}

	todayFilter := repository.VisitRepositoryFilter{VisitedFrom: todayFrom, VisitedBefore: todayBefore}

	todayRevenue, err := r.VisitRepository.SumPayments(ctx, todayFilter)
	if err != nil {
		return nil, fmt.Errorf("sum today's revenue: %w", err)
	}

	fees, err := r.MemberRepository.SumAmountPaid(ctx, repository.MemberRepositoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("sum membership fees: %w", err)
	}

	visitRevenue, err := r.VisitRepository.SumPayments(ctx, repository.VisitRepositoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("sum visit payments: %w", err)
	}

	monthRevenue, err := r.VisitRepository.SumPayments(ctx, repository.VisitRepositoryFilter{
		VisitedFrom:   monthFrom,
		VisitedBefore: monthBefore,
	})
	if err != nil {
		return nil, fmt.Errorf("sum month revenue: %w", err)
	}

	todayVisits, err := r.VisitRepository.CountAll(ctx, todayFilter)
	if err != nil {
		return nil, fmt.Errorf("count today's visits: %w", err)
	}

	windowVisits, err := r.VisitRepository.CountAll(ctx, repository.VisitRepositoryFilter{
		VisitedFrom: lo.ToPtr(helpers.FormatDate(today.AddDate(0, 0, -membership.AverageDailyVisitsWindow))),
	})
	if err != nil {
		return nil, fmt.Errorf("count recent visits: %w", err)
	}

	byMethod, err := r.VisitRepository.SumByMethod(ctx, todayFilter)
	if err != nil {
		return nil, fmt.Errorf("sum today's payments by method: %w", err)
	}

	metrics := &dto.DashboardMetrics{
		TotalMembers:       total,
		ActiveMembers:      activeCount,
		ExpiringThisWeek:   expiring,
		ExpiredMembers:     expired,
		TodayRevenue:       todayRevenue.Decimal,
		TotalRevenue:       fees.Add(visitRevenue.Decimal),
		MonthRevenue:       monthRevenue.Decimal,
		TodayVisits:        todayVisits,
		AverageDailyVisits: membership.AverageDailyVisits(windowVisits),
		RetentionRate:      membership.RetentionRate(activeCount, total),
		TodayByMethod:      methodTotals(byMethod),
	}

	r.Logger.Debug().Int("total_members", total).Int("today_visits", todayVisits).Msg("dashboard computed")

	return metrics, nil
}

// methodTotals always lists the four payment methods, zero filled, followed by
// any other method that took money today.
func methodTotals(rows []repository.MethodTotal) []dto.MethodTotal {
	sums := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		method := lo.CoalesceOrEmpty(row.Method.String, membership.PaymentNone)
		sums[method] = sums[method].Add(row.Amount.Decimal)
	}

	totals := lo.Map(membership.PaymentMethods, func(method string, _ int) dto.MethodTotal {
		return dto.MethodTotal{Method: method, Amount: sums[method]}
	})

	extra := lo.Filter(lo.Keys(sums), func(method string, _ int) bool {
		return !lo.Contains(membership.PaymentMethods, method) && !sums[method].IsZero()
	})
	slices.Sort(extra)
	for _, method := range extra {
		totals = append(totals, dto.MethodTotal{Method: method, Amount: sums[method]})
	}

	return totals
}

// ExpiryAlerts lists active members whose membership ended or ends within the
// warning window, soonest first.
func (r *Report) ExpiryAlerts(ctx context.Context) (*dto.ExpiryAlerts, error) {
	now := r.Now()
	horizon := membership.DateOnly(now).AddDate(0, 0, membership.WarningDays)

	rows, err := r.MemberRepository.List(ctx, repository.MemberRepositoryFilter{
		Status:    lo.ToPtr(string(membership.StatusActive)),
		EndDateTo: lo.ToPtr(helpers.FormatDate(horizon)),
	}, repository.QueryOptions{Sort: lo.ToPtr("end_date:asc")})
	if err != nil {
		return nil, fmt.Errorf("list expiring members: %w", err)
	}

	alerts := &dto.ExpiryAlerts{Rows: []dto.AlertRow{}}
	for _, row := range rows {
		end, err := helpers.ParseDate(row.EndDate.String())
		if err != nil {
			r.Logger.Warn().Int64("member_id", row.ID).Str("end_date", row.EndDate.String()).Msg("skipping member with unreadable end date")
			continue
		}

		tier, daysLeft := membership.ClassifyExpiry(end, now)
		switch tier {
		case membership.ExpiryExpired:
			alerts.Expired++
		case membership.ExpiryUrgent:
			alerts.Urgent++
		case membership.ExpiryWarning:
			alerts.Warning++
		default:
			continue
		}

		alerts.Rows = append(alerts.Rows, dto.AlertRow{
			MemberID: row.ID,
			Name:     row.Name,
			Phone:    row.Phone.String,
			Email:    row.Email.String,
			EndDate:  row.EndDate.String(),
			DaysLeft: daysLeft,
			Tier:     tier,
		})
	}

	return alerts, nil
}

func (r *Report) MemberReport(ctx context.Context, memberID int64) (*dto.MemberReport, error) {
	now := r.Now()

	member, err := r.MemberRepository.Get(ctx, repository.MemberRepositoryFilter{ID: &memberID}, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svc.MemberNotFound(memberID)
		}
		return nil, fmt.Errorf("get member %d: %w", memberID, err)
	}

	visits, err := r.VisitRepository.List(ctx, repository.VisitRepositoryFilter{MemberID: &memberID}, repository.QueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("list visits of member %d: %w", memberID, err)
	}

	additional := decimal.Zero
	withPayment := 0
	for _, visit := range visits {
		additional = additional.Add(visit.PaymentAmount.Decimal)
		if visit.PaymentAmount.IsPositive() {
			withPayment++
		}
	}

	report := &dto.MemberReport{
		Member:             *svc.MemberFromRow(*member, now),
		InitialPayment:     member.AmountPaid.Decimal,
		AdditionalPayments: additional,
		TotalPaid:          member.AmountPaid.Add(additional),
		TotalVisits:        len(visits),
		VisitsWithPayment:  withPayment,
		GeneratedAt:        helpers.FormatTimestamp(now),
		Visits: lo.Map(visits, func(v repository.PopulatedVisit, _ int) dto.Visit {
			return dto.Visit{
				ID:            v.ID,
				MemberID:      v.MemberID,
				MemberName:    v.MemberName,
				VisitDate:     v.VisitDate.String(),
				PaymentAmount: v.PaymentAmount.Decimal,
				PaymentMethod: v.PaymentMethod.String,
				Notes:         v.Notes.String,
			}
		}),
	}

	if registered, err := helpers.ParseTimestamp(member.RegistrationDate.String()); err == nil {
		report.DaysSinceRegistration = membership.DaysBetween(registered, now)
	}

	if end, err := helpers.ParseDate(member.EndDate.String()); err == nil {
		days := membership.DaysBetween(now, end)
		if days >= 0 {
			report.DaysUntilExpiry = &days
		} else {
			report.DaysOverdue = lo.ToPtr(-days)
		}
	}

	return report, nil
}

// PaymentHistory merges visit payments and registration fees dated within
// [DateFrom, DateTo], both days inclusive, newest first.
func (r *Report) PaymentHistory(ctx context.Context, input dto.PaymentHistoryInput) ([]dto.PaymentRow, error) {
	input.DateFrom = strings.TrimSpace(input.DateFrom)
	input.DateTo = strings.TrimSpace(input.DateTo)

	if err := r.Validator.Struct(&input); err != nil {
		return nil, err
	}

	from, err := helpers.ParseDate(input.DateFrom)
	if err != nil {
		return nil, svc.InvalidField("date_from", "date_from must be a date in YYYY-MM-DD format")
	}
	to, err := helpers.ParseDate(input.DateTo)
	if err != nil {
		return nil, svc.InvalidField("date_to", "date_to must be a date in YYYY-MM-DD format")
	}
	if from.After(to) {
		return nil, svc.InvalidField("date_to", "date_to must not be before date_from")
	}

	windowFrom, windowBefore := dayWindow(from, to.AddDate(0, 0, 1))

	visitPayments, err := r.VisitRepository.ListPayments(ctx, repository.VisitRepositoryFilter{
		Paid:          lo.ToPtr(true),
		VisitedFrom:   windowFrom,
		VisitedBefore: windowBefore,
	})
	if err != nil {
		return nil, fmt.Errorf("list visit payments: %w", err)
	}

	registrations, err := r.MemberRepository.ListRegistrations(ctx, repository.MemberRepositoryFilter{
		RegisteredFrom:   windowFrom,
		RegisteredBefore: windowBefore,
	})
	if err != nil {
		return nil, fmt.Errorf("list registration fees: %w", err)
	}

	rows := append(
		mapPayments(visitPayments, dto.PaymentTypeVisit),
		mapPayments(registrations, dto.PaymentTypeMembership)...,
	)
	slices.SortStableFunc(rows, func(a, b dto.PaymentRow) int {
		return strings.Compare(b.Date, a.Date)
	})

	r.Logger.Debug().Str("from", input.DateFrom).Str("to", input.DateTo).Int("rows", len(rows)).Msg("payment history computed")

	return rows, nil
}

func mapPayments(entries []repository.PaymentEntry, paymentType dto.PaymentType) []dto.PaymentRow {
	return lo.Map(entries, func(e repository.PaymentEntry, _ int) dto.PaymentRow {
		return dto.PaymentRow{
			Date:          e.Date.String(),
			MemberName:    e.MemberName,
			Amount:        e.Amount.Decimal,
			PaymentMethod: e.PaymentMethod.String,
			Type:          paymentType,
			Notes:         e.Notes.String,
		}
	})
}

// RecentActivity returns today's visits and registrations, newest first.
func (r *Report) RecentActivity(ctx context.Context) ([]dto.Activity, error) {
	today := membership.DateOnly(r.Now())
	from, before := dayWindow(today, today.AddDate(0, 0, 1))
	opts := repository.QueryOptions{Limit: RecentActivityLimit}

	visits, err := r.VisitRepository.List(ctx, repository.VisitRepositoryFilter{VisitedFrom: from, VisitedBefore: before}, opts)
	if err != nil {
		return nil, fmt.Errorf("list today's visits: %w", err)
	}

	registrations, err := r.MemberRepository.List(ctx, repository.MemberRepositoryFilter{RegisteredFrom: from, RegisteredBefore: before}, opts)
	if err != nil {
		return nil, fmt.Errorf("list today's registrations: %w", err)
	}

	activity := make([]dto.Activity, 0, len(visits)+len(registrations))
	for _, v := range visits {
		activity = append(activity, dto.Activity{
			Type:          dto.ActivityVisit,
			MemberName:    v.MemberName,
			Timestamp:     v.VisitDate.String(),
			Amount:        v.PaymentAmount.Decimal,
			PaymentMethod: v.PaymentMethod.String,
		})
	}
	for _, m := range registrations {
		activity = append(activity, dto.Activity{
			Type:          dto.ActivityRegistration,
			MemberName:    m.Name,
			Timestamp:     m.RegistrationDate.String(),
			Amount:        m.AmountPaid.Decimal,
			PaymentMethod: m.PaymentMethod.String,
		})
	}

	slices.SortStableFunc(activity, func(a, b dto.Activity) int {
		return strings.Compare(b.Timestamp, a.Timestamp)
	})
	if len(activity) > RecentActivityLimit {
		activity = activity[:RecentActivityLimit]
	}

	return activity, nil
}
