package members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Jidetireni/gym-manager/internal/dto"
	"github.com/Jidetireni/gym-manager/internal/helpers"
	"github.com/Jidetireni/gym-manager/internal/membership"
	"github.com/Jidetireni/gym-manager/internal/repository"
	svc "github.com/Jidetireni/gym-manager/internal/services"
	"github.com/Jidetireni/gym-manager/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
)

var (
	_ MemberRepository = (*repository.MemberRepository)(nil)
	_ VisitRepository  = (*repository.VisitRepository)(nil)
)

type MemberRepository interface {
	Get(ctx context.Context, filter repository.MemberRepositoryFilter, tx *sqlx.Tx) (*repository.Member, error)
	List(ctx context.Context, filter repository.MemberRepositoryFilter, opts repository.QueryOptions) ([]repository.Member, error)
	Exists(ctx context.Context, filter repository.MemberRepositoryFilter) (bool, error)
	Create(ctx context.Context, member *repository.Member, tx *sqlx.Tx) (*repository.Member, error)
	Update(ctx context.Context, member *repository.Member, tx *sqlx.Tx) (*repository.Member, error)
	Delete(ctx context.Context, id int64, tx *sqlx.Tx) (int64, error)
}

type VisitRepository interface {
	Create(ctx context.Context, visit *repository.Visit, tx *sqlx.Tx) (*repository.Visit, error)
	DeleteByMember(ctx context.Context, memberID int64, tx *sqlx.Tx) (int64, error)
}

type Validator interface {
	Struct(dst any) error
}

type Member struct {
	DB               *sqlx.DB
	Validator        Validator
	MemberRepository MemberRepository
	VisitRepository  VisitRepository
	Logger           *logger.Logger
	Now              func() time.Time
}

func New(db *sqlx.DB, validator Validator, memberRepo MemberRepository, visitRepo VisitRepository, log *logger.Logger) *Member {
	return &Member{
		DB:               db,
		Validator:        validator,
		MemberRepository: memberRepo,
		VisitRepository:  visitRepo,
		Logger:           log,
		Now:              time.Now,
	}
}

func (m *Member) Create(ctx context.Context, input dto.MemberInput) (*dto.Member, error) {
	now := m.Now()

	row, err := m.buildMember(input, now)
	if err != nil {
		return nil, err
	}
	row.RegistrationDate = repository.DateText(helpers.FormatTimestamp(now))

	member, err := m.MemberRepository.Create(ctx, row, nil)
	if err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}

	m.Logger.Info().Int64("member_id", member.ID).Str("membership_type", member.MembershipType.String).Msg("member registered")

	return svc.MemberFromRow(*member, now), nil
}

// Update overwrites every mutable field of the member. The end date is
// recomputed from the start date unless one is given explicitly.
func (m *Member) Update(ctx context.Context, id int64, input dto.MemberInput) (*dto.Member, error) {
	now := m.Now()

	existing, err := m.get(ctx, id, nil)
	if err != nil {
		return nil, err
	}

	row, err := m.buildMember(input, now)
	if err != nil {
		return nil, err
	}
	row.ID = existing.ID
	row.RegistrationDate = existing.RegistrationDate

	member, err := m.MemberRepository.Update(ctx, row, nil)
	if err != nil {
		return nil, fmt.Errorf("update member %d: %w", id, err)
	}

	m.Logger.Info().Int64("member_id", member.ID).Msg("member updated")

	return svc.MemberFromRow(*member, now), nil
}

// Delete removes the member together with all of their visits.
func (m *Member) Delete(ctx context.Context, id int64) error {
	exists, err := m.MemberRepository.Exists(ctx, repository.MemberRepositoryFilter{ID: &id})
	if err != nil {
		return err
	}
	if !exists {
		return svc.MemberNotFound(id)
	}

	tx, err := m.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	visits, err := m.VisitRepository.DeleteByMember(ctx, id, tx)
	if err != nil {
		return err
	}

	if _, err := m.MemberRepository.Delete(ctx, id, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete member %d: %w", id, err)
	}

	m.Logger.Info().Int64("member_id", id).Int64("visits_deleted", visits).Msg("member deleted")
	return nil
}

// Renew extends the membership from today or the current end date, whichever
// is later, and records the payment as a visit.
func (m *Member) Renew(ctx context.Context, id int64, input dto.RenewMembershipInput) (*dto.Member, error) {
	input.MembershipType = strings.TrimSpace(input.MembershipType)
	input.Amount = strings.TrimSpace(input.Amount)
	input.PaymentMethod = strings.TrimSpace(input.PaymentMethod)

	if err := m.Validator.Struct(&input); err != nil {
		return nil, err
	}

	amount, err := helpers.ParseAmount(input.Amount)
	if err != nil {
		return nil, svc.InvalidField("amount", "amount must be a valid number")
	}
	if !amount.IsPositive() {
		return nil, svc.InvalidField("amount", "amount must be greater than zero")
	}

	now := m.Now()

	tx, err := m.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	member, err := m.get(ctx, id, tx)
	if err != nil {
		return nil, err
	}

	membershipType := membership.Type(lo.CoalesceOrEmpty(input.MembershipType, member.MembershipType.String, string(membership.TypeMonthly)))
	method := lo.CoalesceOrEmpty(input.PaymentMethod, membership.PaymentCash)

	currentEnd, _ := helpers.ParseDate(member.EndDate.String())
	newEnd := membership.RenewalEndDate(currentEnd, now, membershipType)

	member.MembershipType = repository.NullIfEmpty(string(membershipType))
	member.EndDate = repository.DateText(helpers.FormatDate(newEnd))
	member.Status = repository.NullIfEmpty(string(membership.StatusActive))

	updated, err := m.MemberRepository.Update(ctx, member, tx)
	if err != nil {
		return nil, fmt.Errorf("renew member %d: %w", id, err)
	}

	visit, err := m.VisitRepository.Create(ctx, &repository.Visit{
		MemberID:      id,
		VisitDate:     repository.DateText(helpers.FormatTimestamp(now)),
		PaymentAmount: repository.NewAmount(amount),
		PaymentMethod: repository.NullIfEmpty(method),
		Notes:         repository.NullIfEmpty(fmt.Sprintf("Membership renewal - %s", membershipType)),
	}, tx)
	if err != nil {
		return nil, fmt.Errorf("record renewal payment for member %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	m.Logger.Info().
		Int64("member_id", id).
		Int64("visit_id", visit.ID).
		Str("end_date", updated.EndDate.String()).
		Msg("membership renewed")

	return svc.MemberFromRow(*updated, now), nil
}

func (m *Member) Get(ctx context.Context, id int64) (*dto.Member, error) {
	member, err := m.get(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	return svc.MemberFromRow(*member, m.Now()), nil
}

func (m *Member) List(ctx context.Context, filter dto.MemberFilter) ([]dto.MemberSummary, error) {
	if err := m.Validator.Struct(&filter); err != nil {
		return nil, err
	}

	now := m.Now()
	today := membership.DateOnly(now)
	repoFilter := repository.MemberRepositoryFilter{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		repoFilter.Search = &search
	}

	active := string(membership.StatusActive)
	switch filter.Status {
	case dto.MemberFilterActive:
		repoFilter.Status = &active
	case dto.MemberFilterExpired:
		repoFilter.Status = &active
		repoFilter.EndDateBefore = lo.ToPtr(helpers.FormatDate(today))
	case dto.MemberFilterExpiring:
		repoFilter.Status = &active
		repoFilter.EndDateFrom = lo.ToPtr(helpers.FormatDate(today))
		repoFilter.EndDateTo = lo.ToPtr(helpers.FormatDate(today.AddDate(0, 0, membership.WarningDays)))
	}

	rows, err := m.MemberRepository.List(ctx, repoFilter, repository.QueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	m.Logger.Debug().Str("status", string(filter.Status)).Int("count", len(rows)).Msg("members listed")

	return lo.Map(rows, func(row repository.Member, _ int) dto.MemberSummary {
		member := svc.MemberFromRow(row, now)
		return dto.MemberSummary{
			ID:             member.ID,
			Name:           member.Name,
			Phone:          member.Phone,
			Email:          member.Email,
			MembershipType: member.MembershipType,
			StartDate:      member.StartDate,
			EndDate:        member.EndDate,
			Status:         member.Status,
			Expiry:         member.Expiry,
			DaysLeft:       member.DaysLeft,
		}
	}), nil
}

// Options lists active members for pickers, ordered by name.
func (m *Member) Options(ctx context.Context) ([]dto.MemberOption, error) {
	rows, err := m.MemberRepository.List(ctx, repository.MemberRepositoryFilter{
		Status: lo.ToPtr(string(membership.StatusActive)),
	}, repository.QueryOptions{Sort: lo.ToPtr("name:asc")})
	if err != nil {
		return nil, fmt.Errorf("list member options: %w", err)
	}

	return lo.Map(rows, func(row repository.Member, _ int) dto.MemberOption {
		return dto.MemberOption{ID: row.ID, Name: row.Name}
	}), nil
}

func (m *Member) get(ctx context.Context, id int64, tx *sqlx.Tx) (*repository.Member, error) {
	member, err := m.MemberRepository.Get(ctx, repository.MemberRepositoryFilter{ID: &id}, tx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svc.MemberNotFound(id)
		}
		return nil, fmt.Errorf("get member %d: %w", id, err)
	}
	return member, nil
}

// buildMember validates input and turns it into a row with every mutable field set.
func (m *Member) buildMember(input dto.MemberInput, now time.Time) (*repository.Member, error) {
	input = normalize(input)
	if err := m.Validator.Struct(&input); err != nil {
		return nil, err
	}

	amount, err := helpers.ParseAmount(input.AmountPaid)
	if err != nil {
		return nil, svc.InvalidField("amount_paid", "amount_paid must be a valid number")
	}

	membershipType := membership.Type(lo.CoalesceOrEmpty(input.MembershipType, string(membership.TypeMonthly)))

	start := membership.DateOnly(now)
	if input.StartDate != "" {
		start, err = helpers.ParseDate(input.StartDate)
		if err != nil {
			return nil, svc.InvalidField("start_date", "start_date must be a date in YYYY-MM-DD format")
		}
	}

	end := membership.EndDate(start, membershipType)
	if input.EndDate != "" {
		end, err = helpers.ParseDate(input.EndDate)
		if err != nil {
			return nil, svc.InvalidField("end_date", "end_date must be a date in YYYY-MM-DD format")
		}
		if end.Before(start) {
			return nil, svc.InvalidField("end_date", "end_date must not be before start_date")
		}
	}

	return &repository.Member{
		Name:           input.Name,
		Phone:          repository.NullIfEmpty(input.Phone),
		Email:          repository.NullIfEmpty(input.Email),
		Address:        repository.NullIfEmpty(input.Address),
		MembershipType: repository.NullIfEmpty(string(membershipType)),
		StartDate:      repository.DateText(helpers.FormatDate(start)),
		EndDate:        repository.DateText(helpers.FormatDate(end)),
		AmountPaid:     repository.NewAmount(amount),
		PaymentMethod:  repository.NullIfEmpty(lo.CoalesceOrEmpty(input.PaymentMethod, membership.PaymentCash)),
		Status:         repository.NullIfEmpty(lo.CoalesceOrEmpty(input.Status, string(membership.StatusActive))),
	}, nil
}

func normalize(input dto.MemberInput) dto.MemberInput {
	return dto.MemberInput{
		Name:           strings.TrimSpace(input.Name),
		Phone:          strings.TrimSpace(input.Phone),
		Email:          strings.TrimSpace(input.Email),
		Address:        strings.TrimSpace(input.Address),
		MembershipType: strings.TrimSpace(input.MembershipType),
		StartDate:      strings.TrimSpace(input.StartDate),
		EndDate:        strings.TrimSpace(input.EndDate),
		AmountPaid:     strings.TrimSpace(input.AmountPaid),
		PaymentMethod:  strings.TrimSpace(input.PaymentMethod),
		Status:         strings.TrimSpace(input.Status),
	}
}
