package visits

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
	"github.com/shopspring/decimal"
)

const DefaultRecentLimit = 100

var (
	_ VisitRepository  = (*repository.VisitRepository)(nil)
	_ MemberRepository = (*repository.MemberRepository)(nil)
)

type VisitRepository interface {
	Get(ctx context.Context, filter repository.VisitRepositoryFilter) (*repository.PopulatedVisit, error)
	List(ctx context.Context, filter repository.VisitRepositoryFilter, opts repository.QueryOptions) ([]repository.PopulatedVisit, error)
	Create(ctx context.Context, visit *repository.Visit, tx *sqlx.Tx) (*repository.Visit, error)
	Delete(ctx context.Context, id int64, tx *sqlx.Tx) (int64, error)
}

type MemberRepository interface {
	Exists(ctx context.Context, filter repository.MemberRepositoryFilter) (bool, error)
}

type Validator interface {
	Struct(dst any) error
}

type Visit struct {
	Validator        Validator
	VisitRepository  VisitRepository
	MemberRepository MemberRepository
	Logger           *logger.Logger
	Now              func() time.Time
}

func New(validator Validator, visitRepo VisitRepository, memberRepo MemberRepository, log *logger.Logger) *Visit {
	return &Visit{
		Validator:        validator,
		VisitRepository:  visitRepo,
		MemberRepository: memberRepo,
		Logger:           log,
		Now:              time.Now,
	}
}

// RecordVisit stores an attendance, optionally carrying a payment. Nothing is
// written unless the input is valid and the member exists.
func (v *Visit) RecordVisit(ctx context.Context, input dto.RecordVisitInput) (*dto.Visit, error) {
	input.PaymentAmount = strings.TrimSpace(input.PaymentAmount)
	input.PaymentMethod = strings.TrimSpace(input.PaymentMethod)
	input.Notes = strings.TrimSpace(input.Notes)

	if err := v.Validator.Struct(&input); err != nil {
		return nil, err
	}

	amount := decimal.Zero
	if input.PaymentAmount != "" {
		parsed, err := helpers.ParseAmount(input.PaymentAmount)
		if err != nil {
			return nil, svc.InvalidField("payment_amount", "payment_amount must be a valid number")
		}
		amount = parsed
	}

	exists, err := v.MemberRepository.Exists(ctx, repository.MemberRepositoryFilter{ID: &input.MemberID})
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, svc.MemberNotFound(input.MemberID)
	}

	visit, err := v.VisitRepository.Create(ctx, &repository.Visit{
		MemberID:      input.MemberID,
		VisitDate:     repository.DateText(helpers.FormatTimestamp(v.Now())),
		PaymentAmount: repository.NewAmount(amount),
		PaymentMethod: repository.NullIfEmpty(lo.CoalesceOrEmpty(input.PaymentMethod, membership.PaymentNone)),
		Notes:         repository.NullIfEmpty(input.Notes),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("record visit for member %d: %w", input.MemberID, err)
	}

	v.Logger.Info().
		Int64("visit_id", visit.ID).
		Int64("member_id", visit.MemberID).
		Str("amount", amount.String()).
		Msg("visit recorded")

	return mapRepositoryToDTO(repository.PopulatedVisit{Visit: *visit}), nil
}

func (v *Visit) DeleteVisit(ctx context.Context, id int64) error {
	affected, err := v.VisitRepository.Delete(ctx, id, nil)
	if err != nil {
		return err
	}
	if affected == 0 {
		return svc.VisitNotFound(id)
	}

	v.Logger.Info().Int64("visit_id", id).Msg("visit deleted")
	return nil
}

func (v *Visit) Get(ctx context.Context, id int64) (*dto.Visit, error) {
	visit, err := v.VisitRepository.Get(ctx, repository.VisitRepositoryFilter{ID: &id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svc.VisitNotFound(id)
		}
		return nil, err
	}
	return mapRepositoryToDTO(*visit), nil
}

// ListRecent returns the latest visits, newest first. A non-positive limit
// means DefaultRecentLimit.
func (v *Visit) ListRecent(ctx context.Context, limit int) ([]dto.Visit, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rows, err := v.VisitRepository.List(ctx, repository.VisitRepositoryFilter{}, repository.QueryOptions{Limit: uint64(limit)})
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}

	return lo.Map(rows, func(row repository.PopulatedVisit, _ int) dto.Visit {
		return *mapRepositoryToDTO(row)
	}), nil
}

func mapRepositoryToDTO(visit repository.PopulatedVisit) *dto.Visit {
	return &dto.Visit{
		ID:            visit.ID,
		MemberID:      visit.MemberID,
		MemberName:    visit.MemberName,
		VisitDate:     visit.VisitDate.String(),
		PaymentAmount: visit.PaymentAmount.Decimal,
		PaymentMethod: visit.PaymentMethod.String,
		Notes:         visit.Notes.String,
	}
}
