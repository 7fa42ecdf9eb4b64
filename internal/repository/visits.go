package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type VisitRepository struct {
	db   *sqlx.DB
	psql sq.StatementBuilderType
}

func NewVisitRepository(db *sqlx.DB, psql sq.StatementBuilderType) *VisitRepository {
	return &VisitRepository{
		db:   db,
		psql: psql,
	}
}

type VisitRepositoryFilter struct {
	ID            *int64
	MemberID      *int64
	PaymentMethod *string
	Paid          *bool
	VisitedFrom   *string
	VisitedBefore *string
}

func (v *VisitRepository) applyFilter(builder sq.SelectBuilder, filter VisitRepositoryFilter) sq.SelectBuilder {
	if filter.ID != nil {
		builder = builder.Where(sq.Eq{"v.id": *filter.ID})
	}

	if filter.MemberID != nil {
		builder = builder.Where(sq.Eq{"v.member_id": *filter.MemberID})
	}

	if filter.PaymentMethod != nil {
		builder = builder.Where(sq.Eq{"v.payment_method": *filter.PaymentMethod})
	}

	if filter.Paid != nil {
		if *filter.Paid {
			builder = builder.Where(sq.Gt{"v.payment_amount": 0})
		} else {
			builder = builder.Where(sq.Or{sq.Eq{"v.payment_amount": nil}, sq.LtOrEq{"v.payment_amount": 0}})
		}
	}

	if filter.VisitedFrom != nil {
		builder = builder.Where(sq.GtOrEq{"v.visit_date": *filter.VisitedFrom})
	}

	if filter.VisitedBefore != nil {
		builder = builder.Where(sq.Lt{"v.visit_date": *filter.VisitedBefore})
	}

	return builder
}

func (v *VisitRepository) buildQuery(filter VisitRepositoryFilter, queryType QueryType) sq.SelectBuilder {
	var builder sq.SelectBuilder
	switch queryType {
	case QueryTypeSelect:
		builder = v.psql.Select(
			"v.id AS id",
			"v.member_id AS member_id",
			"v.visit_date AS visit_date",
			"v.payment_amount AS payment_amount",
			"v.payment_method AS payment_method",
			"v.notes AS notes",
			"m.name AS member_name",
		)
	case QueryTypeCount:
		builder = v.psql.Select("COUNT(*)")
	}

	builder = builder.From("visits v").
		Join("members m ON v.member_id = m.id")

	return v.applyFilter(builder, filter)
}

func (v *VisitRepository) Get(ctx context.Context, filter VisitRepositoryFilter) (*PopulatedVisit, error) {
	query, args, err := v.buildQuery(filter, QueryTypeSelect).ToSql()
	if err != nil {
		return nil, err
	}

	var visit PopulatedVisit
	if err := v.db.GetContext(ctx, &visit, query, args...); err != nil {
		return nil, err
	}
	return &visit, nil
}

// List returns visits newest first.
func (v *VisitRepository) List(ctx context.Context, filter VisitRepositoryFilter, opts QueryOptions) ([]PopulatedVisit, error) {
	builder, err := applyOptions(
		v.buildQuery(filter, QueryTypeSelect),
		opts,
		SortResult{Column: "v.visit_date", Order: SortOrderDesc},
		"v.visit_date", "v.id",
	)
	if err != nil {
		return nil, err
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	visits := []PopulatedVisit{}
	if err := v.db.SelectContext(ctx, &visits, query, args...); err != nil {
		return nil, err
	}
	return visits, nil
}

func (v *VisitRepository) Count(ctx context.Context, filter VisitRepositoryFilter) (int, error) {
	query, args, err := v.buildQuery(filter, QueryTypeCount).ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := v.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func (v *VisitRepository) Create(ctx context.Context, visit *Visit, tx *sqlx.Tx) (*Visit, error) {
	builder := v.psql.Insert("visits").
		Columns("member_id", "visit_date", "payment_amount", "payment_method", "notes").
		Values(visit.MemberID, visit.VisitDate, visit.PaymentAmount, visit.PaymentMethod, visit.Notes).
		Suffix("RETURNING *")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var createdVisit Visit
	err = sqlx.GetContext(ctx, executor(v.db, tx), &createdVisit, query, args...)
	return &createdVisit, err
}

func (v *VisitRepository) Delete(ctx context.Context, id int64, tx *sqlx.Tx) (int64, error) {
	query, args, err := v.psql.Delete("visits").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, err
	}

	res, err := executor(v.db, tx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete visit %d: %w", id, err)
	}
	return res.RowsAffected()
}

func (v *VisitRepository) DeleteByMember(ctx context.Context, memberID int64, tx *sqlx.Tx) (int64, error) {
	query, args, err := v.psql.Delete("visits").Where(sq.Eq{"member_id": memberID}).ToSql()
	if err != nil {
		return 0, err
	}

	res, err := executor(v.db, tx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete visits of member %d: %w", memberID, err)
	}
	return res.RowsAffected()
}

// SumPayments totals payment_amount over the matching visits.
func (v *VisitRepository) SumPayments(ctx context.Context, filter VisitRepositoryFilter) (Amount, error) {
	builder := v.applyFilter(v.psql.Select("COALESCE(SUM(v.payment_amount), 0)").From("visits v"), filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return Amount{}, err
	}

	var total Amount
	if err := v.db.GetContext(ctx, &total, query, args...); err != nil {
		return Amount{}, err
	}
	return total, nil
}

// CountAll counts visits without requiring the owning member to exist.
func (v *VisitRepository) CountAll(ctx context.Context, filter VisitRepositoryFilter) (int, error) {
	builder := v.applyFilter(v.psql.Select("COUNT(*)").From("visits v"), filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := v.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func (v *VisitRepository) SumByMethod(ctx context.Context, filter VisitRepositoryFilter) ([]MethodTotal, error) {
	builder := v.psql.Select(
		"v.payment_method AS method",
		"COALESCE(SUM(v.payment_amount), 0) AS amount",
	).From("visits v")

	builder = v.applyFilter(builder, filter).
		GroupBy("v.payment_method").
		OrderBy("v.payment_method")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	totals := []MethodTotal{}
	if err := v.db.SelectContext(ctx, &totals, query, args...); err != nil {
		return nil, err
	}
	return totals, nil
}

// ListPayments returns paid visits as payment entries, newest first.
func (v *VisitRepository) ListPayments(ctx context.Context, filter VisitRepositoryFilter) ([]PaymentEntry, error) {
	builder := v.psql.Select(
		"v.visit_date AS date",
		"m.name AS member_name",
		"v.payment_amount AS amount",
		"v.payment_method AS payment_method",
		"v.notes AS notes",
	).From("visits v").
		Join("members m ON v.member_id = m.id")

	builder = v.applyFilter(builder, filter).OrderBy("v.visit_date DESC", "v.id DESC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	entries := []PaymentEntry{}
	if err := v.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, err
	}
	return entries, nil
}
