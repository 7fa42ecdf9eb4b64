package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type MemberRepository struct {
	db   *sqlx.DB
	psql sq.StatementBuilderType
}

func NewMemberRepository(db *sqlx.DB, psql sq.StatementBuilderType) *MemberRepository {
	return &MemberRepository{
		db:   db,
		psql: psql,
	}
}

// Date bounds compare ISO text, which orders the same way the dates do.
type MemberRepositoryFilter struct {
	ID               *int64
	Status           *string
	Search           *string
	EndDateFrom      *string
	EndDateTo        *string
	EndDateBefore    *string
	RegisteredFrom   *string
	RegisteredBefore *string
}

var memberSortColumns = []string{"registration_date", "name", "end_date", "id"}

func (mq *MemberRepository) applyFilter(builder sq.SelectBuilder, filter MemberRepositoryFilter) sq.SelectBuilder {
	if filter.ID != nil {
		builder = builder.Where(sq.Eq{"id": *filter.ID})
	}

	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": *filter.Status})
	}

	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		builder = builder.Where(sq.Or{
			sq.Like{"LOWER(name)": pattern},
			sq.Like{"LOWER(phone)": pattern},
			sq.Like{"LOWER(email)": pattern},
		})
	}

	if filter.EndDateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"end_date": *filter.EndDateFrom})
	}

	if filter.EndDateTo != nil {
		builder = builder.Where(sq.LtOrEq{"end_date": *filter.EndDateTo})
	}

	if filter.EndDateBefore != nil {
		builder = builder.Where(sq.Lt{"end_date": *filter.EndDateBefore})
	}

	if filter.RegisteredFrom != nil {
		builder = builder.Where(sq.GtOrEq{"registration_date": *filter.RegisteredFrom})
	}

	if filter.RegisteredBefore != nil {
		builder = builder.Where(sq.Lt{"registration_date": *filter.RegisteredBefore})
	}

	return builder
}

func (mq *MemberRepository) buildQuery(filter MemberRepositoryFilter, queryType QueryType) sq.SelectBuilder {
	var builder sq.SelectBuilder
	switch queryType {
	case QueryTypeSelect:
		builder = mq.psql.Select("*").From("members")
	case QueryTypeCount:
		builder = mq.psql.Select("COUNT(*)").From("members")
	}

	return mq.applyFilter(builder, filter)
}

func (mq *MemberRepository) Get(ctx context.Context, filter MemberRepositoryFilter, tx *sqlx.Tx) (*Member, error) {
	query, args, err := mq.buildQuery(filter, QueryTypeSelect).ToSql()
	if err != nil {
		return nil, err
	}

	var member Member
	if err := sqlx.GetContext(ctx, executor(mq.db, tx), &member, query, args...); err != nil {
		return nil, err
	}
	return &member, nil
}

func (mq *MemberRepository) List(ctx context.Context, filter MemberRepositoryFilter, opts QueryOptions) ([]Member, error) {
	builder, err := applyOptions(
		mq.buildQuery(filter, QueryTypeSelect),
		opts,
		SortResult{Column: "registration_date", Order: SortOrderDesc},
		memberSortColumns...,
	)
	if err != nil {
		return nil, err
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	members := []Member{}
	if err := mq.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, err
	}
	return members, nil
}

func (mq *MemberRepository) Count(ctx context.Context, filter MemberRepositoryFilter) (int, error) {
	query, args, err := mq.buildQuery(filter, QueryTypeCount).ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := mq.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func (mq *MemberRepository) Exists(ctx context.Context, filter MemberRepositoryFilter) (bool, error) {
	count, err := mq.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (mq *MemberRepository) Create(ctx context.Context, member *Member, tx *sqlx.Tx) (*Member, error) {
	builder := mq.psql.Insert("members").
		Columns("name", "phone", "email", "address", "membership_type", "start_date", "end_date", "amount_paid", "payment_method", "status", "registration_date").
		Values(member.Name, member.Phone, member.Email, member.Address, member.MembershipType, member.StartDate, member.EndDate, member.AmountPaid, member.PaymentMethod, member.Status, member.RegistrationDate).
		Suffix("RETURNING *")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var createdMember Member
	err = sqlx.GetContext(ctx, executor(mq.db, tx), &createdMember, query, args...)
	return &createdMember, err
}

// Update overwrites every mutable column. id and registration_date never change.
func (mq *MemberRepository) Update(ctx context.Context, member *Member, tx *sqlx.Tx) (*Member, error) {
	builder := mq.psql.Update("members").
		Set("name", member.Name).
		Set("phone", member.Phone).
		Set("email", member.Email).
		Set("address", member.Address).
		Set("membership_type", member.MembershipType).
		Set("start_date", member.StartDate).
		Set("end_date", member.EndDate).
		Set("amount_paid", member.AmountPaid).
		Set("payment_method", member.PaymentMethod).
		Set("status", member.Status).
		Where(sq.Eq{"id": member.ID}).
		Suffix("RETURNING *")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var updatedMember Member
	err = sqlx.GetContext(ctx, executor(mq.db, tx), &updatedMember, query, args...)
	return &updatedMember, err
}

func (mq *MemberRepository) Delete(ctx context.Context, id int64, tx *sqlx.Tx) (int64, error) {
	query, args, err := mq.psql.Delete("members").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, err
	}

	res, err := executor(mq.db, tx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete member %d: %w", id, err)
	}
	return res.RowsAffected()
}

// SumAmountPaid totals registration fees for the members matching filter.
func (mq *MemberRepository) SumAmountPaid(ctx context.Context, filter MemberRepositoryFilter) (Amount, error) {
	builder := mq.applyFilter(mq.psql.Select("COALESCE(SUM(amount_paid), 0)").From("members"), filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return Amount{}, err
	}

	var total Amount
	if err := mq.db.GetContext(ctx, &total, query, args...); err != nil {
		return Amount{}, err
	}
	return total, nil
}

// ListRegistrations returns registration fees as payment entries, newest first.
func (mq *MemberRepository) ListRegistrations(ctx context.Context, filter MemberRepositoryFilter) ([]PaymentEntry, error) {
	builder := mq.psql.Select(
		"registration_date AS date",
		"name AS member_name",
		"amount_paid AS amount",
		"payment_method",
		"'Registration' AS notes",
	).From("members")

	builder = mq.applyFilter(builder, filter).OrderBy("registration_date DESC", "id DESC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	entries := []PaymentEntry{}
	if err := mq.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, err
	}
	return entries, nil
}
