package visits

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Jidetireni/gym-manager/internal/dto"
	"github.com/Jidetireni/gym-manager/internal/repository"
	svc "github.com/Jidetireni/gym-manager/internal/services"
	"github.com/Jidetireni/gym-manager/internal/testsupport"
	"github.com/Jidetireni/gym-manager/internal/validation"
	"github.com/Jidetireni/gym-manager/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service *Visit
	visits  *repository.VisitRepository
	member  *repository.Member
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testsupport.NewDB(t)
	memberRepo := repository.NewMemberRepository(db.DB, db.SqlBuilder)
	visitRepo := repository.NewVisitRepository(db.DB, db.SqlBuilder)

	member, err := memberRepo.Create(context.Background(), &repository.Member{
		Name:             "Jane",
		StartDate:        "2024-06-01",
		EndDate:          "2024-07-01",
		AmountPaid:       repository.NewAmount(decimal.NewFromInt(1000)),
		Status:           repository.NullIfEmpty("Active"),
		RegistrationDate: "2024-06-01 08:00:00",
	}, nil)
	require.NoError(t, err)

	service := New(validation.New(), visitRepo, memberRepo, logger.Nop())
	service.Now = testsupport.FixedClock(time.Date(2024, time.June, 10, 17, 45, 0, 0, time.UTC))

	return fixture{service: service, visits: visitRepo, member: member}
}

func TestRecordVisit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	plain, err := f.service.RecordVisit(ctx, dto.RecordVisitInput{MemberID: f.member.ID})
	require.NoError(t, err)
	assert.Equal(t, "None", plain.PaymentMethod)
	assert.True(t, plain.PaymentAmount.IsZero())
	assert.Equal(t, "2024-06-10 17:45:00", plain.VisitDate)

	paid, err := f.service.RecordVisit(ctx, dto.RecordVisitInput{
		MemberID:      f.member.ID,
		PaymentAmount: " 250.50 ",
		PaymentMethod: "M-Pesa",
		Notes:         "day pass",
	})
	require.NoError(t, err)
	assert.True(t, paid.PaymentAmount.Equal(decimal.RequireFromString("250.5")))

	got, err := f.service.Get(ctx, paid.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.MemberName)
	assert.Equal(t, "day pass", got.Notes)
	assert.Equal(t, "M-Pesa", got.PaymentMethod)
}

func TestRecordVisit_AmountForms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		in   string
		want string
	}{
		{in: "1e3", want: "1000"},
		{in: ".5", want: "0.5"},
		{in: "5.", want: "5"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			visit, err := f.service.RecordVisit(ctx, dto.RecordVisitInput{
				MemberID:      f.member.ID,
				PaymentAmount: tc.in,
				PaymentMethod: "Cash",
			})
			require.NoError(t, err)
			assert.True(t, visit.PaymentAmount.Equal(decimal.RequireFromString(tc.want)), visit.PaymentAmount.String())
		})
	}
}

func TestRecordVisit_Invalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   dto.RecordVisitInput
		wantErr error
	}{
		{name: "non numeric amount", input: dto.RecordVisitInput{MemberID: f.member.ID, PaymentAmount: "free"}, wantErr: svc.ErrValidation},
		{name: "unknown method", input: dto.RecordVisitInput{MemberID: f.member.ID, PaymentMethod: "Cheque"}, wantErr: svc.ErrValidation},
		{name: "missing member", input: dto.RecordVisitInput{}, wantErr: svc.ErrValidation},
		{name: "unknown member", input: dto.RecordVisitInput{MemberID: 9999}, wantErr: svc.ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.RecordVisit(ctx, tc.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), err.Error())
		})
	}

	count, err := f.visits.CountAll(ctx, repository.VisitRepositoryFilter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteVisit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	visit, err := f.service.RecordVisit(ctx, dto.RecordVisitInput{MemberID: f.member.ID})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteVisit(ctx, visit.ID))

	err = f.service.DeleteVisit(ctx, visit.ID)
	assert.True(t, errors.Is(err, svc.ErrNotFound))

	_, err = f.service.Get(ctx, visit.ID)
	assert.True(t, errors.Is(err, svc.ErrNotFound))
}

func TestListRecent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		f.service.Now = testsupport.FixedClock(time.Date(2024, time.June, 10+i, 9, 0, 0, 0, time.UTC))
		_, err := f.service.RecordVisit(ctx, dto.RecordVisitInput{MemberID: f.member.ID})
		require.NoError(t, err)
	}

	recent, err := f.service.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2024-06-12 09:00:00", recent[0].VisitDate)
	assert.Equal(t, "2024-06-11 09:00:00", recent[1].VisitDate)

	all, err := f.service.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
