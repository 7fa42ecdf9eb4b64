package repository

import (
	"context"
	"testing"

	"github.com/Jidetireni/gym-manager/internal/testsupport"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepos(t *testing.T) (*MemberRepository, *VisitRepository) {
	t.Helper()
	db := testsupport.NewDB(t)
	return NewMemberRepository(db.DB, db.SqlBuilder), NewVisitRepository(db.DB, db.SqlBuilder)
}

func seedMember(t *testing.T, repo *MemberRepository, name, endDate, registered string) *Member {
	t.Helper()
	member, err := repo.Create(context.Background(), &Member{
		Name:             name,
		Phone:            NullIfEmpty("0700" + name),
		Email:            NullIfEmpty(name + "@example.com"),
		MembershipType:   NullIfEmpty("Monthly"),
		StartDate:        "2024-05-01",
		EndDate:          DateText(endDate),
		AmountPaid:       NewAmount(decimal.NewFromInt(1500)),
		PaymentMethod:    NullIfEmpty("Cash"),
		Status:           NullIfEmpty("Active"),
		RegistrationDate: DateText(registered),
	}, nil)
	require.NoError(t, err)
	return member
}

func seedVisit(t *testing.T, repo *VisitRepository, memberID int64, at string, amount int64, method string) *Visit {
	t.Helper()
	visit, err := repo.Create(context.Background(), &Visit{
		MemberID:      memberID,
		VisitDate:     DateText(at),
		PaymentAmount: NewAmount(decimal.NewFromInt(amount)),
		PaymentMethod: NullIfEmpty(method),
	}, nil)
	require.NoError(t, err)
	return visit
}

func TestMemberRepository_CreateAndGet(t *testing.T) {
	members, _ := newRepos(t)
	ctx := context.Background()

	created := seedMember(t, members, "alice", "2024-06-01", "2024-05-01 09:30:00")
	assert.NotZero(t, created.ID)

	got, err := members.Get(ctx, MemberRepositoryFilter{ID: &created.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Name)
	assert.Equal(t, DateText("2024-06-01"), got.EndDate)
	assert.Equal(t, DateText("2024-05-01 09:30:00"), got.RegistrationDate)
	assert.True(t, got.AmountPaid.Equal(decimal.NewFromInt(1500)))
	assert.False(t, got.Address.Valid)
}

func TestMemberRepository_ListFilters(t *testing.T) {
	members, _ := newRepos(t)
	ctx := context.Background()

	seedMember(t, members, "alice", "2024-06-01", "2024-05-01 09:00:00")
	bob := seedMember(t, members, "bob", "2024-06-20", "2024-05-02 09:00:00")
	seedMember(t, members, "carol", "2024-07-01", "2024-05-03 09:00:00")

	all, err := members.List(ctx, MemberRepositoryFilter{}, QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"carol", "bob", "alice"}, lo.Map(all, func(m Member, _ int) string { return m.Name }))

	found, err := members.List(ctx, MemberRepositoryFilter{Search: lo.ToPtr("BOB@EXAMPLE")}, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, bob.ID, found[0].ID)

	window, err := members.Count(ctx, MemberRepositoryFilter{
		EndDateFrom: lo.ToPtr("2024-06-01"),
		EndDateTo:   lo.ToPtr("2024-06-20"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, window)

	byName, err := members.List(ctx, MemberRepositoryFilter{}, QueryOptions{Sort: lo.ToPtr("name:asc"), Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, lo.Map(byName, func(m Member, _ int) string { return m.Name }))

	_, err = members.List(ctx, MemberRepositoryFilter{}, QueryOptions{Sort: lo.ToPtr("address:asc")})
	assert.Error(t, err)
}

func TestMemberRepository_Update(t *testing.T) {
	members, _ := newRepos(t)
	ctx := context.Background()

	member := seedMember(t, members, "alice", "2024-06-01", "2024-05-01 09:00:00")
	member.Name = "Alice Smith"
	member.Status = NullIfEmpty("Inactive")
	member.RegistrationDate = "1999-01-01 00:00:00"

	updated, err := members.Update(ctx, member, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", updated.Name)
	assert.Equal(t, "Inactive", updated.Status.String)
	assert.Equal(t, DateText("2024-05-01 09:00:00"), updated.RegistrationDate)
}

func TestMemberRepository_DeleteCascadesVisits(t *testing.T) {
	members, visits := newRepos(t)
	ctx := context.Background()

	member := seedMember(t, members, "alice", "2024-06-01", "2024-05-01 09:00:00")
	seedVisit(t, visits, member.ID, "2024-05-02 10:00:00", 0, "None")
	seedVisit(t, visits, member.ID, "2024-05-03 10:00:00", 200, "Cash")

	affected, err := members.Delete(ctx, member.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	remaining, err := visits.CountAll(ctx, VisitRepositoryFilter{MemberID: &member.ID})
	require.NoError(t, err)
	assert.Zero(t, remaining)

	affected, err = members.Delete(ctx, member.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestAmount_TolerantScan(t *testing.T) {
	db := testsupport.NewDB(t)
	members := NewMemberRepository(db.DB, db.SqlBuilder)
	ctx := context.Background()

	seedMember(t, members, "alice", "2024-06-01", "2024-05-01 09:00:00")
	_, err := db.DB.Exec(`INSERT INTO members (name, amount_paid, registration_date) VALUES ('legacy', 'n/a', '2024-05-01 10:00:00')`)
	require.NoError(t, err)

	legacy, err := members.Get(ctx, MemberRepositoryFilter{Search: lo.ToPtr("legacy")}, nil)
	require.NoError(t, err)
	assert.True(t, legacy.AmountPaid.IsZero())

	total, err := members.SumAmountPaid(ctx, MemberRepositoryFilter{})
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(1500)), total.String())
}

func TestVisitRepository_Aggregates(t *testing.T) {
	members, visits := newRepos(t)
	ctx := context.Background()

	alice := seedMember(t, members, "alice", "2024-06-01", "2024-05-01 09:00:00")
	bob := seedMember(t, members, "bob", "2024-06-01", "2024-05-01 09:00:00")

	seedVisit(t, visits, alice.ID, "2024-06-10 08:00:00", 300, "Cash")
	seedVisit(t, visits, bob.ID, "2024-06-10 18:30:00", 200, "M-Pesa")
	seedVisit(t, visits, bob.ID, "2024-06-10 19:00:00", 100, "Cash")
	seedVisit(t, visits, alice.ID, "2024-06-11 07:00:00", 0, "None")
	seedVisit(t, visits, alice.ID, "2024-06-09 23:59:59", 50, "Card")

	today := VisitRepositoryFilter{
		VisitedFrom:   lo.ToPtr("2024-06-10"),
		VisitedBefore: lo.ToPtr("2024-06-11"),
	}

	count, err := visits.Count(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	sum, err := visits.SumPayments(ctx, today)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(600)), sum.String())

	byMethod, err := visits.SumByMethod(ctx, today)
	require.NoError(t, err)
	totals := lo.SliceToMap(byMethod, func(m MethodTotal) (string, string) { return m.Method.String, m.Amount.String() })
	assert.Equal(t, map[string]string{"Cash": "400", "M-Pesa": "200"}, totals)

	paid, err := visits.ListPayments(ctx, VisitRepositoryFilter{Paid: lo.ToPtr(true)})
	require.NoError(t, err)
	require.Len(t, paid, 4)
	assert.Equal(t, DateText("2024-06-10 19:00:00"), paid[0].Date)
	assert.Equal(t, "bob", paid[0].MemberName)

	recent, err := visits.List(ctx, VisitRepositoryFilter{MemberID: &alice.ID}, QueryOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, DateText("2024-06-11 07:00:00"), recent[0].VisitDate)
	assert.Equal(t, "alice", recent[0].MemberName)
}

func TestVisitRepository_Delete(t *testing.T) {
	members, visits := newRepos(t)
	ctx := context.Background()

	alice := seedMember(t, members, "alice", "2024-06-01", "2024-05-01 09:00:00")
	first := seedVisit(t, visits, alice.ID, "2024-06-10 08:00:00", 0, "None")
	seedVisit(t, visits, alice.ID, "2024-06-11 08:00:00", 0, "None")

	affected, err := visits.Delete(ctx, first.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = visits.DeleteByMember(ctx, alice.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	exists, err := members.Exists(ctx, MemberRepositoryFilter{ID: &alice.ID})
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestParseSort(t *testing.T) {
	fallback := SortResult{Column: "id", Order: SortOrderDesc}

	tests := []struct {
		name    string
		sort    *string
		want    SortResult
		wantErr bool
	}{
		{name: "fallback", sort: nil, want: fallback},
		{name: "asc", sort: lo.ToPtr("name:asc"), want: SortResult{Column: "name", Order: SortOrderAsc}},
		{name: "desc", sort: lo.ToPtr("name:desc"), want: SortResult{Column: "name", Order: SortOrderDesc}},
		{name: "missing order", sort: lo.ToPtr("name"), wantErr: true},
		{name: "bad order", sort: lo.ToPtr("name:up"), wantErr: true},
		{name: "unknown column", sort: lo.ToPtr("phone:asc"), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSort(tc.sort, fallback, "id", "name")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
