package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/Jidetireni/gym-manager/internal/membership"
	"github.com/Jidetireni/gym-manager/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberFromRow(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	row := repository.Member{
		ID:               7,
		Name:             "Jane",
		Email:            sql.NullString{String: "jane@example.com", Valid: true},
		MembershipType:   sql.NullString{String: "Monthly", Valid: true},
		StartDate:        "2024-05-12",
		EndDate:          "2024-06-12",
		AmountPaid:       repository.NewAmount(decimal.NewFromInt(2500)),
		PaymentMethod:    sql.NullString{String: "Cash", Valid: true},
		Status:           sql.NullString{String: "Active", Valid: true},
		RegistrationDate: "2024-05-12 09:00:00",
	}

	got := MemberFromRow(row, now)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Empty(t, got.Phone)
	assert.True(t, got.AmountPaid.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, membership.ExpiryUrgent, got.Expiry)
	require.NotNil(t, got.DaysLeft)
	assert.Equal(t, 2, *got.DaysLeft)

	row.EndDate = "9999-12-31"
	got = MemberFromRow(row, now)
	require.NotNil(t, got.DaysLeft)
	assert.Equal(t, membership.ExpiryActive, got.Expiry)
	assert.Equal(t, 2913012, *got.DaysLeft)

	row.EndDate = "soon"
	got = MemberFromRow(row, now)
	assert.Nil(t, got.DaysLeft)
	assert.Empty(t, got.Expiry)
}
