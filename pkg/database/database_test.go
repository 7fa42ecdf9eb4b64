package database

import (
	"context"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderFor(t *testing.T) {
	tests := []struct {
		dbType string
		want   string
	}{
		{dbType: TypeSQLite, want: "SELECT * FROM members WHERE id = ?"},
		{dbType: TypePostgres, want: "SELECT * FROM members WHERE id = $1"},
	}

	for _, tc := range tests {
		t.Run(tc.dbType, func(t *testing.T) {
			builder := sq.StatementBuilder.PlaceholderFormat(placeholderFor(tc.dbType))
			query, _, err := builder.Select("*").From("members").Where(sq.Eq{"id": 1}).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tc.want, query)
		})
	}
}

func TestNew_SQLiteAppliesSchema(t *testing.T) {
	db, cleanup, err := New(":memory:", "")
	require.NoError(t, err)
	t.Cleanup(cleanup)

	assert.Equal(t, TypeSQLite, db.Type)

	var tables []string
	require.NoError(t, db.DB.SelectContext(context.Background(), &tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('members', 'visits', 'payments') ORDER BY name"))
	assert.Equal(t, []string{"members", "payments", "visits"}, tables)

	query, _, err := db.SqlBuilder.Select("id").From("members").Where(sq.Eq{"id": 1}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM members WHERE id = ?", query)
}
