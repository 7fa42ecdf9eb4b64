package testsupport

import (
	"testing"
	"time"

	"github.com/Jidetireni/gym-manager/pkg/database"
	"github.com/stretchr/testify/require"
)

// NewDB opens a fresh in-memory SQLite database with the schema applied.
// The database lives as long as its single connection, so it is closed on cleanup.
func NewDB(t *testing.T) *database.DB {
	t.Helper()

	db, cleanup, err := database.New(":memory:", database.TypeSQLite)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return db
}

// FixedClock returns a clock that always reports at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// Date is a midday timestamp on the given day, far from any midnight edge.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}
