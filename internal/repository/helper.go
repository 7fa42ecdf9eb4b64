package repository

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Jidetireni/gym-manager/internal/helpers"
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type QueryType string

type SortOrder string

const (
	QueryTypeSelect QueryType = "select"
	QueryTypeCount  QueryType = "count"

	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

// executor lets every method run either on the shared connection or inside a tx.
// With a single connection, a method called during a tx must be handed that tx.
func executor(db *sqlx.DB, tx *sqlx.Tx) sqlx.ExtContext {
	if tx != nil {
		return tx
	}
	return db
}

// Amount scans any stored money value. Values that do not parse read as zero so
// one malformed legacy row cannot break a report.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func (a *Amount) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		a.Decimal = decimal.Zero
	case float64:
		a.Decimal = decimal.NewFromFloat(v)
	case float32:
		a.Decimal = decimal.NewFromFloat32(v)
	case int64:
		a.Decimal = decimal.NewFromInt(v)
	case []byte:
		a.Decimal = parseLenient(string(v))
	case string:
		a.Decimal = parseLenient(v)
	default:
		a.Decimal = decimal.Zero
	}
	return nil
}

func (a Amount) Value() (driver.Value, error) {
	return a.Decimal.InexactFloat64(), nil
}

func parseLenient(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return decimal.NewFromFloat(f)
	}
	return decimal.Zero
}

// DateText is a date or timestamp column stored as ISO text. Drivers that
// decode DATE/TIMESTAMP declared columns into time.Time are normalised back to text.
type DateText string

func (d *DateText) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = ""
	case string:
		*d = DateText(v)
	case []byte:
		*d = DateText(string(v))
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 {
			*d = DateText(helpers.FormatDate(v))
		} else {
			*d = DateText(helpers.FormatTimestamp(v))
		}
	default:
		*d = ""
	}
	return nil
}

func (d DateText) Value() (driver.Value, error) {
	return string(d), nil
}

func (d DateText) String() string {
	return string(d)
}

func ToNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}

	return sql.NullString{String: *s, Valid: true}
}

// NullIfEmpty stores blank optional text as NULL.
func NullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type QueryOptions struct {
	Limit uint64
	Sort  *string
}

type SortResult struct {
	Column string
	Order  SortOrder
}

// parseSort reads "column:asc|desc". Only columns in allowed may be sorted on.
func parseSort(sort *string, fallback SortResult, allowed ...string) (SortResult, error) {
	if sort == nil {
		return fallback, nil
	}

	column, order, ok := strings.Cut(*sort, ":")
	if !ok {
		return SortResult{}, fmt.Errorf("invalid sort format")
	}
	if !lo.Contains(allowed, column) {
		return SortResult{}, fmt.Errorf("invalid sort column: %s", column)
	}

	switch order {
	case "asc":
		return SortResult{Column: column, Order: SortOrderAsc}, nil
	case "desc":
		return SortResult{Column: column, Order: SortOrderDesc}, nil
	}

	return SortResult{}, fmt.Errorf("invalid sort order: %s", order)
}

func applyOptions(builder sq.SelectBuilder, opts QueryOptions, fallback SortResult, allowed ...string) (sq.SelectBuilder, error) {
	sortResult, err := parseSort(opts.Sort, fallback, allowed...)
	if err != nil {
		return builder, err
	}

	idColumn := "id"
	if table, _, ok := strings.Cut(sortResult.Column, "."); ok {
		idColumn = table + ".id"
	}

	builder = builder.OrderBy(fmt.Sprintf("%s %s, %s %s", sortResult.Column, sortResult.Order, idColumn, sortResult.Order))
	if opts.Limit > 0 {
		builder = builder.Limit(opts.Limit)
	}
	return builder, nil
}
