package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/Jidetireni/gym-manager/internal/helpers"
	"github.com/shopspring/decimal"
)

func (a *App) writeJSON(data any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"data": data,
	})
}

// table writes tab separated rows as aligned columns.
func (a *App) table(header string, rows []string) error {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, row := range rows {
		fmt.Fprintln(tw, row)
	}
	return tw.Flush()
}

func (a *App) money(amount decimal.Decimal) string {
	return helpers.FormatMoney(a.Config.Gym.Currency, amount)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
