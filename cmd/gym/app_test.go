package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/Jidetireni/gym-manager/internal/config"
	"github.com/Jidetireni/gym-manager/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{
		Database: config.DataBaseConfig{URL: ":memory:", Type: config.DBTypeSQLite},
		Gym:      config.GymConfig{Name: "Test Gym", Currency: "KSh"},
		IsDev:    true,
	}

	var out bytes.Buffer
	app, cleanup, err := newApp(cfg, logger.Nop(), &out)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	app.Factory.Email.Out = &out
	return app, &out
}

func runJSON(t *testing.T, app *App, out *bytes.Buffer, args ...string) map[string]any {
	t.Helper()
	out.Reset()
	require.NoError(t, app.Run(context.Background(), append([]string{"-json"}, args...)))

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &envelope))
	return envelope.Data
}

func TestRun_MemberLifecycle(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	member := runJSON(t, app, out, "members", "add", "-name", "Jane Wanjiru", "-amount", "2500", "-method", "M-Pesa", "-email", "jane@example.com")
	assert.Equal(t, "Jane Wanjiru", member["name"])
	id := "1"

	visit := runJSON(t, app, out, "visits", "record", "-member", id, "-amount", "200", "-method", "Cash")
	assert.Equal(t, float64(1), visit["member_id"])

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"members", "list"}))
	assert.Contains(t, out.String(), "Jane Wanjiru")
	assert.Contains(t, out.String(), "DAYS LEFT")

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"report", "-member", id}))
	assert.Contains(t, out.String(), "KSh 2,700")

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"activity"}))
	assert.Contains(t, out.String(), "New member: Jane Wanjiru registered - KSh 2,500 via M-Pesa")
	assert.Contains(t, out.String(), "Jane Wanjiru visited - Paid KSh 200 via Cash")

	out.Reset()
	err := app.Run(ctx, []string{"members", "delete", "-id", id})
	assert.Equal(t, exitInvalid, exitCode(err))

	require.NoError(t, app.Run(ctx, []string{"members", "delete", "-id", id, "-yes"}))

	err = app.Run(ctx, []string{"report", "-member", id})
	assert.Equal(t, exitNotFound, exitCode(err))
}

func TestRun_ExitCodes(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "no command", args: nil, want: exitInvalid},
		{name: "unknown command", args: []string{"lockers"}, want: exitInvalid},
		{name: "unknown action", args: []string{"members", "freeze"}, want: exitInvalid},
		{name: "missing name", args: []string{"members", "add", "-amount", "100"}, want: exitInvalid},
		{name: "bad amount", args: []string{"visits", "record", "-member", "1", "-amount", "lots"}, want: exitInvalid},
		{name: "unknown member", args: []string{"visits", "record", "-member", "42"}, want: exitNotFound},
		{name: "unknown visit", args: []string{"visits", "delete", "-id", "42", "-yes"}, want: exitNotFound},
		{name: "reversed range", args: []string{"payments", "-from", "2024-06-10", "-to", "2024-06-01"}, want: exitInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := app.Run(ctx, tc.args)
			require.Error(t, err)
			assert.Equal(t, tc.want, exitCode(err))
		})
	}
}

func TestRun_DashboardAndRemind(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Run(ctx, []string{"members", "add", "-name", "Daily Dan", "-type", "Daily", "-amount", "300", "-email", "dan@example.com"}))

	metrics := runJSON(t, app, out, "dashboard")
	assert.Equal(t, float64(1), metrics["total_members"])
	assert.Equal(t, float64(1), metrics["expiring_this_week"])

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"remind"}))
	assert.Contains(t, out.String(), "--- Email to be sent to dan@example.com ---")
	assert.Contains(t, out.String(), "Reminders sent: 1")
}

func TestRun_EditKeepsUnsetFields(t *testing.T) {
	app, out := newTestApp(t)

	runJSON(t, app, out, "members", "add",
		"-name", "Ann", "-type", "Yearly", "-start", "2024-01-10", "-status", "Inactive",
		"-phone", "0700111222", "-email", "ann@example.com", "-address", "Moi Avenue",
		"-method", "Card", "-amount", "12000")

	edited := runJSON(t, app, out, "members", "edit", "-id", "1", "-name", "Ann B")
	assert.Equal(t, "Ann B", edited["name"])
	assert.Equal(t, "Yearly", edited["membership_type"])
	assert.Equal(t, "2024-01-10", edited["start_date"])
	assert.Equal(t, "2025-01-10", edited["end_date"])
	assert.Equal(t, "Inactive", edited["status"])
	assert.Equal(t, "0700111222", edited["phone"])
	assert.Equal(t, "ann@example.com", edited["email"])
	assert.Equal(t, "Moi Avenue", edited["address"])
	assert.Equal(t, "Card", edited["payment_method"])
	assert.Equal(t, "12000", edited["amount_paid"])

	retyped := runJSON(t, app, out, "members", "edit", "-id", "1", "-type", "Quarterly")
	assert.Equal(t, "Quarterly", retyped["membership_type"])
	assert.Equal(t, "2024-01-10", retyped["start_date"])
	assert.Equal(t, "2024-04-10", retyped["end_date"])

	extended := runJSON(t, app, out, "members", "edit", "-id", "1", "-end", "2024-12-31")
	assert.Equal(t, "2024-12-31", extended["end_date"])
	assert.Equal(t, "Ann B", extended["name"])

	err := app.Run(context.Background(), []string{"members", "edit", "-id", "42", "-name", "Ghost"})
	assert.Equal(t, exitNotFound, exitCode(err))
}
