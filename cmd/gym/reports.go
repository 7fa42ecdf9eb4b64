package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jidetireni/gym-manager/internal/dto"
	"github.com/Jidetireni/gym-manager/internal/helpers"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

func (a *App) dashboard(ctx context.Context, args []string) error {
	if err := parse(a.flagSet("dashboard"), args); err != nil {
		return err
	}

	metrics, err := a.Factory.Services.Report.Dashboard(ctx)
	if err != nil {
		return err
	}

	if a.json {
		return a.writeJSON(metrics)
	}
	a.printf("%s", a.Factory.Services.Report.RenderDashboard(metrics))
	return nil
}

func (a *App) alerts(ctx context.Context, args []string) error {
	if err := parse(a.flagSet("alerts"), args); err != nil {
		return err
	}

	alerts, err := a.Factory.Services.Report.ExpiryAlerts(ctx)
	if err != nil {
		return err
	}

	if a.json {
		return a.writeJSON(alerts)
	}
	a.printf("%s", a.Factory.Services.Report.RenderAlerts(alerts))
	return nil
}

func (a *App) activity(ctx context.Context, args []string) error {
	if err := parse(a.flagSet("activity"), args); err != nil {
		return err
	}

	activity, err := a.Factory.Services.Report.RecentActivity(ctx)
	if err != nil {
		return err
	}

	if a.json {
		return a.writeJSON(activity)
	}
	if len(activity) == 0 {
		a.printf("No activity today.\n")
		return nil
	}

	for _, item := range activity {
		at := item.Timestamp
		if t, err := helpers.ParseTimestamp(item.Timestamp); err == nil {
			at = t.Format("03:04 PM")
		}

		switch {
		case item.Type == dto.ActivityRegistration:
			a.printf("[%s] New member: %s registered - %s via %s\n", at, item.MemberName, a.money(item.Amount), item.PaymentMethod)
		case item.Amount.IsPositive():
			a.printf("[%s] %s visited - Paid %s via %s\n", at, item.MemberName, a.money(item.Amount), item.PaymentMethod)
		default:
			a.printf("[%s] %s visited\n", at, item.MemberName)
		}
	}
	return nil
}

func (a *App) report(ctx context.Context, args []string) error {
	fs := a.flagSet("report")
	id := fs.Int64("member", 0, "member id (required)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id <= 0 {
		return usageError("report: -member is required")
	}

	report, err := a.Factory.Services.Report.MemberReport(ctx, *id)
	if err != nil {
		return err
	}

	if a.json {
		return a.writeJSON(report)
	}
	a.printf("%s", a.Factory.Services.Report.RenderMemberReport(report))
	return nil
}

func (a *App) payments(ctx context.Context, args []string) error {
	fs := a.flagSet("payments")
	input := dto.PaymentHistoryInput{}
	fs.StringVar(&input.DateFrom, "from", "", "first day YYYY-MM-DD (required)")
	fs.StringVar(&input.DateTo, "to", "", "last day YYYY-MM-DD, inclusive (required)")
	if err := parse(fs, args); err != nil {
		return err
	}

	rows, err := a.Factory.Services.Report.PaymentHistory(ctx, input)
	if err != nil {
		return err
	}

	if a.json {
		return a.writeJSON(rows)
	}

	lines := lo.Map(rows, func(p dto.PaymentRow, _ int) string {
		return strings.Join([]string{
			helpers.DisplayTimestamp(p.Date), p.MemberName, a.money(p.Amount),
			p.PaymentMethod, string(p.Type), p.Notes,
		}, "\t")
	})
	if err := a.table("DATE\tMEMBER\tAMOUNT\tMETHOD\tTYPE\tNOTES", lines); err != nil {
		return err
	}

	total := lo.Reduce(rows, func(sum decimal.Decimal, p dto.PaymentRow, _ int) decimal.Decimal {
		return sum.Add(p.Amount)
	}, decimal.Zero)
	a.printf("\n%d payments, total %s\n", len(rows), a.money(total))
	return nil
}

func (a *App) remind(ctx context.Context, args []string) error {
	if err := parse(a.flagSet("remind"), args); err != nil {
		return err
	}

	result, err := a.Factory.Services.Reminder.Send(ctx)
	if err != nil {
		return err
	}

	if a.json {
		return a.writeJSON(result)
	}
	a.printf("Reminders sent: %d, skipped (no e-mail): %d, failed: %d\n", result.Sent, result.Skipped, result.Failed)
	if result.Failed > 0 {
		return fmt.Errorf("%d reminders could not be delivered", result.Failed)
	}
	return nil
}
