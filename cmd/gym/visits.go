package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jidetireni/gym-manager/internal/dto"
	"github.com/Jidetireni/gym-manager/internal/helpers"
	"github.com/Jidetireni/gym-manager/internal/services/visits"
	"github.com/samber/lo"
)

func (a *App) visits(ctx context.Context, args []string) error {
	return subcommand(ctx, "visits", args, map[string]func(context.Context, []string) error{
		"record": a.recordVisit,
		"list":   a.listVisits,
		"delete": a.deleteVisit,
	})
}

func (a *App) recordVisit(ctx context.Context, args []string) error {
	fs := a.flagSet("visits record")
	input := dto.RecordVisitInput{}
	fs.Int64Var(&input.MemberID, "member", 0, "member id (required)")
	fs.StringVar(&input.PaymentAmount, "amount", "", "amount paid with this visit")
	fs.StringVar(&input.PaymentMethod, "method", "None", "None, Cash, M-Pesa, Bank Transfer or Card")
	fs.StringVar(&input.Notes, "notes", "", "free text")
	if err := parse(fs, args); err != nil {
		return err
	}

	visit, err := a.Factory.Services.Visit.RecordVisit(ctx, input)
	if err != nil {
		return err
	}

	if a.json {
		return a.writeJSON(visit)
	}
	a.printf("Visit %d recorded for member %d\n", visit.ID, visit.MemberID)
	return nil
}

func (a *App) listVisits(ctx context.Context, args []string) error {
	fs := a.flagSet("visits list")
	limit := fs.Int("limit", visits.DefaultRecentLimit, "number of visits to show")
	if err := parse(fs, args); err != nil {
		return err
	}

	recent, err := a.Factory.Services.Visit.ListRecent(ctx, *limit)
	if err != nil {
		return err
	}

	if a.json {
		return a.writeJSON(recent)
	}

	rows := lo.Map(recent, func(v dto.Visit, _ int) string {
		return strings.Join([]string{
			fmt.Sprint(v.ID), v.MemberName, helpers.DisplayTimestamp(v.VisitDate),
			a.money(v.PaymentAmount), v.PaymentMethod, v.Notes,
		}, "\t")
	})
	return a.table("ID\tMEMBER\tDATE\tPAYMENT\tMETHOD\tNOTES", rows)
}

func (a *App) deleteVisit(ctx context.Context, args []string) error {
	fs := a.flagSet("visits delete")
	id := fs.Int64("id", 0, "visit id (required)")
	yes := fs.Bool("yes", false, "confirm deleting the visit")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id <= 0 {
		return usageError("visits delete: -id is required")
	}
	if !*yes {
		return usageError("visits delete: pass -yes to confirm")
	}

	if err := a.Factory.Services.Visit.DeleteVisit(ctx, *id); err != nil {
		return err
	}

	a.printf("Visit %d deleted\n", *id)
	return nil
}
