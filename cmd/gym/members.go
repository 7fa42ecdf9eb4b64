package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/Jidetireni/gym-manager/internal/dto"
	"github.com/samber/lo"
)

func (a *App) members(ctx context.Context, args []string) error {
	return subcommand(ctx, "members", args, map[string]func(context.Context, []string) error{
		"list":   a.listMembers,
		"add":    a.addMember,
		"edit":   a.editMember,
		"delete": a.deleteMember,
		"renew":  a.renewMember,
	})
}

func (a *App) listMembers(ctx context.Context, args []string) error {
	fs := a.flagSet("members list")
	status := fs.String("status", string(dto.MemberFilterAll), "all, active, expired or expiring")
	search := fs.String("q", "", "search name, phone or email")
	if err := parse(fs, args); err != nil {
		return err
	}

	members, err := a.Factory.Services.Member.List(ctx, dto.MemberFilter{
		Status: dto.MemberStatusFilter(*status),
		Search: *search,
	})
	if err != nil {
		return err
	}

	if a.json {
		return a.writeJSON(members)
	}

	rows := lo.Map(members, func(m dto.MemberSummary, _ int) string {
		days := ""
		if m.DaysLeft != nil {
			days = fmt.Sprint(*m.DaysLeft)
		}
		return strings.Join([]string{
			fmt.Sprint(m.ID), m.Name, m.Phone, m.Email, m.MembershipType,
			m.StartDate, m.EndDate, m.Status, string(m.Expiry), days,
		}, "\t")
	})
	return a.table("ID\tNAME\tPHONE\tEMAIL\tTYPE\tSTART\tEND\tSTATUS\tEXPIRY\tDAYS LEFT", rows)
}

func memberFlags(fs *flag.FlagSet, edit bool) *dto.MemberInput {
	input := &dto.MemberInput{}
	def := func(value string) string {
		if edit {
			return ""
		}
		return value
	}

	fs.StringVar(&input.Name, "name", "", "full name (required)")
	fs.StringVar(&input.Phone, "phone", "", "phone number")
	fs.StringVar(&input.Email, "email", "", "e-mail address")
	fs.StringVar(&input.Address, "address", "", "postal or street address")
	fs.StringVar(&input.MembershipType, "type", def("Monthly"), "Daily, Monthly, Quarterly, Half-yearly or Yearly")
	fs.StringVar(&input.StartDate, "start", "", "start date YYYY-MM-DD (default today)")
	fs.StringVar(&input.AmountPaid, "amount", "", "amount paid (required)")
	fs.StringVar(&input.PaymentMethod, "method", def("Cash"), "Cash, M-Pesa, Bank Transfer or Card")
	fs.StringVar(&input.Status, "status", def("Active"), "Active or Inactive")
	if edit {
		fs.StringVar(&input.EndDate, "end", "", "end date YYYY-MM-DD (default start + membership duration)")
	}
	return input
}

// editInput starts from the stored member and applies only the flags that
// were set. The stored end date is kept unless the start, type or end changes.
func editInput(fs *flag.FlagSet, flags *dto.MemberInput, current *dto.Member) dto.MemberInput {
	input := dto.MemberInput{
		Name:           current.Name,
		Phone:          current.Phone,
		Email:          current.Email,
		Address:        current.Address,
		MembershipType: current.MembershipType,
		StartDate:      current.StartDate,
		EndDate:        current.EndDate,
		AmountPaid:     current.AmountPaid.String(),
		PaymentMethod:  current.PaymentMethod,
		Status:         current.Status,
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
		switch f.Name {
		case "name":
			input.Name = flags.Name
		case "phone":
			input.Phone = flags.Phone
		case "email":
			input.Email = flags.Email
		case "address":
			input.Address = flags.Address
		case "type":
			input.MembershipType = flags.MembershipType
		case "start":
			input.StartDate = flags.StartDate
		case "end":
			input.EndDate = flags.EndDate
		case "amount":
			input.AmountPaid = flags.AmountPaid
		case "method":
			input.PaymentMethod = flags.PaymentMethod
		case "status":
			input.Status = flags.Status
		}
	})

	if (set["start"] || set["type"]) && !set["end"] {
		input.EndDate = ""
	}
	return input
}

func (a *App) addMember(ctx context.Context, args []string) error {
	fs := a.flagSet("members add")
	input := memberFlags(fs, false)
	if err := parse(fs, args); err != nil {
		return err
	}

	member, err := a.Factory.Services.Member.Create(ctx, *input)
	if err != nil {
		return err
	}

	if a.json {
		return a.writeJSON(member)
	}
	a.printf("Member %d added: %s, %s membership until %s\n", member.ID, member.Name, member.MembershipType, member.EndDate)
	return nil
}

func (a *App) editMember(ctx context.Context, args []string) error {
	fs := a.flagSet("members edit")
	id := fs.Int64("id", 0, "member id (required)")
	input := memberFlags(fs, true)
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id <= 0 {
		return usageError("members edit: -id is required")
	}

	current, err := a.Factory.Services.Member.Get(ctx, *id)
	if err != nil {
		return err
	}

	member, err := a.Factory.Services.Member.Update(ctx, *id, editInput(fs, input, current))
	if err != nil {
		return err
	}

	if a.json {
		return a.writeJSON(member)
	}
	a.printf("Member %d updated\n", member.ID)
	return nil
}

func (a *App) deleteMember(ctx context.Context, args []string) error {
	fs := a.flagSet("members delete")
	id := fs.Int64("id", 0, "member id (required)")
	yes := fs.Bool("yes", false, "confirm deleting the member and all of their visits")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id <= 0 {
		return usageError("members delete: -id is required")
	}
	if !*yes {
		return usageError("members delete: this removes the member and all of their visits; pass -yes to confirm")
	}

	if err := a.Factory.Services.Member.Delete(ctx, *id); err != nil {
		return err
	}

	a.printf("Member %d deleted\n", *id)
	return nil
}

func (a *App) renewMember(ctx context.Context, args []string) error {
	fs := a.flagSet("members renew")
	id := fs.Int64("id", 0, "member id (required)")
	input := dto.RenewMembershipInput{}
	fs.StringVar(&input.MembershipType, "type", "", "new membership type (default current type)")
	fs.StringVar(&input.Amount, "amount", "", "renewal amount (required)")
	fs.StringVar(&input.PaymentMethod, "method", "Cash", "Cash, M-Pesa, Bank Transfer or Card")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id <= 0 {
		return usageError("members renew: -id is required")
	}

	member, err := a.Factory.Services.Member.Renew(ctx, *id, input)
	if err != nil {
		return err
	}

	if a.json {
		return a.writeJSON(member)
	}
	a.printf("Membership renewed: %s, %s until %s\n", member.Name, member.MembershipType, member.EndDate)
	return nil
}
