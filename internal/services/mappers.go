package services

import (
	"time"

	"github.com/Jidetireni/gym-manager/internal/dto"
	"github.com/Jidetireni/gym-manager/internal/helpers"
	"github.com/Jidetireni/gym-manager/internal/membership"
	"github.com/Jidetireni/gym-manager/internal/repository"
)

// MemberFromRow maps a stored member to its read model, deriving the expiry
// state as of now. Rows with an unparseable end date carry no expiry.
func MemberFromRow(member repository.Member, now time.Time) *dto.Member {
	out := &dto.Member{
		ID:               member.ID,
		Name:             member.Name,
		Phone:            member.Phone.String,
		Email:            member.Email.String,
		Address:          member.Address.String,
		MembershipType:   member.MembershipType.String,
		StartDate:        member.StartDate.String(),
		EndDate:          member.EndDate.String(),
		AmountPaid:       member.AmountPaid.Decimal,
		PaymentMethod:    member.PaymentMethod.String,
		Status:           member.Status.String,
		RegistrationDate: member.RegistrationDate.String(),
	}

	if end, err := helpers.ParseDate(out.EndDate); err == nil {
		state, daysLeft := membership.ClassifyExpiry(end, now)
		out.Expiry = state
		out.DaysLeft = &daysLeft
	}

	return out
}
