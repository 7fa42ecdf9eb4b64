package repository

import "database/sql"

type Member struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	Phone            sql.NullString `json:"phone"`
	Email            sql.NullString `json:"email"`
	Address          sql.NullString `json:"address"`
	MembershipType   sql.NullString `json:"membership_type"`
	StartDate        DateText       `json:"start_date"`
	EndDate          DateText       `json:"end_date"`
	AmountPaid       Amount         `json:"amount_paid"`
	PaymentMethod    sql.NullString `json:"payment_method"`
	Status           sql.NullString `json:"status"`
	RegistrationDate DateText       `json:"registration_date"`
}

type Visit struct {
	ID            int64          `json:"id"`
	MemberID      int64          `json:"member_id"`
	VisitDate     DateText       `json:"visit_date"`
	PaymentAmount Amount         `json:"payment_amount"`
	PaymentMethod sql.NullString `json:"payment_method"`
	Notes         sql.NullString `json:"notes"`
}

// PopulatedVisit is a visit joined with the owning member's name.
type PopulatedVisit struct {
	Visit
	MemberName string `json:"member_name"`
}

type MethodTotal struct {
	Method sql.NullString `json:"method"`
	Amount Amount         `json:"amount"`
}

// PaymentEntry is one row of the payment history: a visit payment or a
// registration fee.
type PaymentEntry struct {
	Date          DateText       `json:"date"`
	MemberName    string         `json:"member_name"`
	Amount        Amount         `json:"amount"`
	PaymentMethod sql.NullString `json:"payment_method"`
	Notes         sql.NullString `json:"notes"`
}
