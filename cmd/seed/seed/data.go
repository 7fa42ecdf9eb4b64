package seed

// SeedMember is a demo member. Dates are offsets in days from the day the
// seeder runs, so the alert tiers always have something to show.
type SeedMember struct {
	Name           string
	Phone          string
	Email          string
	Address        string
	MembershipType string
	StartOffset    int
	AmountPaid     string
	PaymentMethod  string
	Status         string
	Visits         []SeedVisit
}

type SeedVisit struct {
	DayOffset     int
	Hour          int
	PaymentAmount string
	PaymentMethod string
	Notes         string
}

var Members = []SeedMember{
	{
		Name:           "Jane Wanjiru",
		Phone:          "+254712000001",
		Email:          "jane.wanjiru@example.com",
		Address:        "Ngong Road, Nairobi",
		MembershipType: "Monthly",
		StartOffset:    -32,
		AmountPaid:     "3000",
		PaymentMethod:  "M-Pesa",
		Visits: []SeedVisit{
			{DayOffset: -30, Hour: 7},
			{DayOffset: -20, Hour: 18, PaymentAmount: "200", PaymentMethod: "Cash", Notes: "towel and locker"},
			{DayOffset: -3, Hour: 6},
			{DayOffset: 0, Hour: 7},
		},
	},
	{
		Name:           "Brian Otieno",
		Phone:          "+254712000002",
		Email:          "brian.otieno@example.com",
		MembershipType: "Monthly",
		StartOffset:    -28,
		AmountPaid:     "3000",
		PaymentMethod:  "Cash",
		Visits: []SeedVisit{
			{DayOffset: -27, Hour: 17},
			{DayOffset: -1, Hour: 19, PaymentAmount: "150", PaymentMethod: "M-Pesa", Notes: "protein shake"},
		},
	},
	{
		Name:           "Amina Hassan",
		Phone:          "+254712000003",
		MembershipType: "Monthly",
		StartOffset:    -25,
		AmountPaid:     "3000",
		PaymentMethod:  "Card",
	},
	{
		Name:           "Peter Kamau",
		Phone:          "+254712000004",
		Email:          "peter.kamau@example.com",
		Address:        "Thika Road, Nairobi",
		MembershipType: "Quarterly",
		StartOffset:    -10,
		AmountPaid:     "8000",
		PaymentMethod:  "Bank Transfer",
		Visits: []SeedVisit{
			{DayOffset: -9, Hour: 6},
			{DayOffset: -2, Hour: 6},
			{DayOffset: 0, Hour: 9, PaymentAmount: "500", PaymentMethod: "Card", Notes: "personal training"},
		},
	},
	{
		Name:           "Grace Njeri",
		Phone:          "+254712000005",
		MembershipType: "Daily",
		StartOffset:    0,
		AmountPaid:     "300",
		PaymentMethod:  "Cash",
		Visits: []SeedVisit{
			{DayOffset: 0, Hour: 10},
		},
	},
	{
		Name:           "Samuel Mwangi",
		Phone:          "+254712000006",
		Email:          "samuel.mwangi@example.com",
		MembershipType: "Yearly",
		StartOffset:    -200,
		AmountPaid:     "30000",
		PaymentMethod:  "Bank Transfer",
		Status:         "Inactive",
	},
}
