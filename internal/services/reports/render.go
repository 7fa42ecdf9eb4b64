package reports

import (
	"fmt"
	"strings"

	"github.com/Jidetireni/gym-manager/internal/dto"
	"github.com/Jidetireni/gym-manager/internal/helpers"
	"github.com/shopspring/decimal"
)

const ruleWidth = 63

var (
	heavyRule = strings.Repeat("═", ruleWidth)
	lightRule = strings.Repeat("─", ruleWidth)
)

func (r *Report) money(amount decimal.Decimal) string {
	return helpers.FormatMoney(r.Config.Gym.Currency, amount)
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n%s\n%s\n", title, lightRule)
}

// RenderMemberReport lays the report out as plain text. At most MaxReportVisits
// visits are listed; the rest are summarised in a trailing count.
func (r *Report) RenderMemberReport(report *dto.MemberReport) string {
	var b strings.Builder
	m := report.Member

	fmt.Fprintf(&b, "%s\n%s\n%s\n", heavyRule, centre("MEMBER PROFILE REPORT"), heavyRule)

	section(&b, "BASIC INFORMATION")
	fmt.Fprintf(&b, "%-26s%s\n", "Name:", m.Name)
	fmt.Fprintf(&b, "%-26s%s\n", "Phone:", orNotProvided(m.Phone))
	fmt.Fprintf(&b, "%-26s%s\n", "Email:", orNotProvided(m.Email))
	fmt.Fprintf(&b, "%-26s%s\n", "Address:", orNotProvided(m.Address))

	section(&b, "MEMBERSHIP DETAILS")
	fmt.Fprintf(&b, "%-26s%s\n", "Membership Type:", m.MembershipType)
	fmt.Fprintf(&b, "%-26s%s\n", "Start Date:", m.StartDate)
	fmt.Fprintf(&b, "%-26s%s\n", "End Date:", m.EndDate)
	fmt.Fprintf(&b, "%-26s%s\n", "Status:", m.Status)
	fmt.Fprintf(&b, "%-26s%s\n", "Registration Date:", m.RegistrationDate)

	section(&b, "FINANCIAL SUMMARY")
	fmt.Fprintf(&b, "%-26s%s (%s)\n", "Initial Payment:", r.money(report.InitialPayment), m.PaymentMethod)
	fmt.Fprintf(&b, "%-26s%s\n", "Additional Payments:", r.money(report.AdditionalPayments))
	fmt.Fprintf(&b, "%-26s%s\n", "Total Paid:", r.money(report.TotalPaid))

	section(&b, "MEMBERSHIP ANALYTICS")
	fmt.Fprintf(&b, "%-26s%d days\n", "Days Since Registration:", report.DaysSinceRegistration)
	fmt.Fprintf(&b, "%-26s%d\n", "Total Visits:", report.TotalVisits)
	fmt.Fprintf(&b, "%-26s%d\n", "Visits with Payment:", report.VisitsWithPayment)
	switch {
	case report.DaysUntilExpiry != nil:
		fmt.Fprintf(&b, "%-26s%d days\n", "Days Until Expiry:", *report.DaysUntilExpiry)
	case report.DaysOverdue != nil:
		fmt.Fprintf(&b, "%-26s%d days\n", "Days Overdue:", *report.DaysOverdue)
	}

	section(&b, fmt.Sprintf("VISIT HISTORY (%d total visits)", report.TotalVisits))
	if len(report.Visits) == 0 {
		b.WriteString("No visits recorded yet.\n")
	}
	for i, visit := range report.Visits {
		if i == MaxReportVisits {
			fmt.Fprintf(&b, "\n... and %d more visits\n", len(report.Visits)-MaxReportVisits)
			break
		}

		payment := "No payment"
		if visit.PaymentAmount.IsPositive() {
			payment = fmt.Sprintf("%s (%s)", r.money(visit.PaymentAmount), visit.PaymentMethod)
		}
		notes := ""
		if visit.Notes != "" {
			notes = " - " + visit.Notes
		}
		fmt.Fprintf(&b, "%2d. %s | %s%s\n", i+1, helpers.DisplayTimestamp(visit.VisitDate), payment, notes)
	}

	fmt.Fprintf(&b, "\n%s\nReport generated on: %s\n%s\n", heavyRule, helpers.DisplayTimestamp(report.GeneratedAt), heavyRule)

	return b.String()
}

func (r *Report) RenderDashboard(metrics *dto.DashboardMetrics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n", r.Config.Gym.Name, lightRule)
	fmt.Fprintf(&b, "%-22s%d\n", "Total Members:", metrics.TotalMembers)
	fmt.Fprintf(&b, "%-22s%d\n", "Active Members:", metrics.ActiveMembers)
	fmt.Fprintf(&b, "%-22s%d\n", "Expiring This Week:", metrics.ExpiringThisWeek)
	fmt.Fprintf(&b, "%-22s%d\n", "Expired Members:", metrics.ExpiredMembers)
	fmt.Fprintf(&b, "%-22s%s\n", "Today's Revenue:", r.money(metrics.TodayRevenue))
	fmt.Fprintf(&b, "%-22s%s\n", "Total Revenue:", r.money(metrics.TotalRevenue))
	fmt.Fprintf(&b, "%-22s%s\n", "This Month Revenue:", r.money(metrics.MonthRevenue))
	fmt.Fprintf(&b, "%-22s%d\n", "Today's Visits:", metrics.TodayVisits)
	fmt.Fprintf(&b, "%-22s%.1f\n", "Avg Daily Visits:", metrics.AverageDailyVisits)
	fmt.Fprintf(&b, "%-22s%.1f%%\n", "Retention Rate:", metrics.RetentionRate)

	section(&b, "Today's Payments")
	for _, total := range metrics.TodayByMethod {
		fmt.Fprintf(&b, "%-22s%s\n", total.Method+":", r.money(total.Amount))
	}

	return b.String()
}

func (r *Report) RenderAlerts(alerts *dto.ExpiryAlerts) string {
	var b strings.Builder

	fmt.Fprintf(&b, "EXPIRED: %d | URGENT (0-3 days): %d | WARNING (4-7 days): %d\n",
		alerts.Expired, alerts.Urgent, alerts.Warning)

	if len(alerts.Rows) == 0 {
		b.WriteString("No memberships need attention.\n")
		return b.String()
	}

	b.WriteString(lightRule + "\n")
	for _, row := range alerts.Rows {
		fmt.Fprintf(&b, "%-8s %-26s %-14s %s %4d\n", row.Tier, row.Name, orNotProvided(row.Phone), row.EndDate, row.DaysLeft)
	}

	return b.String()
}

func centre(s string) string {
	pad := (ruleWidth - len([]rune(s))) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
