package reporting

import (
	"fmt"
	"strconv"

	"github.com/sjperalta/clinic-billing-api/internal/models"
)

// Section titles, in export order
const (
	SectionRevenue      = "Revenue Summary"
	SectionPaymentModes = "Payment Modes"
	SectionTopServices  = "Top Services"
	SectionExpenses     = "Expenses"
	SectionProfitLoss   = "Profit/Loss"
	SectionBudget       = "Budget"
)

// Flatten converts a report into ordered label/value sections for tabular export.
// The Budget section is omitted when the report has no target.
func Flatten(report models.Report) []models.ExportSection {
	sections := make([]models.ExportSection, 0, 6)

	rev := report.Revenue
	sections = append(sections, models.ExportSection{
		Title: SectionRevenue,
		Rows: []models.ExportRow{
			row("Period", report.Period.Label),
			row("Collected", amount(rev.Collected)),
			row("Pending", amount(rev.Pending)),
			row("Discounts", amount(rev.Discounts)),
			row("Receipts", strconv.Itoa(rev.ReceiptCount)),
			row("Paid Receipts", strconv.Itoa(rev.PaidCount)),
			row("Pending Receipts", strconv.Itoa(rev.PendingCount)),
			row("Average Receipt", amount(rev.AverageReceipt)),
			row("Previous Period ("+report.Period.PreviousLabel+")", amount(rev.PreviousCollected)),
			row("Growth", percent(rev.GrowthPercentage)),
		},
	})

	modes := make([]models.ExportRow, 0, len(report.PaymentModes))
	for _, m := range report.PaymentModes {
		modes = append(modes, row(m.Mode, fmt.Sprintf("%d (%s, %d receipts)", m.Amount, percent(m.Percentage), m.Count)))
	}
	sections = append(sections, models.ExportSection{Title: SectionPaymentModes, Rows: modes})

	services := make([]models.ExportRow, 0, len(report.TopServices))
	for _, s := range report.TopServices {
		services = append(services, row(s.Service, fmt.Sprintf("%d (%d items)", s.Revenue, s.Count)))
	}
	sections = append(sections, models.ExportSection{Title: SectionTopServices, Rows: services})

	expenses := make([]models.ExportRow, 0, len(report.Expenses.ByCategory)+1)
	for _, c := range report.Expenses.ByCategory {
		expenses = append(expenses, row(c.Category, fmt.Sprintf("%d (%d entries)", c.Total, c.Count)))
	}
	expenses = append(expenses, row("Total", amount(report.Expenses.Total)))
	sections = append(sections, models.ExportSection{Title: SectionExpenses, Rows: expenses})

	pl := report.ProfitLoss
	result := "Loss"
	if pl.IsProfit {
		result = "Profit"
	}
	sections = append(sections, models.ExportSection{
		Title: SectionProfitLoss,
		Rows: []models.ExportRow{
			row("Revenue", amount(pl.Revenue)),
			row("Expenses", amount(pl.Expenses)),
			row("Net Profit", amount(pl.NetProfit)),
			row("Profit Margin", percent(pl.ProfitMargin)),
			row("Result", result),
		},
	})

	if b := report.Budget; b != nil {
		rows := []models.ExportRow{
			row("Target Revenue", amount(b.TargetRevenue)),
			row("Collected", amount(b.Collected)),
			row("Achieved", percent(b.Achieved)),
			row("Revenue Gap", amount(b.RevenueGap)),
		}
		if b.TargetExpenses != nil {
			rows = append(rows, row("Target Expenses", amount(*b.TargetExpenses)))
			rows = append(rows, row("Actual Expenses", amount(b.ActualExpenses)))
		}
		if b.ExpenseUsage != nil {
			rows = append(rows, row("Expense Usage", percent(*b.ExpenseUsage)))
		}
		sections = append(sections, models.ExportSection{Title: SectionBudget, Rows: rows})
	}

	return sections
}

func row(label, value string) models.ExportRow {
	return models.ExportRow{Label: label, Value: value}
}

func amount(v int64) string {
	return strconv.FormatInt(v, 10)
}

func percent(v int64) string {
	return strconv.FormatInt(v, 10) + "%"
}
