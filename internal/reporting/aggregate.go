package reporting

import (
	"sort"
	"strings"
	"time"

	"github.com/sjperalta/clinic-billing-api/internal/models"
)

// DefaultTopN is the number of entries kept by ranking aggregations when none is requested
const DefaultTopN = 5

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// FilterReceipts keeps the receipts dated inside rng, preserving order
func FilterReceipts(receipts []models.Receipt, rng DateRange) []models.Receipt {
	out := make([]models.Receipt, 0, len(receipts))
	for _, r := range receipts {
		if rng.Contains(r.ReceiptDate) {
			out = append(out, r)
		}
	}
	return out
}

// FilterExpenses keeps the expenses dated inside rng, preserving order
func FilterExpenses(expenses []models.Expense, rng DateRange) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if rng.Contains(e.ExpenseDate) {
			out = append(out, e)
		}
	}
	return out
}

// SummarizeRevenue computes counts and collected/pending/discount sums.
// AverageReceipt is collected / paid count, 0 when nothing was paid.
func SummarizeRevenue(receipts []models.Receipt) models.RevenueSummary {
	var s models.RevenueSummary
	for _, r := range receipts {
		s.ReceiptCount++
		s.Discounts += r.DiscountAmount
		if r.IsPaid {
			s.PaidCount++
			s.Collected += r.TotalAmount
		} else {
			s.PendingCount++
			s.Pending += r.TotalAmount
		}
	}
	s.AverageReceipt = divideRounded(s.Collected, int64(s.PaidCount))
	return s
}

// PaymentModeBreakdown groups paid receipts by payment mode.
// Ordered by amount desc, then mode name. Percentages are largest-remainder shares summing
// to exactly 100. Empty when there are no paid receipts.
func PaymentModeBreakdown(receipts []models.Receipt) []models.PaymentModeShare {
	byMode := make(map[string]*models.PaymentModeShare)
	for _, r := range receipts {
		if !r.IsPaid {
			continue
		}
		mode := r.PaymentMode
		if mode == "" {
			mode = models.PaymentModeOther
		}
		share, ok := byMode[mode]
		if !ok {
			share = &models.PaymentModeShare{Mode: mode}
			byMode[mode] = share
		}
		share.Count++
		share.Amount += r.TotalAmount
	}

	out := make([]models.PaymentModeShare, 0, len(byMode))
	for _, share := range byMode {
		out = append(out, *share)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Mode < out[j].Mode
	})

	amounts := make([]int64, len(out))
	for i := range out {
		amounts[i] = out[i].Amount
	}
	for i, pct := range PercentShares(amounts) {
		out[i].Percentage = pct
	}
	return out
}

// CollectionSeries buckets receipts into one point per day (GranularityDay) or month
// (GranularityMonth) of rng, including buckets with no activity.
// Revenue counts paid receipts, PendingAmount unpaid ones, ReceiptCount all of them.
func CollectionSeries(receipts []models.Receipt, rng DateRange, granularity string, loc *time.Location) []models.CollectionPoint {
	if loc == nil {
		loc = time.UTC
	}
	layout, step := dayLayout, func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	if granularity == models.GranularityMonth {
		layout, step = monthLayout, func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
	}

	points := make([]models.CollectionPoint, 0, 31)
	index := make(map[string]int)
	for cursor := rng.Start.In(loc); !cursor.After(rng.End); cursor = step(cursor) {
		key := cursor.Format(layout)
		index[key] = len(points)
		points = append(points, models.CollectionPoint{Date: key})
	}

	for _, r := range receipts {
		i, ok := index[r.ReceiptDate.In(loc).Format(layout)]
		if !ok {
			continue
		}
		points[i].ReceiptCount++
		if r.IsPaid {
			points[i].Revenue += r.TotalAmount
		} else {
			points[i].PendingAmount += r.TotalAmount
		}
	}
	return points
}

// TopRevenueDays returns the n highest-revenue points, ties broken by the earlier date.
// n <= 0 uses DefaultTopN. The input series is not modified.
func TopRevenueDays(series []models.CollectionPoint, n int) []models.CollectionPoint {
	if n <= 0 {
		n = DefaultTopN
	}
	ranked := make([]models.CollectionPoint, len(series))
	copy(ranked, series)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].Date < ranked[j].Date
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopServices ranks the line items of paid receipts by billed amount, grouped by description.
// n <= 0 uses DefaultTopN.
func TopServices(receipts []models.Receipt, n int) []models.ServiceRevenue {
	if n <= 0 {
		n = DefaultTopN
	}
	byService := make(map[string]*models.ServiceRevenue)
	for _, r := range receipts {
		if !r.IsPaid {
			continue
		}
		for _, item := range r.LineItems {
			name := strings.TrimSpace(item.Description)
			if name == "" {
				name = "Other"
			}
			svc, ok := byService[name]
			if !ok {
				svc = &models.ServiceRevenue{Service: name}
				byService[name] = svc
			}
			svc.Count++
			svc.Revenue += item.Amount
		}
	}

	out := make([]models.ServiceRevenue, 0, len(byService))
	for _, svc := range byService {
		out = append(out, *svc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Service < out[j].Service
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ExpenseBreakdown groups expenses by category, ordered by total desc then category name
func ExpenseBreakdown(expenses []models.Expense) models.ExpenseSummary {
	byCategory := make(map[string]*models.CategoryTotal)
	summary := models.ExpenseSummary{}
	for _, e := range expenses {
		cat, ok := byCategory[e.Category]
		if !ok {
			cat = &models.CategoryTotal{Category: e.Category}
			byCategory[e.Category] = cat
		}
		cat.Total += e.Amount
		cat.Count++
		summary.Total += e.Amount
		summary.Count++
	}

	summary.ByCategory = make([]models.CategoryTotal, 0, len(byCategory))
	for _, cat := range byCategory {
		summary.ByCategory = append(summary.ByCategory, *cat)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		a, b := summary.ByCategory[i], summary.ByCategory[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Category < b.Category
	})
	return summary
}
