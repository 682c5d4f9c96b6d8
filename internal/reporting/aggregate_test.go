package reporting

import (
	"testing"
	"time"

	"github.com/sjperalta/clinic-billing-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 10, 0, 0, 0, time.UTC)
}

func paid(amount int64, mode string, at time.Time) models.Receipt {
	return models.Receipt{TenantID: "clinic-1", TotalAmount: amount, IsPaid: true, PaymentMode: mode, ReceiptDate: at}
}

func unpaid(amount int64, at time.Time) models.Receipt {
	return models.Receipt{TenantID: "clinic-1", TotalAmount: amount, PaymentMode: models.PaymentModeUnpaid, ReceiptDate: at}
}

func monthRange(t *testing.T, year, month int) DateRange {
	t.Helper()
	p, err := NewResolver(time.UTC).Resolve(Selector{Mode: ModeMonth, Year: year, Month: month})
	require.NoError(t, err)
	return p.Current
}

func TestSummarizeRevenueScenarioA(t *testing.T) {
	receipts := []models.Receipt{
		paid(500, models.PaymentModeCash, day(2024, 3, 1)),
		unpaid(300, day(2024, 3, 2)),
	}

	s := SummarizeRevenue(receipts)

	assert.Equal(t, int64(500), s.Collected)
	assert.Equal(t, int64(300), s.Pending)
	assert.Equal(t, 2, s.ReceiptCount)
	assert.Equal(t, 1, s.PaidCount)
	assert.Equal(t, 1, s.PendingCount)
	assert.Equal(t, int64(500), s.AverageReceipt)

	modes := PaymentModeBreakdown(receipts)
	assert.Equal(t, []models.PaymentModeShare{{Mode: "cash", Count: 1, Amount: 500, Percentage: 100}}, modes)
}

func TestSummarizeRevenueEmpty(t *testing.T) {
	s := SummarizeRevenue(nil)
	assert.Equal(t, models.RevenueSummary{}, s)

	modes := PaymentModeBreakdown([]models.Receipt{unpaid(100, day(2024, 3, 2))})
	assert.NotNil(t, modes)
	assert.Empty(t, modes)
}

func TestSummarizeRevenueTracksDiscounts(t *testing.T) {
	r := paid(900, models.PaymentModeCard, day(2024, 3, 3))
	r.DiscountAmount = 100

	s := SummarizeRevenue([]models.Receipt{r, paid(600, models.PaymentModeCash, day(2024, 3, 4))})

	assert.Equal(t, int64(100), s.Discounts)
	assert.Equal(t, int64(750), s.AverageReceipt)
}

func TestPaymentModeBreakdownOrderingAndNormalization(t *testing.T) {
	receipts := []models.Receipt{
		paid(100, models.PaymentModeUPI, day(2024, 3, 1)),
		paid(100, models.PaymentModeCash, day(2024, 3, 1)),
		paid(100, models.PaymentModeCard, day(2024, 3, 2)),
		paid(50, "", day(2024, 3, 2)),
		unpaid(1000, day(2024, 3, 2)),
	}

	modes := PaymentModeBreakdown(receipts)

	require.Len(t, modes, 4)
	assert.Equal(t, "card", modes[0].Mode)
	assert.Equal(t, "cash", modes[1].Mode)
	assert.Equal(t, "upi", modes[2].Mode)
	assert.Equal(t, "other", modes[3].Mode)

	var sum int64
	for _, m := range modes {
		sum += m.Percentage
	}
	assert.Equal(t, int64(100), sum)
}

func TestPaymentModeBreakdownSharesSumToHundred(t *testing.T) {
	receipts := []models.Receipt{
		paid(1, models.PaymentModeCash, day(2024, 3, 1)),
		paid(1, models.PaymentModeUPI, day(2024, 3, 1)),
		paid(3, models.PaymentModeCard, day(2024, 3, 2)),
		paid(3, models.PaymentModeOther, day(2024, 3, 2)),
	}

	modes := PaymentModeBreakdown(receipts)

	require.Len(t, modes, 4)
	got := map[string]int64{}
	var sum int64
	for _, m := range modes {
		got[m.Mode] = m.Percentage
		sum += m.Percentage
	}
	assert.Equal(t, int64(100), sum)
	assert.Equal(t, map[string]int64{"card": 38, "other": 38, "cash": 12, "upi": 12}, got)
}

func TestCollectionSeriesDailyCompleteness(t *testing.T) {
	rng := monthRange(t, 2024, 2)
	receipts := []models.Receipt{
		paid(500, models.PaymentModeCash, day(2024, 2, 1)),
		paid(250, models.PaymentModeUPI, day(2024, 2, 29)),
		unpaid(300, day(2024, 2, 29)),
	}

	series := CollectionSeries(receipts, rng, models.GranularityDay, time.UTC)

	require.Len(t, series, 29)
	assert.Equal(t, "2024-02-01", series[0].Date)
	assert.Equal(t, "2024-02-29", series[28].Date)
	assert.Equal(t, int64(250), series[28].Revenue)
	assert.Equal(t, int64(300), series[28].PendingAmount)
	assert.Equal(t, 2, series[28].ReceiptCount)
	assert.Equal(t, models.CollectionPoint{Date: "2024-02-15"}, series[14])

	var total int64
	for _, p := range series {
		total += p.Revenue
	}
	assert.Equal(t, SummarizeRevenue(receipts).Collected, total)
}

func TestCollectionSeriesMonthly(t *testing.T) {
	p, err := NewResolver(time.UTC).Resolve(Selector{Mode: ModeYear, Year: 2024})
	require.NoError(t, err)

	series := CollectionSeries([]models.Receipt{
		paid(100, models.PaymentModeCash, day(2024, 1, 31)),
		paid(200, models.PaymentModeCash, day(2024, 12, 1)),
	}, p.Current, models.GranularityMonth, time.UTC)

	require.Len(t, series, 12)
	assert.Equal(t, "2024-01", series[0].Date)
	assert.Equal(t, int64(100), series[0].Revenue)
	assert.Equal(t, "2024-12", series[11].Date)
	assert.Equal(t, int64(200), series[11].Revenue)
}

func TestTopRevenueDaysTieBreak(t *testing.T) {
	series := []models.CollectionPoint{
		{Date: "2024-03-01", Revenue: 100},
		{Date: "2024-03-02", Revenue: 300},
		{Date: "2024-03-03", Revenue: 100},
		{Date: "2024-03-04", Revenue: 300},
	}

	top := TopRevenueDays(series, 3)

	require.Len(t, top, 3)
	assert.Equal(t, "2024-03-02", top[0].Date)
	assert.Equal(t, "2024-03-04", top[1].Date)
	assert.Equal(t, "2024-03-01", top[2].Date)
	assert.Equal(t, "2024-03-01", series[0].Date, "input must not be reordered")
}

func TestTopServices(t *testing.T) {
	first := paid(700, models.PaymentModeCash, day(2024, 3, 1))
	first.LineItems = []models.LineItem{{Description: "Consultation", Amount: 500}, {Description: " X-Ray ", Amount: 200}}
	second := paid(500, models.PaymentModeCash, day(2024, 3, 2))
	second.LineItems = []models.LineItem{{Description: "Consultation", Amount: 500}}
	open := unpaid(900, day(2024, 3, 2))
	open.LineItems = []models.LineItem{{Description: "Surgery", Amount: 900}}

	top := TopServices([]models.Receipt{first, second, open}, 0)

	assert.Equal(t, []models.ServiceRevenue{
		{Service: "Consultation", Count: 2, Revenue: 1000},
		{Service: "X-Ray", Count: 1, Revenue: 200},
	}, top)
}

func TestExpenseBreakdown(t *testing.T) {
	expenses := []models.Expense{
		{Category: models.ExpenseCategorySupplies, Amount: 200},
		{Category: models.ExpenseCategoryRent, Amount: 1200},
		{Category: models.ExpenseCategorySupplies, Amount: 300},
		{Category: models.ExpenseCategoryUtilities, Amount: 500},
	}

	s := ExpenseBreakdown(expenses)

	assert.Equal(t, int64(2200), s.Total)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, []models.CategoryTotal{
		{Category: "rent", Total: 1200, Count: 1},
		{Category: "supplies", Total: 500, Count: 2},
		{Category: "utilities", Total: 500, Count: 1},
	}, s.ByCategory)
}

func TestFilterReceiptsKeepsRangeBounds(t *testing.T) {
	rng := monthRange(t, 2024, 3)
	receipts := []models.Receipt{
		paid(1, models.PaymentModeCash, rng.Start),
		paid(2, models.PaymentModeCash, rng.End),
		paid(3, models.PaymentModeCash, rng.End.Add(time.Nanosecond)),
	}

	kept := FilterReceipts(receipts, rng)

	require.Len(t, kept, 2)
	assert.Equal(t, int64(1), kept[0].TotalAmount)
	assert.Equal(t, int64(2), kept[1].TotalAmount)
}
