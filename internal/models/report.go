package models

import (
	"time"
)

// Report type constants
const (
	ReportTypeMonthly = "monthly"
	ReportTypeYearly  = "yearly"
)

// Series granularity constants
const (
	GranularityDay   = "day"
	GranularityMonth = "month"
)

// Report is the assembled financial report for one tenant and period
type Report struct {
	TenantID              string             `json:"tenant_id"`
	ReportType            string             `json:"report_type"`
	Period                PeriodInfo         `json:"period"`
	Revenue               RevenueSummary     `json:"revenue"`
	PaymentModes          []PaymentModeShare `json:"payment_modes"`
	CollectionGranularity string             `json:"collection_granularity"`
	DailyCollection       []CollectionPoint  `json:"daily_collection"`
	TopDays               []CollectionPoint  `json:"top_days"`
	TopServices           []ServiceRevenue   `json:"top_services"`
	Expenses              ExpenseSummary     `json:"expenses"`
	ProfitLoss            ProfitLoss         `json:"profit_loss"`
	Budget                *BudgetStatus      `json:"budget"`
	// IsFuture is set when the period starts after the request time; clients disable forward navigation on it
	IsFuture              bool               `json:"is_future"`
}

// PeriodInfo describes the resolved reporting window and its comparison window
type PeriodInfo struct {
	Label         string    `json:"label"`
	Year          int       `json:"year"`
	Month         int       `json:"month,omitempty"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	PreviousLabel string    `json:"previous_label"`
	PreviousStart time.Time `json:"previous_start"`
	PreviousEnd   time.Time `json:"previous_end"`
}

// RevenueSummary holds the receipt rollup for a period
type RevenueSummary struct {
	ReceiptCount      int   `json:"receipt_count"`
	PaidCount         int   `json:"paid_count"`
	PendingCount      int   `json:"pending_count"`
	Collected         int64 `json:"collected"`
	Pending           int64 `json:"pending"`
	Discounts         int64 `json:"discounts"`
	AverageReceipt    int64 `json:"average_receipt"`
	PreviousCollected int64 `json:"previous_collected"`
	GrowthPercentage  int64 `json:"growth_percentage"`
}

// PaymentModeShare is the collected amount for one payment mode
type PaymentModeShare struct {
	Mode       string `json:"mode"`
	Count      int    `json:"count"`
	Amount     int64  `json:"amount"`
	Percentage int64  `json:"percentage"`
}

// CollectionPoint is one bucket of the collection series (a day or a month)
type CollectionPoint struct {
	Date          string `json:"date"`
	Revenue       int64  `json:"revenue"`
	ReceiptCount  int    `json:"receipt_count"`
	PendingAmount int64  `json:"pending_amount"`
}

// ServiceRevenue is the paid revenue attributed to one billed service
type ServiceRevenue struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
	Revenue int64  `json:"revenue"`
}

// ExpenseSummary holds the expense rollup for a period
type ExpenseSummary struct {
	Total      int64           `json:"total"`
	Count      int             `json:"count"`
	ByCategory []CategoryTotal `json:"by_category"`
}

// CategoryTotal is the expense total for one category
type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
	Count    int    `json:"count"`
}

// ProfitLoss is the profit and loss statement for a period
type ProfitLoss struct {
	Revenue      int64 `json:"revenue"`
	Expenses     int64 `json:"expenses"`
	NetProfit    int64 `json:"net_profit"`
	ProfitMargin int64 `json:"profit_margin"`
	IsProfit     bool  `json:"is_profit"`
}

// BudgetStatus compares collected revenue against a configured target.
// A nil *BudgetStatus means no target is configured for the period.
type BudgetStatus struct {
	TargetRevenue    int64  `json:"target_revenue"`
	Collected        int64  `json:"collected"`
	Achieved         int64  `json:"achieved"`
	RevenueGap       int64  `json:"revenue_gap"`
	Exceeded         bool   `json:"exceeded"`
	TargetExpenses   *int64 `json:"target_expenses,omitempty"`
	ActualExpenses   int64  `json:"actual_expenses"`
	ExpenseUsage     *int64 `json:"expense_usage,omitempty"`
	ExpenseHeadroom  *int64 `json:"expense_headroom,omitempty"`
	MonthsConfigured int    `json:"months_configured"`
}

// AnalyticsBundle is the trend dashboard payload: a monthly trend plus current-month breakdowns
type AnalyticsBundle struct {
	TenantID         string             `json:"tenant_id"`
	Year             int                `json:"year"`
	Month            int                `json:"month"`
	MonthsBack       int                `json:"months_back"`
	Trend            []TrendPoint       `json:"trend"`
	Revenue          RevenueSummary     `json:"revenue"`
	PaymentModes     []PaymentModeShare `json:"payment_modes"`
	ExpenseBreakdown []CategoryTotal    `json:"expense_breakdown"`
	ProfitLoss       ProfitLoss         `json:"profit_loss"`
	Budget           *BudgetStatus      `json:"budget"`
	IsFuture         bool               `json:"is_future"`
}

// TrendPoint is one month of the analytics trend
type TrendPoint struct {
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	Label         string `json:"label"`
	Collected     int64  `json:"collected"`
	Pending       int64  `json:"pending"`
	Expenses      int64  `json:"expenses"`
	NetProfit     int64  `json:"net_profit"`
	ReceiptCount  int    `json:"receipt_count"`
	TargetRevenue *int64 `json:"target_revenue"`
}

// ExportSection is a titled group of label/value rows for flat tabular export
type ExportSection struct {
	Title string      `json:"title"`
	Rows  []ExportRow `json:"rows"`
}

// ExportRow is a single label/value pair
type ExportRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
