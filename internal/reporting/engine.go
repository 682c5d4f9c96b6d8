package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sjperalta/clinic-billing-api/internal/models"
	"golang.org/x/sync/errgroup"
)

// RecordStore is the read-only view of the tenant's financial records the engine depends on.
// FindBudgetTarget returns (nil, nil) when no target is configured.
type RecordStore interface {
	FindReceipts(ctx context.Context, tenantID string, rng DateRange) ([]models.Receipt, error)
	FindExpenses(ctx context.Context, tenantID string, rng DateRange) ([]models.Expense, error)
	FindBudgetTarget(ctx context.Context, tenantID string, year, month int) (*models.BudgetTarget, error)
	FindBudgetTargets(ctx context.Context, tenantID string, year int) ([]models.BudgetTarget, error)
}

var (
	ErrMissingTenant     = errors.New("tenant id is required")
	ErrInvalidReportType = errors.New("invalid report type")
)

// Analytics window limits
const (
	DefaultMonthsBack = 6
	MaxMonthsBack     = 24
)

// ReportRequest selects the report to compute. Month is ignored for yearly reports.
type ReportRequest struct {
	Type  string
	Year  int
	Month int
}

// Engine assembles reports from the record store. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	store    RecordStore
	resolver *Resolver
	timeout  time.Duration
	topN     int
}

// NewEngine creates a report engine. A zero timeout leaves the caller's deadline untouched.
func NewEngine(store RecordStore, resolver *Resolver, timeout time.Duration) *Engine {
	if resolver == nil {
		resolver = NewResolver(time.UTC)
	}
	return &Engine{
		store:    store,
		resolver: resolver,
		timeout:  timeout,
		topN:     DefaultTopN,
	}
}

// Resolver returns the period resolver used by the engine
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}

// SelectorFor maps a report type to the period selector it covers
func SelectorFor(req ReportRequest) (Selector, error) {
	switch req.Type {
	case models.ReportTypeMonthly:
		return Selector{Mode: ModeMonth, Year: req.Year, Month: req.Month}, nil
	case models.ReportTypeYearly:
		return Selector{Mode: ModeYear, Year: req.Year}, nil
	}
	return Selector{}, fmt.Errorf("%w: %q (expected monthly or yearly)", ErrInvalidReportType, req.Type)
}

// ComputeReport builds the report for one tenant and period. The store reads run
// concurrently; any failure or an expired deadline fails the whole report.
func (e *Engine) ComputeReport(ctx context.Context, tenantID string, req ReportRequest) (models.Report, error) {
	if tenantID == "" {
		return models.Report{}, ErrMissingTenant
	}
	sel, err := SelectorFor(req)
	if err != nil {
		return models.Report{}, err
	}
	period, err := e.resolver.Resolve(sel)
	if err != nil {
		return models.Report{}, err
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	var (
		receipts     []models.Receipt
		prevReceipts []models.Receipt
		expenses     []models.Expense
		targets      []models.BudgetTarget
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := e.store.FindReceipts(gctx, tenantID, period.Current)
		if err != nil {
			return fmt.Errorf("find receipts: %w", err)
		}
		receipts = FilterReceipts(rows, period.Current)
		return nil
	})
	g.Go(func() error {
		rows, err := e.store.FindReceipts(gctx, tenantID, period.Previous)
		if err != nil {
			return fmt.Errorf("find previous receipts: %w", err)
		}
		prevReceipts = FilterReceipts(rows, period.Previous)
		return nil
	})
	g.Go(func() error {
		rows, err := e.store.FindExpenses(gctx, tenantID, period.Current)
		if err != nil {
			return fmt.Errorf("find expenses: %w", err)
		}
		expenses = FilterExpenses(rows, period.Current)
		return nil
	})
	g.Go(func() error {
		found, err := e.findTargets(gctx, tenantID, period.Selector)
		if err != nil {
			return fmt.Errorf("find budget target: %w", err)
		}
		targets = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.Report{}, fmt.Errorf("compute report: %w", err)
	}

	return e.assemble(tenantID, req.Type, period, receipts, prevReceipts, expenses, targets), nil
}

func (e *Engine) findTargets(ctx context.Context, tenantID string, sel Selector) ([]models.BudgetTarget, error) {
	if sel.Mode == ModeYear {
		return e.store.FindBudgetTargets(ctx, tenantID, sel.Year)
	}
	target, err := e.store.FindBudgetTarget(ctx, tenantID, sel.Year, sel.Month)
	if err != nil || target == nil {
		return nil, err
	}
	return []models.BudgetTarget{*target}, nil
}

func (e *Engine) assemble(
	tenantID, reportType string,
	period Period,
	receipts, prevReceipts []models.Receipt,
	expenses []models.Expense,
	targets []models.BudgetTarget,
) models.Report {
	granularity := models.GranularityDay
	if period.Selector.Mode == ModeYear {
		granularity = models.GranularityMonth
	}

	revenue := SummarizeRevenue(receipts)
	revenue.PreviousCollected = SummarizeRevenue(prevReceipts).Collected
	revenue.GrowthPercentage = GrowthPercentage(revenue.Collected, revenue.PreviousCollected)

	series := CollectionSeries(receipts, period.Current, granularity, e.resolver.Location())
	expenseSummary := ExpenseBreakdown(expenses)

	return models.Report{
		TenantID:   tenantID,
		ReportType: reportType,
		Period: models.PeriodInfo{
			Label:         period.Label(),
			Year:          period.Selector.Year,
			Month:         period.Selector.Month,
			Start:         period.Current.Start,
			End:           period.Current.End,
			PreviousLabel: period.PreviousLabel(),
			PreviousStart: period.Previous.Start,
			PreviousEnd:   period.Previous.End,
		},
		Revenue:               revenue,
		PaymentModes:          PaymentModeBreakdown(receipts),
		CollectionGranularity: granularity,
		DailyCollection:       series,
		TopDays:               TopRevenueDays(series, e.topN),
		TopServices:           TopServices(receipts, e.topN),
		Expenses:              expenseSummary,
		ProfitLoss:            ProfitAndLoss(revenue.Collected, expenseSummary.Total),
		Budget:                BudgetProgress(targets, revenue.Collected, expenseSummary.Total),
	}
}

// ComputeAnalytics builds the trend dashboard bundle: monthsBack months ending at
// (year, month), plus the breakdowns of that last month. monthsBack 0 uses DefaultMonthsBack.
func (e *Engine) ComputeAnalytics(ctx context.Context, tenantID string, year, month, monthsBack int) (models.AnalyticsBundle, error) {
	if tenantID == "" {
		return models.AnalyticsBundle{}, ErrMissingTenant
	}
	if monthsBack == 0 {
		monthsBack = DefaultMonthsBack
	}
	if monthsBack < 1 || monthsBack > MaxMonthsBack {
		return models.AnalyticsBundle{}, fmt.Errorf("%w: months back %d outside 1-%d", ErrInvalidPeriod, monthsBack, MaxMonthsBack)
	}
	current, err := e.resolver.Resolve(Selector{Mode: ModeMonth, Year: year, Month: month})
	if err != nil {
		return models.AnalyticsBundle{}, err
	}

	// One extra leading month so the first trend month and the current month both have a predecessor
	months := TrailingMonths(year, month, monthsBack+1)
	span := e.resolver.Span(months[0], months[len(months)-1])

	years := make([]int, 0, 3)
	for _, m := range months {
		if len(years) == 0 || years[len(years)-1] != m.Year {
			years = append(years, m.Year)
		}
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	var (
		receipts []models.Receipt
		expenses []models.Expense
	)
	targetsByYear := make([][]models.BudgetTarget, len(years))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := e.store.FindReceipts(gctx, tenantID, span)
		if err != nil {
			return fmt.Errorf("find receipts: %w", err)
		}
		receipts = FilterReceipts(rows, span)
		return nil
	})
	g.Go(func() error {
		rows, err := e.store.FindExpenses(gctx, tenantID, span)
		if err != nil {
			return fmt.Errorf("find expenses: %w", err)
		}
		expenses = FilterExpenses(rows, span)
		return nil
	})
	for i, y := range years {
		i, y := i, y
		g.Go(func() error {
			rows, err := e.store.FindBudgetTargets(gctx, tenantID, y)
			if err != nil {
				return fmt.Errorf("find budget targets %d: %w", y, err)
			}
			targetsByYear[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.AnalyticsBundle{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.AnalyticsBundle{}, fmt.Errorf("compute analytics: %w", err)
	}

	targets := make(map[[2]int]models.BudgetTarget)
	for _, rows := range targetsByYear {
		for _, t := range rows {
			targets[[2]int{t.Year, t.Month}] = t
		}
	}

	trend := make([]models.TrendPoint, 0, monthsBack)
	for _, sel := range months[1:] {
		rng := e.resolver.Range(sel)
		rev := SummarizeRevenue(FilterReceipts(receipts, rng))
		exp := ExpenseBreakdown(FilterExpenses(expenses, rng))
		point := models.TrendPoint{
			Year:         sel.Year,
			Month:        sel.Month,
			Label:        selectorLabel(sel),
			Collected:    rev.Collected,
			Pending:      rev.Pending,
			Expenses:     exp.Total,
			NetProfit:    rev.Collected - exp.Total,
			ReceiptCount: rev.ReceiptCount,
		}
		if t, ok := targets[[2]int{sel.Year, sel.Month}]; ok {
			target := t.TargetRevenue
			point.TargetRevenue = &target
		}
		trend = append(trend, point)
	}

	currentReceipts := FilterReceipts(receipts, current.Current)
	currentExpenses := ExpenseBreakdown(FilterExpenses(expenses, current.Current))
	revenue := SummarizeRevenue(currentReceipts)
	revenue.PreviousCollected = SummarizeRevenue(FilterReceipts(receipts, current.Previous)).Collected
	revenue.GrowthPercentage = GrowthPercentage(revenue.Collected, revenue.PreviousCollected)

	var currentTargets []models.BudgetTarget
	if t, ok := targets[[2]int{year, month}]; ok {
		currentTargets = []models.BudgetTarget{t}
	}

	return models.AnalyticsBundle{
		TenantID:         tenantID,
		Year:             year,
		Month:            month,
		MonthsBack:       monthsBack,
		Trend:            trend,
		Revenue:          revenue,
		PaymentModes:     PaymentModeBreakdown(currentReceipts),
		ExpenseBreakdown: currentExpenses.ByCategory,
		ProfitLoss:       ProfitAndLoss(revenue.Collected, currentExpenses.Total),
		Budget:           BudgetProgress(currentTargets, revenue.Collected, currentExpenses.Total),
	}, nil
}
