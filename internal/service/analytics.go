package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fundboard/fundboard/internal/domain"
	"github.com/google/uuid"
)

const (
	trendMonths         = 6
	usageWarnThreshold  = 80
	usageAlertThreshold = 100
)

// AnalyticsService derives budget analytics for a workspace
type AnalyticsService struct {
	planRepo    domain.PlanRepository
	expenseRepo domain.ExpenseRepository
	guard       *AccessGuard
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	planRepo domain.PlanRepository,
	expenseRepo domain.ExpenseRepository,
	guard *AccessGuard,
) *AnalyticsService {
	return &AnalyticsService{
		planRepo:    planRepo,
		expenseRepo: expenseRepo,
		guard:       guard,
	}
}

// CheckAccess verifies the caller is a member of the workspace and returns
// their role. Used to gate cached snapshots without recomputing them.
func (s *AnalyticsService) CheckAccess(ctx context.Context, userID, workspaceID uuid.UUID) (domain.Role, error) {
	_, role, err := s.guard.RequireMember(ctx, workspaceID, userID)
	if err != nil {
		return domain.RoleNone, err
	}
	return role, nil
}

// Get loads the full plan and expense sets of a workspace (any member) and
// reduces them into a snapshot. The access check happens once here;
// ComputeAnalytics itself is a pure function.
func (s *AnalyticsService) Get(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.AnalyticsSnapshot, error) {
	if _, _, err := s.guard.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	plans, err := s.planRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.ListAll(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	snapshot := ComputeAnalytics(plans, expenses, time.Now().UTC())
	return &snapshot, nil
}

// ComputeAnalytics reduces the full plan and expense sets of one workspace
// into a snapshot. Deterministic given identical inputs; now anchors the
// 6-month trend window.
func ComputeAnalytics(plans []domain.Plan, expenses []domain.Expense, now time.Time) domain.AnalyticsSnapshot {
	summary, realUsage := computeSummary(plans, expenses)
	comparison := computeCategoryComparison(plans, expenses)

	return domain.AnalyticsSnapshot{
		Summary:            summary,
		CategoryComparison: comparison,
		MonthlyTrend:       computeMonthlyTrend(expenses, now),
		Alerts:             computeAlerts(comparison, realUsage),
		Totals: domain.AnalyticsTotals{
			TotalPlans:      len(plans),
			TotalExpenses:   len(expenses),
			CategoriesCount: len(comparison),
		},
	}
}

// computeSummary returns the summary plus the uncapped usage ratio that
// drives the alert rules.
func computeSummary(plans []domain.Plan, expenses []domain.Expense) (domain.AnalyticsSummary, float64) {
	var totalPlanned, totalSpent float64
	for _, p := range plans {
		totalPlanned += p.PlannedAmount
	}
	for _, e := range expenses {
		totalSpent += e.Amount
	}

	realUsage := 0.0
	if totalPlanned > 0 {
		realUsage = totalSpent / totalPlanned * 100
	}

	// Capped for display; overSpent and alerts use the real ratio.
	displayUsage := realUsage
	if displayUsage > 100 {
		displayUsage = 100
	}

	return domain.AnalyticsSummary{
		TotalPlanned:    totalPlanned,
		TotalSpent:      totalSpent,
		Remaining:       totalPlanned - totalSpent,
		UsagePercentage: displayUsage,
		OverSpent:       totalSpent > totalPlanned,
	}, realUsage
}

type categoryAccumulator struct {
	planned    float64
	spent      float64
	planSource bool
}

// computeCategoryComparison groups plans by type, folds every expense into
// its category (expense-only categories get planned 0), and classifies each
// entry. A category without a budget is never "over". Order is category
// discovery order: plans first, then expense-only categories.
func computeCategoryComparison(plans []domain.Plan, expenses []domain.Expense) []domain.CategoryComparison {
	order := make([]string, 0, len(plans))
	byCategory := make(map[string]*categoryAccumulator)

	for _, p := range plans {
		acc, ok := byCategory[p.Type]
		if !ok {
			acc = &categoryAccumulator{planSource: true}
			byCategory[p.Type] = acc
			order = append(order, p.Type)
		}
		acc.planned += p.PlannedAmount
	}

	for _, e := range expenses {
		category := e.PlanType
		if category == "" {
			category = domain.PlanTypeOther
		}
		acc, ok := byCategory[category]
		if !ok {
			acc = &categoryAccumulator{}
			byCategory[category] = acc
			order = append(order, category)
		}
		acc.spent += e.Amount
	}

	comparison := make([]domain.CategoryComparison, 0, len(order))
	for _, category := range order {
		acc := byCategory[category]

		percentage := 0.0
		if acc.planned > 0 {
			percentage = acc.spent / acc.planned * 100
		}

		status := domain.CategoryStatusNormal
		switch {
		case acc.planned > 0 && acc.spent > acc.planned:
			status = domain.CategoryStatusOver
		case acc.spent == 0 && acc.planSource:
			status = domain.CategoryStatusUnused
		}

		comparison = append(comparison, domain.CategoryComparison{
			Category:   category,
			Planned:    acc.planned,
			Spent:      acc.spent,
			Percentage: percentage,
			Status:     status,
		})
	}

	return comparison
}

// computeMonthlyTrend covers the 5 calendar months before now's month
// through the current month, oldest first. Boundaries are calendar-month
// [inclusive start, exclusive end).
func computeMonthlyTrend(expenses []domain.Expense, now time.Time) []domain.MonthlyTrend {
	trend := make([]domain.MonthlyTrend, 0, trendMonths)

	for i := trendMonths - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		var total float64
		for _, e := range expenses {
			if !e.Date.Before(start) && e.Date.Before(end) {
				total += e.Amount
			}
		}

		trend = append(trend, domain.MonthlyTrend{
			Label:         start.Format("Jan 2006"),
			TotalExpenses: total,
		})
	}

	return trend
}

// computeAlerts generates, in order: one warning per overspent category,
// one combined info alert for unused categories, and at most one of the
// overall-usage warning/danger pair.
func computeAlerts(comparison []domain.CategoryComparison, realUsage float64) []domain.Alert {
	alerts := []domain.Alert{}

	var unused []string
	for _, c := range comparison {
		switch c.Status {
		case domain.CategoryStatusOver:
			alerts = append(alerts, domain.Alert{
				Level:   domain.AlertWarning,
				Message: fmt.Sprintf("Budget exceeded for %q by %.2f", c.Category, c.Spent-c.Planned),
			})
		case domain.CategoryStatusUnused:
			unused = append(unused, c.Category)
		}
	}

	if len(unused) > 0 {
		alerts = append(alerts, domain.Alert{
			Level:   domain.AlertInfo,
			Message: fmt.Sprintf("No expenses recorded yet for: %s", strings.Join(unused, ", ")),
		})
	}

	switch {
	case realUsage > usageAlertThreshold:
		alerts = append(alerts, domain.Alert{
			Level:   domain.AlertDanger,
			Message: fmt.Sprintf("Total spending is at %.1f%% of the planned budget", realUsage),
		})
	case realUsage > usageWarnThreshold:
		alerts = append(alerts, domain.Alert{
			Level:   domain.AlertWarning,
			Message: fmt.Sprintf("Total spending is at %.1f%% of the planned budget", realUsage),
		})
	}

	return alerts
}
