package service

import (
	"testing"
	"time"

	"github.com/fundboard/fundboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func expenseOn(planType string, amount float64, date time.Time) domain.Expense {
	return domain.Expense{PlanType: planType, Amount: amount, Date: date}
}

func TestComputeAnalytics_Summary(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	t.Run("within budget", func(t *testing.T) {
		plans := []domain.Plan{
			{Type: "equipment", PlannedAmount: 1000},
			{Type: "travel", PlannedAmount: 500},
		}
		expenses := []domain.Expense{
			expenseOn("equipment", 400, now),
			expenseOn("travel", 200, now),
		}

		snapshot := ComputeAnalytics(plans, expenses, now)

		assert.Equal(t, 1500.0, snapshot.Summary.TotalPlanned)
		assert.Equal(t, 600.0, snapshot.Summary.TotalSpent)
		assert.Equal(t, 900.0, snapshot.Summary.Remaining)
		assert.Equal(t, 40.0, snapshot.Summary.UsagePercentage)
		assert.False(t, snapshot.Summary.OverSpent)
	})

	t.Run("overspent caps display percentage but not remaining", func(t *testing.T) {
		plans := []domain.Plan{{Type: "equipment", PlannedAmount: 100}}
		expenses := []domain.Expense{expenseOn("equipment", 250, now)}

		snapshot := ComputeAnalytics(plans, expenses, now)

		assert.Equal(t, -150.0, snapshot.Summary.Remaining)
		assert.Equal(t, 100.0, snapshot.Summary.UsagePercentage)
		assert.True(t, snapshot.Summary.OverSpent)
	})

	t.Run("no plans means zero usage", func(t *testing.T) {
		expenses := []domain.Expense{expenseOn("other", 50, now)}

		snapshot := ComputeAnalytics(nil, expenses, now)

		assert.Equal(t, 0.0, snapshot.Summary.UsagePercentage)
		assert.True(t, snapshot.Summary.OverSpent)
	})

	t.Run("empty workspace", func(t *testing.T) {
		snapshot := ComputeAnalytics(nil, nil, now)

		assert.Equal(t, 0.0, snapshot.Summary.TotalPlanned)
		assert.Equal(t, 0.0, snapshot.Summary.Remaining)
		assert.False(t, snapshot.Summary.OverSpent)
		assert.Empty(t, snapshot.CategoryComparison)
		assert.Empty(t, snapshot.Alerts)
		assert.Len(t, snapshot.MonthlyTrend, 6)
	})
}

func TestComputeAnalytics_CategoryComparison(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	t.Run("statuses and discovery order", func(t *testing.T) {
		plans := []domain.Plan{
			{Type: "equipment", PlannedAmount: 1000},
			{Type: "travel", PlannedAmount: 500},
			{Type: "books", PlannedAmount: 200},
		}
		expenses := []domain.Expense{
			expenseOn("equipment", 400, now),
			expenseOn("travel", 700, now),
			expenseOn("other", 50, now),
		}

		snapshot := ComputeAnalytics(plans, expenses, now)
		comparison := snapshot.CategoryComparison

		assert.Len(t, comparison, 4)
		// Plans first in declaration order, then expense-only categories.
		assert.Equal(t, "equipment", comparison[0].Category)
		assert.Equal(t, "travel", comparison[1].Category)
		assert.Equal(t, "books", comparison[2].Category)
		assert.Equal(t, "other", comparison[3].Category)

		assert.Equal(t, domain.CategoryStatusNormal, comparison[0].Status)
		assert.Equal(t, domain.CategoryStatusOver, comparison[1].Status)
		assert.Equal(t, domain.CategoryStatusUnused, comparison[2].Status)
		// Expense-only category has no budget to exceed, so it stays normal.
		assert.Equal(t, domain.CategoryStatusNormal, comparison[3].Status)

		assert.Equal(t, 140.0, comparison[1].Percentage)
		assert.Equal(t, 0.0, comparison[3].Percentage)
	})

	t.Run("unbudgeted category stays normal and raises no alert", func(t *testing.T) {
		plans := []domain.Plan{{Type: "travel", PlannedAmount: 1000}}
		expenses := []domain.Expense{
			expenseOn("travel", 1200, now),
			expenseOn("food", 50, now),
		}

		snapshot := ComputeAnalytics(plans, expenses, now)
		comparison := snapshot.CategoryComparison

		assert.Len(t, comparison, 2)
		assert.Equal(t, domain.CategoryComparison{
			Category:   "travel",
			Planned:    1000,
			Spent:      1200,
			Percentage: 120,
			Status:     domain.CategoryStatusOver,
		}, comparison[0])
		assert.Equal(t, domain.CategoryComparison{
			Category: "food",
			Planned:  0,
			Spent:    50,
			Status:   domain.CategoryStatusNormal,
		}, comparison[1])

		assert.True(t, snapshot.Summary.OverSpent)

		// One warning for travel (over by 200), one danger for overall usage,
		// and nothing mentioning food.
		var warnings []domain.Alert
		for _, a := range snapshot.Alerts {
			assert.NotContains(t, a.Message, "food")
			if a.Level == domain.AlertWarning {
				warnings = append(warnings, a)
			}
		}
		assert.Len(t, warnings, 1)
		assert.Contains(t, warnings[0].Message, `"travel"`)
		assert.Contains(t, warnings[0].Message, "200.00")
	})

	t.Run("blank expense category folds into other", func(t *testing.T) {
		expenses := []domain.Expense{
			expenseOn("", 10, now),
			expenseOn("other", 20, now),
		}

		snapshot := ComputeAnalytics(nil, expenses, now)

		assert.Len(t, snapshot.CategoryComparison, 1)
		assert.Equal(t, "other", snapshot.CategoryComparison[0].Category)
		assert.Equal(t, 30.0, snapshot.CategoryComparison[0].Spent)
	})

	t.Run("totals count categories", func(t *testing.T) {
		plans := []domain.Plan{{Type: "travel", PlannedAmount: 100}}
		expenses := []domain.Expense{expenseOn("other", 10, now)}

		snapshot := ComputeAnalytics(plans, expenses, now)

		assert.Equal(t, 1, snapshot.Totals.TotalPlans)
		assert.Equal(t, 1, snapshot.Totals.TotalExpenses)
		assert.Equal(t, 2, snapshot.Totals.CategoriesCount)
	})
}

func TestComputeAnalytics_MonthlyTrend(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	t.Run("six months oldest first", func(t *testing.T) {
		snapshot := ComputeAnalytics(nil, nil, now)
		trend := snapshot.MonthlyTrend

		assert.Len(t, trend, 6)
		assert.Equal(t, "Mar 2026", trend[0].Label)
		assert.Equal(t, "Aug 2026", trend[5].Label)
	})

	t.Run("month boundaries", func(t *testing.T) {
		expenses := []domain.Expense{
			// Last instant of July belongs to July.
			expenseOn("other", 10, time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC)),
			// First instant of August belongs to August.
			expenseOn("other", 20, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
			// Before the window: ignored.
			expenseOn("other", 99, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)),
			// After the current month: ignored.
			expenseOn("other", 99, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		}

		snapshot := ComputeAnalytics(nil, expenses, now)
		trend := snapshot.MonthlyTrend

		assert.Equal(t, 10.0, trend[4].TotalExpenses) // Jul 2026
		assert.Equal(t, 20.0, trend[5].TotalExpenses) // Aug 2026
		assert.Equal(t, 0.0, trend[0].TotalExpenses)  // Mar 2026
	})

	t.Run("window crosses a year boundary", func(t *testing.T) {
		january := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
		snapshot := ComputeAnalytics(nil, nil, january)

		assert.Equal(t, "Aug 2025", snapshot.MonthlyTrend[0].Label)
		assert.Equal(t, "Jan 2026", snapshot.MonthlyTrend[5].Label)
	})
}

func TestComputeAnalytics_Alerts(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	t.Run("per-category and unused alerts", func(t *testing.T) {
		plans := []domain.Plan{
			{Type: "equipment", PlannedAmount: 100},
			{Type: "travel", PlannedAmount: 1000},
			{Type: "books", PlannedAmount: 200},
		}
		expenses := []domain.Expense{
			expenseOn("equipment", 150, now),
		}

		snapshot := ComputeAnalytics(plans, expenses, now)
		alerts := snapshot.Alerts

		assert.Len(t, alerts, 2)
		assert.Equal(t, domain.AlertWarning, alerts[0].Level)
		assert.Contains(t, alerts[0].Message, `"equipment"`)
		assert.Contains(t, alerts[0].Message, "50.00")
		assert.Equal(t, domain.AlertInfo, alerts[1].Level)
		assert.Contains(t, alerts[1].Message, "travel, books")
	})

	t.Run("warning between 80 and 100 percent", func(t *testing.T) {
		plans := []domain.Plan{{Type: "travel", PlannedAmount: 100}}
		expenses := []domain.Expense{expenseOn("travel", 90, now)}

		snapshot := ComputeAnalytics(plans, expenses, now)

		last := snapshot.Alerts[len(snapshot.Alerts)-1]
		assert.Equal(t, domain.AlertWarning, last.Level)
		assert.Contains(t, last.Message, "90.0%")
	})

	t.Run("danger above 100 percent excludes the warning", func(t *testing.T) {
		plans := []domain.Plan{{Type: "travel", PlannedAmount: 100}}
		expenses := []domain.Expense{expenseOn("travel", 150, now)}

		snapshot := ComputeAnalytics(plans, expenses, now)

		var warnings, dangers int
		for _, a := range snapshot.Alerts {
			switch a.Level {
			case domain.AlertDanger:
				dangers++
			case domain.AlertWarning:
				warnings++
			}
		}
		assert.Equal(t, 1, dangers)
		// The only warning is the per-category one, not the overall-usage one.
		assert.Equal(t, 1, warnings)
	})

	t.Run("exactly 80 percent raises nothing", func(t *testing.T) {
		plans := []domain.Plan{{Type: "travel", PlannedAmount: 100}}
		expenses := []domain.Expense{expenseOn("travel", 80, now)}

		snapshot := ComputeAnalytics(plans, expenses, now)

		assert.Empty(t, snapshot.Alerts)
	})

	t.Run("exactly 100 percent raises no danger", func(t *testing.T) {
		plans := []domain.Plan{{Type: "travel", PlannedAmount: 100}}
		expenses := []domain.Expense{expenseOn("travel", 100, now)}

		snapshot := ComputeAnalytics(plans, expenses, now)

		for _, a := range snapshot.Alerts {
			assert.NotEqual(t, domain.AlertDanger, a.Level)
		}
	})
}
