package domain

// Category status classifications.
const (
	CategoryStatusOver   = "over"
	CategoryStatusUnused = "unused"
	CategoryStatusNormal = "normal"
)

// Alert levels.
const (
	AlertWarning = "warning"
	AlertInfo    = "info"
	AlertDanger  = "danger"
)

// AnalyticsSummary holds the workspace-level budget totals. Remaining may
// go negative when overspent; UsagePercentage is capped at 100 for display
// while OverSpent reflects the uncapped ratio.
type AnalyticsSummary struct {
	TotalPlanned    float64 `json:"total_planned"`
	TotalSpent      float64 `json:"total_spent"`
	Remaining       float64 `json:"remaining"`
	UsagePercentage float64 `json:"usage_percentage"`
	OverSpent       bool    `json:"over_spent"`
}

// CategoryComparison is planned-versus-spent for one category.
type CategoryComparison struct {
	Category   string  `json:"category"`
	Planned    float64 `json:"planned"`
	Spent      float64 `json:"spent"`
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
}

// MonthlyTrend is the expense total of one calendar month.
type MonthlyTrend struct {
	Label         string  `json:"label"`
	TotalExpenses float64 `json:"total_expenses"`
}

// Alert is one rule-generated budget notice.
type Alert struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// AnalyticsTotals carries the record counts of the snapshot.
type AnalyticsTotals struct {
	TotalPlans      int `json:"total_plans"`
	TotalExpenses   int `json:"total_expenses"`
	CategoriesCount int `json:"categories_count"`
}

// AnalyticsSnapshot is the derived analytics result for one workspace,
// recomputed from scratch on every request and never persisted.
type AnalyticsSnapshot struct {
	Summary            AnalyticsSummary     `json:"summary"`
	CategoryComparison []CategoryComparison `json:"category_comparison"`
	MonthlyTrend       []MonthlyTrend       `json:"monthly_trend"`
	Alerts             []Alert              `json:"alerts"`
	Totals             AnalyticsTotals      `json:"totals"`
}
