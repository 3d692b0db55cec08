// AngelaMos | 2026
// dto.go

package dashboard

import (
	"github.com/carterperez-dev/templates/dashboard-backend/internal/activity"
)

// LabeledValue is one chart point. Label is a "02 Jan" day label for time
// series and a product name for sales.
type LabeledValue struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type AdminSummary struct {
	TotalUsers      int `json:"total_users"`
	ActiveUsers     int `json:"active_users"`
	TotalSales      int `json:"total_sales"`
	NewSignupsToday int `json:"new_signups_today"`
}

type AdminCharts struct {
	Last7DaysSignups []LabeledValue        `json:"last_7_days_signups"`
	SalesByProduct   []LabeledValue        `json:"sales_by_product"`
	SportsInterests  []activity.SportCount `json:"sports_interests"`
}

type AdminMetrics struct {
	Summary AdminSummary `json:"summary"`
	Charts  AdminCharts  `json:"charts"`
}

type UserSummary struct {
	TotalSessions int `json:"total_sessions"`
	TotalPoints   int `json:"total_points"`
	DaysTracked   int `json:"days_tracked"`
}

type UserCharts struct {
	SessionsLast7Days []LabeledValue `json:"sessions_last_7_days"`
	PointsLast7Days   []LabeledValue `json:"points_last_7_days"`
}

type UserMetrics struct {
	Summary UserSummary `json:"summary"`
	Charts  UserCharts  `json:"charts"`
}
