package model

// Budget is the single persisted daily-limit record.
type Budget struct {
	DailyLimit int   `json:"dailyLimit" validate:"gt=0"`
	CreatedAt  int64 `json:"createdAt"`
	UpdatedAt  int64 `json:"updatedAt"`
}

// BudgetStatus is derived on demand from the Budget and today's log count.
// Percentage is capped at 100 and Remaining floored at 0.
type BudgetStatus struct {
	Budget     Budget
	TodayCount int
	Percentage float64
	Remaining  int
}
