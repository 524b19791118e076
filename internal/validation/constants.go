package validation

// Rule thresholds.
const (
	BudgetTolerance          = 0.10
	BudgetUnderuseRatio      = 0.6
	MaxDailyActivities       = 8
	MinDailyActivities       = 3
	MinTimeBetweenActivities = 0.5 // hours
	MaxActivityDuration      = 6.0 // hours
	MaxDailyHours            = 12.0
	MinDailyHours            = 4.0
	MaxDiningActivities      = 4
	MaxDailyCostVariance     = 0.4
	MinSourcedRatio          = 0.5
)

// Score penalties per issue severity.
const (
	PenaltyCritical = 20.0
	PenaltyHigh     = 10.0
	PenaltyMedium   = 5.0
	PenaltyLow      = 2.0

	MaxScore = 100.0
)
