package setting

import "fmt"

const (
	MinGoal = 0
	MaxGoal = 100
)

var ErrGoalOutOfRange = fmt.Errorf("goalPct must be between %d and %d", MinGoal, MaxGoal)

// Settings is the per-user configuration. A nil GoalPct means no goal.
type Settings struct {
	GoalPct *int `json:"goalPct"`
}

// ValidateGoal accepts nil or a whole percentage.
func ValidateGoal(goal *int) error {
	if goal == nil {
		return nil
	}
	if *goal < MinGoal || *goal > MaxGoal {
		return fmt.Errorf("%w: %d", ErrGoalOutOfRange, *goal)
	}
	return nil
}
