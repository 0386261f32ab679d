// Package progress holds the pure calculation rules behind goal completion,
// KPI achievement and habit streaks. Nothing here touches the database; the
// services package feeds it post-mutation counts and persists the results.
package progress

import "math"

// GoalProgress returns a goal's completion percentage from its milestone and
// linked-task counts. A goal with nothing attached keeps its previously
// stored value rather than resetting to zero.
func GoalProgress(doneMilestones, totalMilestones, doneTasks, totalTasks, previous int) int {
	total := totalMilestones + totalTasks
	if total == 0 {
		return previous
	}
	done := doneMilestones + doneTasks
	return int(math.Round(float64(done) / float64(total) * 100))
}
