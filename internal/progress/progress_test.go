package progress

import "testing"

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name            string
		doneMilestones  int
		totalMilestones int
		doneTasks       int
		totalTasks      int
		previous        int
		want            int
	}{
		{"half milestones", 1, 2, 0, 0, 0, 50},
		{"milestones plus tasks", 1, 2, 1, 1, 0, 67},
		{"all complete", 2, 2, 1, 1, 0, 100},
		{"nothing complete", 0, 3, 0, 2, 42, 0},
		{"tasks only", 2, 0, 2, 3, 0, 67},
		{"empty goal keeps stored progress", 0, 0, 0, 0, 42, 42},
		{"rounding up", 2, 3, 0, 0, 0, 67},
		{"rounding down", 1, 3, 0, 0, 0, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GoalProgress(tt.doneMilestones, tt.totalMilestones, tt.doneTasks, tt.totalTasks, tt.previous)
			if got != tt.want {
				t.Fatalf("GoalProgress() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGoalProgressIdempotent(t *testing.T) {
	first := GoalProgress(1, 2, 1, 1, 0)
	second := GoalProgress(1, 2, 1, 1, first)
	if first != second {
		t.Fatalf("recompute changed value without mutation: %d then %d", first, second)
	}
}
