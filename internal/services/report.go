package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/growthflow/growthflow-api/internal/models"
)

// ReportInput carries the user data a drafted report is built from. Tasks
// are expected to be pre-filtered to completed items within the date range.
type ReportInput struct {
	Type         string
	Tone         string
	StartDate    string
	EndDate      string
	Goals        []models.Goal
	Achievements []models.Achievement
	Tasks        []models.Task
}

func reportPrompt(in ReportInput) string {
	goalLines := make([]string, 0, len(in.Goals))
	for _, g := range in.Goals {
		goalLines = append(goalLines, fmt.Sprintf("%s (%d%% complete)", g.Title, g.Progress))
	}

	achievementLines := make([]string, 0, len(in.Achievements))
	for _, a := range in.Achievements {
		achievementLines = append(achievementLines, fmt.Sprintf("- %s (%s): %s", a.Title, a.Classification, a.Summary))
	}

	taskLines := make([]string, 0, len(in.Tasks))
	for _, t := range in.Tasks {
		taskLines = append(taskLines, fmt.Sprintf("- [Completed Task] %s", t.Title))
	}

	return fmt.Sprintf(`Write a %s Professional Performance Report.
Date Range: %s to %s
Tone: %s

Key Goals Context:
%s

Achievements Logged:
%s

Completed Tasks (Ad-hoc items):
%s

Structure the report with these Markdown headers:
## Executive Summary
## Key Achievements
## Operational Execution (Tasks & Milestones)
## Progress on Goals
## Focus for Next Period

Keep it professional and actionable.`,
		in.Type, in.StartDate, in.EndDate, in.Tone,
		strings.Join(goalLines, "; "),
		strings.Join(achievementLines, "\n"),
		strings.Join(taskLines, "\n"))
}

// FallbackReport assembles a plain markdown report from the same data the AI
// prompt uses, for when generation is unavailable.
func FallbackReport(in ReportInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Executive Summary\n%s performance report for %s to %s.\n\n", in.Type, in.StartDate, in.EndDate)

	b.WriteString("## Key Achievements\n")
	if len(in.Achievements) == 0 {
		b.WriteString("No achievements logged in this period.\n")
	}
	for _, a := range in.Achievements {
		fmt.Fprintf(&b, "- **%s** (%s): %s\n", a.Title, a.Classification, a.Summary)
	}

	b.WriteString("\n## Operational Execution (Tasks & Milestones)\n")
	if len(in.Tasks) == 0 {
		b.WriteString("No tasks completed in this period.\n")
	}
	for _, t := range in.Tasks {
		fmt.Fprintf(&b, "- %s\n", t.Title)
	}

	b.WriteString("\n## Progress on Goals\n")
	for _, g := range in.Goals {
		fmt.Fprintf(&b, "- %s: %d%% complete\n", g.Title, g.Progress)
	}

	b.WriteString("\n## Focus for Next Period\nContinue executing on open goals and milestones.\n")
	return b.String()
}

// GenerateReport drafts a performance report, falling back to the
// deterministic markdown when the AI call fails.
func (s *AIService) GenerateReport(ctx context.Context, in ReportInput) string {
	text, err := s.generate(ctx, reportPrompt(in), nil)
	if err != nil {
		log.Printf("AI: report generation failed: %v", err)
		return FallbackReport(in)
	}
	return text
}

// GenerateReflection drafts a short encouraging reflection over the user's
// habits and goals.
func (s *AIService) GenerateReflection(ctx context.Context, habits []models.Habit, goals []models.Goal) string {
	habitLines := make([]string, 0, len(habits))
	for _, h := range habits {
		habitLines = append(habitLines, fmt.Sprintf("%s: Streak %d", h.Name, h.StreakCount))
	}
	goalLines := make([]string, 0, len(goals))
	for _, g := range goals {
		goalLines = append(goalLines, fmt.Sprintf("%s is %d%% done", g.Title, g.Progress))
	}

	prompt := fmt.Sprintf(`Write a short, encouraging monthly reflection for a user based on this data:
Habits: %s
Goals: %s

Give 3 bullet points on what went well and 1 suggestion for improvement.`,
		strings.Join(habitLines, ", "), strings.Join(goalLines, ", "))

	text, err := s.generate(ctx, prompt, nil)
	if err != nil {
		log.Printf("AI: reflection generation failed: %v", err)
		return "Great job staying consistent! Keep tracking to see new insights."
	}
	return text
}
