package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"github.com/growthflow/growthflow-api/internal/models"
)

// AIService wraps the Gemini API for text generation. Every method has a
// deterministic fallback so a missing key or a failed call never surfaces to
// the user as an error.
type AIService struct {
	client *genai.Client
	model  string
}

// Global AI service instance
var AI *AIService

// InitAI initializes the Gemini client. Returns nil gracefully if no API key
// is configured (dev mode); all AI operations then return their fallbacks.
func InitAI(apiKey, model string) error {
	if apiKey == "" {
		log.Println("AI: No Gemini API key configured, AI features disabled")
		AI = &AIService{client: nil, model: model}
		return nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		log.Printf("AI: Failed to initialize Gemini client: %v", err)
		AI = &AIService{client: nil, model: model}
		return nil
	}

	AI = &AIService{client: client, model: model}
	log.Println("AI: Gemini text generation enabled")
	return nil
}

func (s *AIService) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("AI service not configured")
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty response")
	}
	return text, nil
}

// GenerateSmartGoal rewrites a raw goal description to be SMART. Falls back
// to the original text.
func (s *AIService) GenerateSmartGoal(ctx context.Context, rawText string) string {
	prompt := fmt.Sprintf(`Rewrite the following goal to be SMART (Specific, Measurable, Achievable, Relevant, Time-bound).
Return only the rewritten goal description text, no explanations.

Original Goal: %q`, rawText)

	text, err := s.generate(ctx, prompt, nil)
	if err != nil {
		log.Printf("AI: SMART goal generation failed: %v", err)
		return rawText
	}
	return text
}

// MilestoneSuggestion is one AI-proposed milestone for a goal.
type MilestoneSuggestion struct {
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
}

// SuggestMilestones asks for 3-5 milestones toward a goal. Falls back to an
// empty list.
func (s *AIService) SuggestMilestones(ctx context.Context, goalText, timeframe string) []MilestoneSuggestion {
	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"description": {Type: genai.TypeString},
				"status":      {Type: genai.TypeString, Enum: []string{"pending"}},
				"dueDate":     {Type: genai.TypeString, Description: "YYYY-MM-DD format"},
			},
			Required: []string{"description", "status", "dueDate"},
		},
	}

	prompt := fmt.Sprintf(`Generate 3 to 5 key milestones for the goal: %q which needs to be completed by %s.
Ensure deadlines are spaced out logically.`, goalText, timeframe)

	text, err := s.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		log.Printf("AI: milestone suggestion failed: %v", err)
		return []MilestoneSuggestion{}
	}

	var suggestions []MilestoneSuggestion
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		log.Printf("AI: milestone suggestion unparseable: %v", err)
		return []MilestoneSuggestion{}
	}
	return suggestions
}

// AchievementInsight is the AI classification of a logged achievement.
type AchievementInsight struct {
	Classification string `json:"classification"`
	Summary        string `json:"summary"`
}

// ClassifyAchievement classifies an achievement and writes a one-sentence
// manager-ready summary. Falls back to Other with the raw description.
func (s *AIService) ClassifyAchievement(ctx context.Context, title, description string) AchievementInsight {
	fallback := AchievementInsight{
		Classification: models.AchievementOther,
		Summary:        description,
	}

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"classification": {
				Type: genai.TypeString,
				Enum: []string{
					models.AchievementLeadership,
					models.AchievementDelivery,
					models.AchievementCommunication,
					models.AchievementImpact,
					models.AchievementOther,
				},
			},
			"summary": {Type: genai.TypeString},
		},
		Required: []string{"classification", "summary"},
	}

	prompt := fmt.Sprintf(`Analyze this professional achievement.
1. Classify it into one of: Leadership, Delivery, Communication, Impact, Other.
2. Write a 1-sentence executive summary suitable for a performance review (manager-ready tone).

Title: %s
Description: %s`, title, description)

	text, err := s.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		log.Printf("AI: achievement classification failed: %v", err)
		return fallback
	}

	var insight AchievementInsight
	if err := json.Unmarshal([]byte(text), &insight); err != nil || !models.ValidAchievementType(insight.Classification) {
		log.Printf("AI: achievement classification unparseable: %v", err)
		return fallback
	}
	return insight
}
