package plangen

import "github.com/CurioCloud-Team/CurioCloudBackendN/internal/llm"

// LessonPlanSchema defines the JSON document requested from the LLM at
// finalization. Field names match the prompt's example verbatim.
var LessonPlanSchema = &llm.Schema{
	Name:        "lesson-plan",
	Description: "A complete structured teaching plan with objectives, outline and timed activities",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "An engaging title for the lesson",
			},
			"learning_objectives": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "3-4 concrete learning objectives",
			},
			"teaching_outline": map[string]any{
				"type":        "string",
				"description": "A 100-200 character course outline or introduction",
			},
			"activities": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"order": map[string]any{
							"type":        "integer",
							"description": "1-based position of the activity",
						},
						"name": map[string]any{
							"type":        "string",
							"description": "Activity name",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "What happens during the activity",
						},
						"duration": map[string]any{
							"type":        "integer",
							"description": "Activity length in minutes",
						},
					},
					"required":             []any{"order", "name", "description", "duration"},
					"additionalProperties": false,
				},
				"description": "Ordered activities whose durations sum to the session length",
			},
		},
		"required":             []any{"title", "learning_objectives", "teaching_outline", "activities"},
		"additionalProperties": false,
	},
}
