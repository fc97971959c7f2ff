package utils

import (
	"testing"
)

func TestExtractJSONFromMarkdownBlock(t *testing.T) {
	response := "```json\n{\"title\": \"Finance Internship\", \"duration_weeks\": 8}\n```"

	got, err := ExtractJSON(response)
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}
	if got != `{"title": "Finance Internship", "duration_weeks": 8}` {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestExtractJSONWithSurroundingText(t *testing.T) {
	response := `Here is the task list you asked for:
{"tasks": [{"title": "Week 1 Task"}]}
Let me know if you need anything else.`

	got, err := ExtractJSON(response)
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}
	if got != `{"tasks": [{"title": "Week 1 Task"}]}` {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestExtractJSONBareArray(t *testing.T) {
	response := "Sure!\n[{\"title\": \"a\"}, {\"title\": \"b\"}]"

	got, err := ExtractJSON(response)
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}
	if got != `[{"title": "a"}, {"title": "b"}]` {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestExtractJSONHandlesNestedBraces(t *testing.T) {
	response := `{"feedback": {"score": 85, "notes": "Good {use} of braces"}}`

	got, err := ExtractJSON(response)
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}
	if got != response {
		t.Errorf("nested JSON should be returned whole, got %q", got)
	}
}

func TestExtractJSONNoJSON(t *testing.T) {
	if _, err := ExtractJSON("I could not generate a response."); err == nil {
		t.Error("expected error for response without JSON")
	}
	if _, err := ExtractJSON(""); err == nil {
		t.Error("expected error for empty response")
	}
}

func TestExtractJSONTo(t *testing.T) {
	var target struct {
		Score   float64 `json:"score"`
		Summary string  `json:"feedback_summary"`
	}

	response := "```json\n{\"score\": 92.5, \"feedback_summary\": \"Excellent work\"}\n```"
	if err := ExtractJSONTo(response, &target); err != nil {
		t.Fatalf("ExtractJSONTo failed: %v", err)
	}

	if target.Score != 92.5 {
		t.Errorf("expected score 92.5, got %v", target.Score)
	}
	if target.Summary != "Excellent work" {
		t.Errorf("unexpected summary: %q", target.Summary)
	}
}

func TestExtractJSONToTypeMismatch(t *testing.T) {
	var target []string
	if err := ExtractJSONTo(`{"not": "an array"}`, &target); err == nil {
		t.Error("expected unmarshal error when shapes do not match")
	}
}
