package supervisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sahilchouksey/internship-simulator/services/openai"
)

// stubCompletionServer returns a chat completion server whose single
// choice carries the given content
func stubCompletionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		resp := map[string]interface{}{
			"id":     "cmpl-test",
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func gatewayFor(serverURL string) *Gateway {
	client := openai.NewChatClient(openai.Config{
		APIKey:  "test-key",
		BaseURL: serverURL,
	})
	return NewGateway(client)
}

// deadGateway points at a server that has already been shut down
func deadGateway(t *testing.T) *Gateway {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()
	return gatewayFor(url)
}

func TestGenerateInternshipFallbackWhenUnreachable(t *testing.T) {
	g := deadGateway(t)

	got := g.GenerateInternship(context.Background(), "Finance", "Economics", "Investment Banking")

	if got.Title != "Finance Virtual Internship" {
		t.Errorf("unexpected fallback title: %q", got.Title)
	}
	if got.Description != "A comprehensive virtual internship experience in the Finance industry." {
		t.Errorf("unexpected fallback description: %q", got.Description)
	}
	if got.DurationWeeks != 8 {
		t.Errorf("expected fallback duration 8, got %d", got.DurationWeeks)
	}
}

func TestGenerateInternshipClampsDuration(t *testing.T) {
	cases := []struct {
		name     string
		duration int
		want     int
	}{
		{"too long", 20, 12},
		{"too short", 2, 4},
		{"in range", 6, 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			content, _ := json.Marshal(map[string]interface{}{
				"title":          "Quantitative Analyst Internship",
				"description":    "Hands-on quantitative finance experience.",
				"duration_weeks": tc.duration,
			})
			server := stubCompletionServer(t, string(content))
			defer server.Close()

			got := gatewayFor(server.URL).GenerateInternship(context.Background(), "Finance", "Math", "Trading")
			if got.DurationWeeks != tc.want {
				t.Errorf("duration %d: expected %d, got %d", tc.duration, tc.want, got.DurationWeeks)
			}
		})
	}
}

func TestGenerateTasksReturnsNothingWhenUnreachable(t *testing.T) {
	g := deadGateway(t)

	tasks := g.GenerateTasks(context.Background(), "Finance Internship", "Finance", "Economics", 1)
	if len(tasks) != 0 {
		t.Errorf("expected no tasks on failure, got %d", len(tasks))
	}
}

func TestGenerateTasksAcceptsEnvelopeAndAppliesDefaults(t *testing.T) {
	content, _ := json.Marshal(map[string]interface{}{
		"tasks": []map[string]interface{}{
			{
				"title":       "Market Research Report",
				"description": "Research current market trends.",
				"difficulty":  "extreme", // not a valid difficulty
				"points":      500,       // above cap
			},
			{
				"title":        "Portfolio Review",
				"description":  "Review a sample portfolio.",
				"instructions": "Summarize your findings.",
				"difficulty":   "hard",
				"points":       10, // below floor
			},
		},
	})
	server := stubCompletionServer(t, string(content))
	defer server.Close()

	tasks := gatewayFor(server.URL).GenerateTasks(context.Background(), "Finance Internship", "Finance", "Economics", 2)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	if tasks[0].Difficulty != "medium" {
		t.Errorf("invalid difficulty should default to medium, got %q", tasks[0].Difficulty)
	}
	if tasks[0].Points != 150 {
		t.Errorf("points should be capped at 150, got %d", tasks[0].Points)
	}
	if tasks[0].Instructions == "" {
		t.Error("missing instructions should be filled with a default")
	}

	if tasks[1].Difficulty != "hard" {
		t.Errorf("valid difficulty should be kept, got %q", tasks[1].Difficulty)
	}
	if tasks[1].Points != 50 {
		t.Errorf("points should be raised to 50, got %d", tasks[1].Points)
	}
}

func TestGenerateTasksParsesBareArray(t *testing.T) {
	content, _ := json.Marshal([]map[string]interface{}{
		{"title": "Intro Task", "description": "Get started.", "difficulty": "easy", "points": 100},
	})
	server := stubCompletionServer(t, string(content))
	defer server.Close()

	tasks := gatewayFor(server.URL).GenerateTasks(context.Background(), "Tech Internship", "Technology", "CS", 1)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Title != "Intro Task" {
		t.Errorf("unexpected title: %q", tasks[0].Title)
	}
}

func TestGenerateFeedbackFallbackWhenUnreachable(t *testing.T) {
	g := deadGateway(t)

	fb := g.GenerateFeedback(context.Background(), "my submission", "Task", "Desc", "medium", "Finance")

	if fb.Score != 70 {
		t.Errorf("expected fallback score 70, got %.1f", fb.Score)
	}
	if fb.FeedbackSummary != "Thank you for your submission. The feedback system is currently experiencing technical difficulties." {
		t.Errorf("unexpected fallback summary: %q", fb.FeedbackSummary)
	}
	if len(fb.Strengths) == 0 || len(fb.AreasForImprovement) == 0 || len(fb.NextSteps) == 0 {
		t.Error("fallback feedback should populate all list fields")
	}
}

func TestGenerateFeedbackClampsScore(t *testing.T) {
	cases := []struct {
		name  string
		score float64
		want  float64
	}{
		{"above range", 150, 100},
		{"below range", -5, 0},
		{"zero defaults", 0, 70},
		{"in range", 85, 85},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			content, _ := json.Marshal(map[string]interface{}{
				"score":            tc.score,
				"feedback_summary": "Solid work overall.",
			})
			server := stubCompletionServer(t, string(content))
			defer server.Close()

			fb := gatewayFor(server.URL).GenerateFeedback(context.Background(), "content", "Task", "Desc", "easy", "Tech")
			if fb.Score != tc.want {
				t.Errorf("score %.1f: expected %.1f, got %.1f", tc.score, tc.want, fb.Score)
			}
		})
	}
}

func TestSuggestResourcesFallbackWhenUnreachable(t *testing.T) {
	g := deadGateway(t)

	resources := g.SuggestResources(context.Background(), "Task", "Desc", "Finance")
	if len(resources) != 1 {
		t.Fatalf("expected single fallback resource, got %d", len(resources))
	}
	if resources[0].Title != "Getting Started Guide" {
		t.Errorf("unexpected fallback resource title: %q", resources[0].Title)
	}
}

func TestGenerateCertificateFallbackWhenUnreachable(t *testing.T) {
	g := deadGateway(t)

	cert := g.GenerateCertificate(context.Background(), "Jordan Smith", "Finance Internship", "Finance", 12, 88.5)

	if cert.Title != "Finance Virtual Internship Certificate" {
		t.Errorf("unexpected fallback title: %q", cert.Title)
	}
	if len(cert.SkillsAcquired) == 0 {
		t.Error("fallback certificate should list skills")
	}
}

func TestGenerateCompaniesAndRolesEmptyWhenUnreachable(t *testing.T) {
	g := deadGateway(t)

	result := g.GenerateCompaniesAndRoles(context.Background(), "Healthcare")
	if result.Companies == nil || result.Roles == nil {
		t.Fatal("lists should be empty, not nil")
	}
	if len(result.Companies) != 0 || len(result.Roles) != 0 {
		t.Error("expected empty catalog on failure")
	}
}

func TestAskQuestionFallbackWhenUnreachable(t *testing.T) {
	g := deadGateway(t)

	answer := g.AskQuestion(context.Background(), "How do I start?", AskContext{FullName: "Jordan Smith"})

	const want = "I apologize, but I'm having trouble processing your question at the moment. Please try again later or contact support if the issue persists."
	if answer != want {
		t.Errorf("unexpected fallback answer: %q", answer)
	}
}

func TestAskQuestionReturnsAnswer(t *testing.T) {
	server := stubCompletionServer(t, "Start by reviewing your week 1 tasks.")
	defer server.Close()

	answer := gatewayFor(server.URL).AskQuestion(context.Background(), "How do I start?", AskContext{})
	if answer != "Start by reviewing your week 1 tasks." {
		t.Errorf("unexpected answer: %q", answer)
	}
}
