package supervisor

import (
	"context"
	"fmt"
	"log"

	"github.com/sahilchouksey/internship-simulator/services/openai"
	"github.com/sahilchouksey/internship-simulator/utils"
)

// Gateway wraps the chat completion client behind internship-domain
// operations. Every operation degrades to a hard-coded fallback on any
// failure (unreachable endpoint, bad JSON, empty response) and never
// returns an error to callers.
type Gateway struct {
	client *openai.ChatClient
}

// NewGateway creates a new supervisor gateway
func NewGateway(client *openai.ChatClient) *Gateway {
	return &Gateway{client: client}
}

// GenerateInternship creates internship details for a student profile.
// DurationWeeks is always within [4, 12].
func (g *Gateway) GenerateInternship(ctx context.Context, industry, major, interests string) GeneratedInternship {
	fallback := GeneratedInternship{
		Title:         fmt.Sprintf("%s Virtual Internship", industry),
		Description:   fmt.Sprintf("A comprehensive virtual internship experience in the %s industry.", industry),
		DurationWeeks: 8,
	}

	systemPrompt := "You are an internship program designer. " +
		"Create a detailed, professional description for a virtual internship program. " +
		"Respond with a JSON object that includes title, description, and duration_weeks (integer between 4-12)."

	userPrompt := fmt.Sprintf(
		"Generate a virtual internship for a student in the %s industry. "+
			"The student is majoring in %s and has interests in %s.",
		industry, major, interests,
	)

	raw, err := g.client.JSONCompletion(ctx, systemPrompt, userPrompt,
		openai.WithMaxTokens(500),
		openai.WithTemperature(0.7),
	)
	if err != nil {
		log.Printf("[Supervisor] Error generating internship: %v", err)
		return fallback
	}

	var internship GeneratedInternship
	if err := utils.ExtractJSONTo(raw, &internship); err != nil {
		log.Printf("[Supervisor] Failed to parse internship response: %v", err)
		return fallback
	}

	// Fill in anything the model omitted
	if internship.Title == "" {
		internship.Title = fallback.Title
	}
	if internship.Description == "" {
		internship.Description = fallback.Description
	}
	if internship.DurationWeeks == 0 {
		internship.DurationWeeks = fallback.DurationWeeks
	}
	if internship.DurationWeeks < 4 {
		internship.DurationWeeks = 4
	}
	if internship.DurationWeeks > 12 {
		internship.DurationWeeks = 12
	}

	return internship
}

// taskListEnvelope accepts the {"tasks": [...]} shape some models prefer
type taskListEnvelope struct {
	Tasks []GeneratedTask `json:"tasks"`
}

// GenerateTasks creates the task list for one week of an internship.
// Each returned task has a non-empty title, description, instructions,
// a valid difficulty, and points within [50, 150]. On any failure it
// returns an empty list; callers substitute their own static task set.
func (g *Gateway) GenerateTasks(ctx context.Context, internshipTitle, industry, major string, week int) []GeneratedTask {
	systemPrompt := fmt.Sprintf(
		"You are an internship coordinator for a program titled '%s' in the %s industry. "+
			"Create a list of 3-5 realistic weekly tasks for week %d of the internship. "+
			"Tasks should be appropriate for a student majoring in %s. "+
			"Respond with a JSON array where each task has a title, description, instructions, "+
			"difficulty (easy, medium, or hard), and points (between 50-150 based on difficulty).",
		internshipTitle, industry, week, major,
	)

	raw, err := g.client.JSONCompletion(ctx, systemPrompt, fmt.Sprintf("Generate tasks for week %d", week),
		openai.WithMaxTokens(1000),
		openai.WithTemperature(0.7),
	)
	if err != nil {
		log.Printf("[Supervisor] Error generating tasks: %v", err)
		return nil
	}

	// Accept either a bare array or an object with a "tasks" field
	var tasks []GeneratedTask
	if err := utils.ExtractJSONTo(raw, &tasks); err != nil {
		var envelope taskListEnvelope
		if err := utils.ExtractJSONTo(raw, &envelope); err != nil {
			log.Printf("[Supervisor] Failed to parse tasks response: %v", err)
			return nil
		}
		tasks = envelope.Tasks
	}

	for i := range tasks {
		applyTaskDefaults(&tasks[i], week)
	}

	return tasks
}

// applyTaskDefaults fills missing task fields and clamps points
func applyTaskDefaults(task *GeneratedTask, week int) {
	if task.Title == "" {
		task.Title = fmt.Sprintf("Week %d Task", week)
	}
	if task.Description == "" {
		task.Description = "Complete this task as part of your virtual internship."
	}
	if task.Instructions == "" {
		task.Instructions = "Follow the instructions carefully and submit your work."
	}
	switch task.Difficulty {
	case "easy", "medium", "hard":
	default:
		task.Difficulty = "medium"
	}
	if task.Points == 0 {
		task.Points = 100
	}
	if task.Points < 50 {
		task.Points = 50
	}
	if task.Points > 150 {
		task.Points = 150
	}
}

// GenerateFeedback evaluates a submission against its task. The score is
// always within [0, 100].
func (g *Gateway) GenerateFeedback(ctx context.Context, submissionContent, taskTitle, taskDescription, taskDifficulty, industry string) Feedback {
	fallback := Feedback{
		Score:               70,
		FeedbackSummary:     "Thank you for your submission. The feedback system is currently experiencing technical difficulties.",
		Strengths:           []string{"Completed the task"},
		AreasForImprovement: []string{"Continue practicing"},
		NextSteps:           []string{"Please try again later if you need detailed feedback"},
	}

	if industry == "" {
		industry = "professional"
	}

	systemPrompt := fmt.Sprintf(
		"You are an experienced mentor in the %s industry evaluating intern submissions. "+
			"You need to provide detailed, constructive feedback on a submission for a task titled '%s'. "+
			"The task difficulty is %s. "+
			"Task description: %s. "+
			"Evaluate the work as if it were submitted by a real intern. "+
			"Be constructive but realistic in your assessment. "+
			"Respond with a JSON object having these fields: "+
			"score (0-100), feedback_summary, strengths (list), areas_for_improvement (list), and next_steps (list).",
		industry, taskTitle, taskDifficulty, taskDescription,
	)

	raw, err := g.client.JSONCompletion(ctx, systemPrompt, submissionContent,
		openai.WithMaxTokens(1000),
		openai.WithTemperature(0.5),
	)
	if err != nil {
		log.Printf("[Supervisor] Error generating feedback: %v", err)
		return fallback
	}

	var feedback Feedback
	if err := utils.ExtractJSONTo(raw, &feedback); err != nil {
		log.Printf("[Supervisor] Failed to parse feedback response: %v", err)
		return fallback
	}

	if feedback.Score == 0 {
		feedback.Score = 70
	}
	if feedback.Score < 0 {
		feedback.Score = 0
	}
	if feedback.Score > 100 {
		feedback.Score = 100
	}
	if feedback.FeedbackSummary == "" {
		feedback.FeedbackSummary = "Thank you for your submission."
	}
	if len(feedback.Strengths) == 0 {
		feedback.Strengths = []string{"Completed the task"}
	}
	if len(feedback.AreasForImprovement) == 0 {
		feedback.AreasForImprovement = []string{"Continue practicing"}
	}
	if len(feedback.NextSteps) == 0 {
		feedback.NextSteps = []string{"Review the feedback and apply it to future tasks"}
	}

	return feedback
}

// resourceListEnvelope accepts the {"resources": [...]} shape
type resourceListEnvelope struct {
	Resources []Resource `json:"resources"`
}

// SuggestResources proposes learning resources for a task
func (g *Gateway) SuggestResources(ctx context.Context, taskTitle, taskDescription, industry string) []Resource {
	fallback := []Resource{
		{
			Title:       "Getting Started Guide",
			Description: "A basic resource to help you get started with this task. Note: resource suggestions are currently limited due to technical issues.",
			Type:        "guide",
		},
	}

	systemPrompt := fmt.Sprintf(
		"You are a knowledgeable resource advisor in the %s industry. "+
			"Provide a list of 3-5 quality learning resources related to the following task that an intern needs to complete: "+
			"Task: '%s' - %s. "+
			"For each resource, include a title, brief description, and resource type (e.g., article, video, tutorial). "+
			"Respond with a JSON array where each object has title, description, and type fields.",
		industry, taskTitle, taskDescription,
	)

	raw, err := g.client.JSONCompletion(ctx, systemPrompt, fmt.Sprintf("Suggest resources for: %s", taskTitle),
		openai.WithMaxTokens(800),
		openai.WithTemperature(0.7),
	)
	if err != nil {
		log.Printf("[Supervisor] Error suggesting resources: %v", err)
		return fallback
	}

	var resources []Resource
	if err := utils.ExtractJSONTo(raw, &resources); err != nil {
		var envelope resourceListEnvelope
		if err := utils.ExtractJSONTo(raw, &envelope); err != nil {
			log.Printf("[Supervisor] Failed to parse resources response: %v", err)
			return fallback
		}
		resources = envelope.Resources
	}

	if len(resources) == 0 {
		return fallback
	}

	return resources
}

// GenerateCertificate writes the certificate content for a completed
// internship
func (g *Gateway) GenerateCertificate(ctx context.Context, userName, internshipTitle, industry string, tasksCompleted int, avgScore float64) GeneratedCertificate {
	fallback := GeneratedCertificate{
		Title:          fmt.Sprintf("%s Virtual Internship Certificate", industry),
		Description:    fmt.Sprintf("This certifies that %s has successfully completed the %s virtual internship program.", userName, internshipTitle),
		SkillsAcquired: []string{fmt.Sprintf("%s fundamentals", industry), "Professional communication", "Problem solving"},
	}

	systemPrompt := fmt.Sprintf(
		"You are creating an official certificate for %s who has completed a virtual internship "+
			"titled '%s' in the %s industry. "+
			"They completed %d tasks with an average score of %.1f/100. "+
			"Create a professional certificate description and list of skills acquired during this internship. "+
			"Respond with a JSON object having these fields: title, description, and skills_acquired (list of strings).",
		userName, internshipTitle, industry, tasksCompleted, avgScore,
	)

	raw, err := g.client.JSONCompletion(ctx, systemPrompt, "Generate certificate content",
		openai.WithMaxTokens(800),
		openai.WithTemperature(0.7),
	)
	if err != nil {
		log.Printf("[Supervisor] Error generating certificate: %v", err)
		return fallback
	}

	var certificate GeneratedCertificate
	if err := utils.ExtractJSONTo(raw, &certificate); err != nil {
		log.Printf("[Supervisor] Failed to parse certificate response: %v", err)
		return fallback
	}

	if certificate.Title == "" {
		certificate.Title = fallback.Title
	}
	if certificate.Description == "" {
		certificate.Description = fallback.Description
	}
	if len(certificate.SkillsAcquired) == 0 {
		certificate.SkillsAcquired = fallback.SkillsAcquired
	}

	return certificate
}

// GenerateCompaniesAndRoles builds catalog entries for an industry. Both
// lists are empty when generation fails; callers treat that as a no-op.
func (g *Gateway) GenerateCompaniesAndRoles(ctx context.Context, industry string) CompaniesAndRoles {
	fallback := CompaniesAndRoles{
		Companies: []GeneratedCompany{},
		Roles:     []GeneratedRole{},
	}

	systemPrompt := "You are a career and industry expert. " +
		"Create a set of realistic companies and corresponding job roles for a specific industry. " +
		"For each company, provide a name, description, and location. " +
		"For each role, provide a name, description, requirements, skills required, and experience level. " +
		"Respond with a JSON object that contains two arrays: 'companies' and 'roles'."

	userPrompt := fmt.Sprintf(
		"Generate 3-5 realistic companies for the %s industry, along with 2-3 internship roles for each company. "+
			"Companies should have: name, description, location. "+
			"Roles should have: name, description, company_name (matching one of the companies), requirements, "+
			"skills_required (comma-separated), and experience_level (Entry, Mid, or Senior).",
		industry,
	)

	raw, err := g.client.JSONCompletion(ctx, systemPrompt, userPrompt,
		openai.WithMaxTokens(1500),
		openai.WithTemperature(0.7),
	)
	if err != nil {
		log.Printf("[Supervisor] Error generating companies and roles: %v", err)
		return fallback
	}

	var result CompaniesAndRoles
	if err := utils.ExtractJSONTo(raw, &result); err != nil {
		log.Printf("[Supervisor] Failed to parse companies and roles response: %v", err)
		return fallback
	}

	if result.Companies == nil {
		result.Companies = []GeneratedCompany{}
	}
	if result.Roles == nil {
		result.Roles = []GeneratedRole{}
	}

	return result
}

// AskContext carries the optional context for a supervisor question
type AskContext struct {
	FullName        string
	Major           string
	IndustryName    string
	InternshipTitle string
	TaskTitle       string
	TaskDescription string
	TaskInstruction string
}

// AskQuestion answers a free-form student question in the voice of the
// AI supervisor
func (g *Gateway) AskQuestion(ctx context.Context, question string, askCtx AskContext) string {
	const fallback = "I apologize, but I'm having trouble processing your question at the moment. Please try again later or contact support if the issue persists."

	name := askCtx.FullName
	if name == "" {
		name = "a student"
	}

	context := "You are an AI supervisor for a virtual internship program. "
	context += fmt.Sprintf("You are helping a student named %s ", name)

	if askCtx.Major != "" {
		context += fmt.Sprintf("who is studying %s ", askCtx.Major)
	}

	if askCtx.InternshipTitle != "" {
		context += fmt.Sprintf("during their %s internship titled '%s'. ", askCtx.IndustryName, askCtx.InternshipTitle)
	} else {
		context += "who is interested in starting a virtual internship. "
	}

	if askCtx.TaskTitle != "" {
		context += fmt.Sprintf("They are currently working on a task titled '%s'. ", askCtx.TaskTitle)
		context += fmt.Sprintf("Task description: %s. ", askCtx.TaskDescription)
		context += fmt.Sprintf("Task instructions: %s. ", askCtx.TaskInstruction)
	}

	answer, err := g.client.SimpleCompletion(ctx, context, question,
		openai.WithMaxTokens(800),
		openai.WithTemperature(0.7),
	)
	if err != nil {
		log.Printf("[Supervisor] Error generating supervisor response: %v", err)
		return fallback
	}

	if answer == "" {
		return fallback
	}

	return answer
}
