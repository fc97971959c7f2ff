package supervisor

// GeneratedInternship is the parsed result of an internship generation call
type GeneratedInternship struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	DurationWeeks int    `json:"duration_weeks"`
}

// GeneratedTask is one task in a generated weekly task list
type GeneratedTask struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	Difficulty   string `json:"difficulty"`
	Points       int    `json:"points"`
}

// Feedback is the structured evaluation of a submission
type Feedback struct {
	Score               float64  `json:"score"`
	FeedbackSummary     string   `json:"feedback_summary"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	NextSteps           []string `json:"next_steps"`
}

// Resource is a suggested learning resource for a task
type Resource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// GeneratedCertificate holds the AI-written certificate content
type GeneratedCertificate struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	SkillsAcquired []string `json:"skills_acquired"`
}

// GeneratedCompany is one company in a catalog generation result
type GeneratedCompany struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// GeneratedRole is one role in a catalog generation result
type GeneratedRole struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	CompanyName     string `json:"company_name"`
	Requirements    string `json:"requirements"`
	SkillsRequired  string `json:"skills_required"`
	ExperienceLevel string `json:"experience_level"`
}

// CompaniesAndRoles bundles a catalog generation result
type CompaniesAndRoles struct {
	Companies []GeneratedCompany `json:"companies"`
	Roles     []GeneratedRole    `json:"roles"`
}
