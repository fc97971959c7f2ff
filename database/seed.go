package database

import (
	"fmt"
	"log"
	"os"

	"github.com/sahilchouksey/internship-simulator/model"
	"github.com/sahilchouksey/internship-simulator/utils/auth"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedIndustries(); err != nil {
		return fmt.Errorf("failed to seed industries: %w", err)
	}

	if err := s.SeedCompanies(); err != nil {
		return fmt.Errorf("failed to seed companies: %w", err)
	}

	if err := s.SeedRoles(); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default admin user
func (s *Seeder) SeedAdminUser() error {
	// Check if admin already exists
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	// Get admin credentials from environment variables
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️  ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	// Hash password
	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Username:     "admin",
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Role:         "admin",
		TokenVersion: 0,
		Profile: &model.UserProfile{
			FullName:         "Admin User",
			ProfileCompleted: true,
		},
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Created admin user: %s\n", admin.Email)
	return nil
}

// SeedIndustries creates the industry catalog
func (s *Seeder) SeedIndustries() error {
	// Check if industries already exist
	var count int64
	if err := s.db.Model(&model.Industry{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Industries already exist, skipping...")
		return nil
	}

	industries := []model.Industry{
		{
			Name:        "Technology",
			Description: "Experience virtual internships in software development, cybersecurity, data science, and IT management.",
			Icon:        "fa-laptop-code",
		},
		{
			Name:        "Business",
			Description: "Gain experience in marketing, finance, management, and entrepreneurship through virtual business internships.",
			Icon:        "fa-chart-line",
		},
		{
			Name:        "Healthcare",
			Description: "Explore healthcare administration, biotech research, medical informatics, and public health.",
			Icon:        "fa-heartbeat",
		},
		{
			Name:        "Engineering",
			Description: "Work on projects in mechanical, electrical, civil, and aerospace engineering disciplines.",
			Icon:        "fa-cogs",
		},
		{
			Name:        "Creative Arts",
			Description: "Develop portfolios in graphic design, content creation, digital media, and creative writing.",
			Icon:        "fa-paint-brush",
		},
		{
			Name:        "Education",
			Description: "Experience teaching methodologies, curriculum development, educational technology, and student assessment.",
			Icon:        "fa-graduation-cap",
		},
		{
			Name:        "Environmental Science",
			Description: "Work on sustainability projects, climate research, conservation efforts, and environmental policy.",
			Icon:        "fa-leaf",
		},
		{
			Name:        "Media & Communications",
			Description: "Gain experience in journalism, public relations, social media management, and digital content creation.",
			Icon:        "fa-comments",
		},
		{
			Name:        "Hospitality & Tourism",
			Description: "Learn about hotel management, event planning, tourism development, and customer experience design.",
			Icon:        "fa-concierge-bell",
		},
		{
			Name:        "Finance & Banking",
			Description: "Experience financial analysis, investment management, banking operations, and fintech innovation.",
			Icon:        "fa-money-bill-wave",
		},
	}

	for _, industry := range industries {
		if err := s.db.Create(&industry).Error; err != nil {
			return err
		}
		log.Printf("✅ Created industry: %s\n", industry.Name)
	}

	return nil
}

type seedCompany struct {
	Name        string
	Industry    string
	Description string
	Logo        string
	Website     string
	Location    string
}

// SeedCompanies creates sample companies for each industry
func (s *Seeder) SeedCompanies() error {
	var count int64
	if err := s.db.Model(&model.Company{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Companies already exist, skipping...")
		return nil
	}

	companies := []seedCompany{
		{"TechNova", "Technology", "A leading innovative technology company specializing in AI and machine learning solutions.", "technova-logo.png", "https://technova.example.com", "Silicon Valley"},
		{"CodeX Systems", "Technology", "An enterprise software development company creating scalable solutions for various industries.", "codex-logo.png", "https://codex.example.com", "Seattle"},
		{"FinEdge", "Business", "A fintech startup revolutionizing personal finance and investment management.", "finedge-logo.png", "https://finedge.example.com", "New York City"},
		{"GlobalStrategy Partners", "Business", "A consulting firm offering strategic business advice and market analysis to Fortune 500 clients.", "globalstrategy-logo.png", "https://globalstrategy.example.com", "Chicago"},
		{"MediCura", "Healthcare", "A healthcare provider focused on telemedicine and digital health solutions.", "medicura-logo.png", "https://medicura.example.com", "Boston"},
		{"BioGenetics", "Healthcare", "A biotech research company working on genomic solutions for personalized medicine.", "biogenetics-logo.png", "https://biogenetics.example.com", "San Diego"},
		{"EngiPro", "Engineering", "An engineering firm specializing in sustainable infrastructure and green energy solutions.", "engipro-logo.png", "https://engipro.example.com", "Chicago"},
		{"RoboTech Innovations", "Engineering", "A robotics engineering company developing autonomous systems for industrial applications.", "robotech-logo.png", "https://robotech.example.com", "Detroit"},
		{"DesignFusion", "Creative Arts", "A creative agency delivering innovative design solutions for digital and print media.", "designfusion-logo.png", "https://designfusion.example.com", "Los Angeles"},
		{"ArtSpace Studios", "Creative Arts", "A digital art studio producing animations, illustrations, and visual content for entertainment.", "artspace-logo.png", "https://artspace.example.com", "San Francisco"},
		{"EduTech Solutions", "Education", "An educational technology company developing digital learning platforms for schools and universities.", "edutech-logo.png", "https://edutech.example.com", "Boston"},
		{"Global Learning Institute", "Education", "An international education organization developing curriculum and assessment tools for global learners.", "globallearning-logo.png", "https://globallearning.example.com", "Washington DC"},
		{"EcoSolutions", "Environmental Science", "A consulting firm specializing in environmental impact assessments and sustainability planning.", "ecosolutions-logo.png", "https://ecosolutions.example.com", "Portland"},
		{"ClimateWatch Research", "Environmental Science", "A research organization monitoring climate change and developing mitigation strategies.", "climatewatch-logo.png", "https://climatewatch.example.com", "Boulder"},
		{"MediaPulse", "Media & Communications", "A digital media company producing news content across multiple platforms.", "mediapulse-logo.png", "https://mediapulse.example.com", "New York"},
		{"Viral Communications", "Media & Communications", "A PR and social media agency managing campaigns for major brands and personalities.", "viralcomm-logo.png", "https://viralcomm.example.com", "Los Angeles"},
		{"Global Adventures", "Hospitality & Tourism", "A travel company organizing sustainable tourism experiences worldwide.", "globaladventures-logo.png", "https://globaladventures.example.com", "Miami"},
		{"LuxStay Hotels", "Hospitality & Tourism", "A premium hotel chain focusing on experiential hospitality and local cultural immersion.", "luxstay-logo.png", "https://luxstay.example.com", "Las Vegas"},
		{"Quantum Finance", "Finance & Banking", "A global investment bank offering services in asset management and financial advisory.", "quantumfinance-logo.png", "https://quantumfinance.example.com", "New York"},
		{"DigiBank", "Finance & Banking", "A digital banking platform offering innovative financial services and products.", "digibank-logo.png", "https://digibank.example.com", "San Francisco"},
	}

	for _, c := range companies {
		var industry model.Industry
		if err := s.db.Where("name = ?", c.Industry).First(&industry).Error; err != nil {
			log.Printf("⚠️  Industry not found for company %s: %s\n", c.Name, c.Industry)
			continue
		}

		company := model.Company{
			IndustryID:  industry.ID,
			Name:        c.Name,
			Description: c.Description,
			Logo:        c.Logo,
			Website:     c.Website,
			Location:    c.Location,
		}
		if err := s.db.Create(&company).Error; err != nil {
			return err
		}
		log.Printf("✅ Created company: %s\n", company.Name)
	}

	return nil
}

type seedRole struct {
	Name            string
	Industry        string
	Company         string
	Description     string
	Requirements    string
	SkillsRequired  string
	ExperienceLevel string
}

// SeedRoles creates sample internship roles tied to the seeded companies
func (s *Seeder) SeedRoles() error {
	var count int64
	if err := s.db.Model(&model.Role{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Roles already exist, skipping...")
		return nil
	}

	roles := []seedRole{
		{"Software Developer Intern", "Technology", "TechNova", "Work on developing and testing software applications under the guidance of experienced developers.", "Knowledge of programming languages such as Python, JavaScript, or Java. Familiar with software development lifecycle.", "Programming, Problem Solving, Version Control", "Entry"},
		{"Data Science Intern", "Technology", "TechNova", "Analyze large datasets and build predictive models to derive business insights.", "Knowledge of statistics, machine learning, and programming languages like Python or R.", "Python, Data Analysis, Statistics", "Entry"},
		{"UX/UI Design Intern", "Technology", "CodeX Systems", "Design user interfaces for web and mobile applications with a focus on usability and aesthetics.", "Knowledge of design principles, wireframing, and prototyping tools.", "UI Design, Wireframing, User Research", "Entry"},
		{"Cybersecurity Intern", "Technology", "CodeX Systems", "Assist in identifying and mitigating security threats to company systems and networks.", "Basic understanding of cybersecurity principles, network protocols, and security tools.", "Network Security, Risk Assessment, Security Tools", "Entry"},
		{"Marketing Intern", "Business", "FinEdge", "Support marketing campaigns, conduct market research, and analyze campaign performance.", "Knowledge of marketing principles, social media platforms, and basic analytics.", "Marketing, Social Media, Analytics", "Entry"},
		{"Business Analyst Intern", "Business", "GlobalStrategy Partners", "Collect and analyze business data to provide insights and recommendations for improvement.", "Knowledge of business processes, data analysis, and problem-solving skills.", "Data Analysis, Business Knowledge, Problem Solving", "Entry"},
		{"Clinical Research Intern", "Healthcare", "MediCura", "Assist in conducting clinical trials, collecting and analyzing patient data, and preparing research reports.", "Knowledge of medical terminology, research methods, and data analysis.", "Research Methods, Data Analysis, Medical Knowledge", "Entry"},
		{"Healthcare Administration Intern", "Healthcare", "BioGenetics", "Support administrative functions in healthcare settings, including patient records management and operational workflow.", "Knowledge of healthcare systems, administrative procedures, and regulatory compliance.", "Administration, Healthcare Knowledge, Organization", "Entry"},
		{"Civil Engineering Intern", "Engineering", "EngiPro", "Assist in designing and analyzing civil structures and infrastructure projects.", "Knowledge of civil engineering principles, CAD software, and structural analysis.", "CAD, Structural Analysis, Technical Drawing", "Entry"},
		{"Mechanical Engineering Intern", "Engineering", "RoboTech Innovations", "Support the design, testing, and analysis of mechanical systems and components.", "Knowledge of mechanical engineering principles, CAD software, and physics.", "CAD, Engineering Design, Materials Science", "Entry"},
		{"Graphic Design Intern", "Creative Arts", "DesignFusion", "Create visual concepts and designs for various media including print, digital, and social.", "Knowledge of design principles, proficiency in design software, and a strong portfolio.", "Adobe Creative Suite, Typography, Visual Design", "Entry"},
		{"Content Creator Intern", "Creative Arts", "ArtSpace Studios", "Develop engaging content for various platforms including blogs, social media, and websites.", "Strong writing skills, creativity, and understanding of content marketing.", "Writing, Content Strategy, SEO", "Entry"},
		{"Educational Technology Intern", "Education", "EduTech Solutions", "Support the development and implementation of educational technology solutions.", "Knowledge of educational principles, e-learning platforms, and instructional design.", "E-Learning, Instructional Design, Educational Technology", "Entry"},
		{"Curriculum Development Intern", "Education", "Global Learning Institute", "Assist in developing and reviewing educational curriculum for various subjects and grade levels.", "Knowledge of pedagogy, curriculum design, and subject matter expertise.", "Curriculum Design, Educational Theory, Content Creation", "Entry"},
		{"Financial Analyst Intern", "Finance & Banking", "Quantum Finance", "Analyze financial data, prepare reports, and assist in financial planning and forecasting.", "Knowledge of financial principles, Excel, and financial analysis techniques.", "Financial Analysis, Excel, Financial Modeling", "Entry"},
		{"Investment Banking Intern", "Finance & Banking", "DigiBank", "Support investment banking activities including mergers and acquisitions, capital raising, and market research.", "Knowledge of finance, accounting, and investment banking principles.", "Financial Analysis, Valuation, Market Research", "Entry"},
	}

	for _, r := range roles {
		var industry model.Industry
		if err := s.db.Where("name = ?", r.Industry).First(&industry).Error; err != nil {
			log.Printf("⚠️  Industry not found for role %s: %s\n", r.Name, r.Industry)
			continue
		}

		var company model.Company
		if err := s.db.Where("name = ?", r.Company).First(&company).Error; err != nil {
			log.Printf("⚠️  Company not found for role %s: %s\n", r.Name, r.Company)
			continue
		}

		companyID := company.ID
		role := model.Role{
			IndustryID:      industry.ID,
			CompanyID:       &companyID,
			Name:            r.Name,
			Description:     r.Description,
			Requirements:    r.Requirements,
			SkillsRequired:  r.SkillsRequired,
			ExperienceLevel: r.ExperienceLevel,
		}
		if err := s.db.Create(&role).Error; err != nil {
			return err
		}
		log.Printf("✅ Created role: %s for %s\n", role.Name, company.Name)
	}

	return nil
}
