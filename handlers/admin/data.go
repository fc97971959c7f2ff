package admin

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/internship-simulator/database"
	"github.com/sahilchouksey/internship-simulator/model"
	"github.com/sahilchouksey/internship-simulator/services/supervisor"
	"github.com/sahilchouksey/internship-simulator/utils/response"
	"gorm.io/gorm"
)

// DataHandler handles admin data management operations that need the
// AI gateway in addition to the database
type DataHandler struct {
	db      *gorm.DB
	gateway *supervisor.Gateway
}

// NewDataHandler creates a new data handler
func NewDataHandler(db *gorm.DB, gateway *supervisor.Gateway) *DataHandler {
	return &DataHandler{
		db:      db,
		gateway: gateway,
	}
}

// InitializeData seeds the reference catalog (industries, companies,
// roles) and the admin account. Safe to call repeatedly; existing rows
// are left alone.
// POST /admin/initialize-data
func (h *DataHandler) InitializeData(c *fiber.Ctx) error {
	seeder := database.NewSeeder(h.db)
	if err := seeder.SeedAll(); err != nil {
		return response.InternalServerError(c, "Failed to initialize data")
	}

	var counts struct {
		Industries int64 `json:"industries"`
		Companies  int64 `json:"companies"`
		Roles      int64 `json:"roles"`
	}
	h.db.Model(&model.Industry{}).Count(&counts.Industries)
	h.db.Model(&model.Company{}).Count(&counts.Companies)
	h.db.Model(&model.Role{}).Count(&counts.Roles)

	return response.SuccessWithMessage(c, "Data initialized successfully", counts)
}

// GenerateCompaniesRoles asks the AI gateway for additional fictional
// companies and roles for an industry and persists them
// POST /admin/industries/:id/generate
func (h *DataHandler) GenerateCompaniesRoles(c *fiber.Ctx) error {
	industryID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid industry ID")
	}

	var industry model.Industry
	if err := h.db.First(&industry, industryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Industry not found")
		}
		return response.InternalServerError(c, "Failed to fetch industry")
	}

	generated := h.gateway.GenerateCompaniesAndRoles(c.Context(), industry.Name)

	createdCompanies := 0
	companyIDs := make(map[string]uint)

	for _, gc := range generated.Companies {
		if gc.Name == "" {
			continue
		}

		var existing model.Company
		err := h.db.Where("industry_id = ? AND name = ?", industry.ID, gc.Name).First(&existing).Error
		if err == nil {
			companyIDs[gc.Name] = existing.ID
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return response.InternalServerError(c, "Failed to check existing companies")
		}

		company := model.Company{
			IndustryID:  industry.ID,
			Name:        gc.Name,
			Description: gc.Description,
			Location:    gc.Location,
		}
		if err := h.db.Create(&company).Error; err != nil {
			log.Printf("[Admin] Failed to create company %s: %v", gc.Name, err)
			continue
		}
		companyIDs[gc.Name] = company.ID
		createdCompanies++
	}

	createdRoles := 0
	for _, gr := range generated.Roles {
		if gr.Name == "" {
			continue
		}

		role := model.Role{
			IndustryID:      industry.ID,
			Name:            gr.Name,
			Description:     gr.Description,
			Requirements:    gr.Requirements,
			SkillsRequired:  gr.SkillsRequired,
			ExperienceLevel: gr.ExperienceLevel,
		}
		if role.ExperienceLevel == "" {
			role.ExperienceLevel = "entry"
		}
		if id, ok := companyIDs[gr.CompanyName]; ok {
			role.CompanyID = &id
		}

		var existing model.Role
		query := h.db.Where("industry_id = ? AND name = ?", industry.ID, gr.Name)
		if role.CompanyID != nil {
			query = query.Where("company_id = ?", *role.CompanyID)
		}
		if err := query.First(&existing).Error; err == nil {
			continue
		}

		if err := h.db.Create(&role).Error; err != nil {
			log.Printf("[Admin] Failed to create role %s: %v", gr.Name, err)
			continue
		}
		createdRoles++
	}

	return response.SuccessWithMessage(c, "Companies and roles generated successfully", fiber.Map{
		"industry":          industry.Name,
		"companies_created": createdCompanies,
		"roles_created":     createdRoles,
	})
}

// ListInternships retrieves all internships with pagination
// GET /admin/internships
func ListInternships(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := db.Model(&model.InternshipTrack{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if industryID := c.Query("industry_id"); industryID != "" {
		query = query.Where("industry_id = ?", industryID)
	}

	var total int64
	query.Count(&total)

	var internships []model.InternshipTrack
	offset := (page - 1) * limit
	if err := query.Preload("Industry").Offset(offset).Limit(limit).Order("started_at DESC").Find(&internships).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch internships")
	}

	return response.SuccessWithMessage(c, "Internships retrieved successfully", fiber.Map{
		"internships": internships,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}
