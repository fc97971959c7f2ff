package industry

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/internship-simulator/database"
	"github.com/sahilchouksey/internship-simulator/model"
	"github.com/sahilchouksey/internship-simulator/utils/response"
	"gorm.io/gorm"
)

// ListIndustries returns all industries
// GET /industries
func ListIndustries(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	var industries []model.Industry
	if err := db.Order("name ASC").Find(&industries).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch industries")
	}

	return response.Success(c, industries)
}

// GetIndustry returns one industry with its companies and roles
// GET /industries/:id
func GetIndustry(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	industryID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid industry ID")
	}

	var industry model.Industry
	if err := db.Preload("Companies").Preload("Roles").First(&industry, industryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Industry not found")
		}
		return response.InternalServerError(c, "Failed to fetch industry")
	}

	return response.Success(c, industry)
}

// ListCompanies returns the companies of an industry
// GET /industries/:id/companies
func ListCompanies(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	industryID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid industry ID")
	}

	var companies []model.Company
	if err := db.Where("industry_id = ?", industryID).Order("name ASC").Find(&companies).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch companies")
	}

	return response.Success(c, companies)
}

// ListRoles returns the roles of an industry. Roles tied to a company
// carry their company_id so clients can group them.
// GET /industries/:id/roles
func ListRoles(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	industryID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid industry ID")
	}

	var roles []model.Role
	if err := db.Where("industry_id = ?", industryID).Order("name ASC").Find(&roles).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch roles")
	}

	return response.Success(c, roles)
}
