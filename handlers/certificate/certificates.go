package certificate

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/internship-simulator/database"
	"github.com/sahilchouksey/internship-simulator/model"
	"github.com/sahilchouksey/internship-simulator/utils/middleware"
	"github.com/sahilchouksey/internship-simulator/utils/response"
	"gorm.io/gorm"
)

// ListCertificates returns all certificates earned by the user
// GET /certificates
func ListCertificates(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var certificates []model.Certificate
	if err := db.Where("user_id = ?", userID).
		Order("issued_at DESC").
		Find(&certificates).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch certificates")
	}

	return response.Success(c, certificates)
}

// GetCertificate returns a single certificate owned by the user
// GET /certificates/:id
func GetCertificate(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	certificateID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid certificate ID")
	}

	var certificate model.Certificate
	if err := db.First(&certificate, certificateID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Certificate not found")
		}
		return response.InternalServerError(c, "Failed to fetch certificate")
	}

	if certificate.UserID != userID {
		return response.Forbidden(c, "You do not have access to this certificate")
	}

	return response.Success(c, certificate)
}
