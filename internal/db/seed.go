package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// DefaultServices is the clinic catalog installed on an empty database.
var DefaultServices = []models.Service{
	{Code: "HYDRA-FACIAL", Label: "HYDRA-FACIAL", Description: "Deep cleansing facial treatment", Category: models.CategoryAesthetic, Duration: "60 min"},
	{Code: "CARBON PEEL", Label: "CARBON PEEL", Description: "Carbon laser peel for skin rejuvenation", Category: models.CategoryAesthetic, Duration: "45 min"},
	{Code: "OXYGENO", Label: "OXYGENO", Description: "Oxygen facial treatment", Category: models.CategoryAesthetic, Duration: "50 min"},
	{Code: "PICO LASER", Label: "PICO LASER", Description: "Advanced skin rejuvenation", Category: models.CategoryAesthetic, Duration: "40 min"},
	{Code: "MICRO NEEDLING", Label: "MICRO NEEDLING", Description: "Collagen induction therapy", Category: models.CategoryAesthetic, Duration: "60 min"},
	{Code: "HAIR & FACE PRP", Label: "HAIR & FACE PRP", Description: "PRP therapy for rejuvenation", Category: models.CategoryAesthetic, Duration: "75 min"},

	{Code: "Dental consultation", Label: "Dental Consultation", Description: "Comprehensive dental check-up", Category: models.CategoryDental, Duration: "30 min"},
	{Code: "Dental surgeries", Label: "Dental Surgeries", Description: "Safe dental surgical procedures", Category: models.CategoryDental, Duration: "90 min"},
	{Code: "Teeth whitening", Label: "Teeth Whitening", Description: "Professional teeth whitening", Category: models.CategoryDental, Duration: "60 min"},
	{Code: "Scaling & Polishing", Label: "Scaling & Polishing", Description: "Professional cleaning", Category: models.CategoryDental, Duration: "45 min"},
	{Code: "Full mouth dentures", Label: "Full Mouth Dentures", Description: "Custom-fitted dentures", Category: models.CategoryDental, Duration: "120 min"},
	{Code: "Dental fillings", Label: "Dental Fillings", Description: "High-quality cavity fillings", Category: models.CategoryDental, Duration: "45 min"},
	{Code: "Dental X-ray", Label: "Dental X-ray", Description: "Digital dental X-rays", Category: models.CategoryDental, Duration: "15 min"},
	{Code: "Veneers", Label: "Veneers", Description: "Cosmetic veneers", Category: models.CategoryDental, Duration: "90 min"},
	{Code: "Root canals", Label: "Root Canals", Description: "Pain-free root canal treatment", Category: models.CategoryDental, Duration: "90 min"},
	{Code: "Crowns & bridges", Label: "Crowns & Bridges", Description: "Restore damaged teeth", Category: models.CategoryDental, Duration: "90 min"},
	{Code: "Dental implants", Label: "Dental Implants", Description: "Permanent tooth replacement", Category: models.CategoryDental, Duration: "120 min"},
	{Code: "Braces & Aligners", Label: "Braces & Aligners", Description: "Orthodontic treatment", Category: models.CategoryDental, Duration: "60 min"},
}

// SeedServices inserts the default catalog when the services table is
// empty. Existing rows are never touched.
func SeedServices(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	services := make([]models.Service, len(DefaultServices))
	copy(services, DefaultServices)
	for i := range services {
		services[i].Active = true
	}

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&services)
	if res.Error != nil {
		return 0, res.Error
	}

	return int(res.RowsAffected), nil
}
