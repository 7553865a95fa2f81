package migration

import (
	"github.com/veredas/veredas-backend/internal/domain"
	"gorm.io/gorm"
)

// Run creates the core tables and every registered content schema.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Document{}, &domain.Revision{}); err != nil {
		return err
	}

	for _, desc := range domain.RegisteredKinds() {
		if err := db.AutoMigrate(desc.New()); err != nil {
			return err
		}
	}
	return nil
}
