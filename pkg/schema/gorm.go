package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Country{},
		&Region{},
		&Division{},
		&City{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// NameIndexTables lists tables that get a case-insensitive name index.
func NameIndexTables() []string {
	return []string{"countries", "regions", "divisions", "cities"}
}
