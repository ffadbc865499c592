package models

import "gorm.io/gorm"

// All lists every model in dependency order.
func All() []interface{} {
	return []interface{}{&Profile{}, &Skill{}, &Project{}, &WorkExperience{}}
}

// AutoMigrate creates or updates the four profile tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
