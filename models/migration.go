package models

import (
	"github.com/mmdatafocus/workshop_backend/config"
	"github.com/mmdatafocus/workshop_backend/utils"
)

// MigrateTable runs AutoMigrate for every table this core owns or reads.
func MigrateTable() {
	db := config.GetDB()
	err := db.AutoMigrate(
		&JobCard{},
		&VhcItem{},
		&VhcItemAlias{},
		&JobPart{},
		&JobRequest{},
		&RectificationItem{},
		&Writeup{},
		&JobNote{},
	)
	utils.ErrorPanic(err)
}
