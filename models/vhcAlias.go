package models

import "time"

// VhcItemAlias maps the stable human-facing display id of a concern to its
// canonical row id. Written once at capture time; read-only afterwards.
type VhcItemAlias struct {
	ID        int       `gorm:"primary_key" json:"id"`
	GarageId  string    `gorm:"index;not null" json:"garage_id"`
	JobId     int       `gorm:"uniqueIndex:idx_job_display;not null" json:"job_id"`
	DisplayId string    `gorm:"uniqueIndex:idx_job_display;size:50;not null" json:"display_id"`
	VhcItemId int       `gorm:"index;not null" json:"vhc_item_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
