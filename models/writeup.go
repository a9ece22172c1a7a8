package models

import "time"

// Writeup is the technician's finalizing report for a job. One writeup per
// job is active at a time; its reference is denormalized onto rectification
// items created while it is active.
type Writeup struct {
	ID        int       `gorm:"primary_key" json:"id"`
	GarageId  string    `gorm:"index;not null" json:"garage_id"`
	JobId     int       `gorm:"index;not null" json:"job_id"`
	Reference string    `gorm:"size:30;not null" json:"reference"`
	Active    *bool     `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
