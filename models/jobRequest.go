package models

import (
	"time"

	"gorm.io/gorm"
)

// JobRequest is a unit of chargeable work on a job. Rows sourced from an
// authorized VHC concern carry Source = JobRequestSourceVhcAuthorized and a
// VhcItemId link; at most one such row exists per (job, vhc item) and
// exactly one while the concern is authorized.
type JobRequest struct {
	ID          int              `gorm:"primary_key" json:"id"`
	GarageId    string           `gorm:"index;not null" json:"garage_id"`
	JobId       int              `gorm:"index;not null" json:"job_id"`
	Source      JobRequestSource `gorm:"index;size:20;default:MANUAL" json:"source"`
	VhcItemId   int              `gorm:"index;default:0" json:"vhc_item_id"`
	Description string           `gorm:"size:255" json:"description"`
	Category    VhcCategory      `gorm:"size:50" json:"category"`
	Status      JobRequestStatus `gorm:"size:20;default:requested" json:"status"`
	// JobPartId links the representative allocated part, when one exists.
	JobPartId       int       `gorm:"default:0" json:"job_part_id"`
	PrePickLocation string    `gorm:"size:50" json:"pre_pick_location"`
	NoteText        string    `gorm:"type:text" json:"note_text"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeSave defaults the source marker so legacy writers cannot produce
// rows that look engine-owned by accident.
func (r *JobRequest) BeforeSave(tx *gorm.DB) error {
	_ = tx
	if r == nil {
		return nil
	}
	if r.Source == "" {
		r.Source = JobRequestSourceManual
	}
	return nil
}
