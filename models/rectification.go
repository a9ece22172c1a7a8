package models

import "time"

// RectificationItem is the write-up-facing record of additional work linked
// 1:1 to an authorized VHC concern. Same one-or-zero invariant as the
// engine-owned JobRequest.
type RectificationItem struct {
	ID        int    `gorm:"primary_key" json:"id"`
	GarageId  string `gorm:"index;not null" json:"garage_id"`
	JobId     int    `gorm:"uniqueIndex:idx_rect_job_item;not null" json:"job_id"`
	VhcItemId int    `gorm:"uniqueIndex:idx_rect_job_item;not null" json:"vhc_item_id"`
	// JobNumber is denormalized so write-up views render without a join.
	JobNumber      string              `gorm:"size:30" json:"job_number"`
	WriteupRef     string              `gorm:"size:30" json:"writeup_ref"`
	Description    string              `gorm:"size:255" json:"description"`
	Status         RectificationStatus `gorm:"size:20;default:waiting" json:"status"`
	AdditionalWork *bool               `gorm:"not null;default:false" json:"additional_work"`
	CreatedAt      time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}
