package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobCard is one workshop visit for one vehicle.
type JobCard struct {
	ID           int             `gorm:"primary_key" json:"id"`
	GarageId     string          `gorm:"index;not null" json:"garage_id"`
	JobNumber    string          `gorm:"index;size:30;not null" json:"job_number"`
	Registration string          `gorm:"index;size:16" json:"registration"`
	Vin          string          `gorm:"size:32" json:"vin"`
	CustomerName string          `gorm:"size:100" json:"customer_name"`
	Status       JobStatus       `gorm:"size:20;default:open" json:"status"`
	LabourRate   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"labour_rate"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
