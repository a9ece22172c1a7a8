package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobPart is a part allocated to a job, optionally linked to a VHC concern
// by canonical id (VhcItemId = 0 means unlinked). The Authorised flag is an
// independent parts-side approval signal set by the parts desk.
type JobPart struct {
	ID          int             `gorm:"primary_key" json:"id"`
	GarageId    string          `gorm:"index;not null" json:"garage_id"`
	JobId       int             `gorm:"index;not null" json:"job_id"`
	VhcItemId   int             `gorm:"index;default:0" json:"vhc_item_id"`
	PartNumber  string          `gorm:"size:50" json:"part_number"`
	Description string          `gorm:"size:200" json:"description"`
	Qty         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"qty"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	Authorised  *bool           `gorm:"not null;default:false" json:"authorised"`
	// PrePickLocation is where stores staged the part for picking.
	// Cleared (not deleted) when the linked concern leaves Authorized.
	PrePickLocation string          `gorm:"size:50" json:"pre_pick_location"`
	LabourHours     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"labour_hours"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// LineCost is qty x unit price.
func (p *JobPart) LineCost() decimal.Decimal {
	return p.Qty.Mul(p.UnitPrice)
}
