package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VhcItem is one concern found during a vehicle health check.
// Rows are created by inspection capture; the reconciliation engine mutates
// only the approval fields and never deletes them.
type VhcItem struct {
	ID       int    `gorm:"primary_key" json:"id"`
	GarageId string `gorm:"index;not null" json:"garage_id"`
	JobId    int    `gorm:"index;not null" json:"job_id"`

	// Slot/Line are the checksheet coordinates the technician filled in.
	Slot int `gorm:"default:0" json:"slot"`
	Line int `gorm:"default:0" json:"line"`

	Section     string `gorm:"size:100" json:"section"`
	Category    string `gorm:"size:100" json:"category"`
	Title       string `gorm:"size:200" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Notes       string `gorm:"type:text" json:"notes"`
	Measurement string `gorm:"size:100" json:"measurement"`

	// Severity is the explicit colour, when the technician set one.
	Severity VhcSeverity `gorm:"size:10" json:"severity"`
	// DisplayStatus is the free-form status shown on the checksheet.
	// Legacy writers stored either a colour or a workflow value here.
	DisplayStatus  string            `gorm:"size:30" json:"display_status"`
	ApprovalStatus VhcApprovalStatus `gorm:"size:20;default:pending" json:"approval_status"`
	ApprovedAt     *time.Time        `json:"approved_at"`

	LabourHours  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"labour_hours"`
	CostOverride decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cost_override"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeSave keeps the approval fields self-consistent: a non-authorized row
// must not carry an approval timestamp.
func (v *VhcItem) BeforeSave(tx *gorm.DB) error {
	_ = tx // signature required by gorm; tx may be nil in tests
	if v == nil {
		return nil
	}
	if !v.ApprovalStatus.IsAuthorized() {
		v.ApprovedAt = nil
	}
	return nil
}
