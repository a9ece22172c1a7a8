package models

import (
	"strconv"
	"strings"
	"time"
)

// JobNote is a free-text annotation that can reference zero, one or many VHC
// concerns: VhcItemId is the legacy single link, VhcItemIds the newer
// comma-separated list link. Both are kept because historical rows carry
// either shape.
type JobNote struct {
	ID        int    `gorm:"primary_key" json:"id"`
	GarageId  string `gorm:"index;not null" json:"garage_id"`
	JobId     int    `gorm:"index;not null" json:"job_id"`
	Body      string `gorm:"type:text" json:"body"`
	VhcItemId int    `gorm:"index;default:0" json:"vhc_item_id"`
	// VhcItemIds holds comma-separated canonical ids, e.g. "12,15,103".
	VhcItemIds string    `gorm:"size:255" json:"vhc_item_ids"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// LinkedVhcIds returns every canonical id the note references, single link
// first, without duplicates.
func (n *JobNote) LinkedVhcIds() []int {
	ids := make([]int, 0, 4)
	seen := map[int]bool{}
	if n.VhcItemId > 0 {
		ids = append(ids, n.VhcItemId)
		seen[n.VhcItemId] = true
	}
	for _, part := range strings.Split(n.VhcItemIds, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id <= 0 || seen[id] {
			continue
		}
		ids = append(ids, id)
		seen[id] = true
	}
	return ids
}

// ReferencesVhcId reports whether the note links the given canonical id.
func (n *JobNote) ReferencesVhcId(vhcItemId int) bool {
	for _, id := range n.LinkedVhcIds() {
		if id == vhcItemId {
			return true
		}
	}
	return false
}

// RemoveVhcLink strips the reference from both link fields and reports
// whether anything changed. Callers skip the write when it did not.
func (n *JobNote) RemoveVhcLink(vhcItemId int) bool {
	changed := false
	if n.VhcItemId == vhcItemId {
		n.VhcItemId = 0
		changed = true
	}
	if n.VhcItemIds != "" {
		kept := make([]string, 0, 4)
		for _, part := range strings.Split(n.VhcItemIds, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if id, err := strconv.Atoi(trimmed); err == nil && id == vhcItemId {
				changed = true
				continue
			}
			kept = append(kept, trimmed)
		}
		rebuilt := strings.Join(kept, ",")
		if rebuilt != n.VhcItemIds {
			n.VhcItemIds = rebuilt
		}
	}
	return changed
}
