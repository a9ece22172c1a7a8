package vhc

import (
	"encoding/json"
	"strings"
)

// ChecksheetItem is one technician-entered entry on the inspection sheet.
// Status is the raw value as entered; it may be a colour, a workflow value,
// or junk, and is interpreted later by the severity helpers.
type ChecksheetItem struct {
	Slot        int    `json:"slot"`
	Line        int    `json:"line"`
	DisplayId   string `json:"display_id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
	Measurement string `json:"measurement"`
}

// ChecksheetSection groups items under the inspection sheet's section name.
type ChecksheetSection struct {
	Name  string            `json:"name"`
	Items []*ChecksheetItem `json:"items"`
}

type checksheetPayload struct {
	Sections []*ChecksheetSection `json:"sections"`
}

// ParseChecksheet turns the raw capture payload into a section -> item tree.
// Malformed input returns an empty tree plus the decode error; readers log it
// and render a degraded quote rather than failing.
func ParseChecksheet(raw []byte) ([]*ChecksheetSection, error) {
	if len(raw) == 0 {
		return []*ChecksheetSection{}, nil
	}
	var payload checksheetPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return []*ChecksheetSection{}, err
	}
	sections := make([]*ChecksheetSection, 0, len(payload.Sections))
	for _, sec := range payload.Sections {
		if sec == nil {
			continue
		}
		items := make([]*ChecksheetItem, 0, len(sec.Items))
		for _, it := range sec.Items {
			if it == nil {
				continue
			}
			if strings.TrimSpace(it.Title) == "" && strings.TrimSpace(it.Status) == "" {
				continue
			}
			items = append(items, it)
		}
		sections = append(sections, &ChecksheetSection{Name: sec.Name, Items: items})
	}
	return sections, nil
}
