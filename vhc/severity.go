package vhc

import (
	"strings"

	"github.com/mmdatafocus/workshop_backend/models"
)

// SeverityFromStatus recognizes a genuine severity colour in a free-form
// status value. Approval-workflow values (authorized/declined/pending/
// completed/n-a/empty) are never colours; mistaking them for one is how a
// stale checksheet ends up re-colouring a decided quote line.
func SeverityFromStatus(status string) (models.VhcSeverity, bool) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "red", "urgent", "danger":
		return models.VhcSeverityRed, true
	case "amber", "orange", "yellow", "advisory":
		return models.VhcSeverityAmber, true
	case "green", "ok", "pass":
		return models.VhcSeverityGreen, true
	case "grey", "gray", "unchecked":
		return models.VhcSeverityGrey, true
	default:
		return "", false
	}
}

func isValidSeverity(s models.VhcSeverity) bool {
	switch s {
	case models.VhcSeverityRed, models.VhcSeverityAmber, models.VhcSeverityGreen, models.VhcSeverityGrey:
		return true
	default:
		return false
	}
}

// resolveSeverity applies the severity priority chain:
// explicit field > colour-valued display status > checksheet inference > grey.
func resolveSeverity(explicit models.VhcSeverity, displayStatus string, inferred models.VhcSeverity) models.VhcSeverity {
	if isValidSeverity(explicit) {
		return explicit
	}
	if sev, ok := SeverityFromStatus(displayStatus); ok {
		return sev
	}
	if isValidSeverity(inferred) {
		return inferred
	}
	return models.VhcSeverityGrey
}
