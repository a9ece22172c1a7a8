package vhc

import (
	"strings"

	"github.com/mmdatafocus/workshop_backend/models"
)

// NormalizeApprovalSignal maps the synonyms the various front ends send into
// the canonical approval workflow states. Unrecognized input returns ok=false
// and the caller's default precedence applies.
func NormalizeApprovalSignal(signal string) (models.VhcApprovalStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(signal)) {
	case "authorized", "authorised", "authorise", "authorize", "approved", "approve", "accepted", "accept":
		return models.VhcApprovalAuthorized, true
	case "completed", "complete", "done":
		return models.VhcApprovalCompleted, true
	case "declined", "decline", "rejected", "reject", "refused", "refuse":
		return models.VhcApprovalDeclined, true
	case "pending", "reset", "undecided":
		return models.VhcApprovalPending, true
	default:
		return "", false
	}
}
