package vhc

import (
	"testing"

	"github.com/mmdatafocus/workshop_backend/models"
)

func TestNormalizeApprovalSignal_Synonyms(t *testing.T) {
	cases := map[string]models.VhcApprovalStatus{
		"authorized": models.VhcApprovalAuthorized,
		"authorised": models.VhcApprovalAuthorized,
		"approved":   models.VhcApprovalAuthorized,
		"Approve":    models.VhcApprovalAuthorized,
		" ACCEPTED ": models.VhcApprovalAuthorized,
		"declined":   models.VhcApprovalDeclined,
		"rejected":   models.VhcApprovalDeclined,
		"refuse":     models.VhcApprovalDeclined,
		"pending":    models.VhcApprovalPending,
		"reset":      models.VhcApprovalPending,
		"completed":  models.VhcApprovalCompleted,
		"done":       models.VhcApprovalCompleted,
	}
	for input, want := range cases {
		got, ok := NormalizeApprovalSignal(input)
		if !ok {
			t.Fatalf("NormalizeApprovalSignal(%q) not recognized", input)
		}
		if got != want {
			t.Fatalf("NormalizeApprovalSignal(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeApprovalSignal_Unrecognized(t *testing.T) {
	for _, input := range []string{"", "maybe", "red", "n/a", "  "} {
		if _, ok := NormalizeApprovalSignal(input); ok {
			t.Fatalf("NormalizeApprovalSignal(%q) should not be recognized", input)
		}
	}
}
