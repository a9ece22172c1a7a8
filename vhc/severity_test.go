package vhc

import (
	"testing"

	"github.com/mmdatafocus/workshop_backend/models"
)

func TestSeverityFromStatus_Colours(t *testing.T) {
	cases := map[string]models.VhcSeverity{
		"red":    models.VhcSeverityRed,
		"RED":    models.VhcSeverityRed,
		"amber":  models.VhcSeverityAmber,
		"orange": models.VhcSeverityAmber,
		"yellow": models.VhcSeverityAmber,
		"green":  models.VhcSeverityGreen,
		"grey":   models.VhcSeverityGrey,
		"gray":   models.VhcSeverityGrey,
	}
	for input, want := range cases {
		got, ok := SeverityFromStatus(input)
		if !ok || got != want {
			t.Fatalf("SeverityFromStatus(%q) = (%q, %v), want (%q, true)", input, got, ok, want)
		}
	}
}

// Approval-workflow values must never be interpreted as a colour.
func TestSeverityFromStatus_WorkflowValuesAreNotColours(t *testing.T) {
	for _, input := range []string{"authorized", "authorised", "declined", "pending", "completed", "n/a", "na", "", "  "} {
		if sev, ok := SeverityFromStatus(input); ok {
			t.Fatalf("SeverityFromStatus(%q) = %q, want no colour", input, sev)
		}
	}
}

func TestResolveSeverity_Priority(t *testing.T) {
	// Explicit field wins over everything.
	if got := resolveSeverity(models.VhcSeverityRed, "green", models.VhcSeverityAmber); got != models.VhcSeverityRed {
		t.Fatalf("explicit severity should win, got %q", got)
	}
	// Colour-valued display status beats tree inference.
	if got := resolveSeverity("", "amber", models.VhcSeverityGreen); got != models.VhcSeverityAmber {
		t.Fatalf("display-status colour should win over inference, got %q", got)
	}
	// Workflow-valued display status falls through to inference.
	if got := resolveSeverity("", "authorized", models.VhcSeverityGreen); got != models.VhcSeverityGreen {
		t.Fatalf("workflow display status must not override inference, got %q", got)
	}
	// Nothing known defaults to grey.
	if got := resolveSeverity("", "", ""); got != models.VhcSeverityGrey {
		t.Fatalf("default severity should be grey, got %q", got)
	}
}
