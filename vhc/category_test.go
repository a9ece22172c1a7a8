package vhc

import (
	"testing"

	"github.com/mmdatafocus/workshop_backend/models"
)

func TestClassifyCategory(t *testing.T) {
	cases := []struct {
		section string
		title   string
		want    models.VhcCategory
	}{
		{"Brakes", "Front pads", models.VhcCategoryBrakesHubs},
		{"Brakes", "Rear discs worn", models.VhcCategoryBrakesHubs},
		{"Tyres", "NSF tread at 2mm", models.VhcCategoryTyresWheels},
		{"Underside", "Exhaust rear box blowing", models.VhcCategoryExhaust},
		{"Suspension", "OSF shock absorber leaking", models.VhcCategorySuspension},
		{"Lights", "Number plate bulb out", models.VhcCategoryElectrical},
		{"Engine bay", "Coolant level low", models.VhcCategoryServiceItems},
		{"Exterior", "Windscreen chip", models.VhcCategoryBodywork},
		{"Misc", "Customer reports rattle", models.VhcCategoryGeneral},
	}
	for _, tc := range cases {
		if got := ClassifyCategory(tc.section, tc.title); got != tc.want {
			t.Fatalf("ClassifyCategory(%q, %q) = %q, want %q", tc.section, tc.title, got, tc.want)
		}
	}
}
