package vhc

import (
	"regexp"

	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
)

// categoryRule maps normalized (section + title) text to a customer-facing
// category. Rules are evaluated in order; the first match wins.
type categoryRule struct {
	pattern  *regexp.Regexp
	category models.VhcCategory
}

var categoryRules = []categoryRule{
	{regexp.MustCompile(`\b(brakes?|pads?|discs?|drums?|calipers?|hubs?|handbrake)\b`), models.VhcCategoryBrakesHubs},
	{regexp.MustCompile(`\b(tyres?|tires?|wheels?|tracking|alignment|tread)\b`), models.VhcCategoryTyresWheels},
	{regexp.MustCompile(`\b(suspension|shocks?|springs?|dampers?|bush(es)?|arms?|steering|racks?|rods?|joints?|cv)\b`), models.VhcCategorySuspension},
	{regexp.MustCompile(`\b(exhausts?|cat|dpf|emissions?|lambda)\b`), models.VhcCategoryExhaust},
	{regexp.MustCompile(`\b(batter(y|ies)|bulbs?|lights?|lamps?|electr\w*|wipers?|horns?|fuses?)\b`), models.VhcCategoryElectrical},
	{regexp.MustCompile(`\b(oil|fluids?|coolant|antifreeze|filters?|service|belts?|plugs?)\b`), models.VhcCategoryServiceItems},
	{regexp.MustCompile(`\b(body(work)?|glass|windscreens?|mirrors?|wings?|bumpers?|doors?|paint)\b`), models.VhcCategoryBodywork},
}

// ClassifyCategory resolves the closed customer-facing category for a
// concern from its section and title.
func ClassifyCategory(section, title string) models.VhcCategory {
	key := utils.NormalizeKey(section) + " " + utils.NormalizeKey(title)
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(key) {
			return rule.category
		}
	}
	return models.VhcCategoryGeneral
}
