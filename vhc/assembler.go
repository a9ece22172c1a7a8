package vhc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

// QuoteMode selects which lines the assembler emits.
type QuoteMode string

const (
	// QuoteModeWithPlaceholders includes technician-entered items even when
	// they have not been persisted as stored concerns yet.
	QuoteModeWithPlaceholders QuoteMode = "withPlaceholders"
	// QuoteModeQuotedOnly emits persisted, priced lines only.
	QuoteModeQuotedOnly QuoteMode = "quotedOnly"
)

// QuoteLine is the derived quote row for one concern. Never persisted;
// rebuilt from current store state on every read.
type QuoteLine struct {
	VhcItemId   int                      `json:"vhc_item_id"`
	DisplayId   string                   `json:"display_id"`
	Slot        int                      `json:"slot"`
	Line        int                      `json:"line"`
	Section     string                   `json:"section"`
	Category    models.VhcCategory       `json:"category"`
	Label       string                   `json:"label"`
	Concern     string                   `json:"concern"`
	Notes       string                   `json:"notes"`
	Measurement string                   `json:"measurement"`
	Severity    models.VhcSeverity       `json:"severity"`
	Decision    models.VhcApprovalStatus `json:"decision"`
	PartsCost   decimal.Decimal          `json:"parts_cost"`
	LabourHours decimal.Decimal          `json:"labour_hours"`
	LabourCost  decimal.Decimal          `json:"labour_cost"`
	Total       decimal.Decimal          `json:"total"`
}

// Chargeable reports whether the line carries any money.
func (l *QuoteLine) Chargeable() bool {
	return l.Total.IsPositive()
}

func (l *QuoteLine) hasAnyFigure() bool {
	return !l.PartsCost.IsZero() || !l.LabourHours.IsZero() || !l.LabourCost.IsZero() || !l.Total.IsZero()
}

// dedupKey prefers, in order: slot/line identity, canonical id, then a
// normalized content signature.
func (l *QuoteLine) dedupKey() string {
	if l.Slot > 0 || l.Line > 0 {
		return fmt.Sprintf("slot:%d:%d", l.Slot, l.Line)
	}
	if l.VhcItemId > 0 {
		return "id:" + strconv.Itoa(l.VhcItemId)
	}
	return "sig:" + utils.NormalizeKey(string(l.Severity), l.Section, string(l.Category), l.Label, l.Concern, l.Notes, l.Measurement)
}

type QuoteBuckets struct {
	Authorized []*QuoteLine `json:"authorized"`
	Declined   []*QuoteLine `json:"declined"`
	Red        []*QuoteLine `json:"red"`
	Amber      []*QuoteLine `json:"amber"`
	Green      []*QuoteLine `json:"green"`
	Other      []*QuoteLine `json:"other"`
}

type QuoteTotals struct {
	Authorized decimal.Decimal `json:"authorized"`
	Declined   decimal.Decimal `json:"declined"`
	Red        decimal.Decimal `json:"red"`
	Amber      decimal.Decimal `json:"amber"`
	Green      decimal.Decimal `json:"green"`
	Other      decimal.Decimal `json:"other"`
}

type QuoteLinesModel struct {
	Lines      []*QuoteLine    `json:"lines"`
	Buckets    QuoteBuckets    `json:"buckets"`
	Totals     QuoteTotals     `json:"totals"`
	LabourRate decimal.Decimal `json:"labour_rate"`
}

// BuildQuoteLinesModel merges technician-entered inspection data, stored
// concerns, allocated-part costs and the authoritative authorized-id set
// into one deduplicated, costed, bucketed quote. Pure: same inputs, same
// output; safe to recompute on every read.
//
// Currency figures are plain decimal amounts in the shop's base unit and
// hours are fractional; nothing here rounds - formatting belongs to the
// display layer.
func BuildQuoteLinesModel(
	jobId int,
	sections []*ChecksheetSection,
	storedItems []*models.VhcItem,
	parts []*models.JobPart,
	aliasMap map[string]int,
	authorizedIds map[string]bool,
	labourRate decimal.Decimal,
	mode QuoteMode,
) *QuoteLinesModel {
	_ = jobId // identity of the inputs; every row was already scoped by the caller

	// Severity inference index from the technician tree. Last-resort
	// fallback only.
	inferred := make(map[string]models.VhcSeverity)
	for _, sec := range sections {
		for _, it := range sec.Items {
			if sev, ok := SeverityFromStatus(it.Status); ok {
				inferred[utils.NormalizeKey(sec.Name, it.Title)] = sev
			}
		}
	}

	byId := make(map[int]*models.VhcItem, len(storedItems))
	byContent := make(map[string][]*models.VhcItem)
	for _, si := range storedItems {
		byId[si.ID] = si
		key := utils.NormalizeKey(si.Section, si.Title)
		byContent[key] = append(byContent[key], si)
	}

	partsByItem := make(map[int][]*models.JobPart)
	for _, p := range parts {
		if p.VhcItemId > 0 {
			partsByItem[p.VhcItemId] = append(partsByItem[p.VhcItemId], p)
		}
	}

	reverseAlias := make(map[int]string, len(aliasMap))
	for display, canonical := range aliasMap {
		reverseAlias[canonical] = display
	}

	var lines []*QuoteLine
	covered := make(map[int]bool)

	if mode != QuoteModeQuotedOnly {
		for _, sec := range sections {
			for _, it := range sec.Items {
				sev, ok := SeverityFromStatus(it.Status)
				if !ok {
					continue
				}

				displayId := strings.TrimSpace(it.DisplayId)
				canonical := 0
				if id, resolved := ResolveWithMap(aliasMap, displayId); resolved {
					canonical = id
				}

				var stored *models.VhcItem
				if canonical > 0 {
					stored = byId[canonical]
				}
				if stored == nil && canonical == 0 {
					// No usable id, so fall back to content: trusted only when
					// exactly one stored row carries this (section, title); an
					// ambiguous match would fabricate a line with no 1:1
					// stored counterpart. An unresolvable display id takes the
					// same path, otherwise the stored row would surface twice.
					matches := byContent[utils.NormalizeKey(sec.Name, it.Title)]
					if len(matches) == 1 {
						stored = matches[0]
					} else if len(matches) > 1 && displayId == "" {
						continue
					}
				}

				if stored != nil {
					covered[stored.ID] = true
					lines = append(lines, buildStoredLine(stored, inferred, partsByItem, labourRate, authorizedIds, reverseAlias))
					continue
				}

				lines = append(lines, buildPlaceholderLine(sec.Name, it, sev, canonical, partsByItem, labourRate))
			}
		}
	}

	// Concerns entered directly, without a technician-tree counterpart.
	for _, si := range storedItems {
		if covered[si.ID] {
			continue
		}
		lines = append(lines, buildStoredLine(si, inferred, partsByItem, labourRate, authorizedIds, reverseAlias))
	}

	if mode == QuoteModeQuotedOnly {
		kept := lines[:0]
		for _, line := range lines {
			if line.hasAnyFigure() {
				kept = append(kept, line)
			}
		}
		lines = kept
	}

	lines = dedupeLines(lines)

	model := &QuoteLinesModel{Lines: lines, LabourRate: labourRate}
	bucketLines(model)
	return model
}

func buildStoredLine(
	item *models.VhcItem,
	inferred map[string]models.VhcSeverity,
	partsByItem map[int][]*models.JobPart,
	labourRate decimal.Decimal,
	authorizedIds map[string]bool,
	reverseAlias map[int]string,
) *QuoteLine {
	severity := resolveSeverity(item.Severity, item.DisplayStatus, inferred[utils.NormalizeKey(item.Section, item.Title)])

	line := &QuoteLine{
		VhcItemId:   item.ID,
		DisplayId:   reverseAlias[item.ID],
		Slot:        item.Slot,
		Line:        item.Line,
		Section:     item.Section,
		Category:    lineCategory(item.Category, item.Section, item.Title),
		Label:       item.Title,
		Concern:     item.Description,
		Notes:       item.Notes,
		Measurement: item.Measurement,
		Severity:    severity,
		Decision:    item.ApprovalStatus,
	}
	if line.Decision == "" {
		line.Decision = models.VhcApprovalPending
	}

	priceLine(line, item.LabourHours, item.CostOverride, partsByItem[item.ID], labourRate)

	// Re-validate the stored decision against the authoritative set: a row
	// claiming authorized whose id is absent was written by a stale path and
	// must render as pending.
	if line.Decision.IsAuthorized() && !idSetContains(authorizedIds, item.ID, line.DisplayId) {
		line.Decision = models.VhcApprovalPending
	}
	return line
}

func buildPlaceholderLine(
	sectionName string,
	it *ChecksheetItem,
	severity models.VhcSeverity,
	canonical int,
	partsByItem map[int][]*models.JobPart,
	labourRate decimal.Decimal,
) *QuoteLine {
	line := &QuoteLine{
		VhcItemId:   canonical,
		DisplayId:   strings.TrimSpace(it.DisplayId),
		Slot:        it.Slot,
		Line:        it.Line,
		Section:     sectionName,
		Category:    ClassifyCategory(sectionName, it.Title),
		Label:       it.Title,
		Notes:       it.Notes,
		Measurement: it.Measurement,
		Severity:    severity,
		Decision:    models.VhcApprovalPending,
	}
	priceLine(line, decimal.Zero, decimal.Zero, partsByItem[canonical], labourRate)
	return line
}

func lineCategory(storedCategory, section, title string) models.VhcCategory {
	trimmed := strings.TrimSpace(storedCategory)
	if trimmed != "" {
		return models.VhcCategory(trimmed)
	}
	return ClassifyCategory(section, title)
}

// priceLine computes parts cost, labour and total for a line.
// Parts cost is sum(qty x unit price); labour hours is the max of any figure
// found on the concern or its linked parts; a positive cost override
// replaces the computed total.
func priceLine(line *QuoteLine, itemHours, costOverride decimal.Decimal, linkedParts []*models.JobPart, labourRate decimal.Decimal) {
	partsCost := decimal.Zero
	hours := itemHours
	for _, p := range linkedParts {
		partsCost = partsCost.Add(p.LineCost())
		hours = utils.DecimalMax(hours, p.LabourHours)
	}
	labourCost := hours.Mul(labourRate)

	line.PartsCost = partsCost
	line.LabourHours = hours
	line.LabourCost = labourCost
	if costOverride.IsPositive() {
		line.Total = costOverride
	} else {
		line.Total = partsCost.Add(labourCost)
	}
}

func idSetContains(authorizedIds map[string]bool, canonical int, displayId string) bool {
	if canonical > 0 && authorizedIds[strconv.Itoa(canonical)] {
		return true
	}
	if displayId != "" && authorizedIds[displayId] {
		return true
	}
	return false
}

// dedupeLines keeps one line per dedup key, preferring the chargeable line
// over a non-chargeable one, then the higher total. The surviving line keeps
// the position of the group's first occurrence.
func dedupeLines(lines []*QuoteLine) []*QuoteLine {
	result := make([]*QuoteLine, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, line := range lines {
		key := line.dedupKey()
		at, exists := index[key]
		if !exists {
			index[key] = len(result)
			result = append(result, line)
			continue
		}
		if preferLine(line, result[at]) {
			result[at] = line
		}
	}
	return result
}

// preferLine reports whether candidate should replace current within a
// duplicate group.
func preferLine(candidate, current *QuoteLine) bool {
	if candidate.Chargeable() != current.Chargeable() {
		return candidate.Chargeable()
	}
	return candidate.Total.GreaterThan(current.Total)
}

// bucketLines distributes lines into decision/severity buckets and sums the
// totals. Undecided lines bucket by severity; the red and amber totals also
// count decided lines of matching severity, the green total does not.
func bucketLines(model *QuoteLinesModel) {
	for _, line := range model.Lines {
		switch {
		case line.Decision.IsAuthorized():
			model.Buckets.Authorized = append(model.Buckets.Authorized, line)
			model.Totals.Authorized = model.Totals.Authorized.Add(line.Total)
			addDecidedSeverityTotal(&model.Totals, line)
		case line.Decision == models.VhcApprovalDeclined:
			model.Buckets.Declined = append(model.Buckets.Declined, line)
			model.Totals.Declined = model.Totals.Declined.Add(line.Total)
			addDecidedSeverityTotal(&model.Totals, line)
		default:
			switch line.Severity {
			case models.VhcSeverityRed:
				model.Buckets.Red = append(model.Buckets.Red, line)
				model.Totals.Red = model.Totals.Red.Add(line.Total)
			case models.VhcSeverityAmber:
				model.Buckets.Amber = append(model.Buckets.Amber, line)
				model.Totals.Amber = model.Totals.Amber.Add(line.Total)
			case models.VhcSeverityGreen:
				model.Buckets.Green = append(model.Buckets.Green, line)
				model.Totals.Green = model.Totals.Green.Add(line.Total)
			default:
				model.Buckets.Other = append(model.Buckets.Other, line)
				model.Totals.Other = model.Totals.Other.Add(line.Total)
			}
		}
	}
}

func addDecidedSeverityTotal(totals *QuoteTotals, line *QuoteLine) {
	switch line.Severity {
	case models.VhcSeverityRed:
		totals.Red = totals.Red.Add(line.Total)
	case models.VhcSeverityAmber:
		totals.Amber = totals.Amber.Add(line.Total)
	}
}
