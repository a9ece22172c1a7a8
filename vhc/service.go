package vhc

import (
	"context"
	"strconv"

	"github.com/mmdatafocus/workshop_backend/config"
	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

// In-process entry points for the surrounding application. Each constructs
// the production store from the shared DB handle; callers that need test
// doubles use the component types directly.

// ResolveCanonicalVhcId maps a display id to the canonical VHC item id.
// Returns found=false when there is nothing to resolve.
func ResolveCanonicalVhcId(ctx context.Context, jobId int, displayId string) (int, bool, error) {
	resolver := NewResolver(NewGormStore(config.GetDB()))
	return resolver.Resolve(ctx, jobId, displayId)
}

// SyncVhcPartsAuthorisation propagates one approval signal for one concern
// across its dependent records.
func SyncVhcPartsAuthorisation(ctx context.Context, jobId int, displayId string, signal string) error {
	sync := NewSynchronizer(NewGormStore(config.GetDB()), config.GetLogger()).
		WithLocker(config.GetRedisLock())
	return sync.Sync(ctx, jobId, displayId, signal)
}

// BuildVhcQuoteLinesModelForJob gathers current store state for the job,
// parses the raw checksheet payload and assembles the quote. A malformed
// payload degrades to a quote built from stored concerns only.
func BuildVhcQuoteLinesModelForJob(ctx context.Context, jobId int, rawChecksheet []byte, mode QuoteMode) (*QuoteLinesModel, error) {
	store := NewGormStore(config.GetDB())

	sections, parseErr := ParseChecksheet(rawChecksheet)
	if parseErr != nil {
		config.LogError(config.GetLogger(), "service.go", "BuildVhcQuoteLinesModelForJob", "ParseChecksheet", jobId, parseErr)
	}

	storedItems, err := store.VhcItemsForJob(ctx, jobId)
	if err != nil {
		return nil, readFailure("vhc items read", err)
	}
	parts, err := store.PartsForJob(ctx, jobId)
	if err != nil {
		return nil, readFailure("allocated parts read", err)
	}
	aliasMap, err := NewResolver(store).AliasMap(ctx, jobId)
	if err != nil {
		return nil, err
	}

	labourRate := decimal.Zero
	job, err := store.GetJob(ctx, jobId)
	if err != nil {
		return nil, readFailure("job read", err)
	}
	if job != nil {
		labourRate = job.LabourRate
	}

	authorizedIds := AuthorizedIdSet(storedItems, aliasMap)
	return BuildQuoteLinesModel(jobId, sections, storedItems, parts, aliasMap, authorizedIds, labourRate, mode), nil
}

// StoredApprovalStatus returns the persisted approval status behind a display
// id. Unlike the engine's write path, absence here is an error
// (utils.ErrorRecordNotFound): maintenance callers asked about a specific
// concern and need to know it is gone rather than silently no-op.
func StoredApprovalStatus(ctx context.Context, store Store, jobId int, displayId string) (models.VhcApprovalStatus, error) {
	vhcItemId, found, err := NewResolver(store).Resolve(ctx, jobId, displayId)
	if err != nil {
		return "", err
	}
	if !found {
		return "", utils.ErrorRecordNotFound
	}
	item, err := store.GetVhcItem(ctx, jobId, vhcItemId)
	if err != nil {
		return "", readFailure("vhc item lookup", err)
	}
	if item == nil {
		return "", utils.ErrorRecordNotFound
	}
	return item.ApprovalStatus, nil
}

// AuthorizedIdSet derives the authoritative authorized-id set from stored
// concerns: canonical ids of every authorized/completed row, plus their
// display aliases.
func AuthorizedIdSet(storedItems []*models.VhcItem, aliasMap map[string]int) map[string]bool {
	authorized := make(map[string]bool)
	byId := make(map[int]bool, len(storedItems))
	for _, item := range storedItems {
		if item.ApprovalStatus.IsAuthorized() {
			authorized[strconv.Itoa(item.ID)] = true
			byId[item.ID] = true
		}
	}
	for display, canonical := range aliasMap {
		if byId[canonical] {
			authorized[display] = true
		}
	}
	return authorized
}
