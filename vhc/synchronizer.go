package vhc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/mmdatafocus/workshop_backend/config"
	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/sirupsen/logrus"
)

// Synchronizer propagates one approval decision for one VHC concern into the
// dependent records: the billable work item, part pre-pick hints, the
// write-up rectification item and linked notes. Every step is idempotent;
// there is no cross-step transaction, so a partial failure is recovered by
// retrying the whole call.
type Synchronizer struct {
	store  Store
	logger *logrus.Logger
	locker *redislock.Client
}

func NewSynchronizer(store Store, logger *logrus.Logger) *Synchronizer {
	return &Synchronizer{store: store, logger: logger}
}

// WithLocker enables the best-effort per-item advisory lock. Concurrent
// syncs for the same (job, item) are rare but possible; the lock shrinks
// the window, and idempotency covers the rest when Redis is down.
func (s *Synchronizer) WithLocker(locker *redislock.Client) *Synchronizer {
	s.locker = locker
	return s
}

// Sync applies one approval signal for (job, display id). An unresolvable
// display id is a silent no-op. Effects are written to the store; any
// failure aborts the remaining steps and names the failing sub-step.
func (s *Synchronizer) Sync(ctx context.Context, jobId int, displayId string, signal string) error {

	resolver := NewResolver(s.store)
	vhcItemId, found, err := resolver.Resolve(ctx, jobId, displayId)
	if err != nil {
		s.logStep(ctx, "Sync", "Resolve", displayId, err)
		return err
	}
	if !found {
		// Nothing to resolve: the checksheet row was never persisted.
		return nil
	}

	if release := s.obtainLock(ctx, jobId, vhcItemId); release != nil {
		defer release()
	}

	item, err := s.store.GetVhcItem(ctx, jobId, vhcItemId)
	if err != nil {
		err = readFailure("vhc item lookup", err)
		s.logStep(ctx, "Sync", "GetVhcItem", vhcItemId, err)
		return err
	}
	if item == nil {
		// Alias points at a row that no longer exists; treat like an
		// unresolved id.
		return nil
	}

	parts, err := s.store.PartsForItem(ctx, jobId, vhcItemId)
	if err != nil {
		err = readFailure("allocated parts lookup", err)
		s.logStep(ctx, "Sync", "PartsForItem", vhcItemId, err)
		return err
	}

	normalized, recognized := NormalizeApprovalSignal(signal)
	partsAuthorised := anyPartAuthorised(parts)

	// Transition precedence: explicit pending wins, then any authorization
	// signal (explicit or parts-side), then declined by default.
	switch {
	case recognized && normalized == models.VhcApprovalPending:
		return s.applyNotAuthorized(ctx, item, models.VhcApprovalPending)
	case (recognized && normalized.IsAuthorized()) || partsAuthorised:
		target := models.VhcApprovalAuthorized
		if recognized && normalized == models.VhcApprovalCompleted {
			target = models.VhcApprovalCompleted
		}
		return s.applyAuthorized(ctx, item, parts, target)
	default:
		return s.applyNotAuthorized(ctx, item, models.VhcApprovalDeclined)
	}
}

func (s *Synchronizer) applyAuthorized(ctx context.Context, item *models.VhcItem, parts []*models.JobPart, target models.VhcApprovalStatus) error {

	item.ApprovalStatus = target
	item.DisplayStatus = string(target)
	if item.ApprovedAt == nil {
		now := time.Now().UTC()
		item.ApprovedAt = &now
	}
	if err := s.store.UpdateVhcItemApproval(ctx, item); err != nil {
		err = writeFailure("vhc item update", err)
		s.logStep(ctx, "applyAuthorized", "UpdateVhcItemApproval", item.ID, err)
		return err
	}

	rep := pickRepresentativePart(parts)

	noteText, err := s.noteTextForItem(ctx, item.JobId, item.ID)
	if err != nil {
		err = readFailure("note lookup", err)
		s.logStep(ctx, "applyAuthorized", "noteTextForItem", item.ID, err)
		return err
	}

	if err := s.upsertJobRequest(ctx, item, rep, noteText); err != nil {
		s.logStep(ctx, "applyAuthorized", "upsertJobRequest", item.ID, err)
		return err
	}

	if err := s.upsertRectification(ctx, item); err != nil {
		s.logStep(ctx, "applyAuthorized", "upsertRectification", item.ID, err)
		return err
	}
	return nil
}

func (s *Synchronizer) applyNotAuthorized(ctx context.Context, item *models.VhcItem, target models.VhcApprovalStatus) error {

	item.ApprovalStatus = target
	item.DisplayStatus = string(target)
	item.ApprovedAt = nil
	if err := s.store.UpdateVhcItemApproval(ctx, item); err != nil {
		err = writeFailure("vhc item update", err)
		s.logStep(ctx, "applyNotAuthorized", "UpdateVhcItemApproval", item.ID, err)
		return err
	}

	if _, err := s.store.DeleteRequests(ctx, item.JobId, item.ID); err != nil {
		err = writeFailure("work-item delete", err)
		s.logStep(ctx, "applyNotAuthorized", "DeleteRequests", item.ID, err)
		return err
	}

	if _, err := s.store.ClearPrePickLocations(ctx, item.JobId, item.ID); err != nil {
		err = writeFailure("pre-pick location clear", err)
		s.logStep(ctx, "applyNotAuthorized", "ClearPrePickLocations", item.ID, err)
		return err
	}

	if _, err := s.store.DeleteRectifications(ctx, item.JobId, item.ID); err != nil {
		err = writeFailure("rectification delete", err)
		s.logStep(ctx, "applyNotAuthorized", "DeleteRectifications", item.ID, err)
		return err
	}

	notes, err := s.store.NotesForJob(ctx, item.JobId)
	if err != nil {
		err = readFailure("note lookup", err)
		s.logStep(ctx, "applyNotAuthorized", "NotesForJob", item.ID, err)
		return err
	}
	for _, note := range notes {
		if !note.ReferencesVhcId(item.ID) {
			continue
		}
		// Skip the write entirely when the linkage is unchanged.
		if !note.RemoveVhcLink(item.ID) {
			continue
		}
		if err := s.store.SaveNoteLinks(ctx, note); err != nil {
			err = writeFailure("note link update", err)
			s.logStep(ctx, "applyNotAuthorized", "SaveNoteLinks", note.ID, err)
			return err
		}
	}
	return nil
}

// upsertJobRequest maintains the one-row invariant for the engine-owned
// billable work item: find, clean up drift, update or insert.
func (s *Synchronizer) upsertJobRequest(ctx context.Context, item *models.VhcItem, rep *models.JobPart, noteText string) error {

	existing, err := s.store.VhcRequests(ctx, item.JobId, item.ID)
	if err != nil {
		return readFailure("work-item lookup", err)
	}

	if len(existing) > 1 {
		if config.StrictVhcSingleRow() {
			return writeFailure("work-item precondition", fmt.Errorf("%d work items exist for job=%d vhc_item=%d, expected at most one", len(existing), item.JobId, item.ID))
		}
		extraIds := make([]int, 0, len(existing)-1)
		for _, row := range existing[1:] {
			extraIds = append(extraIds, row.ID)
		}
		if err := s.store.DeleteRequestRows(ctx, extraIds); err != nil {
			return writeFailure("work-item duplicate cleanup", err)
		}
		s.logger.WithFields(logrus.Fields{
			"module":      "synchronizer.go",
			"job_id":      item.JobId,
			"vhc_item_id": item.ID,
			"removed":     len(extraIds),
		}).Warn("removed duplicate vhc work items")
		existing = existing[:1]
	}

	request := &models.JobRequest{
		GarageId:  item.GarageId,
		JobId:     item.JobId,
		Source:    models.JobRequestSourceVhcAuthorized,
		VhcItemId: item.ID,
	}
	if len(existing) == 1 {
		request = existing[0]
	}
	request.Description = describeConcern(item)
	request.Category = models.VhcCategoryAdditionalWork
	request.Status = models.JobRequestStatusInProgress
	if rep != nil {
		request.JobPartId = rep.ID
		request.PrePickLocation = rep.PrePickLocation
	} else {
		request.JobPartId = 0
		request.PrePickLocation = ""
	}
	request.NoteText = noteText

	if len(existing) == 1 {
		if err := s.store.SaveRequest(ctx, request); err != nil {
			return writeFailure("work-item update", err)
		}
		return nil
	}
	if err := s.store.InsertRequest(ctx, request); err != nil {
		return writeFailure("work-item insert", err)
	}
	return nil
}

// upsertRectification maintains the one-row invariant for the write-up
// rectification record.
func (s *Synchronizer) upsertRectification(ctx context.Context, item *models.VhcItem) error {

	job, err := s.store.GetJob(ctx, item.JobId)
	if err != nil {
		return readFailure("job lookup", err)
	}
	jobNumber := ""
	if job != nil {
		jobNumber = job.JobNumber
	}

	writeupRef, err := s.store.ActiveWriteupRef(ctx, item.JobId)
	if err != nil {
		return readFailure("writeup lookup", err)
	}

	existing, err := s.store.Rectifications(ctx, item.JobId, item.ID)
	if err != nil {
		return readFailure("rectification lookup", err)
	}

	if len(existing) > 1 {
		if config.StrictVhcSingleRow() {
			return writeFailure("rectification precondition", fmt.Errorf("%d rectification items exist for job=%d vhc_item=%d, expected at most one", len(existing), item.JobId, item.ID))
		}
		extraIds := make([]int, 0, len(existing)-1)
		for _, row := range existing[1:] {
			extraIds = append(extraIds, row.ID)
		}
		if err := s.store.DeleteRectificationRows(ctx, extraIds); err != nil {
			return writeFailure("rectification duplicate cleanup", err)
		}
		s.logger.WithFields(logrus.Fields{
			"module":      "synchronizer.go",
			"job_id":      item.JobId,
			"vhc_item_id": item.ID,
			"removed":     len(extraIds),
		}).Warn("removed duplicate rectification items")
		existing = existing[:1]
	}

	rect := &models.RectificationItem{
		GarageId:  item.GarageId,
		JobId:     item.JobId,
		VhcItemId: item.ID,
	}
	if len(existing) == 1 {
		rect = existing[0]
	}
	rect.JobNumber = jobNumber
	rect.WriteupRef = writeupRef
	rect.Description = describeConcern(item)
	rect.Status = models.RectificationStatusWaiting
	rect.AdditionalWork = utils.NewTrue()

	if len(existing) == 1 {
		if err := s.store.SaveRectification(ctx, rect); err != nil {
			return writeFailure("rectification update", err)
		}
		return nil
	}
	if err := s.store.InsertRectification(ctx, rect); err != nil {
		// The (job, vhc item) unique index turns a concurrent double insert
		// into a duplicate-key error; the other writer already converged.
		if IsDuplicateKeyErr(err) {
			rows, ferr := s.store.Rectifications(ctx, item.JobId, item.ID)
			if ferr != nil || len(rows) == 0 {
				return writeFailure("rectification insert", err)
			}
			existingRow := rows[0]
			existingRow.JobNumber = jobNumber
			existingRow.WriteupRef = writeupRef
			existingRow.Description = rect.Description
			existingRow.Status = models.RectificationStatusWaiting
			existingRow.AdditionalWork = utils.NewTrue()
			if err := s.store.SaveRectification(ctx, existingRow); err != nil {
				return writeFailure("rectification update", err)
			}
			return nil
		}
		return writeFailure("rectification insert", err)
	}
	return nil
}

// noteTextForItem carries forward any note text already attached to the
// concern. Read-only; the notes themselves are not mutated here.
func (s *Synchronizer) noteTextForItem(ctx context.Context, jobId, vhcItemId int) (string, error) {
	notes, err := s.store.NotesForJob(ctx, jobId)
	if err != nil {
		return "", err
	}
	var bodies []string
	for _, note := range notes {
		if note.ReferencesVhcId(vhcItemId) && strings.TrimSpace(note.Body) != "" {
			bodies = append(bodies, strings.TrimSpace(note.Body))
		}
	}
	return strings.Join(bodies, "\n"), nil
}

// pickRepresentativePart chooses the part that sources the pre-pick location
// and the work-item link: one with a location first, else the most recently
// updated.
func pickRepresentativePart(parts []*models.JobPart) *models.JobPart {
	var best *models.JobPart
	for _, p := range parts {
		if p.PrePickLocation != "" {
			if best == nil || best.PrePickLocation == "" || p.UpdatedAt.After(best.UpdatedAt) {
				best = p
			}
			continue
		}
		if best == nil || (best.PrePickLocation == "" && p.UpdatedAt.After(best.UpdatedAt)) {
			best = p
		}
	}
	return best
}

func anyPartAuthorised(parts []*models.JobPart) bool {
	for _, p := range parts {
		if p.Authorised != nil && *p.Authorised {
			return true
		}
	}
	return false
}

// describeConcern derives the customer-facing description for dependent
// records, with a generated fallback label when capture left everything
// blank.
func describeConcern(item *models.VhcItem) string {
	title := strings.TrimSpace(item.Title)
	desc := strings.TrimSpace(item.Description)
	switch {
	case title != "" && desc != "" && !strings.EqualFold(title, desc):
		return title + " - " + desc
	case title != "":
		return title
	case desc != "":
		return desc
	case strings.TrimSpace(item.Section) != "":
		return "VHC: " + strings.TrimSpace(item.Section)
	default:
		return fmt.Sprintf("VHC item %d", item.ID)
	}
}

// obtainLock is best-effort: when Redis is unavailable the sync proceeds,
// relying on step idempotency for the rare concurrent case.
func (s *Synchronizer) obtainLock(ctx context.Context, jobId, vhcItemId int) func() {
	if s.locker == nil {
		return nil
	}
	lockKey := fmt.Sprintf("vhcsync:%d:%d", jobId, vhcItemId)
	lock, err := s.locker.Obtain(ctx, lockKey, 30*time.Second, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		s.logger.WithFields(logrus.Fields{
			"module":      "synchronizer.go",
			"job_id":      jobId,
			"vhc_item_id": vhcItemId,
		}).Warn("could not obtain vhc sync lock; proceeding without it")
		return nil
	} else if err != nil {
		s.logger.WithFields(logrus.Fields{
			"module":      "synchronizer.go",
			"job_id":      jobId,
			"vhc_item_id": vhcItemId,
		}).Warn("error obtaining vhc sync lock; proceeding without it: " + err.Error())
		return nil
	}
	return func() {
		_ = lock.Release(ctx)
	}
}

func (s *Synchronizer) logStep(ctx context.Context, funcName, step string, data any, err error) {
	if correlationId, ok := utils.GetCorrelationIdFromContext(ctx); ok && correlationId != "" {
		s.logger.WithFields(logrus.Fields{
			"module":        "synchronizer.go",
			"funcName":      funcName,
			"context":       step,
			"data":          data,
			"correlationId": correlationId,
		}).Error(err.Error())
		return
	}
	config.LogError(s.logger, "synchronizer.go", funcName, step, data, err)
}
