package vhc

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mmdatafocus/workshop_backend/config"
	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.JobCard{},
		&models.VhcItem{},
		&models.VhcItemAlias{},
		&models.JobPart{},
		&models.JobRequest{},
		&models.RectificationItem{},
		&models.Writeup{},
		&models.JobNote{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedTestJob(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []interface{}{
		&models.JobCard{ID: 1, GarageId: "g1", JobNumber: "J-1001", Status: "workshop"},
		&models.VhcItem{
			ID: 103, GarageId: "g1", JobId: 1,
			Section: "Brakes", Title: "Front pads", Description: "Pads below 2mm",
			Severity: models.VhcSeverityRed, ApprovalStatus: models.VhcApprovalPending,
		},
		&models.VhcItemAlias{GarageId: "g1", JobId: 1, DisplayId: "A-7", VhcItemId: 103},
		&models.JobPart{
			ID: 11, GarageId: "g1", JobId: 1, VhcItemId: 103,
			Description: "Pad set", Qty: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(40),
			Authorised: utils.NewFalse(), PrePickLocation: "Bay 4",
		},
		&models.Writeup{GarageId: "g1", JobId: 1, Reference: "WU-3", Active: utils.NewTrue()},
		&models.JobNote{GarageId: "g1", JobId: 1, Body: "keep old parts", VhcItemIds: "103"},
	}
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed %T: %v", row, err)
		}
	}
}

func TestGormStore_Lookups(t *testing.T) {
	db := openTestDB(t)
	seedTestJob(t, db)
	store := NewGormStore(db)
	ctx := context.Background()

	id, found, err := store.LookupAlias(ctx, 1, "A-7")
	if err != nil || !found || id != 103 {
		t.Fatalf("LookupAlias = (%d, %v, %v), want (103, true, nil)", id, found, err)
	}
	if _, found, err = store.LookupAlias(ctx, 1, "B-9"); err != nil || found {
		t.Fatalf("LookupAlias miss = (%v, %v)", found, err)
	}
	if _, found, err = store.LookupAlias(ctx, 2, "A-7"); err != nil || found {
		t.Fatal("alias must be scoped to the job")
	}

	item, err := store.GetVhcItem(ctx, 1, 103)
	if err != nil || item == nil || item.Title != "Front pads" {
		t.Fatalf("GetVhcItem = (%+v, %v)", item, err)
	}
	if item, err = store.GetVhcItem(ctx, 1, 999); err != nil || item != nil {
		t.Fatalf("absent item must be (nil, nil), got (%+v, %v)", item, err)
	}

	ref, err := store.ActiveWriteupRef(ctx, 1)
	if err != nil || ref != "WU-3" {
		t.Fatalf("ActiveWriteupRef = (%q, %v)", ref, err)
	}
	if ref, err = store.ActiveWriteupRef(ctx, 2); err != nil || ref != "" {
		t.Fatalf("no active writeup must be (\"\", nil), got (%q, %v)", ref, err)
	}
}

func TestGormStore_ClearPrePickLocationsCountsRows(t *testing.T) {
	db := openTestDB(t)
	seedTestJob(t, db)
	store := NewGormStore(db)
	ctx := context.Background()

	cleared, err := store.ClearPrePickLocations(ctx, 1, 103)
	if err != nil || cleared != 1 {
		t.Fatalf("ClearPrePickLocations = (%d, %v), want (1, nil)", cleared, err)
	}
	// Idempotent: a second call touches nothing.
	cleared, err = store.ClearPrePickLocations(ctx, 1, 103)
	if err != nil || cleared != 0 {
		t.Fatalf("second clear = (%d, %v), want (0, nil)", cleared, err)
	}

	parts, err := store.PartsForItem(ctx, 1, 103)
	if err != nil || len(parts) != 1 {
		t.Fatalf("PartsForItem = (%d parts, %v)", len(parts), err)
	}
	if parts[0].PrePickLocation != "" {
		t.Fatalf("pre-pick location = %q, want cleared", parts[0].PrePickLocation)
	}
}

func TestGormStore_VhcRequestsFiltersEngineOwnedRows(t *testing.T) {
	db := openTestDB(t)
	seedTestJob(t, db)
	store := NewGormStore(db)
	ctx := context.Background()

	seed := []*models.JobRequest{
		{GarageId: "g1", JobId: 1, Source: models.JobRequestSourceVhcAuthorized, VhcItemId: 103, Description: "engine"},
		{GarageId: "g1", JobId: 1, Source: models.JobRequestSourceManual, VhcItemId: 103, Description: "manual"},
	}
	for _, r := range seed {
		if err := store.InsertRequest(ctx, r); err != nil {
			t.Fatalf("InsertRequest: %v", err)
		}
	}

	rows, err := store.VhcRequests(ctx, 1, 103)
	if err != nil || len(rows) != 1 || rows[0].Description != "engine" {
		t.Fatalf("VhcRequests = (%d rows, %v)", len(rows), err)
	}

	deleted, err := store.DeleteRequests(ctx, 1, 103)
	if err != nil || deleted != 1 {
		t.Fatalf("DeleteRequests = (%d, %v), want (1, nil)", deleted, err)
	}
	var manualCount int64
	db.Model(&models.JobRequest{}).Where("source = ?", models.JobRequestSourceManual).Count(&manualCount)
	if manualCount != 1 {
		t.Fatal("manual rows must survive the engine delete")
	}
}

func TestGormStore_EndToEndSyncRoundTrip(t *testing.T) {
	db := openTestDB(t)
	seedTestJob(t, db)
	store := NewGormStore(db)
	sync := NewSynchronizer(store, quietLogger())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := sync.Sync(ctx, 1, "A-7", "authorized"); err != nil {
			t.Fatalf("authorize run %d: %v", i, err)
		}
	}

	item, _ := store.GetVhcItem(ctx, 1, 103)
	if item.ApprovalStatus != models.VhcApprovalAuthorized || item.ApprovedAt == nil {
		t.Fatalf("item = (%q, %v), want authorized with timestamp", item.ApprovalStatus, item.ApprovedAt)
	}
	requests, _ := store.VhcRequests(ctx, 1, 103)
	if len(requests) != 1 {
		t.Fatalf("got %d work items, want 1", len(requests))
	}
	if requests[0].JobPartId != 11 || requests[0].PrePickLocation != "Bay 4" {
		t.Fatalf("work item part link = (%d, %q)", requests[0].JobPartId, requests[0].PrePickLocation)
	}
	if requests[0].NoteText != "keep old parts" {
		t.Fatalf("note text = %q", requests[0].NoteText)
	}
	rects, _ := store.Rectifications(ctx, 1, 103)
	if len(rects) != 1 || rects[0].JobNumber != "J-1001" || rects[0].WriteupRef != "WU-3" {
		t.Fatalf("rectifications = %+v", rects)
	}

	if err := sync.Sync(ctx, 1, "A-7", "declined"); err != nil {
		t.Fatalf("decline: %v", err)
	}
	item, _ = store.GetVhcItem(ctx, 1, 103)
	if item.ApprovalStatus != models.VhcApprovalDeclined || item.ApprovedAt != nil {
		t.Fatalf("item = (%q, %v), want declined without timestamp", item.ApprovalStatus, item.ApprovedAt)
	}
	requests, _ = store.VhcRequests(ctx, 1, 103)
	rects, _ = store.Rectifications(ctx, 1, 103)
	if len(requests) != 0 || len(rects) != 0 {
		t.Fatalf("got %d work items / %d rectifications after decline, want 0 / 0", len(requests), len(rects))
	}
	parts, _ := store.PartsForItem(ctx, 1, 103)
	if parts[0].PrePickLocation != "" {
		t.Fatalf("pre-pick location = %q, want cleared", parts[0].PrePickLocation)
	}
	notes, _ := store.NotesForJob(ctx, 1)
	if notes[0].VhcItemIds != "" || notes[0].VhcItemId != 0 {
		t.Fatalf("note link not stripped: (%d, %q)", notes[0].VhcItemId, notes[0].VhcItemIds)
	}
}

func TestGormStore_UpdateVhcItemApprovalPersistsNullTimestamp(t *testing.T) {
	db := openTestDB(t)
	seedTestJob(t, db)
	store := NewGormStore(db)
	ctx := context.Background()

	item, _ := store.GetVhcItem(ctx, 1, 103)
	now := time.Now().UTC()
	item.ApprovalStatus = models.VhcApprovalAuthorized
	item.DisplayStatus = "authorized"
	item.ApprovedAt = &now
	if err := store.UpdateVhcItemApproval(ctx, item); err != nil {
		t.Fatalf("update: %v", err)
	}

	item, _ = store.GetVhcItem(ctx, 1, 103)
	if item.ApprovedAt == nil {
		t.Fatal("timestamp not persisted")
	}

	item.ApprovalStatus = models.VhcApprovalPending
	item.DisplayStatus = "pending"
	item.ApprovedAt = nil
	if err := store.UpdateVhcItemApproval(ctx, item); err != nil {
		t.Fatalf("reset: %v", err)
	}
	item, _ = store.GetVhcItem(ctx, 1, 103)
	if item.ApprovedAt != nil {
		t.Fatal("timestamp must be cleared on reset")
	}
}

func TestGarageGuard_ScopesToContextGarage(t *testing.T) {
	db := openTestDB(t)
	if err := db.Use(config.NewGarageGuardPlugin()); err != nil {
		t.Fatalf("install guard: %v", err)
	}
	seedTestJob(t, db)
	if err := db.Create(&models.VhcItem{
		ID: 200, GarageId: "g2", JobId: 2, Section: "Tyres", Title: "NSF tyre",
	}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	ctx := utils.SetGarageIdInContext(context.Background(), "g1")
	var items []*models.VhcItem
	if err := db.WithContext(ctx).Find(&items).Error; err != nil {
		t.Fatalf("scoped find: %v", err)
	}
	if len(items) != 1 || items[0].GarageId != "g1" {
		t.Fatalf("guard should scope to g1, got %d rows", len(items))
	}

	items = nil
	if err := db.WithContext(utils.SetSkipGarageScopeInContext(ctx, true)).Find(&items).Error; err != nil {
		t.Fatalf("bypass find: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("skip-scope bypass should see every garage, got %d rows", len(items))
	}
}
