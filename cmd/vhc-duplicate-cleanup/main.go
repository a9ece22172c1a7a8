// vhc-duplicate-cleanup scans for duplicate engine-owned rows: more than one
// VHC-sourced job request or rectification item for the same (job, vhc item).
// The synchronizer repairs these lazily on the next sync; this tool finds and
// fixes them in bulk, keeping the oldest row per group.
//
// Scan (dry-run):
//
//	go run ./cmd/vhc-duplicate-cleanup -garage-id=g_9f27
//
// Delete the extras:
//
//	go run ./cmd/vhc-duplicate-cleanup -garage-id=g_9f27 -dry-run=false -confirm=DELETE
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mmdatafocus/workshop_backend/config"
	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
	"gorm.io/gorm"
)

type dupGroup struct {
	JobId     int   `gorm:"column:job_id"`
	VhcItemId int   `gorm:"column:vhc_item_id"`
	Cnt       int64 `gorm:"column:cnt"`
	KeepId    int   `gorm:"column:keep_id"`
}

func main() {
	garageID := flag.String("garage-id", "", "Required: garage id")
	jobID := flag.Int("job-id", 0, "Optional: restrict to one job")
	dryRun := flag.Bool("dry-run", true, "List duplicate groups only (no deletes)")
	confirm := flag.String("confirm", "", "Type DELETE to proceed when -dry-run=false")
	flag.Parse()

	if strings.TrimSpace(*garageID) == "" {
		fmt.Fprintln(os.Stderr, "-garage-id is required")
		os.Exit(2)
	}
	if !*dryRun && strings.TrimSpace(*confirm) != "DELETE" {
		fmt.Fprintln(os.Stderr, "set -confirm=DELETE to proceed when -dry-run=false")
		os.Exit(2)
	}

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}
	// Internal ops tool: scope by the explicit -garage-id filters below, not
	// by request context.
	db = db.WithContext(utils.SetSkipGarageScopeInContext(context.Background(), true))

	requestGroups := findDuplicates(db, "job_requests", *garageID, *jobID, "source = 'VHC_AUTH' AND vhc_item_id > 0")
	rectGroups := findDuplicates(db, "rectification_items", *garageID, *jobID, "vhc_item_id > 0")

	report("job_requests", requestGroups)
	report("rectification_items", rectGroups)
	if len(requestGroups) == 0 && len(rectGroups) == 0 {
		fmt.Println("no duplicate engine-owned rows")
		return
	}
	if *dryRun {
		fmt.Println("run with -dry-run=false -confirm=DELETE to remove the extras")
		return
	}

	removedRequests := deleteExtras(db, &models.JobRequest{}, *garageID, requestGroups, "source = 'VHC_AUTH'")
	removedRects := deleteExtras(db, &models.RectificationItem{}, *garageID, rectGroups, "")
	fmt.Printf("removed %d duplicate job_requests row(s), %d duplicate rectification_items row(s)\n", removedRequests, removedRects)
}

func findDuplicates(db *gorm.DB, table, garageID string, jobID int, extra string) []dupGroup {
	var groups []dupGroup
	q := db.Table(table).
		Select("job_id, vhc_item_id, COUNT(*) AS cnt, MIN(id) AS keep_id").
		Where("garage_id = ?", garageID).
		Where(extra).
		Group("job_id, vhc_item_id").
		Having("COUNT(*) > 1").
		Order("job_id, vhc_item_id")
	if jobID > 0 {
		q = q.Where("job_id = ?", jobID)
	}
	if err := q.Scan(&groups).Error; err != nil {
		fmt.Fprintf(os.Stderr, "%s scan failed: %v\n", table, err)
		os.Exit(1)
	}
	return groups
}

func report(table string, groups []dupGroup) {
	if len(groups) == 0 {
		return
	}
	fmt.Printf("%s duplicate groups (%d):\n", table, len(groups))
	for _, g := range groups {
		fmt.Printf("  job_id=%d vhc_item_id=%d rows=%d keep_id=%d\n", g.JobId, g.VhcItemId, g.Cnt, g.KeepId)
	}
}

func deleteExtras(db *gorm.DB, model interface{}, garageID string, groups []dupGroup, extra string) int64 {
	var removed int64
	for _, g := range groups {
		q := db.Where("garage_id = ? AND job_id = ? AND vhc_item_id = ? AND id <> ?", garageID, g.JobId, g.VhcItemId, g.KeepId)
		if extra != "" {
			q = q.Where(extra)
		}
		res := q.Delete(model)
		if res.Error != nil {
			fmt.Fprintf(os.Stderr, "delete failed for job_id=%d vhc_item_id=%d: %v\n", g.JobId, g.VhcItemId, res.Error)
			os.Exit(1)
		}
		removed += res.RowsAffected
	}
	return removed
}
