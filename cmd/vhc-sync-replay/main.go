// vhc-sync-replay re-runs the VHC approval synchronization for a job after a
// partial failure left dependent records (job requests, rectification items,
// pre-pick locations, note links) out of step with the stored approval state.
// Every sync step is idempotent, so replaying converges without double rows.
//
// Replay one concern by display id:
//
//	go run ./cmd/vhc-sync-replay -garage-id=g_9f27 -job-id=1042 -display-id=A-7
//
// Replay every concern on the job:
//
//	go run ./cmd/vhc-sync-replay -garage-id=g_9f27 -job-id=1042
//
// The signal replayed for each concern is its stored approval status; use
// -signal to force one (e.g. -signal=pending to reset a single concern).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mmdatafocus/workshop_backend/config"
	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/mmdatafocus/workshop_backend/vhc"
)

func main() {
	garageID := flag.String("garage-id", "", "Required: garage id")
	jobID := flag.Int("job-id", 0, "Required: job card id")
	displayID := flag.String("display-id", "", "Replay a single concern by display id (default: all concerns on the job)")
	signal := flag.String("signal", "", "Signal to replay (default: each concern's stored approval status)")
	withLock := flag.Bool("with-lock", false, "Obtain the per-item Redis advisory lock while replaying")
	continueOnError := flag.Bool("continue-on-error", true, "Continue with the next concern when one fails")
	flag.Parse()

	if strings.TrimSpace(*garageID) == "" {
		fmt.Fprintln(os.Stderr, "-garage-id is required")
		os.Exit(2)
	}
	if *jobID <= 0 {
		fmt.Fprintln(os.Stderr, "-job-id is required")
		os.Exit(2)
	}

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	ctx := utils.SetGarageIdInContext(context.Background(), strings.TrimSpace(*garageID))
	ctx = utils.SetCorrelationIdInContext(ctx, "replay-"+uuid.NewString())

	store := vhc.NewGormStore(db)
	sync := vhc.NewSynchronizer(store, config.GetLogger())
	if *withLock {
		config.ConnectRedisWithRetry()
		sync = sync.WithLocker(config.GetRedisLock())
	}

	if strings.TrimSpace(*displayID) != "" {
		replaySignal := strings.TrimSpace(*signal)
		if replaySignal == "" {
			status, err := vhc.StoredApprovalStatus(ctx, store, *jobID, strings.TrimSpace(*displayID))
			if errors.Is(err, utils.ErrorRecordNotFound) {
				fmt.Fprintf(os.Stderr, "display id %q does not resolve to a vhc item on job %d\n", *displayID, *jobID)
				os.Exit(1)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "approval status lookup failed: %v\n", err)
				os.Exit(1)
			}
			replaySignal = string(status)
		}
		if err := sync.Sync(ctx, *jobID, strings.TrimSpace(*displayID), replaySignal); err != nil {
			fmt.Fprintf(os.Stderr, "replay failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("replayed job_id=%d display_id=%s signal=%s\n", *jobID, *displayID, replaySignal)
		return
	}

	items, err := store.VhcItemsForJob(ctx, *jobID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vhc item read failed: %v\n", err)
		os.Exit(1)
	}
	if len(items) == 0 {
		fmt.Printf("job_id=%d has no vhc items\n", *jobID)
		return
	}

	replayed, failed := 0, 0
	for _, item := range items {
		replaySignal := strings.TrimSpace(*signal)
		if replaySignal == "" {
			replaySignal = string(item.ApprovalStatus)
		}
		// Canonical ids are valid display ids via the numeric fallback.
		if err := sync.Sync(ctx, *jobID, strconv.Itoa(item.ID), replaySignal); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "vhc_item_id=%d signal=%s failed: %v\n", item.ID, replaySignal, err)
			if !*continueOnError {
				os.Exit(1)
			}
			continue
		}
		replayed++
		fmt.Printf("vhc_item_id=%d signal=%s ok\n", item.ID, replaySignal)
	}
	fmt.Printf("job_id=%d replayed=%d failed=%d\n", *jobID, replayed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
