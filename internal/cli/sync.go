package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/fieldtrack/internal/services"
)

// Sync pushes pending changes and then pulls the remote dataset, matching
// the usual "synchronize everything" button.
func (a *App) Sync(ctx context.Context) {
	a.Push(ctx)
	a.Pull(ctx)
}

func (a *App) Push(ctx context.Context) {
	fmt.Println("Uploading pending changes...")

	report, err := a.sync.SyncUp(ctx)
	if errors.Is(err, services.ErrSyncInFlight) {
		log.Println("a sync is already running")
		return
	}
	if err != nil {
		log.Printf("Upload failed: %s", err.Error())
		return
	}

	if report.UpToDate {
		fmt.Println("Everything is up to date")
		return
	}

	for _, line := range report.ServerLogs {
		log.Printf("[server] %s", line)
	}
	fmt.Printf("Uploaded %d record(s): %d confirmed, %d deletion(s) finalized\n",
		report.Pushed, report.Cleared, report.Removed)
	if remaining := report.Pushed - report.Cleared - report.Removed; remaining > 0 {
		fmt.Printf("%d record(s) were not confirmed and stay pending\n", remaining)
	}
}

func (a *App) Pull(ctx context.Context) {
	fmt.Println("Downloading remote data...")

	report, err := a.sync.SyncDown(ctx)
	if err != nil {
		log.Printf("Download failed: %s", err.Error())
		return
	}

	fmt.Printf("Merged %d record(s), kept %d local edit(s)\n", report.Merged, report.Skipped)
}

// ResetSync re-marks every local record as pending after confirmation.
// Meant for recovery when the remote store was wiped or diverged.
func (a *App) ResetSync(ctx context.Context) {
	answer, err := GetSimpleText(a.reader, "Re-mark ALL local records for upload? (yes/no)")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if answer != "yes" {
		fmt.Println("Cancelled")
		return
	}

	if err := a.sync.ResetSyncStatus(ctx); err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}

	fmt.Println("Done; the next push re-sends everything")
}
