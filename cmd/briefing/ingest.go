package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/umputun/briefing/pkg/domain"
)

// snapshotStore is the part of the storage used for imports
type snapshotStore interface {
	SaveTitleSnapshot(ctx context.Context, snap *domain.TitleSnapshot) error
	SaveFeedSnapshot(ctx context.Context, snap *domain.FeedSnapshot) error
}

// importSnapshots loads title and feed snapshots from JSON files into the store,
// each file replaces the day it holds
func importSnapshots(ctx context.Context, store snapshotStore, titleFiles, feedFiles []string) error {
	for _, fname := range titleFiles {
		var snap domain.TitleSnapshot
		if err := readJSON(fname, &snap); err != nil {
			return err
		}
		if err := store.SaveTitleSnapshot(ctx, &snap); err != nil {
			return fmt.Errorf("save titles from %s: %w", fname, err)
		}
		log.Printf("[INFO] imported title snapshot %s, %d sources", snap.Date, len(snap.Sources))
	}

	for _, fname := range feedFiles {
		var snap domain.FeedSnapshot
		if err := readJSON(fname, &snap); err != nil {
			return err
		}
		if err := store.SaveFeedSnapshot(ctx, &snap); err != nil {
			return fmt.Errorf("save feeds from %s: %w", fname, err)
		}
		log.Printf("[INFO] imported feed snapshot %s, %d feeds", snap.Date, len(snap.Feeds))
	}
	return nil
}

func readJSON(fname string, v any) error {
	data, err := os.ReadFile(fname) //nolint:gosec // file name comes from CLI flag
	if err != nil {
		return fmt.Errorf("read %s: %w", fname, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", fname, err)
	}
	return nil
}
