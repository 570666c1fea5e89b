package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vkoskivuori/taskupankki/internal/common"
	"github.com/vkoskivuori/taskupankki/internal/config"
	"github.com/vkoskivuori/taskupankki/internal/ledger"
	"github.com/vkoskivuori/taskupankki/internal/storage"
)

// openStore wires the ledger store for a command invocation. Without a
// configured database it starts from the demo seed; with one it loads the
// persisted account (seeding it on first use) and attaches the persistence
// subscriber so every mutation is written back before the command returns.
func openStore(ctx context.Context) (*ledger.Store, func(), error) {
	dbPath := config.DatabasePath()
	if dbPath == "" {
		return ledger.NewStore(ledger.DefaultSeed()), func() {}, nil
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, nil, common.NewUserError("could not open the ledger database", err)
	}

	seed, found, err := db.LoadSeed(ctx)
	if err != nil {
		_ = db.Close()
		return nil, nil, common.NewUserError("could not load the persisted account", err)
	}
	if !found {
		seed = ledger.DefaultSeed()
		slog.Debug("seeding new ledger database", "db", dbPath)
	}

	store := ledger.NewStore(seed)
	if !found {
		if err := db.SaveSnapshot(ctx, store.Snapshot()); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to seed ledger database: %w", err)
		}
	}

	detach := db.Attach(ctx, store)
	cleanup := func() {
		detach()
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close ledger database", "error", closeErr)
		}
	}

	return store, cleanup, nil
}
