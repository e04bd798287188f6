package main

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // registered photo decoders
	_ "image/jpeg" // registered photo decoders
	_ "image/png"  // registered photo decoders
	"os"

	"github.com/spf13/viper"

	"github.com/verdantlabs/greenproof/internal/classifier"
	"github.com/verdantlabs/greenproof/internal/engine"
	"github.com/verdantlabs/greenproof/internal/judge"
	"github.com/verdantlabs/greenproof/internal/ledger"
	"github.com/verdantlabs/greenproof/internal/storage"
	"github.com/verdantlabs/greenproof/internal/taxonomy"
)

// initStorage opens the local history database and applies migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(viper.GetString("database.path"))
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate ledger database: %w", err)
	}
	return store, nil
}

// buildEngine wires the full verification pipeline: taxonomy, ONNX
// classifier, judge, and a ledger seeded from the persisted history. The
// returned cleanup releases the model session and the database.
func buildEngine(ctx context.Context) (*engine.VerificationEngine, func(), error) {
	tax, err := taxonomy.New()
	if err != nil {
		return nil, nil, err
	}

	clf, err := classifier.NewONNXClassifier(classifier.Config{
		ModelPath:   viper.GetString("model.path"),
		LabelsPath:  viper.GetString("model.labels"),
		LibraryPath: viper.GetString("model.library"),
	})
	if err != nil {
		// Fatal for the whole verification subsystem; surfaced once here
		// rather than per call.
		return nil, nil, fmt.Errorf("verification is unavailable: %w", err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		_ = clf.Close()
		return nil, nil, err
	}

	history, err := store.ListEntries(ctx)
	if err != nil {
		_ = clf.Close()
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to load ledger history: %w", err)
	}

	led := ledger.NewWithHistory(tax, history)
	eng := engine.NewWithStorage(clf, judge.New(tax), led, store)

	cleanup := func() {
		_ = clf.Close()
		_ = store.Close()
	}
	return eng, cleanup, nil
}

// loadImage decodes a photo from disk.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}
