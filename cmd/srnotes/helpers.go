package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/at-ishikawa/srnotes/internal/config"
	"github.com/at-ishikawa/srnotes/internal/queue"
	"github.com/at-ishikawa/srnotes/internal/random"
	"github.com/at-ishikawa/srnotes/internal/vault"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// syncVault loads the configuration and runs a sync pass over the vault
func syncVault(ctx context.Context) (*config.Config, *vault.Vault, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	v := vault.New(cfg.VaultOptions(time.Now))
	if _, err := v.Sync(ctx); err != nil {
		return nil, nil, fmt.Errorf("vault.Sync() > %w", err)
	}
	return cfg, v, nil
}

func newReviewQueue(cfg *config.Config, result *vault.SyncResult, includeNew bool) *queue.Queue {
	items := result.DueCards
	if includeNew {
		items = append(append([]queue.Item{}, result.DueCards...), result.NewCards...)
	}

	seed := cfg.Flashcards.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return queue.New(items, random.NewProvider(seed), cfg.Flashcards.RandomOrder)
}

// notePath converts a file argument into a slash separated path inside the vault.
// Relative paths are relative to the vault directory.
func notePath(cfg *config.Config, file string) (string, error) {
	rel := filepath.Clean(file)
	if filepath.IsAbs(file) {
		absVault, err := filepath.Abs(cfg.Vault.Directory)
		if err != nil {
			return "", fmt.Errorf("filepath.Abs() > %w", err)
		}
		rel, err = filepath.Rel(absVault, file)
		if err != nil {
			return "", fmt.Errorf("filepath.Rel() > %w", err)
		}
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside of the vault %s", file, cfg.Vault.Directory)
	}
	return filepath.ToSlash(rel), nil
}
