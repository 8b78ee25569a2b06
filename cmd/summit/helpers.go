package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/summitlabs/summit/internal/common"
	"github.com/summitlabs/summit/internal/config"
	"github.com/summitlabs/summit/internal/engine"
	"github.com/summitlabs/summit/internal/model"
	"github.com/summitlabs/summit/internal/storage"
)

// initStorage opens the goal database with proper path expansion and applies
// any pending migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath(viper.GetString("database.path"))

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}
	common.LogDebug("opened goal database", common.Fields{"path": dbPath})

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initEngine opens storage and wraps it in a goal engine. The returned
// cleanup closes the database.
func initEngine(ctx context.Context) (*engine.Engine, func(), error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return engine.New(store), func() { _ = store.Close() }, nil
}

// parseGoalID parses the positional goal id argument.
func parseGoalID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid goal id %q", arg)
	}
	return id, nil
}

// parseCategory maps a case-insensitive category name to its enum value. An
// empty string is returned unchanged so creation can fall back to defaults
// or parent inheritance.
func parseCategory(name string) (model.Category, error) {
	if name == "" {
		return "", nil
	}
	for _, c := range model.Categories() {
		if string(c) == strings.ToUpper(name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (valid: %v)", name, model.Categories())
}

// parseProgressType maps a case-insensitive progress type name.
func parseProgressType(name string) (model.ProgressType, error) {
	if name == "" {
		return "", nil
	}
	p := model.ProgressType(strings.ToUpper(name))
	if !p.Valid() {
		return "", fmt.Errorf("unknown progress type %q (valid: NUMERIC, PERCENTAGE)", name)
	}
	return p, nil
}

// parseStatus maps a case-insensitive status name. An empty string means no
// filter and is returned unchanged.
func parseStatus(name string) (model.Status, error) {
	if name == "" {
		return "", nil
	}
	s := model.Status(strings.ToUpper(name))
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q (valid: ACTIVE, COMPLETED, ABANDONED, ARCHIVED)", name)
	}
	return s, nil
}

// parseDayFlag parses an optional YYYY-MM-DD flag value.
func parseDayFlag(value string) (*model.Day, error) {
	if value == "" {
		return nil, nil
	}
	d, err := model.ParseDay(value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return &d, nil
}
