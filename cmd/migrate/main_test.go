package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailorline/storefront/pkg/config"
	"github.com/tailorline/storefront/pkg/db"
	"github.com/tailorline/storefront/pkg/db/models"
	"github.com/tailorline/storefront/pkg/logger"
	"github.com/tailorline/storefront/pkg/migrate"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{DB: config.DBConfig{
		Driver:     db.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "storefront.db"),
	}}
}

func TestRunValidateEmbedded(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), &config.Config{}, logger.Nop(), options{cmd: "validate", dir: migrate.DefaultDir}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "migration validation passed")
}

func TestRunCreateNeedsName(t *testing.T) {
	err := run(context.Background(), &config.Config{}, logger.Nop(), options{cmd: "create", dir: t.TempDir()}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "missing -name")
}

func TestRunCreateWritesFile(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &config.Config{}, logger.Nop(), options{cmd: "create", dir: dir, name: "add fabric notes"}, &out))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "add_fabric_notes")
	assert.Contains(t, out.String(), "created migration:")
}

func TestRunSQLiteUpThenSeed(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	require.NoError(t, run(ctx, cfg, logger.Nop(), options{cmd: "up"}, &bytes.Buffer{}))
	require.NoError(t, run(ctx, cfg, logger.Nop(), options{cmd: "seed", seedFile: filepath.Join("..", "..", "seed", "catalog.yaml")}, &bytes.Buffer{}))

	client, err := db.New(ctx, cfg.DB, nil)
	require.NoError(t, err)
	defer client.Close()

	var count int64
	require.NoError(t, client.DB().Model(&models.Product{}).Count(&count).Error)
	assert.Positive(t, count)
}

func TestRunSQLiteRejectsGooseCommands(t *testing.T) {
	err := run(context.Background(), sqliteConfig(t), logger.Nop(), options{cmd: "down"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "only support -cmd=up")
}

func TestMigrationsFS(t *testing.T) {
	assert.Equal(t, migrate.Migrations(), migrationsFS(migrate.DefaultDir))
	assert.Equal(t, os.DirFS("elsewhere"), migrationsFS("elsewhere"))
}
