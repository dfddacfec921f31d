package db

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tailorline/storefront/pkg/config"
	"github.com/tailorline/storefront/pkg/logger"
)

func TestNewRejectsBadConfig(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, config.DBConfig{Driver: DriverPostgres}, nil)
	assert.ErrorContains(t, err, "DSN is required")

	_, err = New(ctx, config.DBConfig{Driver: "mysql", DSN: "x"}, nil)
	assert.ErrorContains(t, err, "unsupported database driver")

	_, err = New(ctx, config.DBConfig{Driver: DriverSQLite}, nil)
	assert.ErrorContains(t, err, "sqlite path is required")
}

func TestNewOpensSQLite(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.InfoLevel, Output: &buf, Format: logger.FormatJSON})

	client, err := New(context.Background(), config.DBConfig{Driver: DriverSQLite, SQLitePath: "file::memory:", MaxOpenConns: 1}, logg)
	require.NoError(t, err)
	defer client.Close()

	assert.True(t, client.IsSQLite())
	assert.NoError(t, client.Ping(context.Background()))
	assert.Contains(t, buf.String(), "database connection established")
}

func TestWrapUsesExistingConnection(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: queryLogger(nil, 0)})
	require.NoError(t, err)

	client := Wrap(conn)
	assert.Same(t, conn, client.DB())
	assert.True(t, client.IsSQLite())
	require.NoError(t, client.Close())
	assert.Error(t, client.Ping(context.Background()))
}

func TestQueryWriterLogsAtWarn(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.WarnLevel, Output: &buf, Format: logger.FormatJSON})

	queryWriter{logg: logg}.Printf("%s [%.3fms] %s", "SLOW SQL >= 500ms", 812.5, "SELECT 1")

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "SELECT 1")
}
