package main

import (
	"path/filepath"
	"testing"

	"trial-bridge/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func useTempDatabase(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "trialbridge.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file:"+path)
	t.Setenv("APP_ENV", "test")
	t.Setenv("AUTH_BCRYPT_COST", "4")
	return path
}

func openFile(t *testing.T, path string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestRootCmd_Subcommands(t *testing.T) {
	var names []string
	for _, c := range newRootCmd().Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "seed"})
}

func TestMigrateCmd(t *testing.T) {
	path := useTempDatabase(t)

	root := newRootCmd()
	root.SetArgs([]string{"migrate"})
	require.NoError(t, root.Execute())

	db := openFile(t, path)
	assert.True(t, db.Migrator().HasTable(&entity.Trial{}))
	assert.True(t, db.Migrator().HasTable(&entity.AuditLog{}))

	var trials int64
	require.NoError(t, db.Model(&entity.Trial{}).Count(&trials).Error)
	assert.Zero(t, trials)
}

func TestSeedCmd_IsRepeatable(t *testing.T) {
	path := useTempDatabase(t)

	for range 2 {
		root := newRootCmd()
		root.SetArgs([]string{"seed"})
		require.NoError(t, root.Execute())
	}

	db := openFile(t, path)
	var trials int64
	require.NoError(t, db.Model(&entity.Trial{}).Count(&trials).Error)
	assert.EqualValues(t, 7, trials)
}
