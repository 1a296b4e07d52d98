package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/bolts/internal/config"
	"github.com/chriserin/bolts/internal/db"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
	return dir
}

func runInit(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunInit(&buf, config.Default(), config.DefaultPath))
	return buf.String()
}

func TestInit_CreatesCorpusDirectory(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	info, err := os.Stat(filepath.Join(dir, ".bolts"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Contains(t, out, ".bolts/ created")
}

func TestInit_CorpusDirectoryAlreadyExists(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".bolts"), 0o755))

	out := runInit(t)

	assert.Contains(t, out, ".bolts/ already exists")
}

func TestInit_InitializesSQLiteDatabase(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	dbPath := filepath.Join(dir, ".bolts", "bolts.db")
	_, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, ".bolts/bolts.db created")
}

func TestInit_DatabaseAlreadyExists(t *testing.T) {
	inTempDir(t)
	runInit(t)

	out := runInit(t)
	assert.Contains(t, out, ".bolts/bolts.db already exists")
}

func TestInit_AddsMigrationSystem(t *testing.T) {
	inTempDir(t)
	runInit(t)

	sqlDB, err := db.Open(".bolts/bolts.db")
	require.NoError(t, err)
	defer sqlDB.Close()

	var version int
	require.NoError(t, sqlDB.QueryRow("SELECT version FROM schema_version").Scan(&version))
	assert.Equal(t, len(db.All), version)
}

func TestInit_WritesDefaultConfig(t *testing.T) {
	inTempDir(t)
	out := runInit(t)

	assert.Contains(t, out, "bolts.yaml created")
	cfg, err := config.Load(config.DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestInit_KeepsExistingConfig(t *testing.T) {
	inTempDir(t)
	original := "ambiguity: first\n"
	require.NoError(t, os.WriteFile(config.DefaultPath, []byte(original), 0o644))

	out := runInit(t)

	data, err := os.ReadFile(config.DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
	assert.Contains(t, out, "bolts.yaml already exists")
}

func TestInit_AddsToGitignore(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("node_modules"), 0o644))

	out := runInit(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "node_modules\n.bolts/bolts.db\n", string(data))
	assert.Contains(t, out, ".bolts/bolts.db added to .gitignore")
}

func TestInit_GitignoreAlreadyHasEntry(t *testing.T) {
	dir := inTempDir(t)
	original := "node_modules\n.bolts/bolts.db\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(original), 0o644))

	out := runInit(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
	assert.Contains(t, out, ".bolts/bolts.db already in .gitignore")
}

func TestInit_NoGitignoreExists(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, ".bolts/bolts.db\n", string(data))
	assert.Contains(t, out, ".gitignore created")
}
