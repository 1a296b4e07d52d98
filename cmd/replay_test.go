package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/bolts/internal/config"
)

func runReplay(t *testing.T, cfg config.Config, update bool) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunReplay(&buf, cfg, update))
	return buf.String()
}

func TestReplay_Unchanged(t *testing.T) {
	inTempDir(t)
	runInit(t)
	record(t, "u16", "1234")
	record(t, "u16", "12")

	out := runReplay(t, config.Default(), false)

	assert.Contains(t, out, "same  ")
	assert.NotContains(t, out, "chg")
	assert.Contains(t, out, "replayed 2 runs")
	assert.NotContains(t, out, "changed")
}

func TestReplay_ReportsChangedDebug(t *testing.T) {
	inTempDir(t)
	runInit(t)
	record(t, "word", "beef")

	cfg := config.Default()
	cfg.UnionDebug = "empty"
	out := runReplay(t, cfg, false)

	assert.Contains(t, out, "chg   ")
	assert.Contains(t, out, "BEEF -> ")
	assert.Contains(t, out, "1 changed")

	// without --update the stored outcome stays
	assert.Equal(t, "BEEF", listRuns(t)[0].Debug)
}

func TestReplay_UpdateStoresNewOutcome(t *testing.T) {
	inTempDir(t)
	runInit(t)
	record(t, "word", "beef")

	cfg := config.Default()
	cfg.UnionDebug = "empty"
	runReplay(t, cfg, true)

	assert.Equal(t, "", listRuns(t)[0].Debug)

	out := runReplay(t, cfg, false)
	assert.NotContains(t, out, "chg")
}

func TestReplay_RequiresInit(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	require.Error(t, RunReplay(&buf, config.Default(), false))
}

func TestStats_PerGrammar(t *testing.T) {
	inTempDir(t)
	runInit(t)
	record(t, "u16", "1234")
	record(t, "u16", "12")
	record(t, "u8", "01")

	var buf bytes.Buffer
	require.NoError(t, RunStats(&buf, config.Default()))
	out := buf.String()

	assert.Contains(t, out, "Runs: 3\n")
	assert.Contains(t, out, "  u16: 1 ok, 1 failed, 16 bits consumed\n")
	assert.Contains(t, out, "  u8: 1 ok, 0 failed, 8 bits consumed\n")
}

func TestStats_Empty(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	require.NoError(t, RunStats(&buf, config.Default()))
	assert.Equal(t, "Runs: 0\n", buf.String())
}
