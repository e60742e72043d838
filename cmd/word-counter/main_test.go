package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianbenavides/word-counter/errs"
	"github.com/adrianbenavides/word-counter/store"
)

const sample = `{"type":"nulla","x":1}
{"type":"dolore","x":22}
{"type":"nulla","x":333}
`

func writeSample(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sample.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	return path
}

func TestRun_Table(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{writeSample(t)}, &out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "| Type")
	assert.Contains(t, got, "nulla |     2 |")
	assert.Contains(t, got, "dolore |     1 |")
}

func TestRun_JSONFormat(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"-format", "json", writeSample(t)}, &out)
	require.NoError(t, err)

	var report struct {
		Types []struct {
			Type  string `json:"type"`
			Count uint64 `json:"count"`
		} `json:"types"`
		Lines uint64 `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	require.Len(t, report.Types, 2)
	assert.Equal(t, "nulla", report.Types[0].Type)
	assert.Equal(t, uint64(3), report.Lines)
}

func TestRun_TopFlag(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"-top", "1", writeSample(t)}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "nulla")
	assert.NotContains(t, out.String(), "dolore")
}

func TestRun_FieldFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinds.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(`{"kind":"a","type":"decoy"}`+"\n"), 0o600))

	var out bytes.Buffer
	err := run(context.Background(), []string{"-field", "kind", path}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "a |")
	assert.NotContains(t, out.String(), "decoy")
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "kinds.ndjson")
	require.NoError(t, os.WriteFile(input, []byte(`{"kind":"a"}`+"\n"), 0o600))

	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "field: kind\ninput: " + input + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	var out bytes.Buffer
	err := run(context.Background(), []string{"-config", cfgPath}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "a |")
}

func TestRun_FlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("field: kind\n"), 0o600))

	path := filepath.Join(dir, "sample.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"a","kind":"b"}`+"\n"), 0o600))

	var out bytes.Buffer
	err := run(context.Background(), []string{"-config", cfgPath, "-field", "type", path}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "a |")
	assert.NotContains(t, out.String(), "b |")
}

func TestRun_Export(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	var out bytes.Buffer
	err := run(context.Background(), []string{"-export", dbPath, writeSample(t)}, &out)
	require.NoError(t, err)

	db, err := store.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	runs, err := db.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, uint64(3), runs[0].Lines)

	types, err := db.RunTypes(context.Background(), runs[0].ID)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "nulla", types[0].Type)
}

func TestRun_MissingInput(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{filepath.Join(t.TempDir(), "absent")}, &out)
	require.Error(t, err)
}

func TestRun_InvalidFormat(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"-format", "xml", writeSample(t)}, &out)
	require.ErrorIs(t, err, errs.ErrInvalidReportFormat)
}

func TestRun_MissingConfigFlag(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"-config", filepath.Join(t.TempDir(), "absent.yaml"), writeSample(t)}, &out)
	require.Error(t, err)
}
