package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"glint/internal/model"
	"glint/internal/storage"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = orig

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func seedDB(t *testing.T, path string) {
	t.Helper()
	store, err := storage.Open(context.Background(), path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.InsertSpan(ctx, model.Span{
		SpanID:            "s1",
		TraceID:           "t1",
		Name:              "op",
		Kind:              model.SpanKindServer,
		StartTimeUnixNano: 0,
		EndTimeUnixNano:   200_000_000,
		Attributes:        model.NewAttributes(),
		Status:            model.Status{Code: model.StatusCodeOk},
		ServiceName:       "svc-A",
		HasServiceName:    true,
	}))
	require.NoError(t, store.InsertLog(ctx, model.Log{
		TimeUnixNano:   1,
		Severity:       model.SeverityInfo,
		Body:           "hello world",
		Attributes:     model.NewAttributes(),
		ServiceName:    "svc-A",
		HasServiceName: true,
	}))
}

func TestTracesCommandPrintsTraces(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "glint.db")
	seedDB(t, dbPath)

	cmd := newTracesCmd()
	cmd.SetArgs([]string{"--db-path", dbPath})

	out := captureStdout(t, func() {
		require.NoError(t, cmd.Execute())
	})

	require.Contains(t, out, "t1")
	require.Contains(t, out, "svc-A")
}

func TestTracesCommandSlowFilterKeepsSlowTraces(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "glint.db")
	seedDB(t, dbPath) // 200ms span, above the 100ms slow threshold

	cmd := newTracesCmd()
	cmd.SetArgs([]string{"--db-path", dbPath, "--slow"})
	out := captureStdout(t, func() {
		require.NoError(t, cmd.Execute())
	})
	require.Contains(t, out, "t1")
}

func TestLogsCommandPrintsLogs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "glint.db")
	seedDB(t, dbPath)

	cmd := newLogsCmd()
	cmd.SetArgs([]string{"--db-path", dbPath})
	out := captureStdout(t, func() {
		require.NoError(t, cmd.Execute())
	})

	require.Contains(t, out, "hello world")
	require.Contains(t, out, "svc-A")
}

func TestCleanCommandDeletesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "glint.db")
	seedDB(t, dbPath)

	cmd := newCleanCmd()
	cmd.SetArgs([]string{"--db-path", dbPath})
	out := captureStdout(t, func() {
		require.NoError(t, cmd.Execute())
	})

	require.Contains(t, out, "deleted successfully")
	_, err := os.Stat(dbPath)
	require.True(t, os.IsNotExist(err))
}

func TestCleanCommandMissingDatabaseIsNotAnError(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing.db")

	cmd := newCleanCmd()
	cmd.SetArgs([]string{"--db-path", dbPath})
	out := captureStdout(t, func() {
		require.NoError(t, cmd.Execute())
	})

	require.Contains(t, out, "not found")
}

func TestTUICommandPrintsNotImplemented(t *testing.T) {
	cmd := newTUICmd()
	out := captureStdout(t, func() {
		require.NoError(t, cmd.Execute())
	})
	require.Contains(t, out, "not implemented")
}
