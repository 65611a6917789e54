package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testData = `{
  "events": [{"id": "76186000006678002"}],
  "eventTranslations": [{"event": "76186000006678002", "name": "CodeMash"}],
  "sessionVenues": [{"id": "v1", "event": "76186000006678002"}],
  "sessionVenueTranslations": [{"sessionVenue": "v1", "name": "Salon A"}],
  "sessions": [{"id": "s1", "event": "76186000006678002", "agenda": "76186000008378878", "startTime": "0900", "duration": "60", "venue": "v1"}]
}`

func withDataFile(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "endpoint.json")
	require.NoError(t, os.WriteFile(path, []byte(testData), 0o600))

	t.Setenv("CODEMASH_ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("CODEMASH_DATA_FILE", path)
	t.Setenv("LOG_LEVEL", "error")
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestQuery_Sessions(t *testing.T) {
	withDataFile(t)

	out, _, err := execute(t, "query", "sessions", `{"day_of_week":"monday"}`)
	require.NoError(t, err)

	var sessions []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &sessions))
	require.Len(t, sessions, 1)
	require.Equal(t, "Salon A", sessions[0]["venue"])
}

func TestQuery_Indexed(t *testing.T) {
	withDataFile(t)
	t.Setenv("DATA_INDEX", "true")

	out, _, err := execute(t, "query", "rooms")
	require.NoError(t, err)
	require.JSONEq(t, `["Salon A"]`, out)
}

func TestQuery_InvalidArguments(t *testing.T) {
	withDataFile(t)

	_, stderr, err := execute(t, "query", "sessions", `{"start_time_range":"1000","end_time_range":"0900"}`)
	require.Error(t, err)
	require.Contains(t, stderr, "ARG004")
}

func TestQuery_UnknownTool(t *testing.T) {
	withDataFile(t)

	_, stderr, err := execute(t, "query", "agenda")
	require.Error(t, err)
	require.Contains(t, stderr, "TOOL001")
}

func TestQuery_List(t *testing.T) {
	withDataFile(t)

	out, _, err := execute(t, "query", "--list")
	require.NoError(t, err)
	for _, name := range []string{"event", "hotels", "rooms", "sessions", "speakers", "tracks", "venue"} {
		require.Contains(t, out, name)
	}
}

func TestQuery_MissingDataFile(t *testing.T) {
	withDataFile(t)
	t.Setenv("CODEMASH_DATA_FILE", filepath.Join(t.TempDir(), "nope.json"))

	_, _, err := execute(t, "query", "rooms")
	require.Error(t, err)
}

func TestQuery_MixedCaseSourceUsesPostgres(t *testing.T) {
	withDataFile(t)
	t.Setenv("DATA_SOURCE", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://codemash@127.0.0.1:1/codemash?connect_timeout=1")
	t.Setenv("DB_LOAD_TIMEOUT", "2s")

	out, _, err := execute(t, "query", "rooms")
	require.Error(t, err, "the data file must not be read when postgres is selected")
	require.Empty(t, out)
}

func TestQuery_Args(t *testing.T) {
	_, _, err := execute(t, "query")
	require.Error(t, err)

	_, _, err = execute(t, "query", "--list", "rooms")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, "dev\n", out)
}
