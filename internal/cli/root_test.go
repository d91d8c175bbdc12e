package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/msgcat/internal/db"
	"github.com/vvka-141/msgcat/internal/testing/fixtures"
	"github.com/vvka-141/msgcat/pkg/msgcat"
)

// execute runs a fresh root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("MSGCAT_TABLE", "")
	t.Setenv("MSGCAT_COERCE", "")

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func readTable(t *testing.T, destination, name string) *msgcat.Table {
	t.Helper()

	store, err := db.OpenSQLite(context.Background(), destination, 0)
	require.NoError(t, err)
	defer store.Close()

	table, err := store.Snapshot(context.Background(), name)
	require.NoError(t, err)
	return table
}

func TestRoot_WrongArgCountPrintsUsage(t *testing.T) {
	dir := t.TempDir()
	destination := filepath.Join(dir, "out.db")

	for _, args := range [][]string{
		{},
		{"m.csv"},
		{"m.csv", "c.csv"},
		{"m.csv", "c.csv", destination, "extra"},
	} {
		stdout, _, err := execute(t, args...)
		require.NoError(t, err, "args %v", args)
		assert.Equal(t, usageText+"\n", stdout)
		assert.Equal(t, msgcat.ExitSuccess, msgcat.ExitCodeForError(err))
	}
	assert.NoFileExists(t, destination)
}

func TestRoot_RunsPipeline(t *testing.T) {
	messages, categories, destination := fixtures.WriteDataset(t)

	stdout, _, err := execute(t, messages, categories, destination)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Loading data...\n    MESSAGES: "+messages)
	assert.Contains(t, stdout, "Saving data...\n    DATABASE: "+destination)
	assert.Contains(t, stdout, "Cleaned data saved to database!")

	table := readTable(t, destination, msgcat.DefaultTableName)
	assert.Equal(t, fixtures.OutputRows, table.Len())
}

func TestRoot_Flags(t *testing.T) {
	messages, categories, destination := fixtures.WriteDataset(t)

	_, stderr, err := execute(t, "--table", "cleaned", "--coerce", "all", "--batch-size", "2", "--verify", "-v",
		messages, categories, destination)
	require.NoError(t, err)
	assert.Contains(t, stderr, "[VERBOSE]")

	table := readTable(t, destination, "cleaned")
	assert.Equal(t, msgcat.ColumnInteger, table.Columns[table.ColumnIndex("related")].Type)
}

func TestRoot_EnvOverridesConfigFile(t *testing.T) {
	messages, categories, destination := fixtures.WriteDataset(t)
	cfgPath := filepath.Join(t.TempDir(), "msgcat.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("table: from_file\n"), 0644))

	t.Setenv("MSGCAT_TABLE", "from_env")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, messages, categories, destination})
	require.NoError(t, cmd.Execute())

	readTable(t, destination, "from_env")
}

func TestRoot_ConfigFile(t *testing.T) {
	messages, categories, destination := fixtures.WriteDataset(t)
	cfgPath := filepath.Join(t.TempDir(), "msgcat.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("table: from_file\ncategories:\n  coerce: all\n"), 0644))

	_, _, err := execute(t, "--config", cfgPath, messages, categories, destination)
	require.NoError(t, err)

	table := readTable(t, destination, "from_file")
	assert.Equal(t, msgcat.ColumnInteger, table.Columns[table.ColumnIndex("request")].Type)
}

func TestRoot_MissingConfigFile(t *testing.T) {
	messages, categories, destination := fixtures.WriteDataset(t)

	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), messages, categories, destination)
	assert.Equal(t, msgcat.ExitConfigError, msgcat.ExitCodeForError(err))
}

func TestRoot_BadCoerceFlag(t *testing.T) {
	messages, categories, destination := fixtures.WriteDataset(t)

	_, _, err := execute(t, "--coerce", "some", messages, categories, destination)
	assert.True(t, errors.Is(err, msgcat.ErrInvalidConfig))
	assert.NoFileExists(t, destination)
}

func TestRoot_MissingInputExitCode(t *testing.T) {
	_, categories, destination := fixtures.WriteDataset(t)

	_, _, err := execute(t, filepath.Join(t.TempDir(), "missing.csv"), categories, destination)
	assert.Equal(t, msgcat.ExitInputError, msgcat.ExitCodeForError(err))
}

func TestRoot_UnknownFlag(t *testing.T) {
	_, _, err := execute(t, "--nope")
	assert.Equal(t, msgcat.ExitUsageError, msgcat.ExitCodeForError(err))
}

func TestCategoriesCmd(t *testing.T) {
	_, categories, _ := fixtures.WriteDataset(t)

	stdout, _, err := execute(t, "categories", categories)
	require.NoError(t, err)
	assert.Equal(t, "related\nrequest\noffer\naid_related\nwater\n", stdout)
}

func TestCategoriesCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := fixtures.WriteFile(t, dir, "empty.csv", "id,categories\n")
	noColumn := fixtures.WriteFile(t, dir, "nocol.csv", "id,labels\n1,a-1\n")

	_, _, err := execute(t, "categories", empty)
	assert.True(t, errors.Is(err, msgcat.ErrNoRows))

	_, _, err = execute(t, "categories", noColumn)
	assert.True(t, errors.Is(err, msgcat.ErrMissingColumn))

	_, _, err = execute(t, "categories")
	assert.Equal(t, msgcat.ExitUsageError, msgcat.ExitCodeForError(err))
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "msgcat ")
}

func TestRoot_VersionFlag(t *testing.T) {
	for _, args := range [][]string{{"--version"}, {"-v", "--version"}, {"--version", "a.csv"}} {
		stdout, _, err := execute(t, args...)
		require.NoError(t, err, "args %v", args)
		assert.True(t, strings.HasPrefix(stdout, "msgcat "), "args %v: %q", args, stdout)
		assert.NotContains(t, stdout, "Please provide the filepaths", "args %v", args)
	}
}

func TestCompleteCoercionModes(t *testing.T) {
	matches, _ := completeCoercionModes(nil, nil, "a")
	assert.Equal(t, []string{"all"}, matches)
}
