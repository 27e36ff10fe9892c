package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgnanki/internal/cli/config"
)

// loadConfig makes yamlText the current configuration for the test.
func loadConfig(t *testing.T, yamlText string) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pgnanki.yaml"), []byte(yamlText), 0o600))
	_, err := config.LoadConfigFrom("", dir, nil)
	require.NoError(t, err)
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewBuildCommand(t *testing.T) {
	cmd := NewBuildCommand()

	assert.Equal(t, "build <pgn-file> <deck-name>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{
		"start-move", "end-move", "is-black", "light-squares", "dark-squares",
		"highlight", "output-dir", "media-dir", "dry-run",
	}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Error(t, cmd.Args(cmd, []string{"only-one"}))
}

func TestNewInspectCommand(t *testing.T) {
	cmd := NewInspectCommand()

	assert.Equal(t, "inspect <apkg>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.Error(t, cmd.Args(cmd, nil))
}

func TestNewConfigCommand(t *testing.T) {
	cmd := NewConfigCommand()

	assert.Equal(t, "config", cmd.Use)
	assert.NotEmpty(t, cmd.Long, "Long should not be empty")
}

func TestConfigCommand_PrintsYAML(t *testing.T) {
	loadConfig(t, "start_move: 3\nis_black: true\n")

	out, _, err := execute(t, NewConfigCommand())
	require.NoError(t, err)

	assert.Contains(t, out, "# loaded from ")
	assert.Contains(t, out, "start_move: 3")
	assert.Contains(t, out, "is_black: true")
	assert.Contains(t, out, "end_move: 100")
}
