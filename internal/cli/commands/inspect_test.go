package commands

import (
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgnanki/internal/cli/output"
	"github.com/leapstack-labs/pgnanki/internal/cli/testutil"
)

// buildPackage writes the Italian game package and returns its path.
func buildPackage(t *testing.T) string {
	t.Helper()
	outDir := t.TempDir()
	loadConfig(t, buildConfig(outDir, "", "json"))
	pgn := testutil.SetupPGN(t, "italian.pgn", testutil.ItalianGame)

	_, _, err := execute(t, NewBuildCommand(), pgn, "Italian")
	require.NoError(t, err)
	return filepath.Join(outDir, "Italian.apkg")
}

func TestInspectCommand_JSON(t *testing.T) {
	path := buildPackage(t)

	out, _, err := execute(t, NewInspectCommand(), path)
	require.NoError(t, err)

	var got output.InspectOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, path, got.Path)
	assert.Equal(t, []string{"Italian"}, got.Decks)
	require.Len(t, got.Notes, 4)
	assert.Equal(t, "e4 e5", got.Notes[1].Moves)
	assert.Equal(t, `<img src="Italian_board_3.svg">`, got.Notes[1].Initial)
	assert.Equal(t, "Develop and attack e5.", got.Notes[1].Comment)
	assert.Len(t, got.Media, 8)
	assert.Equal(t, "Italian_board_1.svg", got.Media["0"])
}

func TestInspectCommand_Markdown(t *testing.T) {
	path := buildPackage(t)
	loadConfig(t, "output: markdown\n")

	out, _, err := execute(t, NewInspectCommand(), path)
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Italian")
	assert.Contains(t, out, "- **Notes:** 4")
	assert.Contains(t, out, "![")
	assert.Contains(t, out, "3.svg")
}

func TestInspectCommand_MissingFile(t *testing.T) {
	loadConfig(t, "output: text\n")

	_, _, err := execute(t, NewInspectCommand(), filepath.Join(t.TempDir(), "missing.apkg"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open package")
}
