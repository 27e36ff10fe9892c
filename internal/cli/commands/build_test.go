package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgnanki/internal/cli/output"
	"github.com/leapstack-labs/pgnanki/internal/cli/testutil"
	"github.com/leapstack-labs/pgnanki/internal/engine"
)

func buildConfig(outputDir, mediaDir, mode string, extra ...string) string {
	lines := []string{
		fmt.Sprintf("output_dir: %q", outputDir),
		fmt.Sprintf("media_dir: %q", mediaDir),
		"output: " + mode,
	}
	return strings.Join(append(lines, extra...), "\n") + "\n"
}

func TestBuildCommand_Text(t *testing.T) {
	outDir, mediaDir := t.TempDir(), t.TempDir()
	loadConfig(t, buildConfig(outDir, mediaDir, "text"))
	pgn := testutil.SetupPGN(t, "italian.pgn", testutil.ItalianGame)

	out, _, err := execute(t, NewBuildCommand(), pgn, "Italian")
	require.NoError(t, err)

	want := filepath.Join(outDir, "Italian.apkg")
	assert.Equal(t, "Package "+want+" created\n", out)
	assert.FileExists(t, want)

	entries, err := os.ReadDir(mediaDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "board images should be removed after packaging")
}

func TestBuildCommand_JSON(t *testing.T) {
	tests := []struct {
		name      string
		isBlack   bool
		wantMoves []string
	}{
		{
			name:      "white",
			wantMoves: []string{"", "e4 e5", "e4 e5 Nf3 Nc6", "e4 e5 Nf3 d6"},
		},
		{
			name:      "black",
			isBlack:   true,
			wantMoves: []string{"e4", "e4 e5 Nf3", "e4 e5 Bc4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outDir := t.TempDir()
			loadConfig(t, buildConfig(outDir, t.TempDir(), "json", fmt.Sprintf("is_black: %t", tt.isBlack)))
			pgn := testutil.SetupPGN(t, "italian.pgn", testutil.ItalianGame)

			out, _, err := execute(t, NewBuildCommand(), pgn, "Italian")
			require.NoError(t, err)

			var got output.BuildOutput
			require.NoError(t, json.Unmarshal([]byte(out), &got))

			assert.NotEmpty(t, got.RunID)
			assert.Equal(t, "Italian", got.Deck)
			assert.Equal(t, filepath.Join(outDir, "Italian.apkg"), got.Package)
			assert.False(t, got.DryRun)
			assert.Len(t, got.Media, 2*len(tt.wantMoves))

			moves := make([]string, len(got.Cards))
			for i, c := range got.Cards {
				moves[i] = c.Moves
			}
			assert.Equal(t, tt.wantMoves, moves)
		})
	}
}

func TestBuildCommand_DryRunMarkdown(t *testing.T) {
	outDir, mediaDir := t.TempDir(), t.TempDir()
	loadConfig(t, buildConfig(outDir, mediaDir, "markdown"))
	pgn := testutil.SetupPGN(t, "italian.pgn", testutil.ItalianGame)

	out, _, err := execute(t, NewBuildCommand(), pgn, "Italian", "--dry-run")
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Italian (4 cards)")
	assert.Contains(t, out, "Italian_board_1.svg")
	assert.Contains(t, out, "Develop and attack e5.")

	assert.NoFileExists(t, filepath.Join(outDir, "Italian.apkg"))
	entries, err := os.ReadDir(mediaDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuildCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		pgn     string
		wantErr error
	}{
		{
			name:    "start after end",
			config:  "start_move: 10\nend_move: 5\n",
			pgn:     testutil.OpenGame,
			wantErr: engine.ErrInvalidConfig,
		},
		{
			name:    "bad colour",
			config:  "highlight: green\n",
			pgn:     testutil.OpenGame,
			wantErr: engine.ErrInvalidConfig,
		},
		{
			name:    "game shorter than start",
			config:  "start_move: 5\n",
			pgn:     testutil.OpenGame,
			wantErr: engine.ErrInput,
		},
		{
			name:    "illegal move",
			pgn:     "1. e4 e4 *\n",
			wantErr: engine.ErrInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outDir := t.TempDir()
			loadConfig(t, fmt.Sprintf("output_dir: %q\n", outDir)+tt.config)
			pgn := testutil.SetupPGN(t, "game.pgn", tt.pgn)

			_, _, err := execute(t, NewBuildCommand(), pgn, "Deck")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoFileExists(t, filepath.Join(outDir, "Deck.apkg"))
		})
	}
}

func TestBuildCommand_VerboseTrace(t *testing.T) {
	loadConfig(t, buildConfig(t.TempDir(), t.TempDir(), "text", "verbose: true"))
	pgn := testutil.SetupPGN(t, "italian.pgn", testutil.ItalianGame)

	out, _, err := execute(t, NewBuildCommand(), pgn, "Italian")
	require.NoError(t, err)

	assert.Contains(t, out, "Created note with move e4\n")
	assert.Contains(t, out, "Created note with move Nf3 with comment: Develop and attack e5.\n")
}

func TestBuildCommand_EmptyDeckWarns(t *testing.T) {
	outDir := t.TempDir()
	loadConfig(t, buildConfig(outDir, t.TempDir(), "text", "start_move: 2", "end_move: 2"))
	pgn := testutil.SetupPGN(t, "open.pgn", testutil.OpenGame)

	out, errOut, err := execute(t, NewBuildCommand(), pgn, "Open")
	require.NoError(t, err)

	assert.Contains(t, errOut, "No cards between moves 2 and 2")
	assert.Contains(t, out, "Package ")
	assert.FileExists(t, filepath.Join(outDir, "Open.apkg"))
}
