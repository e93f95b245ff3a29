package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/liftlog/internal/gymstats/progression"
	"github.com/2beens/liftlog/internal/gymstats/training"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "liftlog", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"import"}, {"routines"}, {"sessions"}, {"recommend"}, {"plates"},
		{"token", "create"}, {"token", "revoke"},
	}

	for _, path := range commands {
		t.Run(fmt.Sprint(path), func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err)
			require.NotNil(t, subCmd)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)

	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("user"))
}

// writeTestConfig writes a local-only development config and returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := fmt.Sprintf(`
[development]
host = "localhost"
port = 9000
environment = "development"
log_level = "warn"
sqlite_path = %q
redis_host = "localhost"
`, filepath.Join(dir, "data", "liftlog.db"))

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeData[T any](t *testing.T, out string) T {
	t.Helper()
	var resp struct {
		Status string `json:"status"`
		Data   T      `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "plates", "20", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestPlatesCommand(t *testing.T) {
	out, err := execute(t, "plates", "22.5", "--format", "json")
	require.NoError(t, err)
	breakdown := decodeData[progression.PlateBreakdown](t, out)
	assert.Equal(t, 65.0, breakdown.Total)
	assert.Equal(t, []float64{20, 2.5}, breakdown.PerSide)

	out, err = execute(t, "plates", "12", "-e", "dumbbell")
	require.NoError(t, err)
	assert.Contains(t, out, "total: 24.00 kg")

	_, err = execute(t, "plates", "abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, "plates", "10", "-e", "kettlebell")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestImportAndRoutinesCommands(t *testing.T) {
	configPath := writeTestConfig(t)
	importPath := filepath.Join(t.TempDir(), "push.yaml")
	require.NoError(t, os.WriteFile(importPath, []byte(`
name: Push
exercises:
  - name: Bench Press
    sets:
      - type: TOP
        repsMin: 6
        repsMax: 9
      - type: BOFF
        repsMin: 12
        repsMax: 15
`), 0o600))

	out, err := execute(t, "import", importPath, "--config", configPath, "--format", "json")
	require.NoError(t, err)
	imported := decodeData[[]training.RoutineTemplate](t, out)
	require.Len(t, imported, 1)
	assert.Equal(t, "1. Push", imported[0].Name)
	assert.Equal(t, "1xTOP 6-9, 1xBOFF 12-15", imported[0].Exercises[0].SchemeText)

	out, err = execute(t, "routines", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "1. Push")
	assert.Contains(t, out, "Bench Press")

	badPath := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{"name":"Bad","exercises":[{"name":"X","category":"cardio"}]}`), 0o600))
	_, err = execute(t, "import", badPath, "--config", configPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out, err = execute(t, "routines", "--config", configPath, "--format", "json")
	require.NoError(t, err)
	assert.Len(t, decodeData[[]training.RoutineTemplate](t, out), 1)
}

func TestSessionsCommand_Empty(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := execute(t, "sessions", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "no sessions logged")
}

func TestRecommendCommand_NoHistory(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := execute(t, "recommend", "--config", configPath, "--format", "json",
		"-e", "lateral-raise", "-k", "SET", "--rep-min", "12", "--rep-max", "15",
		"--category", "isolation", "--preset", "8")
	require.NoError(t, err)
	res := decodeData[recommendResult](t, out)
	assert.Nil(t, res.Prior)
	assert.Equal(t, progression.ActionHold, res.Recommendation.Action)
	assert.Equal(t, 7.5, res.Recommendation.SuggestedWeight)

	_, err = execute(t, "recommend", "--config", configPath, "-e", "x", "-k", "WARMUP")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, "recommend", "--config", "/nonexistent/config.toml", "-e", "x")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
