package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup. Equivalent to t.Chdir, which
// requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

// TestCheckGolden runs every testdata archive through the real entry point.
// Each archive holds the source files, the expected exit code, and the
// expected stdout/stderr.
func TestCheckGolden(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, path := range archives {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)

			dir := t.TempDir()
			var sources []string
			wantExit := 0
			wantStdout, wantStderr := "", ""
			hasLimits := false
			for _, f := range ar.Files {
				switch f.Name {
				case "exit":
					wantExit, err = strconv.Atoi(strings.TrimSpace(string(f.Data)))
					require.NoError(t, err)
				case "stdout":
					wantStdout = string(f.Data)
				case "stderr":
					wantStderr = string(f.Data)
				default:
					require.NoError(t, os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0o644))
					if strings.HasSuffix(f.Name, ".mtt") {
						sources = append(sources, f.Name)
					}
					if f.Name == "limits.yaml" {
						hasLimits = true
					}
				}
			}
			require.NotEmpty(t, sources, "archive %s has no source files", path)

			chdir(t, dir)
			args := []string{"check", "--no-color"}
			if hasLimits {
				args = append(args, "--limits", "limits.yaml")
			}
			args = append(args, sources...)

			var stdout, stderr bytes.Buffer
			code := Entry(args, &stdout, &stderr)
			assert.Equal(t, wantExit, code, "exit code")
			assert.Equal(t, wantStdout, stdout.String(), "stdout")
			assert.Equal(t, wantStderr, stderr.String(), "stderr")
		})
	}
}

func TestEntryDispatch(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := Entry([]string{"version"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "minitt "+Version+"\n", stdout.String())

	stdout.Reset()
	code = Entry([]string{"help"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "Usage: minitt")

	stderr.Reset()
	code = Entry([]string{"frobnicate"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "unknown command")

	stderr.Reset()
	code = Entry(nil, &stdout, &stderr)
	assert.Equal(t, 2, code)
}

func TestCheckArgumentErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := Entry([]string{"check"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "no input files")

	stderr.Reset()
	code = Entry([]string{"check", "--bogus", "a.mtt"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "unknown flag")

	stderr.Reset()
	code = Entry([]string{"check", "--limits"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "--limits requires a file argument")
}

func TestCheckMissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	var stdout, stderr bytes.Buffer
	code := Entry([]string{"check", "ghost.mtt"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "[C001]")
	assert.Contains(t, stderr.String(), "ghost.mtt")
}

func TestCheckBadLimitsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "limits.yaml"), []byte("terms: 0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mtt"), []byte("axiom T : Type\n"), 0o644))
	chdir(t, dir)

	var stdout, stderr bytes.Buffer
	code := Entry([]string{"check", "--limits", "limits.yaml", "a.mtt"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "terms capacity")
}
