package generator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supby/zclext/internal/configuration"
	"github.com/supby/zclext/internal/layout"
	"github.com/supby/zclext/internal/logger"
)

// writeGenerator installs a shell script at the tree's generator path. It records its working
// directory and arguments next to itself, then runs body.
func writeGenerator(t *testing.T, root, body string) string {
	t.Helper()
	script := filepath.Join(root, filepath.FromSlash(layout.GeneratorScript))
	require.NoError(t, os.MkdirAll(filepath.Dir(script), 0755))

	content := "#!/bin/sh\n" +
		"dir=$(dirname \"$0\")\n" +
		"pwd > \"$dir/cwd.txt\"\n" +
		"echo \"$@\" >> \"$dir/calls.txt\"\n" +
		body + "\n"
	require.NoError(t, os.WriteFile(script, []byte(content), 0755))
	return filepath.Dir(script)
}

func readLines(t *testing.T, filename string) []string {
	t.Helper()
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func newTestRunner(root string, config configuration.GeneratorConfiguration) (Runner, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	if config.Script == "" {
		config.Script = layout.GeneratorScript
	}
	return NewRunner(layout.Repo{Root: root}, config, logger.NewLogger(buf, "[generator]", logger.LogLevelDebug)), buf
}

func TestGenerateAppCommon(t *testing.T) {
	root := t.TempDir()
	dir := writeGenerator(t, root, "echo generated app-common")

	r, buf := newTestRunner(root, configuration.GeneratorConfiguration{})
	require.NoError(t, r.GenerateAppCommon(context.Background()))

	assert.Equal(t, []string{
		"src/controller/data_model/controller-clusters.zap -t src/app/common/templates/templates.json -o zzz_generated/app-common/app-common/zap-generated",
	}, readLines(t, filepath.Join(dir, "calls.txt")))
	assert.Contains(t, buf.String(), "generated app-common")

	cwd := readLines(t, filepath.Join(dir, "cwd.txt"))[0]
	expected, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	actual, err := filepath.EvalSymlinks(cwd)
	require.NoError(t, err)
	assert.Equal(t, expected, actual, "generator runs from the tree root")
}

func TestGenerateFromZapPassesRelativePath(t *testing.T) {
	root := t.TempDir()
	dir := writeGenerator(t, root, "")

	zapFile := filepath.Join(root, "examples", "lock-app", "lock-common", "lock-app.zap")

	r, _ := newTestRunner(root, configuration.GeneratorConfiguration{})
	require.NoError(t, r.GenerateFromZap(context.Background(), zapFile))

	assert.Equal(t, []string{"examples/lock-app/lock-common/lock-app.zap"}, readLines(t, filepath.Join(dir, "calls.txt")))
}

func TestGeneratorFailureIsFatal(t *testing.T) {
	root := t.TempDir()
	writeGenerator(t, root, "exit 3")

	r, _ := newTestRunner(root, configuration.GeneratorConfiguration{})
	err := r.GenerateAppCommon(context.Background())
	assert.ErrorIs(t, err, ErrGeneratorFailed)
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestGeneratorFailureIgnored(t *testing.T) {
	root := t.TempDir()
	writeGenerator(t, root, "exit 3")

	r, buf := newTestRunner(root, configuration.GeneratorConfiguration{IgnoreFailures: true})
	assert.NoError(t, r.GenerateAppCommon(context.Background()))
	assert.Contains(t, buf.String(), "[WARN]")
}

func TestGeneratorMissingScript(t *testing.T) {
	r, _ := newTestRunner(t.TempDir(), configuration.GeneratorConfiguration{IgnoreFailures: true})

	err := r.GenerateAppCommon(context.Background())
	assert.Error(t, err, "a missing generator is never ignored")
	assert.NotErrorIs(t, err, ErrGeneratorFailed)
}

func TestGeneratorInterpreter(t *testing.T) {
	root := t.TempDir()
	dir := writeGenerator(t, root, "")
	script := filepath.Join(dir, "generate.py")
	require.NoError(t, os.Chmod(script, 0644))

	r, _ := newTestRunner(root, configuration.GeneratorConfiguration{Interpreter: "/bin/sh"})
	require.NoError(t, r.GenerateFromZap(context.Background(), filepath.Join(root, "a.zap")))

	assert.Equal(t, []string{"a.zap"}, readLines(t, filepath.Join(dir, "calls.txt")))
}

func TestGeneratorTimeout(t *testing.T) {
	root := t.TempDir()
	writeGenerator(t, root, "exec sleep 5")

	r, _ := newTestRunner(root, configuration.GeneratorConfiguration{Timeout: 100 * time.Millisecond, IgnoreFailures: true})

	started := time.Now()
	err := r.GenerateAppCommon(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded, "a timeout is never ignored")
	assert.Less(t, time.Since(started), 4*time.Second)
}

func TestRelativeToRepo(t *testing.T) {
	rel, err := RelativeToRepo("/src/chip", "/src/chip/examples/lock-app/lock-app.zap")
	require.NoError(t, err)
	assert.Equal(t, "examples/lock-app/lock-app.zap", rel)

	rel, err = RelativeToRepo("/src/chip", "/work/lock-app.zap")
	require.NoError(t, err)
	assert.Equal(t, "../../work/lock-app.zap", rel)
}
