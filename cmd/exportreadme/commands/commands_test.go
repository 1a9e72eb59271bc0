package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/exportreadme/internal/foundation/errors"
)

const readme = `<img src="logo.png">
[guide](guide.md) [site](https://example.com)
`

// run parses args and executes the selected command.
func run(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	var cli CLI
	parser, err := NewParser(&cli, kong.Exit(func(code int) { t.Fatalf("unexpected exit %d", code) }))
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	kctx.BindTo(ctx, (*context.Context)(nil))

	var out bytes.Buffer
	err = kctx.Run(&Global{Stdout: &out}, &cli)
	return out.String(), err
}

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdirTest(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte(readme), 0o600))
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestExport_DefaultCommand(t *testing.T) {
	dir := setup(t)

	_, err := run(t, context.Background(), "README.md", "out.md")
	require.NoError(t, err)
	require.Equal(t, `<img src="docs/logo.png">
[guide](docs/guide.md) [site](https://example.com)
`, readFile(t, filepath.Join(dir, "out.md")))
}

func TestExport_PrefixFlag(t *testing.T) {
	dir := setup(t)

	_, err := run(t, context.Background(), "export", "--prefix", "handbook/", "README.md", "out.md")
	require.NoError(t, err)
	require.Contains(t, readFile(t, filepath.Join(dir, "out.md")), `[guide](handbook/guide.md)`)
}

func TestExport_PrefixFromConfigFile(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exportreadme.yaml"), []byte("target_prefix: site/\n"), 0o600))

	_, err := run(t, context.Background(), "README.md", "out.md")
	require.NoError(t, err)
	require.Contains(t, readFile(t, filepath.Join(dir, "out.md")), `src="site/logo.png"`)
}

func TestExport_ExplicitConfigMustExist(t *testing.T) {
	setup(t)

	_, err := run(t, context.Background(), "--config", "missing.yaml", "README.md", "out.md")
	require.Error(t, err)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryConfig))
}

func TestExport_DryRunWritesNothing(t *testing.T) {
	dir := setup(t)

	out, err := run(t, context.Background(), "export", "--dry-run", "README.md", "out.md")
	require.NoError(t, err)
	require.Contains(t, out, "src      logo.png -> docs/logo.png")
	require.Contains(t, out, "markdown guide.md -> docs/guide.md")
	require.True(t, strings.HasSuffix(out, "2 rewritten, 1 kept\n"))

	_, statErr := os.Stat(filepath.Join(dir, "out.md"))
	require.True(t, os.IsNotExist(statErr))
}

func TestExport_MissingInputIsFileSystemError(t *testing.T) {
	setup(t)

	_, err := run(t, context.Background(), "nope.md", "out.md")
	require.Error(t, err)
	require.Equal(t, 11, foundationerrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestExport_MetricsFile(t *testing.T) {
	dir := setup(t)

	_, err := run(t, context.Background(), "export", "--metrics-file", "export.prom", "README.md", "out.md")
	require.NoError(t, err)

	text := readFile(t, filepath.Join(dir, "export.prom"))
	require.Contains(t, text, `exportreadme_references_total{kind="html_attribute",result="rewritten"} 1`)
	require.Contains(t, text, `exportreadme_exports_total{outcome="success"} 1`)
}

func TestExport_WatchRejectsInPlace(t *testing.T) {
	setup(t)

	_, err := run(t, context.Background(), "export", "--watch", "README.md", "README.md")
	require.Error(t, err)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
}

func TestExport_WatchExportsUntilCanceled(t *testing.T) {
	dir := setup(t)
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	_, err := run(t, ctx, "export", "--watch", "README.md", "out.md")
	require.NoError(t, err)
	require.Contains(t, readFile(t, filepath.Join(dir, "out.md")), `[guide](docs/guide.md)`)
}

func TestInit_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	chdirTest(t, dir)

	out, err := run(t, context.Background(), "init")
	require.NoError(t, err)
	require.Contains(t, out, "initialized successfully")
	require.FileExists(t, filepath.Join(dir, "exportreadme.yaml"))

	_, err = run(t, context.Background(), "init")
	require.Error(t, err)

	_, err = run(t, context.Background(), "init", "--force")
	require.NoError(t, err)
}

func TestExport_DryRunRejectsMetricsFile(t *testing.T) {
	dir := setup(t)

	_, err := run(t, context.Background(), "export", "--dry-run", "--metrics-file", "export.prom", "README.md", "out.md")
	require.Error(t, err)
	classified, ok := foundationerrors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, foundationerrors.CategoryValidation, classified.Category())

	_, statErr := os.Stat(filepath.Join(dir, "export.prom"))
	require.True(t, os.IsNotExist(statErr))
}

// chdirTest changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdirTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Setenv("PWD", dir)
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
