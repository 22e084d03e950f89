package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/config"
)

// setupWorkdir prepares a working directory with the default asset layout.
func setupWorkdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.MkdirAll("static", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("static", "Amiri-Regular.ttf"), goregular.TTF, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join("static", "Amiri-Bold.ttf"), gobold.TTF, 0o644))

	t.Setenv("CLINIC_BOOTSTRAP_PASSWORD", "first-run")
	t.Setenv("CLINIC_USERNAME", "admin")
	t.Setenv("CLINIC_PASSWORD", "first-run")
	t.Setenv("CLINIC_LOG_LEVEL", "warn")
	return dir
}

func runCLI(args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(""), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestEndToEnd(t *testing.T) {
	dir := setupWorkdir(t)

	code, out, errOut := runCLI("patient", "add", "--full-name", "سليم العربي", "--age", "45", "--diagnosis", "قلق")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "Created patient 1\n", out)
	assert.FileExists(t, filepath.Join(dir, "patients.db"))

	// The bootstrap password is only used while the store is empty.
	t.Setenv("CLINIC_BOOTSTRAP_PASSWORD", "")

	code, out, errOut = runCLI("patient", "list")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "سليم العربي")

	code, out, errOut = runCLI("report", "1")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "سليم العربي_report.pdf", strings.TrimSpace(out))
	assert.FileExists(t, filepath.Join(dir, "سليم العربي_report.pdf"))
	// The default signature is absent, which is only a warning.
	assert.Contains(t, errOut, "image skipped")

	code, _, errOut = runCLI("patient", "show", "2")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "patient 2 not found")

	t.Setenv("CLINIC_PASSWORD", "wrong")
	code, _, errOut = runCLI("patient", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "authentication failed")
}

func TestFirstRunNeedsBootstrapPassword(t *testing.T) {
	setupWorkdir(t)
	t.Setenv("CLINIC_BOOTSTRAP_PASSWORD", "")

	code, _, errOut := runCLI("patient", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "CLINIC_BOOTSTRAP_PASSWORD")
}

func TestReportWithoutFonts(t *testing.T) {
	dir := setupWorkdir(t)
	require.NoError(t, os.Remove(filepath.Join("static", "Amiri-Bold.ttf")))

	code, _, errOut := runCLI("patient", "add", "--full-name", "Nadia")
	require.Equal(t, 0, code, errOut)

	code, _, errOut = runCLI("report", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "report font missing")
	assert.NoFileExists(t, filepath.Join(dir, "Nadia_report.pdf"))
}

func TestConfigShow(t *testing.T) {
	setupWorkdir(t)
	t.Setenv("CLINIC_CLINIC_NAME", "Clinique Baroud")

	code, out, errOut := runCLI("config", "show")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "clinic_name: Clinique Baroud")
	assert.NotContains(t, out, "first-run")
}

func TestInvalidConfiguration(t *testing.T) {
	setupWorkdir(t)
	t.Setenv("CLINIC_LOG_FORMAT", "xml")

	code, _, errOut := runCLI("config", "show")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid configuration")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&config.Config{LogLevel: "warn", LogFormat: "json"}, &buf)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

// chdir changes the working directory for the duration of the test, like
// testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
