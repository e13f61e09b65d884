package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-composer/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewValidateRender(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.json")

	_, err := run(t, "new", "--out", doc)
	require.NoError(t, err)

	out, err := run(t, "validate", doc)
	require.NoError(t, err)
	assert.Equal(t, "ok: 3 sections, 3 visible\n", out)

	html := filepath.Join(dir, "preview.html")
	_, err = run(t, "render", doc, "--template", "tech-innovator", "--out", html)
	require.NoError(t, err)
	b, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.Contains(t, string(b), `data-template="tech-innovator"`)
}

func TestRender_SettingsFileThenFlags(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.json")
	_, err := run(t, "new", "--out", doc)
	require.NoError(t, err)

	settings := filepath.Join(dir, "settings.toml")
	require.NoError(t, config.Settings{Template: "academic-cv", PrimaryColor: "#10b981"}.Save(settings))

	out, err := run(t, "--settings", settings, "render", doc, "--primary", "#e11d48")
	require.NoError(t, err)
	assert.Contains(t, out, `data-template="academic-cv"`)
	assert.Contains(t, out, "--primary-color: #e11d48")
}

func TestValidate_RejectsBadDocument(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"sections":[{"id":"hobbies","title":"x","items":[]}]}`), 0o644))

	_, err := run(t, "validate", bad)
	assert.Error(t, err)
}

func TestExportDOCX(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.json")
	_, err := run(t, "new", "--out", doc)
	require.NoError(t, err)

	out, err := run(t, "export", "docx", doc, "--out-dir", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "Alex_Morgan.docx")
	assert.Equal(t, "wrote "+path+"\n", out)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("PK")))
}

func TestExport_UnknownKind(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.json")
	_, err := run(t, "new", "--out", doc)
	require.NoError(t, err)

	_, err = run(t, "export", "odt", doc)
	assert.Error(t, err)
}

func TestTemplatesCommand(t *testing.T) {
	out, err := run(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "corporate-header")
	assert.Contains(t, out, "EB Garamond")
}
