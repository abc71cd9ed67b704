package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/tailor4job/internal/docx"
)

func createDocx(t *testing.T, dir, name string, paragraphs ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, docx.Save(path, paragraphs...))
	return path
}

func createText(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadAllPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	resume := createDocx(t, dir, "resume.docx", "Sample resume content.", "Second paragraph.")
	cover := createDocx(t, dir, "cover_letter.docx", "Sample cover letter content.")
	job := createText(t, dir, "job_description.txt", "Sample job description content.")

	got, err := ReadAll([]string{resume, cover, job})
	require.NoError(t, err)

	want := "Sample resume content.\nSecond paragraph.\n" +
		"Sample cover letter content.\n" +
		"Sample job description content.\n"
	assert.Equal(t, want, got)
}

func TestReadAllSeparatesPlainFiles(t *testing.T) {
	dir := t.TempDir()
	first := createText(t, dir, "first.txt", "no trailing newline")
	second := createDocx(t, dir, "second.docx", "closing paragraph")

	got, err := ReadAll([]string{first, second})
	require.NoError(t, err)
	assert.Equal(t, "no trailing newline\nclosing paragraph\n", got)
}

func TestReadTextDropsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := createText(t, dir, "job.txt", "caf\xffe\xc3\xa9")

	got, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "cafeé", got)
}

func TestReadTextExtensionIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	path := createDocx(t, dir, "RESUME.DOCX", "Upper case extension")

	got, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "Upper case extension\n", got)
}

func TestReadTextMissingFile(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, ErrFileRead)

	_, err = ReadText(filepath.Join(t.TempDir(), "nope.docx"))
	assert.ErrorIs(t, err, ErrFileRead)
}

func TestExpandPathsLiteral(t *testing.T) {
	dir := t.TempDir()
	a := createText(t, dir, "a.txt", "a")
	b := createText(t, dir, "b.txt", "b")

	got, err := ExpandPaths([]string{b, a})
	require.NoError(t, err)
	assert.Equal(t, []string{b, a}, got)
}

func TestExpandPathsMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nonexistent_resume.docx")

	_, err := ExpandPaths([]string{missing})
	require.ErrorIs(t, err, ErrFileRead)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestExpandPathsDirectory(t *testing.T) {
	_, err := ExpandPaths([]string{t.TempDir()})
	assert.ErrorIs(t, err, ErrFileRead)
}

func TestExpandPathsGlob(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "applications", "acme"), 0o755))
	b := createText(t, filepath.Join(dir, "applications", "acme"), "b.txt", "b")
	a := createText(t, filepath.Join(dir, "applications"), "a.txt", "a")
	createText(t, dir, "ignored.md", "x")

	got, err := ExpandPaths([]string{filepath.Join(dir, "applications", "**", "*.txt")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, got)
}

func TestExpandPathsExistingFileWithGlobCharacters(t *testing.T) {
	dir := t.TempDir()
	bracketed := createText(t, dir, "resume[1].txt", "bracketed")
	createText(t, dir, "resume1.txt", "decoy")

	got, err := ExpandPaths([]string{bracketed})
	require.NoError(t, err)
	assert.Equal(t, []string{bracketed}, got)
}

func TestExpandPathsGlobWithoutMatches(t *testing.T) {
	_, err := ExpandPaths([]string{filepath.Join(t.TempDir(), "*.docx")})
	assert.ErrorIs(t, err, ErrFileRead)
}
