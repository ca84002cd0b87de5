package corpora

import (
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseMultipart decodes an encoded descriptor back into its parts.
func parseMultipart(t *testing.T, body io.Reader, contentType string) *multipart.Form {
	t.Helper()

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(1 << 20)
	require.NoError(t, err)
	return form
}

func TestMultipartEncode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("file on disk"), 0o644))

	m := NewMultipart()
	m.AddFilePath("file", path)
	m.AddFileBytes("attachment", "notes.md", []byte("in memory"))
	m.AddField("title", "Quarterly Report")
	m.AddField("metadata", map[string]any{"source": "wiki"})
	m.AddField("chunk_size", 512)

	body, contentType, err := m.encode()
	require.NoError(t, err)

	form := parseMultipart(t, body, contentType)
	defer form.RemoveAll()

	// Plain string fields pass through, everything else arrives in its
	// JSON string form.
	assert.Equal(t, []string{"Quarterly Report"}, form.Value["title"])
	assert.Equal(t, []string{`{"source":"wiki"}`}, form.Value["metadata"])
	assert.Equal(t, []string{"512"}, form.Value["chunk_size"])

	require.Len(t, form.File["file"], 1)
	assert.Equal(t, "report.txt", form.File["file"][0].Filename)
	f, err := form.File["file"][0].Open()
	require.NoError(t, err)
	defer f.Close()
	content, _ := io.ReadAll(f)
	assert.Equal(t, "file on disk", string(content))

	require.Len(t, form.File["attachment"], 1)
	assert.Equal(t, "notes.md", form.File["attachment"][0].Filename)
}

func TestMultipartReaderSource(t *testing.T) {
	m := NewMultipart()
	m.AddFileReader("file", "streamed.txt", strings.NewReader("from a reader"))

	body, contentType, err := m.encode()
	require.NoError(t, err)

	form := parseMultipart(t, body, contentType)
	defer form.RemoveAll()

	f, err := form.File["file"][0].Open()
	require.NoError(t, err)
	defer f.Close()
	content, _ := io.ReadAll(f)
	assert.Equal(t, "from a reader", string(content))
}

func TestMultipartRejectsDirectories(t *testing.T) {
	m := NewMultipart()
	m.AddFilePath("file", t.TempDir())

	_, _, err := m.encode()
	require.ErrorIs(t, err, ErrDirectoryPart)
}

func TestMultipartMissingFile(t *testing.T) {
	m := NewMultipart()
	m.AddFilePath("file", filepath.Join(t.TempDir(), "does-not-exist.txt"))

	_, _, err := m.encode()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat")
}
