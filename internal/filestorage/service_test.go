package filestorage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupFileStorageService(t *testing.T) (*FileStorageService, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")

	fsService, err := NewFileStorageService(dir, "/uploads", zap.NewNop())
	require.NoError(t, err, "Failed to create FileStorageService")
	return fsService, dir
}

// newTestFileHeader builds a multipart.FileHeader the same way gin would
// see it on an incoming request.
func newTestFileHeader(t *testing.T, fieldname, filename, content, contentType string) *multipart.FileHeader {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldname, filename))
	if contentType != "" {
		partHeader.Set("Content-Type", contentType)
	}

	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)

	files := form.File[fieldname]
	require.NotEmpty(t, files, "No files found for fieldname %s", fieldname)
	return files[0]
}

var storedNamePattern = regexp.MustCompile(`^/uploads/[0-9a-f-]{36}-my-photo\.jpg$`)

func TestSaveUploadedFile_Success(t *testing.T) {
	fsService, dir := setupFileStorageService(t)

	fh := newTestFileHeader(t, "image", "My Photo.JPG", "jpeg bytes", "image/jpeg")
	publicPath, err := fsService.SaveUploadedFile(fh)

	require.NoError(t, err)
	assert.Regexp(t, storedNamePattern, publicPath)

	content, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(publicPath, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(content))
}

func TestSaveUploadedFile_UniqueNames(t *testing.T) {
	fsService, _ := setupFileStorageService(t)

	a, err := fsService.SaveUploadedFile(newTestFileHeader(t, "image", "a.png", "1", "image/png"))
	require.NoError(t, err)
	b, err := fsService.SaveUploadedFile(newTestFileHeader(t, "image", "a.png", "2", "image/png"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSaveUploadedFile_RecreatesMissingDirectory(t *testing.T) {
	fsService, dir := setupFileStorageService(t)
	require.NoError(t, os.RemoveAll(dir))

	_, err := fsService.SaveUploadedFile(newTestFileHeader(t, "image", "a.png", "1", "image/png"))
	require.NoError(t, err)
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestSaveUploadedFile_NoExtensionFallback(t *testing.T) {
	fsService, _ := setupFileStorageService(t)

	pngPath, err := fsService.SaveUploadedFile(newTestFileHeader(t, "image", "imagepng", "png content", "image/png"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(pngPath, "-imagepng.png"))

	rawPath, err := fsService.SaveUploadedFile(newTestFileHeader(t, "image", "notes", "text", "text/plain"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(rawPath, "-notes"))
}

func TestSaveUploadedFile_OnlyImageExtensionsKept(t *testing.T) {
	fsService, _ := setupFileStorageService(t)

	tests := []struct {
		filename    string
		contentType string
		wantSuffix  string
	}{
		{"evil.html", "text/html", "-evil"},
		{"drawing.svg", "image/svg+xml", "-drawing"},
		{"script.js", "application/javascript", "-script"},
		{"page.HTM", "image/png", "-page.png"},
		{"photo.jpeg", "image/jpeg", "-photo.jpeg"},
		{"anim.GIF", "image/gif", "-anim.gif"},
		{"pic.webp", "image/webp", "-pic.webp"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			publicPath, err := fsService.SaveUploadedFile(newTestFileHeader(t, "image", tt.filename, "x", tt.contentType))
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(publicPath, tt.wantSuffix), publicPath)
		})
	}
}

func TestSaveUploadedFile_StripsDirectories(t *testing.T) {
	fsService, dir := setupFileStorageService(t)

	publicPath, err := fsService.SaveUploadedFile(newTestFileHeader(t, "image", "../../etc/passwd", "x", "text/plain"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(publicPath, "/uploads/"))
	assert.NotContains(t, strings.TrimPrefix(publicPath, "/uploads/"), "/")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveUploadedFile_NilHeader(t *testing.T) {
	fsService, _ := setupFileStorageService(t)

	_, err := fsService.SaveUploadedFile(nil)
	assert.EqualError(t, err, "fileHeader cannot be nil")
}

func TestDeleteFile(t *testing.T) {
	fsService, dir := setupFileStorageService(t)

	publicPath, err := fsService.SaveUploadedFile(newTestFileHeader(t, "image", "a.png", "1", "image/png"))
	require.NoError(t, err)

	require.NoError(t, fsService.DeleteFile(publicPath))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.NoError(t, fsService.DeleteFile(publicPath), "deleting twice is not an error")
}

func TestDeleteFile_PathTraversal(t *testing.T) {
	fsService, dir := setupFileStorageService(t)

	outside := filepath.Join(filepath.Dir(dir), "dummy_outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("dummy"), 0o644))

	err := fsService.DeleteFile("/uploads/../dummy_outside.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file path for deletion")

	_, statErr := os.Stat(outside)
	assert.NoError(t, statErr, "External dummy file should still exist.")
}

func TestListFiles(t *testing.T) {
	fsService, dir := setupFileStorageService(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("a"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	files, err := fsService.ListFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/a.png", "/uploads/b.png"}, files)
}
