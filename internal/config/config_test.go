package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, float64(1), cfg.SubmitRatePerSec)
	assert.Equal(t, 5, cfg.SubmitBurst)

	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileSize)
	assert.Contains(t, cfg.Upload.AllowedExtensions, ".docx")
	assert.Contains(t, cfg.Upload.AllowedMimeTypes, "image/png")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("SUBMIT_RATE_PER_SEC", "2.5")
	t.Setenv("MAX_CV_FILE_SIZE", "1048576")
	t.Setenv("ALLOWED_CV_EXTENSIONS", "PDF, docx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 2.5, cfg.SubmitRatePerSec)
	assert.Equal(t, int64(1048576), cfg.Upload.MaxFileSize)
	assert.Equal(t, []string{".pdf", ".docx"}, cfg.Upload.AllowedExtensions)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.HTTPPort)
}

func TestLoad_UploadPolicyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "upload.yaml")
	policy := `
max_file_size: 5242880
allowed_extensions:
  - docx
  - PNG
`
	require.NoError(t, os.WriteFile(path, []byte(policy), 0644))
	t.Setenv("UPLOAD_POLICY_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(5242880), cfg.Upload.MaxFileSize)
	assert.Equal(t, []string{".docx", ".png"}, cfg.Upload.AllowedExtensions)
	// mime types absent from the file keep their defaults
	assert.Contains(t, cfg.Upload.AllowedMimeTypes, "application/msword")
}

func TestLoad_UploadPolicyFileMissing(t *testing.T) {
	t.Setenv("UPLOAD_POLICY_FILE", "/nonexistent/upload.yaml")

	_, err := Load()
	assert.Error(t, err)
}

// explicit env wins over the file
func TestLoad_EnvBeatsPolicyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "upload.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_file_size: 5242880\n"), 0644))
	t.Setenv("UPLOAD_POLICY_FILE", path)
	t.Setenv("MAX_CV_FILE_SIZE", "2097152")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(2097152), cfg.Upload.MaxFileSize)
}

func TestNormalizeExtensions(t *testing.T) {
	got := normalizeExtensions([]string{"PDF", " .Docx ", "", "png"})
	assert.Equal(t, []string{".pdf", ".docx", ".png"}, got)
}
