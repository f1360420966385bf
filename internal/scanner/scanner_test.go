package scanner

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestIsValidImage(t *testing.T) {
	dir := t.TempDir()

	t.Run("real_png", func(t *testing.T) {
		p := filepath.Join(dir, "ok.png")
		writePNG(t, p)
		assert.True(t, IsValidImage(p))
	})

	t.Run("garbage_with_image_extension", func(t *testing.T) {
		p := filepath.Join(dir, "fake.jpg")
		require.NoError(t, os.WriteFile(p, []byte("not an image"), 0o644))
		assert.False(t, IsValidImage(p))
	})

	t.Run("unsupported_extension", func(t *testing.T) {
		p := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(p, []byte("text"), 0o644))
		assert.False(t, IsValidImage(p))
	})

	t.Run("missing_file", func(t *testing.T) {
		assert.False(t, IsValidImage(filepath.Join(dir, "nope.png")))
	})
}

func TestScan(t *testing.T) {
	t.Run("finds_valid_images_sorted", func(t *testing.T) {
		dir := t.TempDir()
		writePNG(t, filepath.Join(dir, "b.png"))
		writePNG(t, filepath.Join(dir, "a.png"))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.jpg"), []byte("junk"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.png"), []byte("x"), 0o644))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
		writePNG(t, filepath.Join(dir, "sub", "nested.png")) // not recursive

		got, err := Scan(dir)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, filepath.Join(dir, "a.png"), got[0])
		assert.Equal(t, filepath.Join(dir, "b.png"), got[1])
		assert.True(t, filepath.IsAbs(got[0]))
	})

	t.Run("empty_folder", func(t *testing.T) {
		dir := t.TempDir()
		_, err := Scan(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "folder is empty")
	})

	t.Run("no_valid_images", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644))

		_, err := Scan(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no valid images")
		assert.Contains(t, err.Error(), "JPEG")
	})

	t.Run("missing_folder", func(t *testing.T) {
		_, err := Scan(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}
