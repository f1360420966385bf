// Package scanner finds the valid images directly inside one folder.
// Validation decodes image headers rather than trusting extensions, so a
// renamed text file is rejected while pixel data is never read.
package scanner

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SupportedFormats lists the accepted image formats, for error messages.
var SupportedFormats = []string{"BMP", "GIF", "JPEG", "PNG", "TIFF", "WEBP"}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
	".tiff": true, ".tif": true, ".bmp": true, ".gif": true,
}

// IsValidImage reports whether path is a readable image in a supported
// format. The extension check is a cheap pre-filter; the header decode is
// what decides.
func IsValidImage(path string) bool {
	if !imageExts[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	_, _, err = image.DecodeConfig(f)
	return err == nil
}

// Scan returns the absolute paths of valid images in folder, sorted by
// name. Non-recursive; hidden files and subdirectories are skipped. An
// empty folder and a folder with files but no valid images are distinct
// errors.
func Scan(folder string) ([]string, error) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}

	var files, valid []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		p := filepath.Join(abs, e.Name())
		files = append(files, p)
		if IsValidImage(p) {
			valid = append(valid, p)
		}
	}

	if len(valid) == 0 {
		if len(files) == 0 {
			return nil, fmt.Errorf("folder is empty: %s", folder)
		}
		return nil, fmt.Errorf("no valid images found in folder: %s (supported formats: %s)",
			folder, strings.Join(SupportedFormats, ", "))
	}

	sort.Strings(valid)
	return valid, nil
}
