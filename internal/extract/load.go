package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadImage reads an image file from disk and infers its media type from
// the extension.
func LoadImage(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	mime, err := mimeForExt(filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return &Image{Path: path, Data: data, MIME: mime}, nil
}

// IsImagePath reports whether s looks like a path to a supported image
// file. Used to tell photo submissions apart from typed math.
func IsImagePath(s string) bool {
	_, err := mimeForExt(filepath.Ext(s))
	return err == nil
}

func mimeForExt(ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	case ".png":
		return "image/png", nil
	case ".gif":
		return "image/gif", nil
	case ".webp":
		return "image/webp", nil
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}
}
