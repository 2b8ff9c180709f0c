package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// SaveImage stores an uploaded image under dir with a generated name and
// writes a 256px thumbnail alongside it ("thumb_" prefix). Returns the
// stored filename.
func SaveImage(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	img, err := imaging.Open(path)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("invalid image: %w", err)
	}
	thumb := imaging.Thumbnail(img, 256, 256, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(dir, "thumb_"+name)); err != nil {
		return "", err
	}

	return name, nil
}
