package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// EnsureUploadDir creates the local uploads directory. Used as the artwork
// destination when R2 is not configured (local development).
func EnsureUploadDir() error {
	return os.MkdirAll("uploads", os.ModePerm)
}

// R2Configured reports whether artwork should go to R2 instead of local disk.
func R2Configured() bool {
	return os.Getenv("R2_BUCKET_NAME") != ""
}

// SaveUploadLocally writes a multipart file under uploads/ and returns the
// URL path it will be served from.
func SaveUploadLocally(fileHeader *multipart.FileHeader, filename string) (string, error) {
	destPath := filepath.Join("uploads", filepath.Base(filename))
	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(destPath), nil
}
