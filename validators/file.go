package validators

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"
)

var (
	ErrFileTooLarge   = errors.New("file is too large")
	ErrFileBadFormat  = errors.New("file format not allowed")
	ErrFileUnreadable = errors.New("file can't be read")

	imageTypes = []string{"image/jpeg", "image/png"}
	cvTypes    = []string{"application/pdf"}
)

// ImageValidator checks an uploaded profile image: jpeg/png only,
// size capped by the caller's limit. Returns the detected content
// type on success
func ImageValidator(fh *multipart.FileHeader, maxSize int64) (string, error) {
	return checkFile(fh, maxSize, imageTypes)
}

// CVValidator checks an uploaded CV: pdf only
func CVValidator(fh *multipart.FileHeader, maxSize int64) (string, error) {
	return checkFile(fh, maxSize, cvTypes)
}

// The declared Content-Type header is attacker-controlled, so the
// format check sniffs the first bytes of the actual payload
func checkFile(fh *multipart.FileHeader, maxSize int64, allowed []string) (string, error) {
	if fh.Size > maxSize {
		return "", fmt.Errorf("%w, max %d bytes", ErrFileTooLarge, maxSize)
	}

	f, err := fh.Open()
	if err != nil {
		return "", ErrFileUnreadable
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return "", ErrFileUnreadable
	}

	contentType := http.DetectContentType(head[:n])
	if !slices.Contains(allowed, contentType) {
		return "", fmt.Errorf("%w, got %s", ErrFileBadFormat, contentType)
	}

	return contentType, nil
}
