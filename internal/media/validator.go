package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Verdict classifies an upload before anything touches disk.
type Verdict int

const (
	// Accepted uploads proceed to naming and storage.
	Accepted Verdict = iota
	// NoUpload means the caller submitted no file at all. It is not a
	// rejection; report creation proceeds without an image.
	NoUpload
	// Rejected uploads are dropped with a human-readable reason.
	Rejected
)

// Validator classifies uploads by filename extension and byte length only;
// it never reads image content.
type Validator struct {
	allowed  map[string]bool
	maxBytes int64
}

func NewValidator(extensions []string, maxBytes int64) *Validator {
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	return &Validator{allowed: allowed, maxBytes: maxBytes}
}

// Check returns the verdict for the given file metadata and, for rejections,
// the reason. The size limit is inclusive: a file of exactly maxBytes passes.
func (v *Validator) Check(filename string, size int64) (Verdict, string) {
	if filename == "" {
		return NoUpload, "no file selected"
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" || !v.allowed[ext] {
		return Rejected, "Invalid file type. Only JPG, PNG, and WEBP files are allowed."
	}

	if size > v.maxBytes {
		return Rejected, fmt.Sprintf("File size too large. Maximum size is %dMB.", v.maxBytes/(1024*1024))
	}

	return Accepted, ""
}
