package media

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Settings is the explicit configuration for the ingestion pipeline. It is
// injected at construction; the pipeline reads no ambient state.
type Settings struct {
	Dir               string
	MaxBytes          int64
	AllowedExtensions []string
	MaxDimension      int
	JPEGQuality       int
}

// Upload is the caller-facing view of a submitted file.
type Upload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// Pipeline runs validate -> name -> store -> optimize for untrusted uploads.
// It never returns an error: every failure path degrades to an empty filename
// plus a logged reason, so report creation proceeds without an image.
type Pipeline struct {
	validator *Validator
	optimizer *Optimizer
	dir       string
}

func NewPipeline(s Settings) *Pipeline {
	return &Pipeline{
		validator: NewValidator(s.AllowedExtensions, s.MaxBytes),
		optimizer: NewOptimizer(s.MaxDimension, s.JPEGQuality),
		dir:       s.Dir,
	}
}

// Ingest stores an accepted upload under a generated name and returns that
// name, or "" when there was nothing to store.
func (p *Pipeline) Ingest(up Upload) string {
	verdict, reason := p.validator.Check(up.Filename, up.Size)
	switch verdict {
	case NoUpload:
		return ""
	case Rejected:
		slog.Warn("upload rejected", "filename", up.Filename, "reason", reason)
		return ""
	}

	filename := StorageName(up.Filename)

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		slog.Error("failed to create upload directory", "dir", p.dir, "error", err)
		return ""
	}

	path := filepath.Join(p.dir, filename)
	if err := writeFile(path, up.Reader); err != nil {
		slog.Error("failed to store upload", "filename", filename, "error", err)
		return ""
	}

	// Best-effort: the original bytes stay servable when optimization fails.
	if err := p.optimizer.Optimize(path); err != nil {
		slog.Warn("image optimization failed", "filename", filename, "error", err)
	}

	slog.Info("file uploaded", "filename", filename)
	return filename
}

func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
