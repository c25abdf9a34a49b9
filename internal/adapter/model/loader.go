package model

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/service"
)

// FileLoader loads a Naive Bayes artifact from disk. Paths ending in .gz are
// decompressed first.
type FileLoader struct {
	path string
}

// NewFileLoader creates a loader for the artifact at path
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Load reads, decodes and validates the artifact
func (l *FileLoader) Load(ctx context.Context) (service.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := l.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, service.NewLoadError(service.LoadErrorNotFound, l.path, err)
		}
		return nil, service.NewLoadError(service.LoadErrorDeserialize, l.path, err)
	}

	nb, err := Decode(data, l.path)
	if err != nil {
		return nil, err
	}
	return nb, nil
}

func (l *FileLoader) read() ([]byte, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(l.path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}

	return io.ReadAll(r)
}
