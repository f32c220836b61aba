// Package upload stores multipart image files under the local uploads
// directory served as static files.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"autoparts-service/prometheus"
)

// Saver writes uploaded files into Dir and returns their public paths under
// PublicPath.
type Saver struct {
	Dir        string
	PublicPath string
}

// NewSaver returns a saver bound to an upload directory and its public path
// prefix.
func NewSaver(dir, publicPath string) *Saver {
	return &Saver{Dir: dir, PublicPath: publicPath}
}

// SaveFile stores one uploaded file, renamed with a timestamp prefix, and
// returns its public path.
func (s *Saver) SaveFile(fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitize(fh.Filename))

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	prometheus.UploadedFilesCounter.Inc()
	return strings.TrimRight(s.PublicPath, "/") + "/" + name, nil
}

// SaveAll stores up to max files and returns their public paths in upload
// order. Files beyond the limit are ignored.
func (s *Saver) SaveAll(files []*multipart.FileHeader, max int) ([]string, error) {
	if len(files) > max {
		files = files[:max]
	}
	paths := make([]string, 0, len(files))
	for _, fh := range files {
		p, err := s.SaveFile(fh)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// sanitize strips any path components and whitespace from an uploaded
// filename.
func sanitize(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "-")
	return name
}
