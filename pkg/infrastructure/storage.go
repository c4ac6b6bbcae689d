package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore persists uploaded documents and generated exports under a local
// data directory. Stored files are addressed by a /files/... URL path that
// the HTTP layer serves statically.
type FileStore struct {
	root string
}

func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) Root() string { return s.root }

// SaveDocument stores an uploaded file under documents/<projectID>/ with a
// timestamped name and returns its serving URL path.
func (s *FileStore) SaveDocument(projectID, docType, fileName string, data []byte) (string, error) {
	safe := sanitizeName(fileName)
	rel := filepath.Join("documents", projectID,
		fmt.Sprintf("%s_%d_%s", docType, time.Now().UnixMilli(), safe))
	if err := s.write(rel, data); err != nil {
		return "", err
	}
	return "/files/" + filepath.ToSlash(rel), nil
}

// SaveExport stores a generated PDF/DOCX under exports/ and returns its
// serving URL path.
func (s *FileStore) SaveExport(fileName string, data []byte) (string, error) {
	rel := filepath.Join("exports", sanitizeName(fileName))
	if err := s.write(rel, data); err != nil {
		return "", err
	}
	return "/files/" + filepath.ToSlash(rel), nil
}

func (s *FileStore) write(rel string, data []byte) error {
	path := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
