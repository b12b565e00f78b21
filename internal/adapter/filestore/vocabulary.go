// Package filestore persists whole documents as YAML files on local disk.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

// VocabularyStore reads and writes the vocabulary document at path.
// Writes replace the file atomically via a sibling temp file and rename.
type VocabularyStore struct {
	path string
	log  *slog.Logger
}

// NewVocabularyStore creates a store for the document at path. The file
// need not exist yet.
func NewVocabularyStore(path string, logger *slog.Logger) *VocabularyStore {
	return &VocabularyStore{
		path: path,
		log:  logger.With("adapter", "filestore", "path", path),
	}
}

// Load reads the document. A missing or empty file yields an empty document.
func (s *VocabularyStore) Load(ctx context.Context) (domain.VocabularyDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.VocabularyDocument{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	doc := domain.VocabularyDocument{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if doc == nil {
		doc = domain.VocabularyDocument{}
	}
	return doc, nil
}

// Save writes doc, replacing the previous contents.
func (s *VocabularyStore) Save(ctx context.Context, doc domain.VocabularyDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// Removing after a successful rename fails harmlessly.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}

	s.log.DebugContext(ctx, "vocabulary document written", slog.Int("users", len(doc)))
	return nil
}
