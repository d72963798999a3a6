package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding used when writing documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	// ErrEmptyID is returned when a document has no ID to derive a file name from.
	ErrEmptyID = errors.New("document id cannot be empty")

	// ErrInvalidID is returned for IDs that would resolve outside the base
	// directory. It matches domain.ErrInvalidDocument.
	ErrInvalidID = fmt.Errorf("%w: id must be a plain file name", domain.ErrInvalidDocument)

	// ErrUnsupportedFormat is returned by ReadFile for extensions other than
	// .json, .yaml and .yml.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// checkID rejects IDs that are empty or that contain a path.
func checkID(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if strings.ContainsAny(id, `/\`) || !filepath.IsLocal(id) || id == "." || id == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// Store implements ports.DocumentStore using the local filesystem.
// Documents are written as one file per ID. Loading accepts .json, .yaml
// and .yml regardless of the configured write format.
type Store struct {
	BasePath string
	format   Format
}

type Option func(*Store)

// WithFormat sets the encoding for new documents.
func WithFormat(f Format) Option {
	return func(s *Store) {
		s.format = f
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".automata/documents".
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = filepath.Join(".automata", "documents")
	}
	s := &Store{BasePath: basePath, format: FormatJSON}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) ext() string {
	if s.format == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

func (s *Store) encode(doc *domain.Document) ([]byte, error) {
	if s.format == FormatYAML {
		return yaml.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Save persists the document atomically: temp file, fsync, rename.
// Copies of the document in other formats are removed so Load stays unambiguous.
func (s *Store) Save(ctx context.Context, doc *domain.Document) error {
	if err := checkID(doc.ID); err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure document directory: %w", err)
	}

	destPath := filepath.Join(s.BasePath, doc.ID+s.ext())

	data, err := s.encode(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+doc.ID+"-*"+s.ext())
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename does not replace an existing destination on Windows.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing document for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	for _, ext := range []string{".json", ".yaml", ".yml"} {
		if ext != s.ext() {
			_ = os.Remove(filepath.Join(s.BasePath, doc.ID+ext))
		}
	}

	return nil
}

// Load retrieves the document, trying each supported extension in turn.
func (s *Store) Load(ctx context.Context, id string) (*domain.Document, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	for _, ext := range []string{".json", ".yaml", ".yml"} {
		data, err := os.ReadFile(filepath.Join(s.BasePath, id+ext))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read document file: %w", err)
		}
		return decode(id, ext, data)
	}

	return nil, domain.ErrDocumentNotFound
}

// ReadFile decodes the document at path using its extension. The ID defaults
// to the file name without extension.
func ReadFile(path string) (*domain.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}
	name := filepath.Base(path)
	return decode(strings.TrimSuffix(name, filepath.Ext(name)), ext, data)
}

// decode parses data by extension. A document without an ID takes id.
func decode(id, ext string, data []byte) (*domain.Document, error) {
	if ext != ".json" {
		return decodeYAML(id, data)
	}
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	if doc.ID == "" {
		doc.ID = id
	}
	return &doc, nil
}

// decodeYAML goes through a generic map so hand-written files may omit
// fields or spell scalars loosely (a bare symbol instead of a list).
func decodeYAML(id string, data []byte) (*domain.Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yaml document: %w", err)
	}

	var doc domain.Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode yaml document: %w", err)
	}
	if doc.ID == "" {
		doc.ID = id
	}
	return &doc, nil
}

// Delete removes the document in every format.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	for _, ext := range []string{".json", ".yaml", ".yml"} {
		err := os.Remove(filepath.Join(s.BasePath, id+ext))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete document file: %w", err)
		}
	}

	return nil
}

// List returns the IDs of all stored documents, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ext := filepath.Ext(name)
		switch ext {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		id := strings.TrimSuffix(name, ext)
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	return ids, nil
}
