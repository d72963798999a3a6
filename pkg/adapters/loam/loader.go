package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository of Markdown automata to ports.DocumentLoader.
type Loader struct {
	Repo *loam.TypedRepository[DocumentMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[DocumentMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Load retrieves a document by its normalized ID ("ends-with-a" for ends-with-a.md).
func (l *Loader) Load(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		// Loam reports a missing file through its own error types; confirm
		// against the listing before mapping to the domain sentinel.
		ids, listErr := l.List(ctx)
		if listErr == nil && !slices.Contains(ids, id) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	rawID := doc.Data.ID
	if rawID == "" {
		rawID = doc.ID
	}

	return toDocument(trimExtension(rawID), doc.Data, doc.Content), nil
}

// toDocument converts name-based frontmatter into the editor's ID-based form.
// State IDs are the state names, so references to undeclared names stay
// dangling and are dropped at build time like any detached arrow.
func toDocument(id string, meta DocumentMetadata, content string) *domain.Document {
	out := &domain.Document{
		ID:             id,
		Name:           meta.Name,
		Description:    strings.TrimSpace(content),
		States:         make([]domain.StateRecord, 0, len(meta.States)),
		Transitions:    make([]domain.TransitionRecord, 0, len(meta.Transitions)),
		InitialStateID: meta.Initial,
		FinalStateIDs:  meta.Finals,
	}

	for _, name := range meta.States {
		out.States = append(out.States, domain.StateRecord{ID: name, Name: name})
	}

	for i, lt := range meta.Transitions {
		tr := domain.TransitionRecord{
			ID:              "t" + strconv.Itoa(i),
			Symbols:         lt.Symbols,
			IncludesEpsilon: lt.Epsilon,
		}
		if lt.From != "" {
			tr.FromStateID = domain.Ref(lt.From)
		}
		if lt.To != "" {
			tr.ToStateID = domain.Ref(lt.To)
		}
		out.Transitions = append(out.Transitions, tr)
	}

	return out
}

// List lists all documents in the repository.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	return ids, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
