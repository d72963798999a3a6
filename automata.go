package automata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/editor"
	"github.com/aretw0/automata/pkg/nfa"
	"github.com/aretw0/automata/pkg/ports"
)

var (
	// ErrSymbolNotInAlphabet is returned by Run under WithStrictAlphabet when
	// the input holds a symbol that labels no transition.
	ErrSymbolNotInAlphabet = errors.New("symbol not in alphabet")

	// ErrReadOnlyStore is returned when writing through a loader that cannot save.
	ErrReadOnlyStore = errors.New("document store is read-only")
)

// Engine is the high-level entry point for the library.
// It compiles editor documents into automata and runs input through them.
// An Engine is safe for concurrent use.
type Engine struct {
	loader ports.DocumentLoader
	store  ports.DocumentStore
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	strict bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore sets the document store used by RunStored and the document operations.
func WithStore(s ports.DocumentStore) Option {
	return func(e *Engine) {
		e.store = s
		e.loader = s
	}
}

// WithLoader sets a read-only document source. Save and Delete fail with ErrReadOnlyStore.
func WithLoader(l ports.DocumentLoader) Option {
	return func(e *Engine) {
		e.store = nil
		e.loader = l
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStrictAlphabet makes Run fail with ErrSymbolNotInAlphabet instead of
// rejecting input that contains unknown symbols.
func WithStrictAlphabet(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// New initializes an Engine. Without WithStore or WithLoader it keeps
// documents in memory.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		s := memory.NewStore()
		eng.store = s
		eng.loader = s
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return eng
}

// Report is the outcome of one run.
type Report struct {
	DocumentID string      `json:"document_id,omitempty"`
	Input      string      `json:"input"`
	Symbols    []string    `json:"symbols"`
	Unknown    []string    `json:"unknown,omitempty"`
	Verdict    nfa.Verdict `json:"verdict"`

	// Configuration is the sorted set of live states when the run stopped.
	Configuration []string `json:"configuration"`

	// Trace holds the configuration before the first symbol and after each
	// consumed one. It ends early when the configuration empties.
	Trace [][]string `json:"trace"`

	// Dropped lists transitions that were ignored for missing an endpoint.
	Dropped []string `json:"dropped,omitempty"`

	Duration time.Duration `json:"duration"`
}

// Accepted reports whether the run ended in a final state.
func (r *Report) Accepted() bool { return r.Verdict == nfa.Accepted }

// Compile validates doc and builds its automaton. The editor report is
// returned even when validation fails.
func (e *Engine) Compile(ctx context.Context, doc domain.Document) (*nfa.Automaton, *editor.Report, error) {
	a, rep, err := editor.Build(doc)
	if err != nil {
		e.buildFailed(ctx, doc.ID, err)
		return nil, &rep, err
	}
	if len(rep.Dropped) > 0 {
		e.logger.Debug("dropped dangling transitions", "document", doc.ID, "transitions", rep.Dropped)
	}
	return a, &rep, nil
}

// Validate reports whether doc builds into an automaton.
func (e *Engine) Validate(ctx context.Context, doc domain.Document) error {
	_, _, err := e.Compile(ctx, doc)
	return err
}

// Run compiles doc and simulates input through it.
//
// Input is split on commas when it contains any. Otherwise it is segmented
// into alphabet symbols, preferring a segmentation the automaton accepts.
// Unknown symbols reject the run unless the engine is strict, in which case
// Run fails before simulating.
func (e *Engine) Run(ctx context.Context, doc domain.Document, input string) (*Report, error) {
	start := time.Now()

	clean, err := editor.SanitizeInput(input)
	if err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	a, rep, err := e.Compile(ctx, doc)
	if err != nil {
		return nil, err
	}

	toks := editor.TokenizeFor(a, clean)
	if e.strict && len(toks.Unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotInAlphabet, strings.Join(toks.Unknown, ", "))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if e.hooks.OnRunStart != nil {
		e.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventRunStart, DocumentID: doc.ID},
			Input:     clean,
			Symbols:   len(toks.Symbols),
		})
	}

	result := nfa.Simulate(a, toks.Symbols)
	trace := nfa.Trace(a, toks.Symbols)

	report := &Report{
		DocumentID:    doc.ID,
		Input:         clean,
		Symbols:       toks.Symbols,
		Unknown:       toks.Unknown,
		Verdict:       result.Verdict,
		Configuration: result.Configuration.Sorted(),
		Trace:         make([][]string, len(trace)),
		Dropped:       rep.Dropped,
	}
	for i, cfg := range trace {
		report.Trace[i] = cfg.Sorted()
	}
	report.Duration = time.Since(start)

	e.logger.Info("run complete",
		"document", doc.ID,
		"symbols", len(toks.Symbols),
		"verdict", report.Verdict.String(),
		"configuration", result.Configuration.String(),
		"duration", report.Duration,
	)

	if e.hooks.OnRunComplete != nil {
		e.hooks.OnRunComplete(ctx, &domain.RunEvent{
			EventBase:     domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunComplete, DocumentID: doc.ID},
			Input:         clean,
			Symbols:       len(toks.Symbols),
			Accepted:      report.Accepted(),
			Configuration: report.Configuration,
			Duration:      report.Duration,
		})
	}

	return report, nil
}

// RunStored loads a document from the engine's store and runs input through it.
func (e *Engine) RunStored(ctx context.Context, documentID, input string) (*Report, error) {
	doc, err := e.loader.Load(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, *doc, input)
}

// Load returns a stored document.
func (e *Engine) Load(ctx context.Context, documentID string) (*domain.Document, error) {
	return e.loader.Load(ctx, documentID)
}

// List returns the IDs of the stored documents.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	return e.loader.List(ctx)
}

// Save stores doc. The document is saved even if it does not validate yet,
// since drawings are usually incomplete while being edited.
func (e *Engine) Save(ctx context.Context, doc *domain.Document) error {
	if e.store == nil {
		return ErrReadOnlyStore
	}
	return e.store.Save(ctx, doc)
}

// Delete removes a stored document.
func (e *Engine) Delete(ctx context.Context, documentID string) error {
	if e.store == nil {
		return ErrReadOnlyStore
	}
	return e.store.Delete(ctx, documentID)
}

func (e *Engine) buildFailed(ctx context.Context, documentID string, err error) {
	kind := "unknown"
	var verr *nfa.ValidationError
	if errors.As(err, &verr) {
		kind = string(verr.Kind)
	}

	e.logger.Warn("automaton failed validation", "document", documentID, "kind", kind, "error", err)

	if e.hooks.OnBuildFailed != nil {
		e.hooks.OnBuildFailed(ctx, &domain.BuildEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventBuildFailed, DocumentID: documentID},
			Kind:      kind,
			Err:       err,
		})
	}
}
