package automata_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/nfa"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// endsWithA accepts words over {A, B} whose last symbol is A.
func endsWithA() domain.Document {
	return domain.Document{
		ID: "ends-with-a",
		States: []domain.StateRecord{
			{ID: "s", Name: "S"},
			{ID: "f", Name: "F", Final: true},
		},
		Transitions: []domain.TransitionRecord{
			{ID: "entry", ToStateID: domain.Ref("s")},
			{ID: "loop", FromStateID: domain.Ref("s"), ToStateID: domain.Ref("s"), Symbols: []string{"A", "B"}},
			{ID: "last", FromStateID: domain.Ref("s"), ToStateID: domain.Ref("f"), Symbols: []string{"A"}},
		},
	}
}

func TestEngine_Run(t *testing.T) {
	eng := automata.New(automata.WithLogger(logging.NewNop()))
	ctx := context.Background()

	tests := []struct {
		name    string
		input   string
		verdict nfa.Verdict
		config  []string
	}{
		{"ends in A", "ABA", nfa.Accepted, []string{"F", "S"}},
		{"ends in B", "AB", nfa.Rejected, []string{"S"}},
		{"lowercase is normalized", "ba", nfa.Accepted, []string{"F", "S"}},
		{"comma separated", "b, a", nfa.Accepted, []string{"F", "S"}},
		{"empty input", "", nfa.Rejected, []string{"S"}},
		{"unknown symbol", "AC", nfa.Rejected, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := eng.Run(ctx, endsWithA(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.verdict, report.Verdict)
			assert.Equal(t, tt.config, report.Configuration)
			assert.Equal(t, "ends-with-a", report.DocumentID)
		})
	}
}

func TestEngine_Run_Trace(t *testing.T) {
	report, err := automata.New().Run(context.Background(), endsWithA(), "AB")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, report.Symbols)
	assert.Equal(t, [][]string{{"S"}, {"F", "S"}, {"S"}}, report.Trace)
	assert.False(t, report.Accepted())
}

func TestEngine_Run_UnknownSymbolStopsTrace(t *testing.T) {
	report, err := automata.New().Run(context.Background(), endsWithA(), "ACA")
	require.NoError(t, err)

	assert.Equal(t, []string{"C"}, report.Unknown)
	assert.Equal(t, nfa.Rejected, report.Verdict)
	assert.Len(t, report.Trace, 3, "the trace stops at the first empty configuration")
	assert.Empty(t, report.Configuration)
}

func TestEngine_Run_StrictAlphabet(t *testing.T) {
	eng := automata.New(automata.WithStrictAlphabet(true))

	_, err := eng.Run(context.Background(), endsWithA(), "AC")
	assert.ErrorIs(t, err, automata.ErrSymbolNotInAlphabet)
	assert.Contains(t, err.Error(), "C")

	report, err := eng.Run(context.Background(), endsWithA(), "BA")
	require.NoError(t, err)
	assert.True(t, report.Accepted())
}

// overlappingSymbols reads A then BC into F; an unrelated AB arrow leads to X.
func overlappingSymbols() domain.Document {
	return domain.Document{
		ID: "overlap",
		States: []domain.StateRecord{
			{ID: "s", Name: "S"},
			{ID: "m", Name: "M"},
			{ID: "f", Name: "F", Final: true},
			{ID: "x", Name: "X"},
		},
		InitialStateID: "s",
		Transitions: []domain.TransitionRecord{
			{ID: "t1", FromStateID: domain.Ref("s"), ToStateID: domain.Ref("m"), Symbols: []string{"A"}},
			{ID: "t2", FromStateID: domain.Ref("m"), ToStateID: domain.Ref("f"), Symbols: []string{"BC"}},
			{ID: "t3", FromStateID: domain.Ref("s"), ToStateID: domain.Ref("x"), Symbols: []string{"AB"}},
		},
	}
}

func TestEngine_Run_OverlappingSymbols(t *testing.T) {
	ctx := context.Background()

	for _, strict := range []bool{false, true} {
		report, err := automata.New(automata.WithStrictAlphabet(strict)).Run(ctx, overlappingSymbols(), "ABC")
		require.NoError(t, err, "strict=%v", strict)
		assert.True(t, report.Accepted(), "strict=%v", strict)
		assert.Equal(t, []string{"A", "BC"}, report.Symbols)
		assert.Empty(t, report.Unknown)
		assert.Equal(t, []string{"F"}, report.Configuration)
		assert.Equal(t, [][]string{{"S"}, {"M"}, {"F"}}, report.Trace)
	}

	report, err := automata.New().Run(ctx, overlappingSymbols(), "AB")
	require.NoError(t, err)
	assert.False(t, report.Accepted())
	assert.Equal(t, []string{"AB"}, report.Symbols)
	assert.Equal(t, []string{"X"}, report.Configuration)
}

func TestEngine_Run_DanglingTransitionsAreReported(t *testing.T) {
	doc := endsWithA()
	doc.Transitions = append(doc.Transitions, domain.TransitionRecord{
		ID:          "loose",
		FromStateID: domain.Ref("f"),
		Symbols:     []string{"C"},
	})

	report, err := automata.New().Run(context.Background(), doc, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"loose"}, report.Dropped)
	assert.True(t, report.Accepted())
}

func TestEngine_Run_InvalidInput(t *testing.T) {
	_, err := automata.New().Run(context.Background(), endsWithA(), "A\xff")
	assert.Error(t, err)
}

func TestEngine_Run_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := automata.New().Run(ctx, endsWithA(), "A")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Validate(t *testing.T) {
	eng := automata.New()
	ctx := context.Background()

	assert.NoError(t, eng.Validate(ctx, endsWithA()))

	noEntry := endsWithA()
	noEntry.Transitions = noEntry.Transitions[1:]
	assert.ErrorIs(t, eng.Validate(ctx, noEntry), nfa.ErrNoInitialState)

	twoEntries := endsWithA()
	twoEntries.Transitions = append(twoEntries.Transitions, domain.TransitionRecord{ID: "entry2", ToStateID: domain.Ref("f")})
	assert.ErrorIs(t, eng.Validate(ctx, twoEntries), nfa.ErrMultipleInitialStates)

	unnamed := endsWithA()
	unnamed.States[1].Name = "  "
	assert.ErrorIs(t, eng.Validate(ctx, unnamed), nfa.ErrUnnamedState)
}

func TestEngine_Compile_ReturnsReportOnFailure(t *testing.T) {
	doc := endsWithA()
	doc.Transitions = []domain.TransitionRecord{{ID: "loose", FromStateID: domain.Ref("s")}}

	a, rep, err := automata.New().Compile(context.Background(), doc)
	assert.Nil(t, a)
	require.NotNil(t, rep)
	assert.Equal(t, []string{"loose"}, rep.Dropped)
	assert.ErrorIs(t, err, nfa.ErrNoInitialState)
}

func TestEngine_LifecycleHooks(t *testing.T) {
	var (
		mu      sync.Mutex
		started []*domain.RunEvent
		done    []*domain.RunEvent
		failed  []*domain.BuildEvent
	)
	hooks := domain.LifecycleHooks{
		OnRunStart: func(_ context.Context, ev *domain.RunEvent) {
			mu.Lock()
			defer mu.Unlock()
			started = append(started, ev)
		},
		OnRunComplete: func(_ context.Context, ev *domain.RunEvent) {
			mu.Lock()
			defer mu.Unlock()
			done = append(done, ev)
		},
		OnBuildFailed: func(_ context.Context, ev *domain.BuildEvent) {
			mu.Lock()
			defer mu.Unlock()
			failed = append(failed, ev)
		},
	}
	eng := automata.New(automata.WithLifecycleHooks(hooks))
	ctx := context.Background()

	_, err := eng.Run(ctx, endsWithA(), "BA")
	require.NoError(t, err)

	broken := endsWithA()
	broken.Transitions = nil
	_, err = eng.Run(ctx, broken, "A")
	require.Error(t, err)

	require.Len(t, started, 1)
	assert.Equal(t, domain.EventRunStart, started[0].Type)
	assert.Equal(t, 2, started[0].Symbols)

	require.Len(t, done, 1)
	assert.Equal(t, domain.EventRunComplete, done[0].Type)
	assert.True(t, done[0].Accepted)
	assert.Equal(t, []string{"F", "S"}, done[0].Configuration)

	require.Len(t, failed, 1)
	assert.Equal(t, string(nfa.KindNoInitialState), failed[0].Kind)
	assert.ErrorIs(t, failed[0].Err, nfa.ErrNoInitialState)
}

func TestEngine_RunStored(t *testing.T) {
	store := memory.NewStore(endsWithA())
	eng := automata.New(automata.WithStore(store))
	ctx := context.Background()

	report, err := eng.RunStored(ctx, "ends-with-a", "A")
	require.NoError(t, err)
	assert.True(t, report.Accepted())

	_, err = eng.RunStored(ctx, "missing", "A")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

type readOnly struct{ ports.DocumentLoader }

func TestEngine_ReadOnlyLoader(t *testing.T) {
	eng := automata.New(automata.WithLoader(readOnly{memory.NewStore(endsWithA())}))
	ctx := context.Background()

	ids, err := eng.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ends-with-a"}, ids)

	assert.ErrorIs(t, eng.Save(ctx, &domain.Document{ID: "x"}), automata.ErrReadOnlyStore)
	assert.ErrorIs(t, eng.Delete(ctx, "ends-with-a"), automata.ErrReadOnlyStore)
}

func TestEngine_SaveLoadDelete(t *testing.T) {
	eng := automata.New()
	ctx := context.Background()
	doc := endsWithA()

	require.NoError(t, eng.Save(ctx, &doc))
	loaded, err := eng.Load(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.States, loaded.States)

	require.NoError(t, eng.Delete(ctx, doc.ID))
	_, err = eng.Load(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestEngine_ConcurrentRuns(t *testing.T) {
	eng := automata.New()
	doc := endsWithA()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report, err := eng.Run(context.Background(), doc, "ABBA")
			assert.NoError(t, err)
			assert.True(t, report.Accepted())
		}()
	}
	wg.Wait()
}
