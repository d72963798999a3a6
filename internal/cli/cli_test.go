package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endsWithAYAML = `id: ends-with-a
states:
  - {id: s, name: S}
  - {id: f, name: F, final: true}
transitions:
  - {id: entry, to_state_id: s}
  - {id: loop, from_state_id: s, to_state_id: s, symbols: [A, B]}
  - {id: last, from_state_id: s, to_state_id: f, symbols: [A]}
`

func newTestRuntime(t *testing.T, cfg config.Config) *Runtime {
	t.Helper()
	stderr = io.Discard
	rt, err := NewRuntime(cfg, true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	return rt
}

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ends-with-a.yaml")
	require.NoError(t, os.WriteFile(path, []byte(endsWithAYAML), 0644))
	return path
}

func TestExecute_Plain(t *testing.T) {
	rt := newTestRuntime(t, config.Default())
	ctx := context.Background()
	opts := RunOptions{DocumentPath: writeDoc(t), Inputs: []string{"ABA", "AB"}}

	doc, err := LoadDocument(ctx, rt, opts)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Execute(ctx, rt, doc, opts, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ACCEPTED\t\"ABA\"\t{F,S}", lines[0])
	assert.Equal(t, "REJECTED\t\"AB\"\t{S}", lines[1])
}

func TestExecute_JSONAndGraph(t *testing.T) {
	rt := newTestRuntime(t, config.Default())
	ctx := context.Background()
	opts := RunOptions{DocumentPath: writeDoc(t), Inputs: []string{"A"}, JSON: true, Graph: true}

	doc, err := LoadDocument(ctx, rt, opts)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Execute(ctx, rt, doc, opts, &out))

	firstLine, rest, _ := strings.Cut(out.String(), "\n")
	var report automata.Report
	require.NoError(t, json.Unmarshal([]byte(firstLine), &report))
	assert.True(t, report.Accepted())
	assert.Contains(t, rest, "stateDiagram-v2")
	assert.Contains(t, rest, "class s1 current")
}

func TestLoadDocument_FromStore(t *testing.T) {
	rt := newTestRuntime(t, config.Default())
	ctx := context.Background()

	require.NoError(t, rt.Engine.Save(ctx, &domain.Document{ID: "stored"}))

	doc, err := LoadDocument(ctx, rt, RunOptions{DocumentID: "stored"})
	require.NoError(t, err)
	assert.Equal(t, "stored", doc.ID)

	_, err = LoadDocument(ctx, rt, RunOptions{})
	assert.Error(t, err)
}

func TestRunSession(t *testing.T) {
	rt := newTestRuntime(t, config.Default())
	ctx := context.Background()

	doc, err := LoadDocument(ctx, rt, RunOptions{DocumentPath: writeDoc(t)})
	require.NoError(t, err)

	in := strings.NewReader("BA\nb\n:graph\n:q\nA\n")
	var out bytes.Buffer
	require.NoError(t, RunSession(ctx, rt, doc, in, &out, false))

	text := out.String()
	assert.Contains(t, text, "ACCEPTED\t\"BA\"")
	assert.Contains(t, text, "REJECTED\t\"b\"")
	assert.Contains(t, text, "stateDiagram-v2")
	assert.Equal(t, 2, strings.Count(text, "\t\""), "input after :q is not run")
}

func TestRunSession_InvalidDocument(t *testing.T) {
	rt := newTestRuntime(t, config.Default())
	err := RunSession(context.Background(), rt, &domain.Document{ID: "empty"}, strings.NewReader(""), io.Discard, false)
	assert.Error(t, err)
}

func TestNewRuntime_FileStore(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Kind = config.StoreFile
	cfg.Store.Dir = t.TempDir()
	cfg.Store.Format = "yaml"
	rt := newTestRuntime(t, cfg)
	ctx := context.Background()

	require.NoError(t, rt.Engine.Save(ctx, &domain.Document{ID: "d"}))
	_, err := os.Stat(filepath.Join(cfg.Store.Dir, "d.yaml"))
	assert.NoError(t, err)
}

func TestNewRuntime_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Store.Kind = config.StoreRedis
	cfg.Store.Redis.Addr = mr.Addr()
	rt := newTestRuntime(t, cfg)
	ctx := context.Background()

	require.NoError(t, rt.Engine.Save(ctx, &domain.Document{ID: "d"}))
	assert.True(t, mr.Exists("automata:document:d"))
}

func TestNewRuntime_LoamStore(t *testing.T) {
	dir, _ := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, map[string]string{"ends-with-a.md": testutils.EndsWithA})

	cfg := config.Default()
	cfg.Store.Kind = config.StoreLoam
	cfg.Store.Dir = dir
	rt := newTestRuntime(t, cfg)
	ctx := context.Background()

	report, err := rt.Engine.RunStored(ctx, "ends-with-a", "BBA")
	require.NoError(t, err)
	assert.True(t, report.Accepted())

	assert.ErrorIs(t, rt.Engine.Save(ctx, &domain.Document{ID: "x"}), automata.ErrReadOnlyStore)
}

func TestNewRuntime_BadLogLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "loud"
	_, err := NewRuntime(cfg, false)
	assert.Error(t, err)
}

func TestNewRuntime_StoreChecksIntegrity(t *testing.T) {
	rt := newTestRuntime(t, config.Default())
	ctx := context.Background()

	doc := &domain.Document{
		ID:     "dup",
		States: []domain.StateRecord{{ID: "s", Name: "A"}, {ID: "s", Name: "B"}},
	}
	assert.ErrorIs(t, rt.Engine.Save(ctx, doc), domain.ErrInvalidDocument)

	ids, err := rt.Engine.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLoadDocument_ReadsExactFile(t *testing.T) {
	rt := newTestRuntime(t, config.Default())
	ctx := context.Background()
	dir := t.TempDir()

	yml := filepath.Join(dir, "ends-with-a.yml")
	require.NoError(t, os.WriteFile(yml, []byte(endsWithAYAML), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ends-with-a.json"), []byte(`{"id":"shadow"}`), 0644))

	doc, err := LoadDocument(ctx, rt, RunOptions{DocumentPath: yml})
	require.NoError(t, err)
	assert.Equal(t, "ends-with-a", doc.ID)
	assert.Len(t, doc.States, 2)

	_, err = LoadDocument(ctx, rt, RunOptions{DocumentPath: filepath.Join(dir, "ends-with-a.txt")})
	assert.Error(t, err)
}

func TestLoadDocument_JSONWithoutIDCanBeImported(t *testing.T) {
	rt := newTestRuntime(t, config.Default())
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "bare.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"states":[{"id":"s","name":"S"}]}`), 0644))

	doc, err := LoadDocument(ctx, rt, RunOptions{DocumentPath: path})
	require.NoError(t, err)
	require.NoError(t, rt.Engine.Save(ctx, doc))

	ids, err := rt.Engine.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bare"}, ids)
}
