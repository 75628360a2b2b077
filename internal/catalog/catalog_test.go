// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/timeline-transcript/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "catalog")
	store, err := Open(types.CatalogConfig{Dir: dir, MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func sampleTimeline(t *testing.T, name string, lines ...types.DialogueLine) types.Timeline {
	t.Helper()
	src := filepath.Join(t.TempDir(), name+".dtl")
	return types.Timeline{
		Name:        name,
		SourcePath:  src,
		OutputPath:  src[:len(src)-len(".dtl")] + ".txt",
		LinesRead:   len(lines) + 2,
		Fragments:   len(lines) + 1,
		Dialogue:    lines,
		ConvertedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:      types.ConversionDone,
	}
}

func line(ordinal int, character, text string) types.DialogueLine {
	return types.DialogueLine{Ordinal: ordinal, Character: character, Text: text}
}

func seed(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Record(ctx, sampleTimeline(t, "chapter_02",
		line(3, "Alice", "Where were you last night?"),
		line(5, "Bob", "At the harbor. 100% true."),
	)))
	require.NoError(t, store.Record(ctx, sampleTimeline(t, "chapter_01",
		line(1, "Alice", "The harbor lights are out."),
		line(4, "Narrator", "Nobody answers."),
	)))
}

// --- tests ---

func TestOpenCreatesDatabase(t *testing.T) {
	_, dir := testStore(t)
	assert.FileExists(t, filepath.Join(dir, dbFile))
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	store, dir := testStore(t)
	seed(t, store)
	require.NoError(t, store.Close())

	reopened, err := Open(types.CatalogConfig{Dir: dir})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Timelines(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSearchByText(t *testing.T) {
	store, _ := testStore(t)
	seed(t, store)

	got, err := store.Search(context.Background(), QueryOptions{Query: "HARBOR"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by timeline name, then source line.
	assert.Equal(t, "chapter_01", got[0].Timeline)
	assert.Equal(t, "Alice", got[0].Character)
	assert.Equal(t, 1, got[0].Ordinal)
	assert.Equal(t, "chapter_02", got[1].Timeline)
	assert.Equal(t, "Bob", got[1].Character)
}

func TestSearchEscapesWildcards(t *testing.T) {
	store, _ := testStore(t)
	seed(t, store)

	got, err := store.Search(context.Background(), QueryOptions{Query: "100%"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "At the harbor. 100% true.", got[0].Text)

	got, err = store.Search(context.Background(), QueryOptions{Query: "%"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSearchFilters(t *testing.T) {
	store, _ := testStore(t)
	seed(t, store)
	ctx := context.Background()

	got, err := store.Search(ctx, QueryOptions{Character: "alice"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = store.Search(ctx, QueryOptions{Character: "Alice", Timeline: "chapter_02"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Where were you last night?", got[0].Text)

	got, err = store.Search(ctx, QueryOptions{Query: "harbor", MaxResults: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = store.Search(ctx, QueryOptions{Query: "lighthouse"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchRequiresQuery(t *testing.T) {
	store, _ := testStore(t)
	_, err := store.Search(context.Background(), QueryOptions{MaxResults: 5})
	assert.Error(t, err)
}

func TestRecordReplacesDialogue(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	tl := sampleTimeline(t, "scene", line(1, "Alice", "First draft."))
	require.NoError(t, store.Record(ctx, tl))

	tl.Dialogue = []types.DialogueLine{line(2, "Alice", "Second draft."), line(3, "Bob", "Better.")}
	tl.LinesRead = 9
	require.NoError(t, store.Record(ctx, tl))

	got, err := store.Timelines(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 9, got[0].LinesRead)
	assert.Equal(t, tl.Dialogue, got[0].Dialogue)

	matches, err := store.Search(ctx, QueryOptions{Query: "draft"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Second draft.", matches[0].Text)
}

func TestTimelinesOrderedByName(t *testing.T) {
	store, _ := testStore(t)
	seed(t, store)

	got, err := store.Timelines(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "chapter_01", got[0].Name)
	assert.Equal(t, "chapter_02", got[1].Name)
	assert.Len(t, got[0].Dialogue, 2)
	assert.True(t, got[0].ConvertedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func TestExportYAML(t *testing.T) {
	store, dir := testStore(t)
	seed(t, store)

	path, err := store.ExportYAML(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "export.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var timelines []types.Timeline
	require.NoError(t, yaml.Unmarshal(data, &timelines))
	require.Len(t, timelines, 2)
	assert.Equal(t, "chapter_01", timelines[0].Name)
	assert.Equal(t, "Narrator", timelines[0].Dialogue[1].Character)
}

func TestExportJSONToPath(t *testing.T) {
	store, _ := testStore(t)
	seed(t, store)

	target := filepath.Join(t.TempDir(), "all.json")
	path, err := store.ExportJSON(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, target, path)

	data, err := os.ReadFile(target)
	require.NoError(t, err)

	var timelines []types.Timeline
	require.NoError(t, json.Unmarshal(data, &timelines))
	require.Len(t, timelines, 2)
	assert.Equal(t, "Where were you last night?", timelines[1].Dialogue[0].Text)
}
