package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/canvas/internal/models"
)

func snapshot(label string) models.Graph {
	return models.Graph{
		Nodes: []models.Node{{ID: label, Type: "default", Data: models.NodeData{"label": label}}},
		Edges: []models.Edge{},
	}
}

func label(g models.Graph) string {
	if len(g.Nodes) == 0 {
		return ""
	}
	return g.Nodes[0].ID
}

func TestNewIsEmpty(t *testing.T) {
	h := New(0)
	assert.Equal(t, DefaultMaxSteps, h.Capacity())
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, -1, h.Cursor())

	_, ok := h.Undo()
	assert.False(t, ok)
	_, ok = h.Redo()
	assert.False(t, ok)
	_, ok = h.Current()
	assert.False(t, ok)
}

func TestUndoRedo(t *testing.T) {
	h := New(10)
	h.Save(snapshot("s0"))
	h.Save(snapshot("s1"))
	h.Save(snapshot("s2"))

	g, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "s1", label(g))

	g, ok = h.Undo()
	require.True(t, ok)
	assert.Equal(t, "s0", label(g))

	g, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, "s1", label(g))
}

func TestBoundaries(t *testing.T) {
	h := New(10)
	h.Save(snapshot("s0"))
	h.Save(snapshot("s1"))

	_, ok := h.Redo()
	assert.False(t, ok, "redo at newest snapshot")
	assert.Equal(t, 1, h.Cursor())

	_, ok = h.Undo()
	require.True(t, ok)
	_, ok = h.Undo()
	assert.False(t, ok, "undo at oldest snapshot")
	assert.Equal(t, 0, h.Cursor(), "cursor unchanged at boundary")
}

func TestSaveTruncatesRedo(t *testing.T) {
	h := New(10)
	h.Save(snapshot("s0"))
	h.Save(snapshot("s1"))
	h.Save(snapshot("s2"))
	_, _ = h.Undo()
	_, _ = h.Undo()

	h.Save(snapshot("branch"))
	assert.Equal(t, 2, h.Len())
	assert.False(t, h.CanRedo())

	g, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "s0", label(g))
}

func TestEviction(t *testing.T) {
	const max = 5
	h := New(max)
	for i := 0; i < max+3; i++ {
		h.Save(snapshot(fmt.Sprintf("s%d", i)))
	}
	assert.Equal(t, max, h.Len())
	assert.Equal(t, max-1, h.Cursor())

	var seen []string
	for {
		g, ok := h.Undo()
		if !ok {
			break
		}
		seen = append(seen, label(g))
	}
	assert.Equal(t, []string{"s6", "s5", "s4", "s3"}, seen)
	cur, _ := h.Current()
	assert.Equal(t, "s3", label(cur), "s0..s2 are no longer reachable")
}

func TestEvictionAfterUndoAndBranch(t *testing.T) {
	h := New(3)
	// Holds s1 s2 s3 after eviction.
	for i := 0; i < 4; i++ {
		h.Save(snapshot(fmt.Sprintf("s%d", i)))
	}
	_, _ = h.Undo()
	h.Save(snapshot("b"))
	// c evicts s1, leaving s2 b c.
	h.Save(snapshot("c"))

	var seen []string
	for {
		g, ok := h.Undo()
		if !ok {
			break
		}
		seen = append(seen, label(g))
	}
	assert.Equal(t, []string{"b", "s2"}, seen)
}

func TestSnapshotsAreIndependent(t *testing.T) {
	h := New(10)
	g := snapshot("s0")
	h.Save(g)
	g.Nodes[0].Data["label"] = "mutated"

	cur, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, "s0", cur.Nodes[0].Data.Label())

	cur.Nodes[0].Data["label"] = "also mutated"
	again, _ := h.Current()
	assert.Equal(t, "s0", again.Nodes[0].Data.Label())
}

func TestReset(t *testing.T) {
	h := New(10)
	h.Save(snapshot("s0"))
	h.Reset()
	assert.Equal(t, 0, h.Len())
	assert.False(t, h.CanUndo())
}
