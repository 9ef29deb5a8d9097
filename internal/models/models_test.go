package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/canvas/internal/apperr"
)

func TestNodeData_Z(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		z, ok := NodeData{}.Z()
		assert.False(t, ok)
		assert.Zero(t, z)
	})

	t.Run("float and int", func(t *testing.T) {
		z, ok := NodeData{"z": 12.5}.Z()
		assert.True(t, ok)
		assert.Equal(t, 12.5, z)

		z, ok = NodeData{"z": 3}.Z()
		assert.True(t, ok)
		assert.Equal(t, 3.0, z)
	})

	t.Run("non numeric", func(t *testing.T) {
		_, ok := NodeData{"z": "high"}.Z()
		assert.False(t, ok)
	})

	t.Run("decoded from json", func(t *testing.T) {
		var n Node
		require.NoError(t, json.Unmarshal([]byte(`{"id":"a","data":{"z":7}}`), &n))
		z, ok := n.Data.Z()
		assert.True(t, ok)
		assert.Equal(t, 7.0, z)
	})
}

func TestNodeData_CloneIsDeep(t *testing.T) {
	orig := NodeData{"label": "A", "meta": map[string]any{"tags": []any{"x"}}}
	cp := orig.Clone()
	cp["label"] = "B"
	cp["meta"].(map[string]any)["tags"].([]any)[0] = "y"

	assert.Equal(t, "A", orig.Label())
	assert.Equal(t, "x", orig["meta"].(map[string]any)["tags"].([]any)[0])
}

func TestNodeData_WithOnNil(t *testing.T) {
	var d NodeData
	out := d.With("z", 0.0)
	assert.Nil(t, d)
	assert.Equal(t, NodeData{"z": 0.0}, out)
}

func TestGraphCloneNeverNil(t *testing.T) {
	g := Graph{}.Clone()
	assert.NotNil(t, g.Nodes)
	assert.NotNil(t, g.Edges)
}

func TestParseEnums(t *testing.T) {
	v, err := ParseView("ISO")
	require.NoError(t, err)
	assert.Equal(t, ViewIso, v)

	_, err = ParseView("4d")
	assert.True(t, errors.Is(err, apperr.ErrValidationFailed))

	m, err := ParseMode("hybrid")
	require.NoError(t, err)
	assert.Equal(t, ModeHybrid, m)

	_, err = ParseLayoutAlgorithm("spring")
	assert.Error(t, err)

	dt, err := ParseDiagramType("er")
	require.NoError(t, err)
	assert.Equal(t, DiagramER, dt)
	assert.False(t, DiagramType("timeline").Valid())
}

func TestChatMessageNormalize(t *testing.T) {
	m := ChatMessage{Sender: SenderUser, Content: "hi"}.Normalize()
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.Timestamp.IsZero())

	kept := ChatMessage{ID: "fixed"}.Normalize()
	assert.Equal(t, "fixed", kept.ID)
}
