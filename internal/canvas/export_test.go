package canvas

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/canvas/internal/apperr"
	"github.com/starford/canvas/internal/models"
)

func TestExportCanvas_JSON(t *testing.T) {
	nodes, edges := sampleGraph()
	data, err := ExportCanvas(nodes, edges, models.ExportJSON)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "\n  \"nodes\": ["), "pretty printed with two-space indent")

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 2, "only nodes and edges, no version field")

	g, err := ImportCanvas(data)
	require.NoError(t, err)
	assert.Equal(t, nodes, g.Nodes)
	assert.Equal(t, edges, g.Edges)
}

func TestExportCanvas_EmptyCollections(t *testing.T) {
	data, err := ExportCanvas(nil, nil, models.ExportJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"edges":[]}`, string(data))
}

func TestExportCanvas_Unimplemented(t *testing.T) {
	for _, f := range []models.ExportFormat{models.ExportSVG, models.ExportPNG} {
		_, err := ExportCanvas(nil, nil, f)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrUnsupportedFormat))
		assert.Contains(t, err.Error(), "not implemented")
	}
}

func TestImportCanvas(t *testing.T) {
	t.Run("empty object is lenient", func(t *testing.T) {
		g, err := ImportCanvas([]byte(`{}`))
		require.NoError(t, err)
		assert.Equal(t, []models.Node{}, g.Nodes)
		assert.Equal(t, []models.Edge{}, g.Edges)
	})

	t.Run("only nodes", func(t *testing.T) {
		g, err := ImportCanvas([]byte(`{"nodes":[{"id":"a","type":"default","position":{"x":1,"y":2}}]}`))
		require.NoError(t, err)
		require.Len(t, g.Nodes, 1)
		assert.Equal(t, models.Position{X: 1, Y: 2}, g.Nodes[0].Position)
		assert.NotNil(t, g.Nodes[0].Data)
		assert.Empty(t, g.Edges)
	})

	for name, input := range map[string]string{
		"not json":         "not json",
		"wrong shape":      `{"nodes": "a"}`,
		"top level array":  `[]`,
		"null":             `null`,
		"top level string": `"x"`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ImportCanvas([]byte(input))
			require.Error(t, err)
			assert.Equal(t, "invalid canvas data format", err.Error())
			assert.True(t, errors.Is(err, apperr.ErrValidationFailed))
		})
	}
}
