package canvas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/canvas/internal/apperr"
	"github.com/starford/canvas/internal/models"
)

func TestDocumentRoundTrip(t *testing.T) {
	g := models.Graph{
		Nodes: []models.Node{
			{ID: "a", Type: "service", Data: models.NodeData{"label": "API"}},
			{ID: "b", Type: "db", Data: models.NodeData{"label": "Store"}},
			{ID: "c", Type: "db", Data: models.NodeData{"label": "API"}},
		},
		Edges: []models.Edge{{ID: "e", Source: "a", Target: "b"}},
	}
	data, err := EncodeDocument("Checkout", g)
	require.NoError(t, err)

	doc, err := DecodeDocument(data)
	require.NoError(t, err)
	assert.Equal(t, "Checkout", doc.Title)
	assert.Len(t, doc.Graph.Nodes, 3)
	assert.Len(t, doc.Graph.Edges, 1)
	assert.Equal(t, []string{"API", "Store"}, doc.Labels())
}

func TestDecodeDocument_PlainExport(t *testing.T) {
	data, err := ExportCanvas([]models.Node{{ID: "a"}}, nil, models.ExportJSON)
	require.NoError(t, err)

	doc, err := DecodeDocument(data)
	require.NoError(t, err)
	assert.Equal(t, "", doc.Title)
	assert.Len(t, doc.Graph.Nodes, 1)
	assert.Empty(t, doc.Labels())
}

func TestDecodeDocument_Invalid(t *testing.T) {
	for _, in := range []string{"nope", `{"nodes":"x"}`, `{"title":42}`} {
		_, err := DecodeDocument([]byte(in))
		assert.True(t, errors.Is(err, apperr.ErrValidationFailed), "input %q", in)
	}
}
