package canvas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/canvas/internal/models"
)

func sampleGraph() ([]models.Node, []models.Edge) {
	nodes := []models.Node{
		{ID: "a", Type: "default", Position: models.Position{X: 0, Y: 0}, Data: models.NodeData{"label": "A"}},
		{ID: "b", Type: "default", Position: models.Position{X: 100, Y: 0}, Data: models.NodeData{"label": "B"}},
		{ID: "c", Type: "default", Position: models.Position{X: 200, Y: 0}, Data: models.NodeData{"label": "C"}},
	}
	edges := []models.Edge{
		{ID: "ab", Source: "a", Target: "b", Type: "smoothstep"},
		{ID: "bc", Source: "b", Target: "c"},
		{ID: "ca", Source: "c", Target: "a"},
	}
	return nodes, edges
}

func TestCreateNode(t *testing.T) {
	data := models.NodeData{"label": "Start"}
	n := CreateNode("default", models.Position{X: 10, Y: 20}, data)

	assert.True(t, strings.HasPrefix(n.ID, "node_"))
	assert.Equal(t, "default", n.Type)
	assert.Equal(t, models.Position{X: 10, Y: 20}, n.Position)
	assert.Equal(t, "Start", n.Data.Label())

	data["label"] = "changed"
	assert.Equal(t, "Start", n.Data.Label(), "node must not alias caller data")

	other := CreateNode("default", models.Position{}, nil)
	assert.NotEqual(t, n.ID, other.ID)
	assert.NotNil(t, other.Data)
}

func TestUpdateNode(t *testing.T) {
	nodes, _ := sampleGraph()

	t.Run("merges given fields", func(t *testing.T) {
		kind := "group"
		pos := models.Position{X: 5, Y: 6}
		out := UpdateNode("b", NodeUpdate{Type: &kind, Position: &pos}, nodes)

		require.Len(t, out, 3)
		assert.Equal(t, "group", out[1].Type)
		assert.Equal(t, pos, out[1].Position)
		assert.Equal(t, "B", out[1].Data.Label(), "data untouched when not in update")
		assert.Equal(t, "default", nodes[1].Type, "input must not be mutated")
	})

	t.Run("data replaces wholesale", func(t *testing.T) {
		out := UpdateNode("a", NodeUpdate{Data: models.NodeData{"z": 4.0}}, nodes)
		assert.Equal(t, models.NodeData{"z": 4.0}, out[0].Data)
	})

	t.Run("missing id is a no-op", func(t *testing.T) {
		pos := models.Position{X: 999, Y: 999}
		out := UpdateNode("missing", NodeUpdate{Position: &pos}, nodes)
		assert.Equal(t, nodes, out)
	})
}

func TestDeleteNode_Cascades(t *testing.T) {
	nodes, edges := sampleGraph()
	for _, victim := range nodes {
		g := DeleteNode(victim.ID, nodes, edges)

		assert.Len(t, g.Nodes, 2)
		assert.False(t, HasNode(victim.ID, g.Nodes))
		for _, e := range g.Edges {
			assert.NotEqual(t, victim.ID, e.Source)
			assert.NotEqual(t, victim.ID, e.Target)
		}
	}

	g := DeleteNode("b", nodes, edges)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "ca", g.Edges[0].ID)
	assert.Len(t, edges, 3, "input edges must not be mutated")
}

func TestDeleteNode_Missing(t *testing.T) {
	nodes, edges := sampleGraph()
	g := DeleteNode("zzz", nodes, edges)
	assert.Equal(t, nodes, g.Nodes)
	assert.Equal(t, edges, g.Edges)
}

func TestEdgeCRUD(t *testing.T) {
	nodes, edges := sampleGraph()

	e := CreateEdge("a", "c", "smoothstep", nil)
	assert.True(t, strings.HasPrefix(e.ID, "edge_"))
	assert.Equal(t, "a", e.Source)
	assert.Equal(t, "c", e.Target)

	edges = append(edges, e)
	target := "b"
	updated := UpdateEdge(e.ID, EdgeUpdate{Target: &target}, edges)
	assert.Equal(t, "b", updated[3].Target)
	assert.Equal(t, "c", edges[3].Target)

	assert.Equal(t, edges, UpdateEdge("nope", EdgeUpdate{Target: &target}, edges))

	remaining := DeleteEdge("ab", edges)
	assert.Len(t, remaining, 3)
	assert.False(t, HasEdge("ab", remaining))
	assert.Len(t, nodes, 3, "edge deletion never touches nodes")
}
