package canvas

import (
	"math"

	"github.com/starford/canvas/internal/apperr"
	"github.com/starford/canvas/internal/models"
)

// ErrAlreadyProjected is returned when an isometric projection is requested
// for nodes that already carry isometric coordinates.
var ErrAlreadyProjected = apperr.Validation("nodes are already in isometric coordinates; project from the stored 2d positions")

var (
	cos30 = math.Cos(math.Pi / 6)
	sin30 = math.Sin(math.Pi / 6)
)

// TransformForView returns the collections as they should be shown in view.
//
// The iso projection is lossy: callers must always project from the stored
// canonical coordinates. Nodes already marked as projected are rejected.
func TransformForView(nodes []models.Node, edges []models.Edge, view models.View) (models.Graph, error) {
	switch view {
	case models.View2D:
		return models.Graph{Nodes: models.CloneNodes(nodes), Edges: models.CloneEdges(edges)}, nil
	case models.View3D:
		return models.Graph{Nodes: withDepth(nodes), Edges: models.CloneEdges(edges)}, nil
	case models.ViewIso:
		projected, err := isometric(nodes)
		if err != nil {
			return models.Graph{}, err
		}
		return models.Graph{Nodes: projected, Edges: models.CloneEdges(edges)}, nil
	default:
		return models.Graph{}, apperr.Validation("unknown view %q", view)
	}
}

func withDepth(nodes []models.Node) []models.Node {
	out := make([]models.Node, len(nodes))
	for i, n := range nodes {
		n = n.Clone()
		if z, ok := n.Data.Z(); ok {
			n.Data = n.Data.With(models.DataKeyZ, z)
		} else if _, present := n.Data[models.DataKeyZ]; !present {
			n.Data = n.Data.With(models.DataKeyZ, 0.0)
		}
		out[i] = n
	}
	return out
}

func isometric(nodes []models.Node) ([]models.Node, error) {
	out := make([]models.Node, len(nodes))
	for i, n := range nodes {
		if n.Data.Projection() == string(models.ViewIso) {
			return nil, ErrAlreadyProjected
		}
		x, y := n.Position.X, n.Position.Y
		z, _ := n.Data.Z()
		n = n.Clone()
		n.Position = IsoProject(x, y, z)
		n.Data = n.Data.With(models.DataKeyProjection, string(models.ViewIso))
		out[i] = n
	}
	return out, nil
}

// IsoProject maps a 3D point onto isometric screen coordinates.
func IsoProject(x, y, z float64) models.Position {
	return models.Position{
		X: (x - y) * cos30,
		Y: (x+y)*sin30 - z,
	}
}
