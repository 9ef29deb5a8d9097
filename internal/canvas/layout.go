package canvas

import (
	"math"

	"github.com/starford/canvas/internal/models"
)

// Layout constants.
const (
	HierarchyHorizontalSpacing = 200.0
	HierarchyVerticalSpacing   = 150.0

	ForceRadius  = 200.0
	ForceCenterX = 400.0
	ForceCenterY = 300.0

	CircularMinRadius     = 100.0
	CircularRadiusPerNode = 30.0
	CircularCenterX       = 500.0
	CircularCenterY       = 400.0
)

// AutoLayout returns nodes repositioned by the given algorithm. Order and ids
// are preserved; only positions change. Unknown algorithms return a copy.
func AutoLayout(nodes []models.Node, edges []models.Edge, algorithm models.LayoutAlgorithm) []models.Node {
	if len(nodes) == 0 {
		return []models.Node{}
	}
	switch algorithm {
	case models.LayoutHierarchical:
		return hierarchicalLayout(nodes, edges)
	case models.LayoutForce:
		return radialLayout(nodes, ForceRadius, ForceCenterX, ForceCenterY)
	case models.LayoutCircular:
		radius := math.Max(CircularMinRadius, float64(len(nodes))*CircularRadiusPerNode)
		return radialLayout(nodes, radius, CircularCenterX, CircularCenterY)
	default:
		return models.CloneNodes(nodes)
	}
}

// hierarchicalLayout assigns each node the depth at which a depth-first walk
// from the roots first reaches it. Roots and children are visited in input
// order, so a node reachable along several paths keeps its first level.
func hierarchicalLayout(nodes []models.Node, edges []models.Edge) []models.Node {
	present := NodeIndex(nodes)

	children := make(map[string][]string, len(nodes))
	hasIncoming := make(map[string]bool, len(nodes))
	for _, e := range edges {
		_, okSource := present[e.Source]
		_, okTarget := present[e.Target]
		if !okSource || !okTarget {
			continue
		}
		children[e.Source] = append(children[e.Source], e.Target)
		hasIncoming[e.Target] = true
	}

	levels := make(map[string]int, len(nodes))
	var visit func(id string, level int)
	visit = func(id string, level int) {
		if _, seen := levels[id]; seen {
			return
		}
		levels[id] = level
		for _, child := range children[id] {
			visit(child, level+1)
		}
	}
	for _, n := range nodes {
		if !hasIncoming[n.ID] {
			visit(n.ID, 0)
		}
	}

	out := models.CloneNodes(nodes)
	placed := make(map[int]int)
	for i := range out {
		level := levels[out[i].ID] // unreached nodes (pure cycles) sit at level 0
		out[i].Position = models.Position{
			X: float64(placed[level]) * HierarchyHorizontalSpacing,
			Y: float64(level) * HierarchyVerticalSpacing,
		}
		placed[level]++
	}
	return out
}

func radialLayout(nodes []models.Node, radius, cx, cy float64) []models.Node {
	out := models.CloneNodes(nodes)
	count := float64(len(out))
	for i := range out {
		angle := float64(i) / count * 2 * math.Pi
		out[i].Position = models.Position{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	return out
}
