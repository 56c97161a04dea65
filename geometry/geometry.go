package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Vertex is one boundary face attachment point on a marker. Normal is
// the outward area-weighted face normal associated with the vertex.
type Vertex struct {
	Node           int        // Global node index
	NormalNeighbor int        // Nearest interior node, used for wall distance
	Normal         [3]float64 // Outward normal, magnitude = face area
}

// Marker is a named boundary surface patch with an ordered vertex list
type Marker struct {
	Tag      string
	Vertices []Vertex
}

// Mesh is the read-only geometry surface consumed by the force and
// coloring subsystems. Volume connectivity is reduced to the edge list.
type Mesh struct {
	NDim    int
	Coords  [][3]float64 // Node coordinates, one entry per node
	Domain  []bool       // True when this process owns the node (not a halo)
	Markers []Marker
	Edges   [][2]int // Raw edge adjacency: the two nodes of each edge
}

func (m *Mesh) NNode() int   { return len(m.Coords) }
func (m *Mesh) NEdge() int   { return len(m.Edges) }
func (m *Mesh) NMarker() int { return len(m.Markers) }

// NVertex returns the vertex count of marker iMarker
func (m *Mesh) NVertex(iMarker int) int { return len(m.Markers[iMarker].Vertices) }

// NodeIsDomain reports domain ownership, defaulting to owned when the
// ownership array was not populated (single process runs).
func (m *Mesh) NodeIsDomain(iPoint int) bool {
	if m.Domain == nil {
		return true
	}
	return m.Domain[iPoint]
}

// Area returns the magnitude of an area-weighted normal
func Area(normal [3]float64, nDim int) float64 {
	return floats.Norm(normal[:nDim], 2)
}

// UnitNormal scales an area-weighted normal to unit length, returning
// the unit vector and the face area
func UnitNormal(normal [3]float64, nDim int) (unit [3]float64, area float64) {
	area = Area(normal, nDim)
	for iDim := 0; iDim < nDim; iDim++ {
		unit[iDim] = normal[iDim] / area
	}
	return
}

// Validate checks the structural invariants the integrators rely on
func (m *Mesh) Validate() error {
	if m.NDim != 2 && m.NDim != 3 {
		return fmt.Errorf("mesh dimension must be 2 or 3, have %d", m.NDim)
	}
	nNode := m.NNode()
	if m.Domain != nil && len(m.Domain) != nNode {
		return fmt.Errorf("domain ownership array length %d != node count %d", len(m.Domain), nNode)
	}
	for _, mk := range m.Markers {
		for _, v := range mk.Vertices {
			if v.Node < 0 || v.Node >= nNode {
				return fmt.Errorf("marker %s references node %d outside mesh (%d nodes)", mk.Tag, v.Node, nNode)
			}
			if v.NormalNeighbor < 0 || v.NormalNeighbor >= nNode {
				return fmt.Errorf("marker %s vertex at node %d has bad interior neighbor %d", mk.Tag, v.Node, v.NormalNeighbor)
			}
		}
	}
	for ie, e := range m.Edges {
		if e[0] < 0 || e[0] >= nNode || e[1] < 0 || e[1] >= nNode {
			return fmt.Errorf("edge %d references nodes outside mesh: %v", ie, e)
		}
	}
	return nil
}
