package geometry

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

// Surface mesh input file schema. Only the boundary information the
// force integration needs is read; volume connectivity arrives as the
// flat edge list used by the coloring planner.
type meshFile struct {
	NDim    int          `yaml:"NDim"`
	Coords  [][]float64  `yaml:"Coords"`
	Domain  []bool       `yaml:"Domain"`
	Edges   [][]int      `yaml:"Edges"`
	Markers []markerFile `yaml:"Markers"`
}

type markerFile struct {
	Tag      string       `yaml:"Tag"`
	Vertices []vertexFile `yaml:"Vertices"`
}

type vertexFile struct {
	Node           int       `yaml:"Node"`
	NormalNeighbor int       `yaml:"NormalNeighbor"`
	Normal         []float64 `yaml:"Normal"`
}

// ReadSurfaceMesh loads a YAML surface mesh description
func ReadSurfaceMesh(fileName string) (m *Mesh, err error) {
	var (
		data []byte
	)
	if data, err = os.ReadFile(fileName); err != nil {
		return nil, err
	}
	return ParseSurfaceMesh(data)
}

// ParseSurfaceMesh builds a Mesh from YAML surface mesh data
func ParseSurfaceMesh(data []byte) (m *Mesh, err error) {
	var (
		mf meshFile
	)
	if err = yaml.Unmarshal(data, &mf); err != nil {
		return nil, err
	}
	m = &Mesh{
		NDim:   mf.NDim,
		Coords: make([][3]float64, len(mf.Coords)),
		Domain: mf.Domain,
	}
	for i, c := range mf.Coords {
		if len(c) < mf.NDim {
			return nil, fmt.Errorf("node %d has %d coordinates, mesh is %dD", i, len(c), mf.NDim)
		}
		copy(m.Coords[i][:], c)
	}
	for _, e := range mf.Edges {
		if len(e) != 2 {
			return nil, fmt.Errorf("edges must have exactly two nodes, have %v", e)
		}
		m.Edges = append(m.Edges, [2]int{e[0], e[1]})
	}
	for _, mk := range mf.Markers {
		marker := Marker{Tag: mk.Tag}
		for _, v := range mk.Vertices {
			vert := Vertex{Node: v.Node, NormalNeighbor: v.NormalNeighbor}
			copy(vert.Normal[:], v.Normal)
			marker.Vertices = append(marker.Vertices, vert)
		}
		m.Markers = append(m.Markers, marker)
	}
	if err = m.Validate(); err != nil {
		return nil, err
	}
	return
}
