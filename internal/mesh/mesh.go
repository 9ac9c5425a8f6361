// Package mesh implements the triangle mesh store: parallel arrays of
// vertex positions, vertex normals, and texture coordinates addressed
// by 1-based indices, plus barycentric interpolation across a face.
package mesh

import (
	"fmt"

	"github.com/mpetrov/raytrace/internal/vec"
)

// TexCoord is a 2D (u,v) texture coordinate.
type TexCoord struct {
	U, V float64
}

// Mesh owns the vertex position, vertex normal, and texcoord arrays
// that Faces index into. Index 0 is the sentinel for "unspecified".
type Mesh struct {
	Vertices  []vec.Vector
	Normals   []vec.Vector
	TexCoords []TexCoord
}

// AddVertex appends a vertex position and returns its 1-based index.
func (m *Mesh) AddVertex(v vec.Vector) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices)
}

// AddNormal appends a vertex normal and returns its 1-based index.
func (m *Mesh) AddNormal(n vec.Vector) int {
	m.Normals = append(m.Normals, n)
	return len(m.Normals)
}

// AddTexCoord appends a texture coordinate and returns its 1-based index.
func (m *Mesh) AddTexCoord(t TexCoord) int {
	m.TexCoords = append(m.TexCoords, t)
	return len(m.TexCoords)
}

// Corner is one vertex reference of a Face: a 1-based vertex index
// plus optional (0 = absent) normal and texcoord indices.
type Corner struct {
	VertexIndex int
	NormalIndex int // 0 means "no normal"
	TexIndex    int // 0 means "no texcoord"
}

// Face is a triangle: three corners referencing a shared Mesh.
type Face struct {
	Mesh     *Mesh
	Corners  [3]Corner
}

// Validate checks the index-range invariants from the data model:
// v_idx in [1,len(vertices)], n_idx/t_idx are 0 or in range.
func (f *Face) Validate() error {
	nv := len(f.Mesh.Vertices)
	nn := len(f.Mesh.Normals)
	nt := len(f.Mesh.TexCoords)
	for i, c := range f.Corners {
		if c.VertexIndex < 1 || c.VertexIndex > nv {
			return fmt.Errorf("face corner %d: vertex index %d out of range [1,%d]", i, c.VertexIndex, nv)
		}
		if c.NormalIndex != 0 && (c.NormalIndex < 1 || c.NormalIndex > nn) {
			return fmt.Errorf("face corner %d: normal index %d out of range [1,%d]", i, c.NormalIndex, nn)
		}
		if c.TexIndex != 0 && (c.TexIndex < 1 || c.TexIndex > nt) {
			return fmt.Errorf("face corner %d: texcoord index %d out of range [1,%d]", i, c.TexIndex, nt)
		}
	}
	return nil
}

// Vertex returns the world-space position of corner i (0,1,2).
func (f *Face) Vertex(i int) vec.Vector {
	return f.Mesh.Vertices[f.Corners[i].VertexIndex-1]
}

// HasVertexNormals reports whether all three corners specify a normal.
func (f *Face) HasVertexNormals() bool {
	for _, c := range f.Corners {
		if c.NormalIndex == 0 {
			return false
		}
	}
	return true
}

// HasTexCoords reports whether all three corners specify a texcoord.
func (f *Face) HasTexCoords() bool {
	for _, c := range f.Corners {
		if c.TexIndex == 0 {
			return false
		}
	}
	return true
}

func (f *Face) vertexNormal(i int) vec.Vector {
	return f.Mesh.Normals[f.Corners[i].NormalIndex-1]
}

func (f *Face) texCoord(i int) TexCoord {
	return f.Mesh.TexCoords[f.Corners[i].TexIndex-1]
}

// GeometricNormal is the flat face normal from its three vertices,
// used when per-vertex normals are absent.
func (f *Face) GeometricNormal() vec.Vector {
	v0, v1, v2 := f.Vertex(0), f.Vertex(1), f.Vertex(2)
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}

// BarycentricSlack is the tolerance added to the "inside the triangle"
// test (spec section 4.3) to avoid visible gaps along shared edges
// under floating-point rounding.
const BarycentricSlack = 1e-4

// triangleArea returns half the magnitude of the cross product of the
// two edge vectors from a, i.e. the triangle's area.
func triangleArea(a, b, c vec.Vector) float64 {
	return 0.5 * b.Sub(a).Cross(c.Sub(a)).Magnitude()
}

// Barycentric computes the barycentric coordinates (alpha,beta,gamma)
// of p with respect to the face, returning ok=false if p lies outside
// the triangle (beyond BarycentricSlack).
func (f *Face) Barycentric(p vec.Vector) (alpha, beta, gamma float64, ok bool) {
	v0, v1, v2 := f.Vertex(0), f.Vertex(1), f.Vertex(2)
	areaTotal := triangleArea(v0, v1, v2)
	if areaTotal < vec.Epsilon {
		return 0, 0, 0, false
	}
	areaA := triangleArea(v1, v2, p)
	areaB := triangleArea(p, v0, v2)
	areaC := triangleArea(v1, v0, p)

	if areaA+areaB+areaC > areaTotal+BarycentricSlack {
		return 0, 0, 0, false
	}
	return areaA / areaTotal, areaB / areaTotal, areaC / areaTotal, true
}

// InterpolateNormal returns the barycentric blend of the three
// per-vertex normals, renormalized to unit length. Callers must first
// check HasVertexNormals.
func (f *Face) InterpolateNormal(alpha, beta, gamma float64) vec.Vector {
	n0, n1, n2 := f.vertexNormal(0), f.vertexNormal(1), f.vertexNormal(2)
	sum := n0.Scale(alpha).Add(n1.Scale(beta)).Add(n2.Scale(gamma))
	return sum.Normalize()
}

// InterpolateTexCoord returns the barycentric blend of the three
// corner texcoords. Callers must first check HasTexCoords.
func (f *Face) InterpolateTexCoord(alpha, beta, gamma float64) TexCoord {
	t0, t1, t2 := f.texCoord(0), f.texCoord(1), f.texCoord(2)
	return TexCoord{
		U: alpha*t0.U + beta*t1.U + gamma*t2.U,
		V: alpha*t0.V + beta*t1.V + gamma*t2.V,
	}
}
