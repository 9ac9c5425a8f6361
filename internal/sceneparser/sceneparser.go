// Package sceneparser implements the textual scene-file grammar from
// spec section 6: a line-oriented, #-commented, whitespace-insensitive
// format that materializes a *scene.Scene.
//
// The "current material" latch is a field on parser, not a
// package-level global, the way the teacher's gml.EvalState threads its
// own mutable Env/Stack through evaluation instead of using globals.
// There is no separate texture latch: a `texture` line attaches its
// image to the current material (an empty `texture` line detaches it),
// so it applies to every shape using that material, including shapes
// defined before the line, and a later mtlcolor starts untextured.
package sceneparser

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mpetrov/raytrace/internal/light"
	"github.com/mpetrov/raytrace/internal/material"
	"github.com/mpetrov/raytrace/internal/mesh"
	"github.com/mpetrov/raytrace/internal/ppmimage"
	"github.com/mpetrov/raytrace/internal/rayerr"
	"github.com/mpetrov/raytrace/internal/scene"
	"github.com/mpetrov/raytrace/internal/shape"
	"github.com/mpetrov/raytrace/internal/vec"
)

// ParseFile reads and parses the scene file at path. Texture paths
// inside the scene file are resolved relative to the scene file's
// directory.
func ParseFile(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sceneparser: opening %q: %w: %w", path, rayerr.ErrIO, err)
	}
	defer f.Close()
	return newParser(filepath.Dir(path)).parse(f)
}

// Parse parses scene text with no base directory for relative texture
// paths (they are resolved against the process's working directory).
func Parse(r io.Reader) (*scene.Scene, error) {
	return newParser(".").parse(r)
}

type parser struct {
	baseDir string
	scene   *scene.Scene

	currentMaterial *material.Material

	haveEye, haveView, haveUp, haveFov, haveImsize, haveBg bool

	eye, view, up          vec.Vector
	fovDeg                 float64
	width, height          int
	lineNo                 int
}

func newParser(baseDir string) *parser {
	return &parser{baseDir: baseDir, scene: scene.New()}
}

func (p *parser) parse(r io.Reader) (*scene.Scene, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for sc.Scan() {
		p.lineNo++
		line := sc.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := p.dispatch(fields[0], fields[1:]); err != nil {
			return nil, p.wrap(err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("sceneparser: reading scene: %w: %w", rayerr.ErrIO, err)
	}

	if err := p.finalize(); err != nil {
		return nil, p.wrap(err)
	}
	return p.scene, nil
}

func (p *parser) wrap(err error) error {
	return fmt.Errorf("sceneparser: line %d: %w", p.lineNo, err)
}

func (p *parser) finalize() error {
	var missing []string
	if !p.haveEye {
		missing = append(missing, "eye")
	}
	if !p.haveView {
		missing = append(missing, "viewdir")
	}
	if !p.haveUp {
		missing = append(missing, "updir")
	}
	if !p.haveFov {
		missing = append(missing, "fovv")
	}
	if !p.haveImsize {
		missing = append(missing, "imsize")
	}
	if !p.haveBg {
		missing = append(missing, "bkgcolor")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required keyword(s): %s", rayerr.ErrParse, strings.Join(missing, ", "))
	}
	if p.view.IsParallel(p.up) {
		return fmt.Errorf("%w: viewdir must not be colinear with updir", rayerr.ErrParse)
	}
	p.scene.Camera = scene.Camera{
		Eye:    p.eye,
		View:   p.view,
		Up:     p.up,
		FovDeg: p.fovDeg,
		Width:  p.width,
		Height: p.height,
	}
	return nil
}

func (p *parser) dispatch(keyword string, args []string) error {
	switch keyword {
	case "eye":
		return p.parseVectorOnce(&p.haveEye, args, &p.eye, false)
	case "viewdir":
		return p.parseVectorOnce(&p.haveView, args, &p.view, true)
	case "updir":
		return p.parseVectorOnce(&p.haveUp, args, &p.up, true)
	case "fovv":
		return p.parseFovv(args)
	case "imsize":
		return p.parseImsize(args)
	case "bkgcolor":
		return p.parseBkgColor(args)
	case "mtlcolor":
		return p.parseMtlColor(args)
	case "texture":
		return p.parseTexture(args)
	case "sphere":
		return p.parseSphere(args)
	case "ellipsoid":
		return p.parseEllipsoid(args)
	case "light":
		return p.parseLight(args)
	case "spotlight":
		return p.parseSpotlight(args)
	case "parallel":
		return p.parseParallel(args)
	case "v":
		return p.parseVertex(args)
	case "vn":
		return p.parseNormal(args)
	case "vt":
		return p.parseTexCoord(args)
	case "f":
		return p.parseFace(args)
	default:
		return fmt.Errorf("%w: unknown keyword %q", rayerr.ErrParse, keyword)
	}
}

func (p *parser) parseVectorOnce(have *bool, args []string, dst *vec.Vector, requireNonzero bool) error {
	if *have {
		return fmt.Errorf("%w: duplicate keyword", rayerr.ErrParse)
	}
	v, err := parseFloatsN(args, 3)
	if err != nil {
		return err
	}
	val := vec.New(v[0], v[1], v[2])
	if requireNonzero && val.IsZero() {
		return fmt.Errorf("%w: direction must be nonzero", rayerr.ErrParse)
	}
	*dst = val
	*have = true
	return nil
}

func (p *parser) parseFovv(args []string) error {
	if p.haveFov {
		return fmt.Errorf("%w: duplicate keyword", rayerr.ErrParse)
	}
	v, err := parseFloatsN(args, 1)
	if err != nil {
		return err
	}
	if v[0] <= 0 || v[0] >= 180 {
		return fmt.Errorf("%w: fovv must be in (0,180), got %v", rayerr.ErrParse, v[0])
	}
	p.fovDeg = v[0]
	p.haveFov = true
	return nil
}

func (p *parser) parseImsize(args []string) error {
	if p.haveImsize {
		return fmt.Errorf("%w: duplicate keyword", rayerr.ErrParse)
	}
	ints, err := parseIntsN(args, 2)
	if err != nil {
		return err
	}
	if ints[0] <= 0 || ints[1] <= 0 {
		return fmt.Errorf("%w: imsize must be positive, got %d %d", rayerr.ErrParse, ints[0], ints[1])
	}
	p.width, p.height = ints[0], ints[1]
	p.haveImsize = true
	return nil
}

func (p *parser) parseBkgColor(args []string) error {
	if p.haveBg {
		return fmt.Errorf("%w: duplicate keyword", rayerr.ErrParse)
	}
	v, err := parseFloatsN(args, 3)
	if err != nil {
		return err
	}
	p.scene.Background = vec.RGB(v[0], v[1], v[2])
	p.haveBg = true
	return nil
}

func (p *parser) parseMtlColor(args []string) error {
	v, err := parseFloatsN(args, 12)
	if err != nil {
		return err
	}
	opacity, eta := v[10], v[11]
	if opacity < 0 || opacity > 1 {
		return fmt.Errorf("%w: opacity must be in [0,1], got %v", rayerr.ErrParse, opacity)
	}
	if eta < 1 {
		return fmt.Errorf("%w: refraction index must be >= 1, got %v", rayerr.ErrParse, eta)
	}
	mat := &material.Material{
		DiffuseColor:    vec.RGB(v[0], v[1], v[2]),
		SpecularColor:   vec.RGB(v[3], v[4], v[5]),
		AmbientK:        v[6],
		DiffuseK:        v[7],
		SpecularK:       v[8],
		Shininess:       int(math.Round(v[9])),
		Opacity:         opacity,
		RefractionIndex: eta,
	}
	p.scene.Materials = append(p.scene.Materials, mat)
	p.currentMaterial = mat
	return nil
}

func (p *parser) parseTexture(args []string) error {
	if len(args) == 0 {
		if p.currentMaterial != nil {
			p.currentMaterial.Texture = nil
		}
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: texture expects exactly one path argument", rayerr.ErrParse)
	}
	if p.currentMaterial == nil {
		return fmt.Errorf("%w: texture specified with no current material", rayerr.ErrParse)
	}
	path := args[0]
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.baseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: opening texture %q: %w", rayerr.ErrIO, path, err)
	}
	defer f.Close()
	img, err := ppmimage.Read(f)
	if err != nil {
		return fmt.Errorf("%w: decoding texture %q: %w", rayerr.ErrParse, path, err)
	}
	tex := &material.Texture{Image: img}
	p.scene.Textures = append(p.scene.Textures, tex)
	p.currentMaterial.Texture = tex
	return nil
}

func (p *parser) parseSphere(args []string) error {
	v, err := parseFloatsN(args, 4)
	if err != nil {
		return err
	}
	if v[3] <= 0 {
		return fmt.Errorf("%w: sphere radius must be positive, got %v", rayerr.ErrGeometry, v[3])
	}
	mat, err := p.requireMaterial()
	if err != nil {
		return err
	}
	p.scene.Shapes = append(p.scene.Shapes, &shape.Sphere{
		Center:   vec.New(v[0], v[1], v[2]),
		Radius:   v[3],
		Material: mat,
	})
	return nil
}

func (p *parser) parseEllipsoid(args []string) error {
	v, err := parseFloatsN(args, 6)
	if err != nil {
		return err
	}
	if v[3] <= 0 || v[4] <= 0 || v[5] <= 0 {
		return fmt.Errorf("%w: ellipsoid dimensions must be positive, got %v %v %v", rayerr.ErrGeometry, v[3], v[4], v[5])
	}
	mat, err := p.requireMaterial()
	if err != nil {
		return err
	}
	p.scene.Shapes = append(p.scene.Shapes, &shape.Ellipsoid{
		Center:   vec.New(v[0], v[1], v[2]),
		Dim:      vec.New(v[3], v[4], v[5]),
		Material: mat,
	})
	return nil
}

func (p *parser) parseLight(args []string) error {
	v, err := parseFloatsN(args, 7)
	if err != nil {
		return err
	}
	w := v[3]
	color := vec.RGB(v[4], v[5], v[6])
	switch w {
	case 0:
		dir := vec.New(v[0], v[1], v[2])
		if dir.IsZero() {
			return fmt.Errorf("%w: directional light direction must be nonzero", rayerr.ErrParse)
		}
		p.scene.Lights = append(p.scene.Lights, light.NewDirectional(dir, color))
	case 1:
		p.scene.Lights = append(p.scene.Lights, light.NewPoint(vec.New(v[0], v[1], v[2]), color))
	default:
		return fmt.Errorf("%w: light w must be 0 or 1, got %v", rayerr.ErrParse, w)
	}
	return nil
}

func (p *parser) parseSpotlight(args []string) error {
	v, err := parseFloatsN(args, 10)
	if err != nil {
		return err
	}
	position := vec.New(v[0], v[1], v[2])
	axis := vec.New(v[3], v[4], v[5])
	if axis.IsZero() {
		return fmt.Errorf("%w: spotlight axis must be nonzero", rayerr.ErrParse)
	}
	angle := v[6]
	if angle < 0 || angle > 360 {
		return fmt.Errorf("%w: spotlight angle must be in [0,360], got %v", rayerr.ErrParse, angle)
	}
	color := vec.RGB(v[7], v[8], v[9])
	p.scene.Lights = append(p.scene.Lights, light.NewSpot(position, axis, angle, color))
	return nil
}

func (p *parser) parseParallel(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: parallel takes no arguments", rayerr.ErrParse)
	}
	p.scene.Projection = scene.Parallel
	return nil
}

func (p *parser) parseVertex(args []string) error {
	v, err := parseFloatsN(args, 3)
	if err != nil {
		return err
	}
	p.scene.Mesh.AddVertex(vec.New(v[0], v[1], v[2]))
	return nil
}

func (p *parser) parseNormal(args []string) error {
	v, err := parseFloatsN(args, 3)
	if err != nil {
		return err
	}
	p.scene.Mesh.AddNormal(vec.New(v[0], v[1], v[2]))
	return nil
}

func (p *parser) parseTexCoord(args []string) error {
	v, err := parseFloatsN(args, 2)
	if err != nil {
		return err
	}
	p.scene.Mesh.AddTexCoord(mesh.TexCoord{U: v[0], V: v[1]})
	return nil
}

func (p *parser) parseFace(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: f expects exactly 3 corners, got %d", rayerr.ErrParse, len(args))
	}
	var corners [3]mesh.Corner
	for i, arg := range args {
		c, err := parseCorner(arg)
		if err != nil {
			return err
		}
		corners[i] = c
	}
	mat, err := p.requireMaterial()
	if err != nil {
		return err
	}
	f := &mesh.Face{Mesh: p.scene.Mesh, Corners: corners}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("%w: %v", rayerr.ErrGeometry, err)
	}
	p.scene.Shapes = append(p.scene.Shapes, &shape.Face{Face: f, Material: mat})
	return nil
}

func parseCorner(tok string) (mesh.Corner, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return mesh.Corner{}, fmt.Errorf("%w: malformed face corner %q", rayerr.ErrParse, tok)
	}
	idx := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return mesh.Corner{}, fmt.Errorf("%w: face corner %q: %v", rayerr.ErrParse, tok, err)
		}
		if n == 0 {
			return mesh.Corner{}, fmt.Errorf("%w: face corner %q: index 0 is not allowed", rayerr.ErrParse, tok)
		}
		idx[i] = n
	}
	c := mesh.Corner{VertexIndex: idx[0]}
	if len(idx) >= 2 {
		c.TexIndex = idx[1]
	}
	if len(idx) >= 3 {
		c.NormalIndex = idx[2]
	}
	return c, nil
}

func (p *parser) requireMaterial() (*material.Material, error) {
	if p.currentMaterial == nil {
		return nil, fmt.Errorf("%w: shape defined before any mtlcolor", rayerr.ErrParse)
	}
	return p.currentMaterial, nil
}

func parseFloatsN(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%w: expected %d numeric argument(s), got %d", rayerr.ErrParse, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", rayerr.ErrParse, a)
		}
		out[i] = f
	}
	return out, nil
}

func parseIntsN(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%w: expected %d integer argument(s), got %d", rayerr.ErrParse, n, len(args))
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", rayerr.ErrParse, a)
		}
		out[i] = v
	}
	return out, nil
}
