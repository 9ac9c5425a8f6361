// Package ppmimage implements the PPM P3 (ASCII) image codec: the
// renderer's output format, and the format textures are loaded from.
// It is a collaborator, not part of the rendering core, following the
// teacher's pattern of a small dependency-free function pair around
// image.Image (see cmd/example/main.go's writeImage).
package ppmimage

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/mpetrov/raytrace/internal/vec"
)

// Image is a width x height grid of 8-bit RGB triples, row-major,
// y-down, per the spec's Image/Texture data type.
type Image struct {
	Width, Height int
	Pixels        []vec.RGB8
}

// NewImage allocates a zeroed image of the given dimensions.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]vec.RGB8, width*height),
	}
}

func (img *Image) index(x, y int) int {
	return y*img.Width + x
}

// At returns the pixel at (x,y); x in [0,width), y in [0,height).
func (img *Image) At(x, y int) vec.RGB8 {
	return img.Pixels[img.index(x, y)]
}

// Set writes the pixel at (x,y).
func (img *Image) Set(x, y int, c vec.RGB8) {
	img.Pixels[img.index(x, y)] = c
}

// Write encodes img as PPM P3 ASCII: header "P3\n<W> <H>\n255\n"
// followed by W*H whitespace-separated triples in row-major order.
func Write(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("ppmimage: write header: %w", err)
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.At(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B); err != nil {
				return fmt.Errorf("ppmimage: write pixel (%d,%d): %w", x, y, err)
			}
		}
	}
	return bw.Flush()
}

// tokenScanner reads whitespace-separated tokens from an io.Reader.
// It does not remove comments itself: Read passes its input through
// stripComments first, so '#' to end-of-line text never reaches it.
type tokenScanner struct {
	sc *bufio.Scanner
}

func newTokenScanner(r io.Reader) *tokenScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)
	return &tokenScanner{sc: sc}
}

// next returns the next token that does not start with '#', or an
// error (io.EOF when none remain). A '#'-prefixed token is skipped on
// its own; the words after it on the same line are still returned.
func (ts *tokenScanner) next() (string, error) {
	for ts.sc.Scan() {
		tok := ts.sc.Text()
		if len(tok) == 0 {
			continue
		}
		if tok[0] == '#' {
			continue
		}
		return tok, nil
	}
	if err := ts.sc.Err(); err != nil {
		return "", fmt.Errorf("ppmimage: scan: %w", err)
	}
	return "", io.EOF
}

// Read decodes a PPM P3 image. Comment lines (starting with '#') are
// stripped before parsing. A maxval other than 255 scales channels
// linearly to 255.
func Read(r io.Reader) (*Image, error) {
	lines := stripComments(r)
	ts := newTokenScanner(lines)

	magic, err := ts.next()
	if err != nil {
		return nil, fmt.Errorf("ppmimage: reading magic number: %w", err)
	}
	if magic != "P3" {
		return nil, fmt.Errorf("ppmimage: unsupported magic number %q, want P3", magic)
	}

	width, err := readInt(ts)
	if err != nil {
		return nil, fmt.Errorf("ppmimage: reading width: %w", err)
	}
	height, err := readInt(ts)
	if err != nil {
		return nil, fmt.Errorf("ppmimage: reading height: %w", err)
	}
	maxVal, err := readInt(ts)
	if err != nil {
		return nil, fmt.Errorf("ppmimage: reading maxval: %w", err)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ppmimage: invalid dimensions %dx%d", width, height)
	}
	if maxVal <= 0 {
		return nil, fmt.Errorf("ppmimage: invalid maxval %d", maxVal)
	}

	img := NewImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, err := readInt(ts)
			if err != nil {
				return nil, fmt.Errorf("ppmimage: reading red at (%d,%d): %w", x, y, err)
			}
			g, err := readInt(ts)
			if err != nil {
				return nil, fmt.Errorf("ppmimage: reading green at (%d,%d): %w", x, y, err)
			}
			b, err := readInt(ts)
			if err != nil {
				return nil, fmt.Errorf("ppmimage: reading blue at (%d,%d): %w", x, y, err)
			}
			img.Set(x, y, vec.RGB8{
				R: scaleChannel(r, maxVal),
				G: scaleChannel(g, maxVal),
				B: scaleChannel(b, maxVal),
			})
		}
	}
	return img, nil
}

func scaleChannel(value, maxVal int) uint8 {
	if maxVal == 255 {
		return uint8(value)
	}
	scaled := value * 255 / maxVal
	if scaled < 0 {
		scaled = 0
	}
	if scaled > 255 {
		scaled = 255
	}
	return uint8(scaled)
}

func readInt(ts *tokenScanner) (int, error) {
	tok, err := ts.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("ppmimage: %q is not an integer: %w", tok, err)
	}
	return n, nil
}

// stripComments returns a reader equivalent to r with every '#' to
// end-of-line comment removed, so the token scanner never has to
// special-case comment content embedded in an otherwise-numeric line.
func stripComments(r io.Reader) io.Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var out bytes.Buffer
	for sc.Scan() {
		line := sc.Text()
		if idx := bytes.IndexByte([]byte(line), '#'); idx >= 0 {
			line = line[:idx]
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return &out
}
