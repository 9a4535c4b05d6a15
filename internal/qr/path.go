package qr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultSize is the rendered edge length of a label QR code, in points.
const DefaultSize = 216.0

// CodeData is a QR code as a vector path scaled to Size.
type CodeData struct {
	// Path is SVG path data made of one closed rectangle per dark run.
	Path        string
	ModuleCount int
	ModuleSize  float64
	Size        float64
}

// Options controls QR generation. The zero value means DefaultSize,
// DefaultLevel and DefaultEncoder.
type Options struct {
	Size    float64
	Level   Level
	Encoder Encoder
}

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.Level == 0 {
		o.Level = DefaultLevel
	}
	if o.Encoder == nil {
		o.Encoder = DefaultEncoder
	}
	return o
}

// GenerateQRPath encodes content and compresses the matrix into a path.
func GenerateQRPath(content string, opts Options) (CodeData, error) {
	opts = opts.withDefaults()
	m, err := opts.Encoder.Encode(content, opts.Level)
	if err != nil {
		return CodeData{}, err
	}
	if m.Size() == 0 {
		return CodeData{}, fmt.Errorf("qr: encoder returned an empty matrix")
	}
	return CodeData{
		Path:        CompressMatrix(m, opts.Size),
		ModuleCount: m.Size(),
		ModuleSize:  opts.Size / float64(m.Size()),
		Size:        opts.Size,
	}, nil
}

// CompressMatrix run-length encodes every row of m into rectangles of the
// form "Mx,yhWvHh-Wz", where the whole matrix spans size×size units.
//
// Column n is scanned as a light sentinel so a run touching the right edge
// is closed like any other.
func CompressMatrix(m Matrix, size float64) string {
	n := m.Size()
	if n == 0 {
		return ""
	}
	ms := size / float64(n)

	var b strings.Builder
	for r, row := range m {
		y0 := round2(float64(r) * ms)
		y1 := round2(float64(r+1) * ms)
		start := -1
		for c := 0; c <= n; c++ {
			dark := c < n && c < len(row) && row[c]
			switch {
			case dark && start < 0:
				start = c
			case !dark && start >= 0:
				x0 := round2(float64(start) * ms)
				x1 := round2(float64(c) * ms)
				writeRect(&b, x0, y0, round2(x1-x0), round2(y1-y0))
				start = -1
			}
		}
	}
	return b.String()
}

func writeRect(b *strings.Builder, x, y, w, h float64) {
	b.WriteByte('M')
	b.WriteString(formatCoord(x))
	b.WriteByte(',')
	b.WriteString(formatCoord(y))
	b.WriteByte('h')
	b.WriteString(formatCoord(w))
	b.WriteByte('v')
	b.WriteString(formatCoord(h))
	b.WriteString("h-")
	b.WriteString(formatCoord(w))
	b.WriteByte('z')
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NaiveRectCount is the number of rectangles a one-per-module rendering of m
// would need.
func NaiveRectCount(m Matrix) int {
	count := 0
	for _, row := range m {
		for _, dark := range row {
			if dark {
				count++
			}
		}
	}
	return count
}

// Rect is an axis aligned rectangle from a compressed path.
type Rect struct {
	X, Y, W, H float64
}

// ParsePath reads back a path produced by CompressMatrix.
func ParsePath(path string) ([]Rect, error) {
	var rects []Rect
	rest := path
	for rest != "" {
		end := strings.IndexByte(rest, 'z')
		if end < 0 {
			return nil, fmt.Errorf("qr: unterminated path segment %q", rest)
		}
		r, err := parseRect(rest[:end])
		if err != nil {
			return nil, err
		}
		rects = append(rects, r)
		rest = rest[end+1:]
	}
	return rects, nil
}

// parseRect parses "Mx,yhWvHh-W".
func parseRect(seg string) (Rect, error) {
	bad := func() (Rect, error) {
		return Rect{}, fmt.Errorf("qr: malformed path segment %q", seg)
	}
	if !strings.HasPrefix(seg, "M") {
		return bad()
	}
	seg = seg[1:]
	hi := strings.IndexByte(seg, 'h')
	vi := strings.IndexByte(seg, 'v')
	if hi < 0 || vi < hi {
		return bad()
	}
	back := strings.Index(seg[vi:], "h-")
	if back < 0 {
		return bad()
	}
	back += vi

	x, y, ok := strings.Cut(seg[:hi], ",")
	if !ok {
		return bad()
	}
	var vals [5]float64
	for i, s := range []string{x, y, seg[hi+1 : vi], seg[vi+1 : back], seg[back+2:]} {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return bad()
		}
		vals[i] = v
	}
	if vals[2] != vals[4] {
		return bad()
	}
	return Rect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}

// RectsToMatrix rasterises rects back onto an n×n module grid of the given
// overall size, marking every module whose centre lies inside a rectangle.
func RectsToMatrix(rects []Rect, n int, size float64) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]bool, n)
	}
	ms := size / float64(n)
	for _, r := range rects {
		for row := 0; row < n; row++ {
			cy := (float64(row) + 0.5) * ms
			if cy < r.Y || cy > r.Y+r.H {
				continue
			}
			for col := 0; col < n; col++ {
				cx := (float64(col) + 0.5) * ms
				if cx >= r.X && cx <= r.X+r.W {
					m[row][col] = true
				}
			}
		}
	}
	return m
}
