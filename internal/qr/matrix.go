// Package qr turns text payloads into QR module matrices and compact vector
// paths suitable for print output.
package qr

import (
	"fmt"
	"image/color"
	"strings"

	bqr "github.com/boombuler/barcode/qr"
	"github.com/skip2/go-qrcode"
)

// Matrix is a square QR module grid indexed [row][column]; true is a dark
// module. It never includes a quiet zone.
type Matrix [][]bool

// Size returns the number of modules per side.
func (m Matrix) Size() int {
	return len(m)
}

// Level is a QR error correction level.
type Level int

const (
	// The zero Level selects DefaultLevel.
	LevelL Level = iota + 1
	LevelM
	LevelQ
	LevelH
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = LevelM

func (l Level) String() string {
	switch l {
	case LevelL:
		return "L"
	case LevelM:
		return "M"
	case LevelQ:
		return "Q"
	case LevelH:
		return "H"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel accepts L, M, Q or H in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return LevelL, nil
	case "M":
		return LevelM, nil
	case "Q":
		return LevelQ, nil
	case "H":
		return LevelH, nil
	}
	return 0, fmt.Errorf("unknown error correction level %q", s)
}

// An Encoder builds the module matrix for content. Implementations delegate
// symbol construction to a standards conformant library and must be safe for
// concurrent use.
type Encoder interface {
	Encode(content string, level Level) (Matrix, error)
}

// Skip2Encoder encodes with github.com/skip2/go-qrcode.
type Skip2Encoder struct{}

func (Skip2Encoder) Encode(content string, level Level) (Matrix, error) {
	var rl qrcode.RecoveryLevel
	switch level {
	case LevelL:
		rl = qrcode.Low
	case LevelM:
		rl = qrcode.Medium
	case LevelQ:
		rl = qrcode.High
	case LevelH:
		rl = qrcode.Highest
	default:
		return nil, fmt.Errorf("qr: unsupported level %v", level)
	}
	q, err := qrcode.New(content, rl)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}
	q.DisableBorder = true
	return Matrix(q.Bitmap()), nil
}

// BoombulerEncoder encodes with github.com/boombuler/barcode/qr in automatic
// mode selection.
type BoombulerEncoder struct{}

func (BoombulerEncoder) Encode(content string, level Level) (Matrix, error) {
	var ec bqr.ErrorCorrectionLevel
	switch level {
	case LevelL:
		ec = bqr.L
	case LevelM:
		ec = bqr.M
	case LevelQ:
		ec = bqr.Q
	case LevelH:
		ec = bqr.H
	default:
		return nil, fmt.Errorf("qr: unsupported level %v", level)
	}
	code, err := bqr.Encode(content, ec, bqr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}
	b := code.Bounds()
	m := make(Matrix, b.Dy())
	for y := range m {
		row := make([]bool, b.Dx())
		for x := range row {
			row[x] = isDark(code.At(b.Min.X+x, b.Min.Y+y))
		}
		m[y] = row
	}
	return m, nil
}

func isDark(c color.Color) bool {
	g := color.GrayModel.Convert(c).(color.Gray)
	return g.Y < 0x80
}

// DefaultEncoder is used when Options.Encoder is nil.
var DefaultEncoder Encoder = Skip2Encoder{}

// EncoderByName returns the encoder registered under name ("skip2" or
// "boombuler"). The empty name selects the default.
func EncoderByName(name string) (Encoder, error) {
	switch name {
	case "", "skip2":
		return Skip2Encoder{}, nil
	case "boombuler":
		return BoombulerEncoder{}, nil
	}
	return nil, fmt.Errorf("qr: unknown encoder %q", name)
}

// EncodeToModuleMatrix encodes content with the default encoder.
func EncodeToModuleMatrix(content string, level Level) (Matrix, error) {
	if level == 0 {
		level = DefaultLevel
	}
	return DefaultEncoder.Encode(content, level)
}

// EstimateQRVersion reports the symbol version (1 to 40) that opts.Encoder
// picks for content at opts.Level.
func EstimateQRVersion(content string, opts Options) (int, error) {
	opts = opts.withDefaults()
	m, err := opts.Encoder.Encode(content, opts.Level)
	if err != nil {
		return 0, err
	}
	return versionForSize(m.Size()), nil
}

func versionForSize(n int) int {
	return (n - 17) / 4
}
