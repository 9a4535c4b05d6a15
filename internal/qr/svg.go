package qr

import (
	"bytes"
	"context"
	"encoding/base64"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/harrylevesque/boxtrack/internal/utils"
)

// GenerateQRSvg returns a standalone SVG document for content: a white
// square of opts.Size (rounded to whole units) with the dark modules drawn
// as one path.
func GenerateQRSvg(content string, opts Options) (string, error) {
	opts = opts.withDefaults()
	px := int(math.Round(opts.Size))
	if px < 1 {
		px = 1
	}
	opts.Size = float64(px)

	code, err := GenerateQRPath(content, opts)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(px, px, 0, 0, px, px)
	canvas.Rect(0, 0, px, px, "fill:#ffffff")
	canvas.Path(code.Path, "fill:#000000")
	canvas.End()
	return buf.String(), nil
}

// GenerateQRDataURL returns the SVG of GenerateQRSvg as a base64 data URL.
func GenerateQRDataURL(content string, opts Options) (string, error) {
	doc, err := GenerateQRSvg(content, opts)
	if err != nil {
		return "", err
	}
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(doc)), nil
}

// GenerateQRDataURLs builds one data URL per entry of contents, in order.
// Entries are encoded concurrently; the first failure fails the batch.
func GenerateQRDataURLs(ctx context.Context, contents []string, opts Options) ([]string, error) {
	return utils.ParallelMap(ctx, contents, 0, func(content string) (string, error) {
		return GenerateQRDataURL(content, opts)
	})
}
