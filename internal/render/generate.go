package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harrylevesque/boxtrack/internal/labels"
	"github.com/harrylevesque/boxtrack/internal/models"
	"github.com/harrylevesque/boxtrack/internal/qr"
	"github.com/harrylevesque/boxtrack/internal/utils"
)

// Options configures GenerateLabelPDF. The zero value prints against
// labels.DefaultBaseURL without calibration.
type Options struct {
	Calibration models.Calibration
	BaseURL     string
	QR          qr.Options
	// Workers bounds concurrent QR encodings; 0 means GOMAXPROCS.
	Workers  int
	Renderer *Renderer
	Logger   *utils.Logger
}

// ValidateRequest rejects an empty batch, boxes without an id, and
// calibration offsets outside ±models.MaxCalibration.
func ValidateRequest(boxes []models.LabelBox, cal models.Calibration) error {
	if len(boxes) == 0 {
		return utils.NewError(utils.KindInvalidInput, "", "no boxes to label")
	}
	for i, b := range boxes {
		if strings.TrimSpace(b.ID) == "" {
			return utils.NewError(utils.KindInvalidInput, fmt.Sprintf("boxes[%d]", i), "box id is empty")
		}
	}
	if err := cal.Validate(); err != nil {
		return utils.WrapError(utils.KindCalibration, "calibration", err)
	}
	return nil
}

// GenerateLabelPDF renders one label per box, four to a sheet in input
// order, and returns the PDF document. Nothing is written anywhere else.
func GenerateLabelPDF(ctx context.Context, boxes []models.LabelBox, opts Options) ([]byte, error) {
	if err := ValidateRequest(boxes, opts.Calibration); err != nil {
		return nil, err
	}
	start := time.Now()

	data, err := labels.Prepare(ctx, boxes, labels.PrepareOptions{
		BaseURL: opts.BaseURL,
		QR:      opts.QR,
		Workers: opts.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("prepare labels: %w", err)
	}
	pages := labels.Paginate(data)

	r := opts.Renderer
	if r == nil {
		r = &Renderer{}
	}
	out, err := r.Render(pages, opts.Calibration)
	if err != nil {
		return nil, fmt.Errorf("render labels: %w", err)
	}
	opts.Logger.Infof("rendered %d labels on %d pages (%d bytes) in %s",
		len(boxes), len(pages), len(out), time.Since(start).Round(time.Millisecond))
	return out, nil
}
