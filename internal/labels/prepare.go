package labels

import (
	"context"

	"github.com/harrylevesque/boxtrack/internal/models"
	"github.com/harrylevesque/boxtrack/internal/qr"
	"github.com/harrylevesque/boxtrack/internal/utils"
)

// LabelData is everything needed to draw one label.
type LabelData struct {
	Box         models.LabelBox
	URL         string
	DisplayID   string
	QRPath      string
	QRSize      float64
	ModuleCount int
}

// PrepareOptions configures Prepare. The zero value encodes against
// DefaultBaseURL with the qr package defaults.
type PrepareOptions struct {
	BaseURL string
	// QR.Size is ignored; labels always use QRSizePt.
	QR qr.Options
	// Workers bounds the number of concurrent encodings; 0 means GOMAXPROCS.
	Workers int
}

// Prepare builds the label data for boxes, one entry per box in input order.
// Boxes are encoded concurrently; if any box fails the whole batch fails
// with a utils.KindEncoding error naming that box.
//
// Prepare does not reject empty ids.
func Prepare(ctx context.Context, boxes []models.LabelBox, opts PrepareOptions) ([]LabelData, error) {
	qrOpts := opts.QR
	qrOpts.Size = QRSizePt
	return utils.ParallelMap(ctx, boxes, opts.Workers, func(box models.LabelBox) (LabelData, error) {
		return prepareOne(box, opts.BaseURL, qrOpts)
	})
}

func prepareOne(box models.LabelBox, baseURL string, opts qr.Options) (LabelData, error) {
	url := GenerateBoxURL(box.ID, baseURL)
	code, err := qr.GenerateQRPath(url, opts)
	if err != nil {
		return LabelData{}, utils.WrapError(utils.KindEncoding, box.ID, err)
	}
	return LabelData{
		Box:         box,
		URL:         url,
		DisplayID:   FormatBoxID(box.ID),
		QRPath:      code.Path,
		QRSize:      code.Size,
		ModuleCount: code.ModuleCount,
	}, nil
}
