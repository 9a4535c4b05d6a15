// Package render lays out prepared labels on Avery 5168 sheets and writes
// the result as a PDF document.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/text/unicode/norm"

	"github.com/harrylevesque/boxtrack/internal/labels"
	"github.com/harrylevesque/boxtrack/internal/models"
	"github.com/harrylevesque/boxtrack/internal/qr"
	"github.com/harrylevesque/boxtrack/internal/utils"
)

const (
	idFont   = "GoMonoBold"
	nameFont = "GoMono"

	headerPad     = 12.0
	idTop         = 14.0
	idLineHeight  = 30.0
	idFontSize    = 30.0
	minIDFontSize = 10.0
	nameTop       = 48.0
	nameFontSize  = 9.0
	nameLine      = 12.0
)

// Placement is a label block at its final position on the sheet, calibration
// included.
type Placement struct {
	Slot labels.Slot
	X, Y float64
}

// PagePlan is everything drawn on one sheet.
type PagePlan struct {
	Index      int
	Placements []Placement
}

// Layout adds cal to the base position of every slot on every page.
func Layout(pages []labels.Page, cal models.Calibration) []PagePlan {
	plans := make([]PagePlan, len(pages))
	for i, page := range pages {
		placements := make([]Placement, len(page.Slots))
		for j, slot := range page.Slots {
			placements[j] = Placement{
				Slot: slot,
				X:    slot.Position.X + cal.X,
				Y:    slot.Position.Y + cal.Y,
			}
		}
		plans[i] = PagePlan{Index: page.Index, Placements: placements}
	}
	return plans
}

// Renderer writes label sheets as PDF. The zero value is ready to use.
type Renderer struct {
	Title   string
	Creator string
	// CreationDate is stamped into the document info as both creation and
	// modification date; zero means now.
	CreationDate time.Time
}

// Render draws pages and returns the PDF bytes. The calibration offset is
// applied as given; range checks are the caller's job.
func (r *Renderer) Render(pages []labels.Page, cal models.Calibration) ([]byte, error) {
	if len(pages) == 0 {
		return nil, utils.NewError(utils.KindInvalidInput, "", "no pages to render")
	}
	doc, err := r.draw(Layout(pages, cal))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) draw(plans []PagePlan) (*fpdf.Fpdf, error) {
	if err := checkZones(avery5168); err != nil {
		return nil, err
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: labels.SheetWidthPt, Ht: labels.SheetHeightPt},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCatalogSort(true)
	if r.Title != "" {
		doc.SetTitle(r.Title, true)
	}
	if r.Creator != "" {
		doc.SetCreator(r.Creator, true)
	}
	if !r.CreationDate.IsZero() {
		doc.SetCreationDate(r.CreationDate)
		doc.SetModificationDate(r.CreationDate)
	}
	doc.AddUTF8FontFromBytes(idFont, "", gomonobold.TTF)
	doc.AddUTF8FontFromBytes(nameFont, "", gomono.TTF)

	for _, plan := range plans {
		doc.AddPage()
		for _, p := range plan.Placements {
			if err := drawLabel(doc, p); err != nil {
				return nil, err
			}
		}
	}
	if doc.Err() {
		return nil, fmt.Errorf("render: %w", doc.Error())
	}
	return doc, nil
}

// drawLabel fills the header and QR zones of one block. The void zone below
// the QR code stays blank for handwriting.
func drawLabel(doc *fpdf.Fpdf, p Placement) error {
	l := p.Slot.Label
	drawHeader(doc, p.X, p.Y, l)

	rects, err := qr.ParsePath(l.QRPath)
	if err != nil {
		return utils.WrapError(utils.KindEncoding, l.Box.ID, err)
	}
	qx := p.X + (labels.LabelWidthPt-l.QRSize)/2
	qy := p.Y + labels.HeaderZonePt + (labels.QRZonePt-l.QRSize)/2

	doc.SetFillColor(255, 255, 255)
	doc.Rect(qx, qy, l.QRSize, l.QRSize, "F")
	if len(rects) == 0 {
		return nil
	}
	doc.SetFillColor(0, 0, 0)
	for _, r := range rects {
		doc.MoveTo(qx+r.X, qy+r.Y)
		doc.LineTo(qx+r.X+r.W, qy+r.Y)
		doc.LineTo(qx+r.X+r.W, qy+r.Y+r.H)
		doc.LineTo(qx+r.X, qy+r.Y+r.H)
		doc.ClosePath()
	}
	doc.DrawPath("F")
	return nil
}

func drawHeader(doc *fpdf.Fpdf, x, y float64, l labels.LabelData) {
	width := labels.LabelWidthPt - 2*headerPad
	doc.SetTextColor(0, 0, 0)

	size := idFontSize
	doc.SetFont(idFont, "", size)
	if w := doc.GetStringWidth(l.DisplayID); w > width {
		size = max(minIDFontSize, size*width/w)
		doc.SetFont(idFont, "", size)
	}
	doc.SetXY(x+headerPad, y+idTop)
	doc.CellFormat(width, idLineHeight, l.DisplayID, "", 0, "C", false, 0, "")

	name := norm.NFC.String(strings.TrimSpace(l.Box.Name))
	if name == "" {
		return
	}
	doc.SetFont(nameFont, "", nameFontSize)
	doc.SetXY(x+headerPad, y+nameTop)
	doc.CellFormat(width, nameLine, fitText(doc, name, width), "", 0, "C", false, 0, "")
}

// fitText shortens s with a trailing ellipsis until it fits width in the
// current font.
func fitText(doc *fpdf.Fpdf, s string, width float64) string {
	if doc.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		t := strings.TrimRight(string(r), " ") + "…"
		if doc.GetStringWidth(t) <= width {
			return t
		}
	}
	return ""
}
