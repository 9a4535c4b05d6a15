// Package labels holds the Avery 5168 sheet geometry and turns box records
// into paginated, print-ready label data.
package labels

// Unit conversion factors.
const (
	PointsPerInch = 72.0
	PointsPerMm   = 2.834645669
)

// US Letter sheet.
const (
	SheetWidthIn  = 8.5
	SheetHeightIn = 11.0
	SheetWidthPt  = SheetWidthIn * PointsPerInch
	SheetHeightPt = SheetHeightIn * PointsPerInch
)

// Avery 5168 label: 3.5in × 5in, four per sheet.
const (
	LabelWidthIn  = 3.5
	LabelHeightIn = 5.0
	LabelWidthPt  = LabelWidthIn * PointsPerInch
	LabelHeightPt = LabelHeightIn * PointsPerInch
)

// Sheet margins, equal on all four sides.
const (
	MarginIn       = 0.5
	MarginTopPt    = MarginIn * PointsPerInch
	MarginBottomPt = MarginIn * PointsPerInch
	MarginLeftPt   = MarginIn * PointsPerInch
	MarginRightPt  = MarginIn * PointsPerInch
)

// Space between neighbouring labels. Rows touch.
const (
	GutterHorizontalPt = 0.5 * PointsPerInch
	GutterVerticalPt   = 0.0
)

// Grid of labels on one sheet.
const (
	Columns       = 2
	Rows          = 2
	LabelsPerPage = Columns * Rows
)

// Vertical zones of one label, top to bottom. They partition LabelHeightPt.
const (
	HeaderZonePt = 1.0 * PointsPerInch
	QRZonePt     = 3.0 * PointsPerInch
	VoidZonePt   = 1.0 * PointsPerInch
)

// QRSizePt is the edge length of the printed QR code.
const QRSizePt = 216.0

func InchesToPoints(in float64) float64 { return in * PointsPerInch }

func PointsToInches(pt float64) float64 { return pt / PointsPerInch }

func MmToPoints(mm float64) float64 { return mm * PointsPerMm }

func PointsToMm(pt float64) float64 { return pt / PointsPerMm }

// Position is the top-left corner of one label slot, in points from the
// top-left corner of the sheet.
type Position struct {
	X, Y   float64
	Column int
	Row    int
	Index  int
}

// LabelPosition returns the slot at index (0 top-left, 1 top-right,
// 2 bottom-left, 3 bottom-right). ok is false outside 0..LabelsPerPage-1.
func LabelPosition(index int) (pos Position, ok bool) {
	if index < 0 || index >= LabelsPerPage {
		return Position{}, false
	}
	col := index % Columns
	row := index / Columns
	return Position{
		X:      MarginLeftPt + float64(col)*(LabelWidthPt+GutterHorizontalPt),
		Y:      MarginTopPt + float64(row)*(LabelHeightPt+GutterVerticalPt),
		Column: col,
		Row:    row,
		Index:  index,
	}, true
}

var slotPositions = func() [LabelsPerPage]Position {
	var all [LabelsPerPage]Position
	for i := range all {
		all[i], _ = LabelPosition(i)
	}
	return all
}()

// LabelPositions returns all slots of a sheet in row-major order.
func LabelPositions() [LabelsPerPage]Position {
	return slotPositions
}

// CalculatePageCount returns the number of sheets needed for n labels.
func CalculatePageCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + LabelsPerPage - 1) / LabelsPerPage
}

// ChunkIntoPages splits items into consecutive chunks of at most
// LabelsPerPage, preserving order. The chunks share items' backing array.
func ChunkIntoPages[T any](items []T) [][]T {
	if len(items) == 0 {
		return nil
	}
	pages := make([][]T, 0, CalculatePageCount(len(items)))
	for start := 0; start < len(items); start += LabelsPerPage {
		end := min(start+LabelsPerPage, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages
}
