package render

import (
	"fmt"
	"math"

	"github.com/harrylevesque/boxtrack/internal/labels"
	"github.com/harrylevesque/boxtrack/internal/utils"
)

// zoneSpec is the vertical split of one label block.
type zoneSpec struct {
	header      float64
	qrBody      float64
	void        float64
	labelWidth  float64
	labelHeight float64
	qrSize      float64
}

var avery5168 = zoneSpec{
	header:      labels.HeaderZonePt,
	qrBody:      labels.QRZonePt,
	void:        labels.VoidZonePt,
	labelWidth:  labels.LabelWidthPt,
	labelHeight: labels.LabelHeightPt,
	qrSize:      labels.QRSizePt,
}

// checkZones refuses layouts whose zones overlap, leave a gap, or cannot
// hold the QR code.
func checkZones(z zoneSpec) error {
	fail := func(format string, args ...interface{}) error {
		return utils.NewError(utils.KindConfiguration, "configuration", fmt.Sprintf(format, args...))
	}
	for name, v := range map[string]float64{"header": z.header, "qr body": z.qrBody, "void": z.void} {
		if v < 0 {
			return fail("%s zone height %g is negative", name, v)
		}
	}
	if sum := z.header + z.qrBody + z.void; math.Abs(sum-z.labelHeight) > 1e-9 {
		return fail("zone heights %g+%g+%g=%g do not match label height %g", z.header, z.qrBody, z.void, sum, z.labelHeight)
	}
	if z.qrSize <= 0 || z.qrSize > z.qrBody || z.qrSize > z.labelWidth {
		return fail("qr size %g does not fit a %gx%g zone", z.qrSize, z.labelWidth, z.qrBody)
	}
	return nil
}
