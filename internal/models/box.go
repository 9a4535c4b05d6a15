package models

import (
	"fmt"
	"math"
)

// MaxCalibration is the largest calibration offset per axis, in points (0.5in).
const MaxCalibration = 36.0

// LabelBox is one box to print a label for.
type LabelBox struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Calibration shifts every label on every page by (X, Y) points to make up
// for printer feed misalignment.
type Calibration struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Validate rejects offsets outside [-MaxCalibration, MaxCalibration].
// Values are never clamped.
func (c Calibration) Validate() error {
	if err := checkAxis("x", c.X); err != nil {
		return err
	}
	return checkAxis("y", c.Y)
}

func checkAxis(name string, v float64) error {
	if math.IsNaN(v) || v < -MaxCalibration || v > MaxCalibration {
		return fmt.Errorf("calibration %s offset %g outside [-%g, %g] points", name, v, MaxCalibration, MaxCalibration)
	}
	return nil
}
