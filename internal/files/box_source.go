package files

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrylevesque/boxtrack/internal/models"
)

// BoxBatch is the JSON shape shared by the label endpoint and box files.
type BoxBatch struct {
	Boxes       []models.LabelBox   `json:"boxes"`
	Calibration *models.Calibration `json:"calibration,omitempty"`
}

// LoadBoxes reads a box list from a .json or .csv file.
func LoadBoxes(path string) ([]models.LabelBox, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadBoxesJSON(f)
	case ".csv":
		return ReadBoxesCSV(f)
	default:
		return nil, fmt.Errorf("unsupported box file type %q (want .json or .csv)", filepath.Ext(path))
	}
}

// ReadBoxesJSON accepts either a bare array of boxes or a {"boxes": [...]}
// object.
func ReadBoxesJSON(r io.Reader) ([]models.LabelBox, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty box file")
	}
	if data[0] == '[' {
		var boxes []models.LabelBox
		if err := json.Unmarshal(data, &boxes); err != nil {
			return nil, fmt.Errorf("decode boxes: %w", err)
		}
		return boxes, nil
	}
	var batch BoxBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("decode boxes: %w", err)
	}
	return batch.Boxes, nil
}

// ReadBoxesCSV reads a CSV file whose header row names an "id" column and
// optionally a "name" column, in any order and case.
func ReadBoxesCSV(r io.Reader) ([]models.LabelBox, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty box file")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	idCol, nameCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "id":
			idCol = i
		case "name":
			nameCol = i
		}
	}
	if idCol < 0 {
		return nil, errors.New("csv header has no id column")
	}

	var boxes []models.LabelBox
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		box := models.LabelBox{ID: field(rec, idCol)}
		if nameCol >= 0 {
			box.Name = field(rec, nameCol)
		}
		if box.ID == "" && box.Name == "" {
			continue
		}
		boxes = append(boxes, box)
	}
	return boxes, nil
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
