package labels

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/harrylevesque/boxtrack/internal/models"
	"github.com/harrylevesque/boxtrack/internal/qr"
	"github.com/harrylevesque/boxtrack/internal/utils"
)

func testBoxes(n int) []models.LabelBox {
	boxes := make([]models.LabelBox, n)
	for i := range boxes {
		boxes[i] = models.LabelBox{ID: fmt.Sprintf("b%d", i+1), Name: fmt.Sprintf("Box %d", i+1)}
	}
	return boxes
}

func TestPrepareKeepsOrder(t *testing.T) {
	boxes := testBoxes(11)
	for _, workers := range []int{0, 1, 3, 32} {
		got, err := Prepare(context.Background(), boxes, PrepareOptions{Workers: workers})
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if len(got) != len(boxes) {
			t.Fatalf("workers=%d: %d labels, want %d", workers, len(got), len(boxes))
		}
		for i, l := range got {
			if l.Box != boxes[i] {
				t.Errorf("workers=%d: label %d is for %+v, want %+v", workers, i, l.Box, boxes[i])
			}
			if want := GenerateBoxURL(boxes[i].ID, ""); l.URL != want {
				t.Errorf("label %d URL = %q, want %q", i, l.URL, want)
			}
			if want := FormatBoxID(boxes[i].ID); l.DisplayID != want {
				t.Errorf("label %d DisplayID = %q, want %q", i, l.DisplayID, want)
			}
			if l.QRSize != QRSizePt || l.QRPath == "" || l.ModuleCount < 21 {
				t.Errorf("label %d has QR size %g, %d modules, path length %d", i, l.QRSize, l.ModuleCount, len(l.QRPath))
			}
		}
	}
}

func TestPrepareMatchesDirectEncoding(t *testing.T) {
	boxes := []models.LabelBox{{ID: "box_abc123"}, {ID: "a1b2c3d4-e5f6-7890-abcd-ef1234567890"}}
	got, err := Prepare(context.Background(), boxes, PrepareOptions{BaseURL: "http://localhost:3000"})
	if err != nil {
		t.Fatal(err)
	}
	for i, b := range boxes {
		code, err := qr.GenerateQRPath("http://localhost:3000/box/"+b.ID, qr.Options{Size: QRSizePt})
		if err != nil {
			t.Fatal(err)
		}
		if got[i].QRPath != code.Path {
			t.Errorf("label %d path differs from a direct encoding", i)
		}
	}
}

func TestPrepareAllowsEmptyAndDuplicateIDs(t *testing.T) {
	boxes := []models.LabelBox{{ID: ""}, {ID: "b1"}, {ID: "b1"}}
	got, err := Prepare(context.Background(), boxes, PrepareOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("%d labels, want 3", len(got))
	}
	if got[1].QRPath != got[2].QRPath {
		t.Error("duplicate ids produced different QR paths")
	}
}

func TestPrepareEncodingFailureFailsBatch(t *testing.T) {
	long := strings.Repeat("x", 4000)
	boxes := []models.LabelBox{{ID: "b1"}, {ID: long}, {ID: "b3"}}
	got, err := Prepare(context.Background(), boxes, PrepareOptions{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if got != nil {
		t.Errorf("partial result returned: %d labels", len(got))
	}
	if k := utils.KindOf(err); k != utils.KindEncoding {
		t.Errorf("KindOf = %v, want %v", k, utils.KindEncoding)
	}
	if !strings.Contains(err.Error(), long) {
		t.Error("error does not name the failing box")
	}
}

func TestPrepareCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Prepare(ctx, testBoxes(40), PrepareOptions{Workers: 1}); err == nil {
		t.Error("expected a cancellation error")
	}
}

func TestPrepareEmpty(t *testing.T) {
	got, err := Prepare(context.Background(), nil, PrepareOptions{})
	if err != nil || len(got) != 0 {
		t.Errorf("Prepare(nil) = %v, %v", got, err)
	}
}

func TestPrepareWithBoombuler(t *testing.T) {
	got, err := Prepare(context.Background(), testBoxes(3), PrepareOptions{
		QR: qr.Options{Encoder: qr.BoombulerEncoder{}, Level: qr.LevelH},
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, l := range got {
		rects, err := qr.ParsePath(l.QRPath)
		if err != nil || len(rects) == 0 {
			t.Errorf("label %d: %d rects, %v", i, len(rects), err)
		}
	}
}
