package qr

import (
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"l": LevelL, "M": LevelM, " q ": LevelQ, "H": LevelH} {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("X"); err == nil {
		t.Error("ParseLevel(X) should fail")
	}
}

func TestEncodersProduceSquareMatrices(t *testing.T) {
	encoders := map[string]Encoder{
		"skip2":     Skip2Encoder{},
		"boombuler": BoombulerEncoder{},
	}
	contents := []string{
		"https://boxtrack.app/box/abc123",
		"https://boxtrack.app/box/a1b2c3d4-e5f6-7890-abcd-ef1234567890",
		"HELLO WORLD",
		"Grüße aus der Garage",
	}
	for name, enc := range encoders {
		for _, content := range contents {
			for _, level := range []Level{LevelL, LevelM, LevelQ, LevelH} {
				m, err := enc.Encode(content, level)
				if err != nil {
					t.Fatalf("%s: Encode(%q, %v): %v", name, content, level, err)
				}
				n := m.Size()
				if n < 21 || (n-17)%4 != 0 {
					t.Errorf("%s: %q/%v: %d modules is not a QR symbol size", name, content, level, n)
				}
				for r, row := range m {
					if len(row) != n {
						t.Fatalf("%s: row %d has %d modules, want %d", name, r, len(row), n)
					}
				}
				// Top-left finder pattern: dark corner, light separator.
				if !m[0][0] || !m[6][6] || m[7][7] {
					t.Errorf("%s: %q/%v: finder pattern missing, matrix includes a quiet zone?", name, content, level)
				}
			}
		}
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	a, err := EncodeToModuleMatrix("https://boxtrack.app/box/b1", LevelM)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncodeToModuleMatrix("https://boxtrack.app/box/b1", LevelM)
	if err != nil {
		t.Fatal(err)
	}
	if CompressMatrix(a, 100) != CompressMatrix(b, 100) {
		t.Error("two encodings of the same content differ")
	}
}

func TestEncodeTooLong(t *testing.T) {
	content := strings.Repeat("x", 3000)
	if _, err := (Skip2Encoder{}).Encode(content, LevelL); err == nil {
		t.Error("skip2: expected an error for 3000 bytes")
	}
	if _, err := (BoombulerEncoder{}).Encode(content, LevelL); err == nil {
		t.Error("boombuler: expected an error for 3000 bytes")
	}
}

func TestEstimateQRVersion(t *testing.T) {
	short, err := EstimateQRVersion("b1", Options{Level: LevelM})
	if err != nil {
		t.Fatal(err)
	}
	if short != 1 {
		t.Errorf("version for a 2 byte payload = %d, want 1", short)
	}

	content := "https://boxtrack.app/box/a1b2c3d4-e5f6-7890-abcd-ef1234567890"
	low, err := EstimateQRVersion(content, Options{Level: LevelL})
	if err != nil {
		t.Fatal(err)
	}
	high, err := EstimateQRVersion(content, Options{Level: LevelH})
	if err != nil {
		t.Fatal(err)
	}
	if low < 1 || high > 40 || high < low {
		t.Errorf("versions L=%d H=%d are not ordered within 1..40", low, high)
	}
}

func TestEstimateQRVersionUsesEncoder(t *testing.T) {
	content := "https://boxtrack.app/box/kitchen-utensils-drawer"
	for _, enc := range []Encoder{Skip2Encoder{}, BoombulerEncoder{}} {
		m, err := enc.Encode(content, LevelQ)
		if err != nil {
			t.Fatal(err)
		}
		got, err := EstimateQRVersion(content, Options{Level: LevelQ, Encoder: enc})
		if err != nil {
			t.Fatal(err)
		}
		if want := (m.Size() - 17) / 4; got != want {
			t.Errorf("%T: version %d, want %d from a %d module matrix", enc, got, want, m.Size())
		}
	}

	_, err := EstimateQRVersion(strings.Repeat("x", 3000), Options{Level: LevelL, Encoder: BoombulerEncoder{}})
	if err == nil {
		t.Error("boombuler accepted a payload over capacity")
	}
}

func TestEncoderByName(t *testing.T) {
	for _, name := range []string{"", "skip2", "boombuler"} {
		if _, err := EncoderByName(name); err != nil {
			t.Errorf("EncoderByName(%q): %v", name, err)
		}
	}
	if _, err := EncoderByName("zxing"); err == nil {
		t.Error("EncoderByName(zxing) should fail")
	}
}
