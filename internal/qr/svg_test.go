package qr

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateQRSvg(t *testing.T) {
	doc, err := GenerateQRSvg("https://boxtrack.app/box/abc123", Options{})
	if err != nil {
		t.Fatal(err)
	}
	code, err := GenerateQRPath("https://boxtrack.app/box/abc123", Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<svg", `viewBox="0 0 216 216"`, `d="` + code.Path + `"`, "</svg>"} {
		if !strings.Contains(doc, want) {
			t.Errorf("svg does not contain %q:\n%s", want, doc)
		}
	}
}

func TestGenerateQRDataURL(t *testing.T) {
	const prefix = "data:image/svg+xml;base64,"
	url, err := GenerateQRDataURL("b1", Options{Size: 100})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(url, prefix) {
		t.Fatalf("data URL %q lacks prefix", url)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, prefix))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := GenerateQRSvg("b1", Options{Size: 100})
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != doc {
		t.Error("decoded data URL differs from the SVG document")
	}
}

func TestGenerateQRDataURLsKeepsOrder(t *testing.T) {
	contents := []string{"b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8", "b9"}
	urls, err := GenerateQRDataURLs(context.Background(), contents, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := make([]string, len(contents))
	for i, c := range contents {
		if want[i], err = GenerateQRDataURL(c, Options{}); err != nil {
			t.Fatal(err)
		}
	}
	if d := cmp.Diff(want, urls); d != "" {
		t.Errorf("urls mismatch (-want +got):\n%s", d)
	}
}

func TestGenerateQRDataURLsFailsBatch(t *testing.T) {
	contents := []string{"b1", strings.Repeat("x", 4000), "b3"}
	if _, err := GenerateQRDataURLs(context.Background(), contents, Options{}); err == nil {
		t.Error("expected the oversized entry to fail the batch")
	}
	urls, err := GenerateQRDataURLs(context.Background(), nil, Options{})
	if err != nil || urls != nil {
		t.Errorf("empty batch = %v, %v", urls, err)
	}
}
