package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	t.Setenv("BOXTRACK_BASE_URL", "")
	t.Setenv("BOXTRACK_QR_ENCODER", "")
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestPDFDefaultOutput(t *testing.T) {
	dir := chdirTemp(t)
	boxes := `[{"id":"b1","name":"Tools"},{"id":"b2"},{"id":"b3"},{"id":"b4"},{"id":"b5"}]`
	if err := os.WriteFile(filepath.Join(dir, "boxes.json"), []byte(boxes), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "pdf", "boxes.json")
	if err != nil {
		t.Fatalf("pdf: %v\n%s", err, out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "labels.pdf"))
	if err != nil {
		t.Fatalf("default output not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("labels.pdf is not a PDF")
	}
	if !strings.Contains(out, "Wrote 5 labels on 2 pages to labels.pdf") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestPDFExplicitOutput(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(dir, "boxes.csv"), []byte("id,name\nb1,Tools\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if out, err := runCLI(t, "pdf", "boxes.csv", "-o", "sheet.pdf", "--offset-x", "5"); err != nil {
		t.Fatalf("pdf: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(dir, "sheet.pdf")); err != nil {
		t.Error(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "labels.pdf")); err == nil {
		t.Error("labels.pdf written despite -o")
	}
}

func TestSVGToStdout(t *testing.T) {
	chdirTemp(t)
	out, err := runCLI(t, "svg", "b1", "--size", "120")
	if err != nil {
		t.Fatalf("svg: %v\n%s", err, out)
	}
	if !strings.Contains(out, `viewBox="0 0 120 120"`) {
		t.Errorf("unexpected svg: %s", out)
	}

	if _, err := runCLI(t, "svg", "b1", "--size", "100.5"); err == nil {
		t.Error("fractional --size accepted")
	}
}

func TestFormatID(t *testing.T) {
	out, err := runCLI(t, "format-id", "box_abc123", "a1b2c3d4-e5f6-7890-abcd-ef1234567890")
	if err != nil {
		t.Fatal(err)
	}
	want := "box_abc123\tABC123\na1b2c3d4-e5f6-7890-abcd-ef1234567890\tA1B2C3D4\n"
	if out != want {
		t.Errorf("format-id output %q, want %q", out, want)
	}
}
