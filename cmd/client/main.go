package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/harrylevesque/boxtrack/internal/files"
	"github.com/harrylevesque/boxtrack/internal/models"
)

// Default server base URL; can override with BOXTRACK_SERVER env var or --server flag.
var serverBaseURL = "http://localhost:8080"

var httpClient = &http.Client{Timeout: 2 * time.Minute}

func main() {
	cmd := flag.String("cmd", "pdf", "Command: pdf|svg|id")
	in := flag.String("in", "", "Box list (.json or .csv) for pdf")
	boxID := flag.String("id", "", "Box ID (for svg/id)")
	out := flag.String("out", "", "Output file (default: labels.pdf / <id>.svg)")
	offsetX := flag.Float64("offset-x", 0, "Horizontal calibration in points")
	offsetY := flag.Float64("offset-y", 0, "Vertical calibration in points")
	serverFlag := flag.String("server", "", "Override server base URL (e.g. https://labels.example.com)")
	flag.Parse()
	if env := os.Getenv("BOXTRACK_SERVER"); env != "" {
		serverBaseURL = strings.TrimRight(env, "/")
	}
	if *serverFlag != "" {
		serverBaseURL = strings.TrimRight(*serverFlag, "/")
	}

	var err error
	switch *cmd {
	case "pdf":
		if *in == "" {
			fmt.Println("--in required")
			os.Exit(1)
		}
		err = fetchPDF(*in, *out, models.Calibration{X: *offsetX, Y: *offsetY})
	case "svg":
		if *boxID == "" {
			fmt.Println("--id required")
			os.Exit(1)
		}
		err = fetchSVG(*boxID, *out)
	case "id":
		if *boxID == "" {
			fmt.Println("--id required")
			os.Exit(1)
		}
		err = showLabelID(*boxID)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func fetchPDF(inPath, outPath string, cal models.Calibration) error {
	boxes, err := files.LoadBoxes(inPath)
	if err != nil {
		return fmt.Errorf("load boxes: %w", err)
	}
	if err := cal.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(files.BoxBatch{Boxes: boxes, Calibration: &cal})
	if err != nil {
		return err
	}
	resp, err := httpClient.Post(serverBaseURL+"/labels/pdf", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}
	if outPath == "" {
		outPath = "labels.pdf"
	}
	if err := writeBody(resp.Body, outPath); err != nil {
		return err
	}
	fmt.Printf("Wrote %d labels to %s\n", len(boxes), outPath)
	return nil
}

func fetchSVG(id, outPath string) error {
	resp, err := httpClient.Get(serverBaseURL + "/boxes/" + url.PathEscape(id) + "/qr.svg")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}
	if outPath == "" {
		outPath = id + ".svg"
	}
	if err := writeBody(resp.Body, outPath); err != nil {
		return err
	}
	fmt.Printf("Wrote QR code for %s to %s\n", id, outPath)
	return nil
}

func showLabelID(id string) error {
	resp, err := httpClient.Get(serverBaseURL + "/boxes/" + url.PathEscape(id) + "/label-id")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}
	var info map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return err
	}
	fmt.Printf("%s -> %s (%s)\n", info["id"], info["display_id"], info["url"])
	return nil
}

func writeBody(r io.Reader, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func serverError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	if body.Kind != "" {
		return fmt.Errorf("server returned %s (%s): %s", resp.Status, body.Kind, body.Error)
	}
	return fmt.Errorf("server returned %s: %s", resp.Status, body.Error)
}
