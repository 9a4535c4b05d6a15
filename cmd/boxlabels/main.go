// Package main provides the command-line label generator for BoxTrack.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/harrylevesque/boxtrack/internal/files"
	"github.com/harrylevesque/boxtrack/internal/labels"
	"github.com/harrylevesque/boxtrack/internal/models"
	"github.com/harrylevesque/boxtrack/internal/qr"
	"github.com/harrylevesque/boxtrack/internal/render"
	"github.com/harrylevesque/boxtrack/internal/utils"
)

var (
	pdfOutput  string
	svgOutput  string
	offsetX    float64
	offsetY    float64
	baseURL    string
	level      string
	encoder    string
	svgSize    int
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "boxlabels",
		Short: "Generate printable QR labels for storage boxes",
		Long: `boxlabels renders BoxTrack box labels onto Avery 5168 sheets
(four 3.5" x 5" labels per US Letter page) or as standalone QR SVGs.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Base URL encoded into the QR codes (default from config)")
	rootCmd.PersistentFlags().StringVar(&level, "level", "", "QR error correction level: L, M, Q, H (default from config)")
	rootCmd.PersistentFlags().StringVar(&encoder, "encoder", "", "QR encoder: skip2, boombuler (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	pdfCmd := &cobra.Command{
		Use:   "pdf [boxes.json|boxes.csv]",
		Short: "Render a label sheet PDF for a list of boxes",
		Args:  cobra.ExactArgs(1),
		RunE:  runPDF,
	}
	pdfCmd.Flags().StringVarP(&pdfOutput, "output", "o", "labels.pdf", "Output PDF path")
	pdfCmd.Flags().Float64Var(&offsetX, "offset-x", 0, "Horizontal printer calibration in points")
	pdfCmd.Flags().Float64Var(&offsetY, "offset-y", 0, "Vertical printer calibration in points")

	svgCmd := &cobra.Command{
		Use:   "svg [box-id]",
		Short: "Write the QR code of one box as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  runSVG,
	}
	svgCmd.Flags().StringVarP(&svgOutput, "output", "o", "", "Output SVG path (default: stdout)")
	svgCmd.Flags().IntVar(&svgSize, "size", int(qr.DefaultSize), "Edge length of the SVG in px")

	idCmd := &cobra.Command{
		Use:   "format-id [box-id...]",
		Short: "Print the short display id of each box id",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, id := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, labels.FormatBoxID(id))
			}
		},
	}

	rootCmd.AddCommand(pdfCmd, svgCmd, idCmd)
	return rootCmd
}

// settings merges the config file with the command-line overrides.
func settings() (string, qr.Options, error) {
	cfg, err := utils.LoadConfig()
	if err != nil {
		return "", qr.Options{}, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if level != "" {
		cfg.ErrorCorrection = level
	}
	if encoder != "" {
		cfg.QREncoder = encoder
	}
	lvl, err := qr.ParseLevel(cfg.ErrorCorrection)
	if err != nil {
		return "", qr.Options{}, err
	}
	enc, err := qr.EncoderByName(cfg.QREncoder)
	if err != nil {
		return "", qr.Options{}, err
	}
	return cfg.BaseURL, qr.Options{Level: lvl, Encoder: enc}, nil
}

func logger() *utils.Logger {
	if verbose {
		return utils.NewLogger(os.Stderr)
	}
	return utils.Discard()
}

func runPDF(cmd *cobra.Command, args []string) error {
	base, qrOpts, err := settings()
	if err != nil {
		return err
	}
	boxes, err := files.LoadBoxes(args[0])
	if err != nil {
		return fmt.Errorf("failed to load boxes: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pdf, err := render.GenerateLabelPDF(ctx, boxes, render.Options{
		Calibration: models.Calibration{X: offsetX, Y: offsetY},
		BaseURL:     base,
		QR:          qrOpts,
		Renderer:    &render.Renderer{Title: "Box labels", Creator: "boxlabels"},
		Logger:      logger(),
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(pdfOutput, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d labels on %d pages to %s\n",
		len(boxes), labels.CalculatePageCount(len(boxes)), pdfOutput)
	return nil
}

func runSVG(cmd *cobra.Command, args []string) error {
	base, qrOpts, err := settings()
	if err != nil {
		return err
	}
	if svgSize < 21 {
		return fmt.Errorf("--size must be at least 21, got %d", svgSize)
	}
	qrOpts.Size = float64(svgSize)
	svg, err := qr.GenerateQRSvg(labels.GenerateBoxURL(args[0], base), qrOpts)
	if err != nil {
		return err
	}
	if svgOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), svg)
		return nil
	}
	if err := os.WriteFile(svgOutput, []byte(svg), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
